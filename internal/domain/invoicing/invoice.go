package invoicing

import (
	"strings"
	"time"

	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes outgoing sales invoices from incoming cost invoices
type InvoiceType string

const (
	TypeSales InvoiceType = "sales"
	TypeCost  InvoiceType = "cost"
)

// InvoiceStatus is the invoice lifecycle state
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusIssued    InvoiceStatus = "issued"
	StatusPaid      InvoiceStatus = "paid"
	StatusCancelled InvoiceStatus = "cancelled"
)

// Invoice is the aggregate root for invoicing. A sales invoice belongs to the
// issuing tenant; when auto-posting applies, the engine creates a matching
// cost invoice in the partner tenant with SourceInvoiceID pointing back here.
type Invoice struct {
	shared.TenantAggregateRoot
	Number          string
	Type            InvoiceType
	Status          InvoiceStatus
	SellerCompanyID uuid.UUID
	ContractorID    uuid.UUID // buyer on sales invoices, seller on cost invoices
	IssueDate       time.Time
	SaleDate        time.Time
	DueDate         time.Time
	PaymentMethod   string
	Currency        string
	Lines           []InvoiceLine
	TotalNet        decimal.Decimal
	TotalVAT        decimal.Decimal
	TotalGross      decimal.Decimal
	// Mirrored marks a sales invoice already posted into the partner ledger
	Mirrored bool
	// SourceInvoiceID links a mirrored cost invoice to its originating sales invoice
	SourceInvoiceID *uuid.UUID
	// SourceDocumentID links an invoice drafted from an OCR-processed upload
	SourceDocumentID *uuid.UUID
	Notes            string
	PaidAt           *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a draft invoice
func NewInvoice(tenantID, sellerCompanyID, contractorID uuid.UUID, typ InvoiceType, saleDate time.Time) (*Invoice, error) {
	if err := validateType(typ); err != nil {
		return nil, err
	}
	if sellerCompanyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller company is required")
	}
	if contractorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR", "Contractor is required")
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                typ,
		Status:              StatusDraft,
		SellerCompanyID:     sellerCompanyID,
		ContractorID:        contractorID,
		SaleDate:            saleDate,
		Currency:            "PLN",
		PaymentMethod:       "przelew",
		TotalNet:            decimal.Zero,
		TotalVAT:            decimal.Zero,
		TotalGross:          decimal.Zero,
	}
	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))
	return inv, nil
}

// AddLine appends a line item and recomputes totals. Draft only.
func (inv *Invoice) AddLine(line InvoiceLine) error {
	if inv.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Line items can only be changed on draft invoices")
	}
	line.InvoiceID = inv.ID
	inv.Lines = append(inv.Lines, line)
	inv.recalculate()
	return nil
}

// RemoveLine deletes a line item by ID and recomputes totals. Draft only.
func (inv *Invoice) RemoveLine(lineID uuid.UUID) error {
	if inv.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Line items can only be changed on draft invoices")
	}
	for i, l := range inv.Lines {
		if l.ID == lineID {
			inv.Lines = append(inv.Lines[:i], inv.Lines[i+1:]...)
			inv.recalculate()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Issue assigns the number and moves the invoice from draft to issued.
// Issuing a sales invoice is the trigger for the auto-posting engine.
func (inv *Invoice) Issue(number string, issueDate, dueDate time.Time) error {
	if inv.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be issued")
	}
	if strings.TrimSpace(number) == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Invoice number is required")
	}
	if len(inv.Lines) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "An invoice needs at least one line item")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	if dueDate.IsZero() {
		dueDate = issueDate.AddDate(0, 0, 14)
	}
	if dueDate.Before(issueDate) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the issue date")
	}

	inv.Number = number
	inv.IssueDate = issueDate
	inv.DueDate = dueDate
	inv.Status = StatusIssued
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceIssuedEvent(inv))
	return nil
}

// MarkPaid records payment of an issued invoice
func (inv *Invoice) MarkPaid(paidAt time.Time) error {
	if inv.Status != StatusIssued {
		return shared.NewDomainError("INVALID_STATE", "Only issued invoices can be marked as paid")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	inv.Status = StatusPaid
	inv.PaidAt = &paidAt
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	return nil
}

// Cancel voids an invoice that has not been paid
func (inv *Invoice) Cancel() error {
	if inv.Status == StatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be cancelled")
	}
	if inv.Status == StatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Invoice is already cancelled")
	}
	inv.Status = StatusCancelled
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceCancelledEvent(inv))
	return nil
}

// MarkMirrored flags a sales invoice as posted into the partner ledger
func (inv *Invoice) MarkMirrored() error {
	if inv.Type != TypeSales {
		return shared.NewDomainError("INVALID_STATE", "Only sales invoices are mirrored")
	}
	if inv.Mirrored {
		return shared.NewDomainError("ALREADY_MIRRORED", "Invoice has already been mirrored")
	}
	inv.Mirrored = true
	inv.Touch()
	inv.IncrementVersion()
	return nil
}

// AttachSourceDocument records OCR provenance on a drafted invoice. A still
// unpublished created event is re-projected so subscribers see the link;
// provenance is always attached before the draft is saved and published.
func (inv *Invoice) AttachSourceDocument(documentID uuid.UUID) {
	inv.SourceDocumentID = &documentID
	for _, evt := range inv.GetDomainEvents() {
		if created, ok := evt.(*InvoiceCreatedEvent); ok {
			created.SourceDocumentID = inv.SourceDocumentID
		}
	}
	inv.Touch()
	inv.IncrementVersion()
}

// SetNotes sets free-form notes printed on the invoice
func (inv *Invoice) SetNotes(notes string) {
	inv.Notes = notes
	inv.Touch()
	inv.IncrementVersion()
}

// PaymentTermDays is the payment-term offset between sale and due date.
// Recurring generation uses it to preserve the original invoice's terms.
func (inv *Invoice) PaymentTermDays() int {
	if inv.DueDate.IsZero() || inv.SaleDate.IsZero() {
		return 14
	}
	days := int(inv.DueDate.Sub(inv.SaleDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsOverdue reports whether an issued invoice is past its due date
func (inv *Invoice) IsOverdue(now time.Time) bool {
	return inv.Status == StatusIssued && !inv.DueDate.IsZero() && now.After(inv.DueDate)
}

// NewMirroredCost builds the cost-side copy of an issued sales invoice for
// the partner tenant. The copy keeps the source number so both ledgers refer
// to the same document, carries the source link for idempotency, and is born
// issued: the partner never edits a mirrored invoice.
func NewMirroredCost(source *Invoice, targetTenantID, targetCompanyID, sellerContractorID uuid.UUID) (*Invoice, error) {
	if source.Type != TypeSales {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Only sales invoices can be mirrored")
	}
	if source.Status != StatusIssued {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Only issued invoices can be mirrored")
	}

	sourceID := source.ID
	mirror := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(targetTenantID),
		Number:              source.Number,
		Type:                TypeCost,
		Status:              StatusIssued,
		SellerCompanyID:     targetCompanyID,
		ContractorID:        sellerContractorID,
		IssueDate:           source.IssueDate,
		SaleDate:            source.SaleDate,
		DueDate:             source.DueDate,
		PaymentMethod:       source.PaymentMethod,
		Currency:            source.Currency,
		Mirrored:            true,
		SourceInvoiceID:     &sourceID,
	}
	for _, l := range source.Lines {
		copied := l.Copy()
		copied.InvoiceID = mirror.ID
		mirror.Lines = append(mirror.Lines, copied)
	}
	mirror.recalculate()

	mirror.AddDomainEvent(NewInvoiceMirroredEvent(mirror, source))
	return mirror, nil
}

// recalculate recomputes invoice totals from the line items
func (inv *Invoice) recalculate() {
	net := decimal.Zero
	vat := decimal.Zero
	for _, l := range inv.Lines {
		net = net.Add(l.Net())
		vat = vat.Add(l.VAT())
	}
	inv.TotalNet = net
	inv.TotalVAT = vat
	inv.TotalGross = net.Add(vat)
	inv.Touch()
}

func validateType(t InvoiceType) error {
	switch t {
	case TypeSales, TypeCost:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invoice type must be 'sales' or 'cost'")
	}
}
