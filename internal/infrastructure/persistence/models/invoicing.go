package models

import (
	"time"

	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate.
// The invoice number is unique per tenant and type; mirrored cost invoices
// additionally carry a unique source invoice reference, which is the
// database-level idempotency guard of the auto-posting engine.
type InvoiceModel struct {
	TenantAggregateModel
	Number           string                  `gorm:"type:varchar(30);uniqueIndex:idx_invoice_tenant_type_number,priority:3,where:number <> ''"`
	Type             invoicing.InvoiceType   `gorm:"type:varchar(10);not null;uniqueIndex:idx_invoice_tenant_type_number,priority:2"`
	Status           invoicing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	SellerCompanyID  uuid.UUID               `gorm:"type:uuid;not null"`
	ContractorID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	IssueDate        time.Time               `gorm:"index"`
	SaleDate         time.Time               `gorm:"not null"`
	DueDate          time.Time
	PaymentMethod    string             `gorm:"type:varchar(50);default:'przelew'"`
	Currency         string             `gorm:"type:varchar(3);not null;default:'PLN'"`
	TotalNet         decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	TotalVAT         decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	TotalGross       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Mirrored         bool               `gorm:"not null;default:false"`
	SourceInvoiceID  *uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_invoice_tenant_source,priority:2,where:source_invoice_id IS NOT NULL"`
	SourceDocumentID *uuid.UUID         `gorm:"type:uuid;index"`
	Notes            string             `gorm:"type:text"`
	PaidAt           *time.Time
	Lines            []InvoiceLineModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceLineModel is the persistence model for invoice line items.
type InvoiceLineModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(300);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit      string          `gorm:"type:varchar(20)"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	VATRate   string          `gorm:"type:varchar(4);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain Invoice with its lines.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	inv := &invoicing.Invoice{
		Number:           m.Number,
		Type:             m.Type,
		Status:           m.Status,
		SellerCompanyID:  m.SellerCompanyID,
		ContractorID:     m.ContractorID,
		IssueDate:        m.IssueDate,
		SaleDate:         m.SaleDate,
		DueDate:          m.DueDate,
		PaymentMethod:    m.PaymentMethod,
		Currency:         m.Currency,
		TotalNet:         m.TotalNet,
		TotalVAT:         m.TotalVAT,
		TotalGross:       m.TotalGross,
		Mirrored:         m.Mirrored,
		SourceInvoiceID:  m.SourceInvoiceID,
		SourceDocumentID: m.SourceDocumentID,
		Notes:            m.Notes,
		PaidAt:           m.PaidAt,
	}
	m.PopulateTenantAggregateRoot(&inv.TenantAggregateRoot)

	inv.Lines = make([]invoicing.InvoiceLine, 0, len(m.Lines))
	for _, lm := range m.Lines {
		inv.Lines = append(inv.Lines, invoicing.InvoiceLine{
			ID:        lm.ID,
			InvoiceID: lm.InvoiceID,
			Name:      lm.Name,
			Quantity:  lm.Quantity,
			Unit:      lm.Unit,
			UnitPrice: lm.UnitPrice,
			VATRate:   lm.VATRate,
			Discount:  lm.Discount,
		})
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice.
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	m.Number = inv.Number
	m.Type = inv.Type
	m.Status = inv.Status
	m.SellerCompanyID = inv.SellerCompanyID
	m.ContractorID = inv.ContractorID
	m.IssueDate = inv.IssueDate
	m.SaleDate = inv.SaleDate
	m.DueDate = inv.DueDate
	m.PaymentMethod = inv.PaymentMethod
	m.Currency = inv.Currency
	m.TotalNet = inv.TotalNet
	m.TotalVAT = inv.TotalVAT
	m.TotalGross = inv.TotalGross
	m.Mirrored = inv.Mirrored
	m.SourceInvoiceID = inv.SourceInvoiceID
	m.SourceDocumentID = inv.SourceDocumentID
	m.Notes = inv.Notes
	m.PaidAt = inv.PaidAt

	m.Lines = make([]InvoiceLineModel, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		m.Lines = append(m.Lines, InvoiceLineModel{
			ID:        l.ID,
			InvoiceID: inv.ID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Unit:      l.Unit,
			UnitPrice: l.UnitPrice,
			VATRate:   l.VATRate,
			Discount:  l.Discount,
		})
	}
}

// NumberSequenceModel allocates invoice numbers per tenant, type and month.
// NextNumber bumps LastValue inside a transaction with a row lock, so two
// concurrent issuers can never draw the same number.
type NumberSequenceModel struct {
	TenantID  uuid.UUID             `gorm:"type:uuid;primary_key"`
	Type      invoicing.InvoiceType `gorm:"type:varchar(10);primary_key"`
	Year      int                   `gorm:"primary_key"`
	Month     int                   `gorm:"primary_key"`
	LastValue int                   `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (NumberSequenceModel) TableName() string {
	return "invoice_number_sequences"
}

// RecurringInvoiceModel is the persistence model for recurring schedules.
type RecurringInvoiceModel struct {
	TenantAggregateModel
	OriginalInvoiceID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Frequency         invoicing.Frequency `gorm:"type:varchar(20);not null"`
	NextGeneration    time.Time           `gorm:"not null;index"`
	EndDate           *time.Time
	MaxCycles         *int
	GeneratedCount    int  `gorm:"not null;default:0"`
	Active            bool `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (RecurringInvoiceModel) TableName() string {
	return "recurring_invoices"
}

// ToDomain converts the persistence model to a domain RecurringInvoice.
func (m *RecurringInvoiceModel) ToDomain() *invoicing.RecurringInvoice {
	r := &invoicing.RecurringInvoice{
		OriginalInvoiceID: m.OriginalInvoiceID,
		Frequency:         m.Frequency,
		NextGeneration:    m.NextGeneration,
		EndDate:           m.EndDate,
		MaxCycles:         m.MaxCycles,
		GeneratedCount:    m.GeneratedCount,
		Active:            m.Active,
	}
	m.PopulateTenantAggregateRoot(&r.TenantAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain RecurringInvoice.
func (m *RecurringInvoiceModel) FromDomain(r *invoicing.RecurringInvoice) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.OriginalInvoiceID = r.OriginalInvoiceID
	m.Frequency = r.Frequency
	m.NextGeneration = r.NextGeneration
	m.EndDate = r.EndDate
	m.MaxCycles = r.MaxCycles
	m.GeneratedCount = r.GeneratedCount
	m.Active = r.Active
}
