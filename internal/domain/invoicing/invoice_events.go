package invoicing

import (
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const AggregateTypeInvoice = "Invoice"

const (
	EventTypeInvoiceCreated   = "InvoiceCreated"
	EventTypeInvoiceIssued    = "InvoiceIssued"
	EventTypeInvoicePaid      = "InvoicePaid"
	EventTypeInvoiceCancelled = "InvoiceCancelled"
	EventTypeInvoiceMirrored  = "InvoiceMirrored"
	EventTypeInvoiceDeleted   = "InvoiceDeleted"
)

// InvoiceCreatedEvent is published when a draft invoice is created.
// SourceDocumentID is set when the draft came out of the OCR pipeline; the
// OCR linking handler uses it to connect the result to the invoice.
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID        uuid.UUID   `json:"invoice_id"`
	Type             InvoiceType `json:"type"`
	SourceDocumentID *uuid.UUID  `json:"source_document_id,omitempty"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:        inv.ID,
		Type:             inv.Type,
		SourceDocumentID: inv.SourceDocumentID,
	}
}

// InvoiceIssuedEvent is published when an invoice leaves draft state.
// The auto-posting engine subscribes to it for sales invoices.
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	Number          string          `json:"number"`
	Type            InvoiceType     `json:"type"`
	SellerCompanyID uuid.UUID       `json:"seller_company_id"`
	ContractorID    uuid.UUID       `json:"contractor_id"`
	TotalGross      decimal.Decimal `json:"total_gross"`
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(inv *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		Type:            inv.Type,
		SellerCompanyID: inv.SellerCompanyID,
		ContractorID:    inv.ContractorID,
		TotalGross:      inv.TotalGross,
	}
}

// InvoicePaidEvent is published when an invoice is marked as paid
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Number     string          `json:"number"`
	TotalGross decimal.Decimal `json:"total_gross"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		TotalGross:      inv.TotalGross,
	}
}

// InvoiceCancelledEvent is published when an invoice is voided
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID `json:"invoice_id"`
	Number    string    `json:"number"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv *Invoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
	}
}

// InvoiceMirroredEvent is published on the cost-side copy when the
// auto-posting engine materializes it in the partner tenant
type InvoiceMirroredEvent struct {
	shared.BaseDomainEvent
	InvoiceID       uuid.UUID `json:"invoice_id"`
	SourceInvoiceID uuid.UUID `json:"source_invoice_id"`
	SourceTenantID  uuid.UUID `json:"source_tenant_id"`
	Number          string    `json:"number"`
}

// NewInvoiceMirroredEvent creates a new InvoiceMirroredEvent
func NewInvoiceMirroredEvent(mirror, source *Invoice) *InvoiceMirroredEvent {
	return &InvoiceMirroredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceMirrored, AggregateTypeInvoice, mirror.ID, mirror.TenantID),
		InvoiceID:       mirror.ID,
		SourceInvoiceID: source.ID,
		SourceTenantID:  source.TenantID,
		Number:          mirror.Number,
	}
}

// InvoiceDeletedEvent is published when an invoice is removed. The OCR
// unlinking handler uses SourceDocumentID to reset the result linkage.
type InvoiceDeletedEvent struct {
	shared.BaseDomainEvent
	InvoiceID        uuid.UUID  `json:"invoice_id"`
	Number           string     `json:"number"`
	SourceDocumentID *uuid.UUID `json:"source_document_id,omitempty"`
}

// NewInvoiceDeletedEvent creates a new InvoiceDeletedEvent
func NewInvoiceDeletedEvent(inv *Invoice) *InvoiceDeletedEvent {
	return &InvoiceDeletedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeInvoiceDeleted, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceID:        inv.ID,
		Number:           inv.Number,
		SourceDocumentID: inv.SourceDocumentID,
	}
}
