package ocr

import (
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	AggregateTypeDocument = "DocumentUpload"
	AggregateTypeResult   = "OCRResult"
)

const (
	EventTypeDocumentUploaded    = "DocumentUploaded"
	EventTypeResultCreated       = "OCRResultCreated"
	EventTypeResultStatusChanged = "OCRResultStatusChanged"
	EventTypeResultCompleted     = "OCRResultCompleted"
	EventTypeResultLinked        = "OCRResultLinked"
)

// DocumentUploadedEvent is published when a document enters the pipeline
type DocumentUploadedEvent struct {
	shared.BaseDomainEvent
	DocumentID  uuid.UUID `json:"document_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
}

// NewDocumentUploadedEvent creates a new DocumentUploadedEvent
func NewDocumentUploadedEvent(d *DocumentUpload) *DocumentUploadedEvent {
	return &DocumentUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentUploaded, AggregateTypeDocument, d.ID, d.TenantID),
		DocumentID:      d.ID,
		FileName:        d.FileName,
		ContentType:     d.ContentType,
	}
}

// ResultCreatedEvent is published when recognition is queued for a document
type ResultCreatedEvent struct {
	shared.BaseDomainEvent
	ResultID   uuid.UUID `json:"result_id"`
	DocumentID uuid.UUID `json:"document_id"`
}

// NewResultCreatedEvent creates a new ResultCreatedEvent
func NewResultCreatedEvent(r *OCRResult) *ResultCreatedEvent {
	return &ResultCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeResultCreated, AggregateTypeResult, r.ID, r.TenantID),
		ResultID:        r.ID,
		DocumentID:      r.DocumentID,
	}
}

// ResultStatusChangedEvent is published on every result transition so the
// upload projection can follow
type ResultStatusChangedEvent struct {
	shared.BaseDomainEvent
	ResultID   uuid.UUID    `json:"result_id"`
	DocumentID uuid.UUID    `json:"document_id"`
	Status     ResultStatus `json:"status"`
}

// NewResultStatusChangedEvent creates a new ResultStatusChangedEvent
func NewResultStatusChangedEvent(r *OCRResult) *ResultStatusChangedEvent {
	return &ResultStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeResultStatusChanged, AggregateTypeResult, r.ID, r.TenantID),
		ResultID:        r.ID,
		DocumentID:      r.DocumentID,
		Status:          r.Status,
	}
}

// ResultCompletedEvent is published when recognition finishes with data.
// The auto-creation handler subscribes to it.
type ResultCompletedEvent struct {
	shared.BaseDomainEvent
	ResultID   uuid.UUID    `json:"result_id"`
	DocumentID uuid.UUID    `json:"document_id"`
	Status     ResultStatus `json:"status"`
	Confidence float64      `json:"confidence"`
}

// NewResultCompletedEvent creates a new ResultCompletedEvent
func NewResultCompletedEvent(r *OCRResult) *ResultCompletedEvent {
	return &ResultCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeResultCompleted, AggregateTypeResult, r.ID, r.TenantID),
		ResultID:        r.ID,
		DocumentID:      r.DocumentID,
		Status:          r.Status,
		Confidence:      r.Confidence,
	}
}

// ResultLinkedEvent is published when a result is tied to an invoice
type ResultLinkedEvent struct {
	shared.BaseDomainEvent
	ResultID  uuid.UUID `json:"result_id"`
	InvoiceID uuid.UUID `json:"invoice_id"`
	Auto      bool      `json:"auto"`
}

// NewResultLinkedEvent creates a new ResultLinkedEvent
func NewResultLinkedEvent(r *OCRResult) *ResultLinkedEvent {
	invoiceID := uuid.Nil
	if r.InvoiceID != nil {
		invoiceID = *r.InvoiceID
	}
	return &ResultLinkedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeResultLinked, AggregateTypeResult, r.ID, r.TenantID),
		ResultID:        r.ID,
		InvoiceID:       invoiceID,
		Auto:            r.AutoCreatedInvoice,
	}
}
