package ocr

import (
	"time"

	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResultStatus is the recognition lifecycle state. It is the source of
// truth for processing progress; the upload status is derived from it.
type ResultStatus string

const (
	ResultPending      ResultStatus = "pending"
	ResultProcessing   ResultStatus = "processing"
	ResultCompleted    ResultStatus = "completed"
	ResultFailed       ResultStatus = "failed"
	ResultManualReview ResultStatus = "manual_review"
)

// Confidence thresholds for routing recognized documents.
const (
	AutoCreateConfidence   = 90.0
	ManualReviewConfidence = 70.0
)

// ExtractedData holds the invoice fields recognized from a document
type ExtractedData struct {
	InvoiceNumber string          `json:"invoice_number"`
	SellerNIP     string          `json:"seller_nip"`
	SellerName    string          `json:"seller_name"`
	BuyerNIP      string          `json:"buyer_nip"`
	BuyerName     string          `json:"buyer_name"`
	IssueDate     *time.Time      `json:"issue_date,omitempty"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	TotalNet      decimal.Decimal `json:"total_net"`
	TotalVAT      decimal.Decimal `json:"total_vat"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	Currency      string          `json:"currency"`
}

// OCRResult tracks recognition of one uploaded document
type OCRResult struct {
	shared.TenantAggregateRoot
	DocumentID uuid.UUID
	Status     ResultStatus
	// Confidence is the engine's overall certainty, 0-100
	Confidence float64
	Extracted  *ExtractedData
	// InvoiceID links the invoice created or confirmed from this result
	InvoiceID *uuid.UUID
	// AutoCreatedInvoice marks results whose invoice was created without review
	AutoCreatedInvoice bool
	FailureReason      string
	CompletedAt        *time.Time
}

// TableName returns the table name for GORM
func (OCRResult) TableName() string {
	return "ocr_results"
}

// NewOCRResult creates a pending result for an uploaded document
func NewOCRResult(tenantID, documentID uuid.UUID) (*OCRResult, error) {
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document is required")
	}
	r := &OCRResult{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DocumentID:          documentID,
		Status:              ResultPending,
	}
	r.AddDomainEvent(NewResultCreatedEvent(r))
	return r, nil
}

// StartProcessing moves a pending result into processing
func (r *OCRResult) StartProcessing() error {
	if r.Status != ResultPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending results can start processing")
	}
	r.Status = ResultProcessing
	r.Touch()
	r.IncrementVersion()
	r.AddDomainEvent(NewResultStatusChangedEvent(r))
	return nil
}

// Complete records the recognition outcome. Confidence decides the route:
// at or above AutoCreateConfidence the invoice is created automatically,
// between the thresholds the result waits for manual review, below
// ManualReviewConfidence it completes without any invoice suggestion.
func (r *OCRResult) Complete(data ExtractedData, confidence float64, at time.Time) error {
	if r.Status != ResultProcessing {
		return shared.NewDomainError("INVALID_STATE", "Only processing results can complete")
	}
	if confidence < 0 || confidence > 100 {
		return shared.NewDomainError("INVALID_CONFIDENCE", "Confidence must be between 0 and 100")
	}

	r.Extracted = &data
	r.Confidence = confidence
	if confidence >= ManualReviewConfidence && confidence < AutoCreateConfidence {
		r.Status = ResultManualReview
	} else {
		r.Status = ResultCompleted
	}
	r.CompletedAt = &at
	r.Touch()
	r.IncrementVersion()
	r.AddDomainEvent(NewResultCompletedEvent(r))
	return nil
}

// Fail records a recognition failure
func (r *OCRResult) Fail(reason string, at time.Time) error {
	switch r.Status {
	case ResultCompleted, ResultFailed:
		return shared.NewDomainError("INVALID_STATE", "Finished results cannot fail")
	}
	r.Status = ResultFailed
	r.FailureReason = reason
	r.CompletedAt = &at
	r.Touch()
	r.IncrementVersion()
	r.AddDomainEvent(NewResultStatusChangedEvent(r))
	return nil
}

// ShouldAutoCreate reports whether the result qualifies for automatic
// invoice creation
func (r *OCRResult) ShouldAutoCreate() bool {
	return r.Status == ResultCompleted && r.Confidence >= AutoCreateConfidence && r.Extracted != nil
}

// LinkInvoice records the invoice created or confirmed from this result.
// A manual_review result is resolved to completed by the confirmation.
func (r *OCRResult) LinkInvoice(invoiceID uuid.UUID, auto bool) error {
	if r.Status != ResultCompleted && r.Status != ResultManualReview {
		return shared.NewDomainError("INVALID_STATE", "Only completed results can be linked to an invoice")
	}
	if r.InvoiceID != nil {
		return shared.NewDomainError("ALREADY_LINKED", "Result is already linked to an invoice")
	}
	r.InvoiceID = &invoiceID
	r.AutoCreatedInvoice = auto
	r.Status = ResultCompleted
	r.Touch()
	r.IncrementVersion()
	r.AddDomainEvent(NewResultLinkedEvent(r))
	return nil
}

// UnlinkInvoice clears the invoice link after the invoice was deleted,
// reopening the result for manual review.
func (r *OCRResult) UnlinkInvoice() {
	if r.InvoiceID == nil {
		return
	}
	r.InvoiceID = nil
	r.AutoCreatedInvoice = false
	r.Status = ResultManualReview
	r.Touch()
	r.IncrementVersion()
	r.AddDomainEvent(NewResultStatusChangedEvent(r))
}
