package ocr

import (
	"time"

	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/google/uuid"
)

// DocumentResponse represents an upload in API responses
type DocumentResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
	Status      string     `json:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ResultResponse represents a recognition result in API responses
type ResultResponse struct {
	ID                 uuid.UUID          `json:"id"`
	DocumentID         uuid.UUID          `json:"document_id"`
	Status             string             `json:"status"`
	Confidence         float64            `json:"confidence"`
	Extracted          *ocr.ExtractedData `json:"extracted,omitempty"`
	InvoiceID          *uuid.UUID         `json:"invoice_id,omitempty"`
	AutoCreatedInvoice bool               `json:"auto_created_invoice"`
	FailureReason      string             `json:"failure_reason,omitempty"`
	CompletedAt        *time.Time         `json:"completed_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// ConfirmReviewRequest confirms a manual_review result. With an InvoiceID the
// result is linked to an existing invoice; without one, an invoice is created
// from the extracted data.
type ConfirmReviewRequest struct {
	InvoiceID *uuid.UUID `json:"invoice_id"`
}

// ToDocumentResponse converts a domain upload to its response DTO
func ToDocumentResponse(d *ocr.DocumentUpload) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		TenantID:    d.TenantID,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		Size:        d.Size,
		Status:      string(d.Status),
		ProcessedAt: d.ProcessedAt,
		CreatedAt:   d.CreatedAt,
	}
}

// ToResultResponse converts a domain result to its response DTO
func ToResultResponse(r *ocr.OCRResult) ResultResponse {
	return ResultResponse{
		ID:                 r.ID,
		DocumentID:         r.DocumentID,
		Status:             string(r.Status),
		Confidence:         r.Confidence,
		Extracted:          r.Extracted,
		InvoiceID:          r.InvoiceID,
		AutoCreatedInvoice: r.AutoCreatedInvoice,
		FailureReason:      r.FailureReason,
		CompletedAt:        r.CompletedAt,
		CreatedAt:          r.CreatedAt,
	}
}
