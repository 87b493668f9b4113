package models

import (
	"encoding/json"
	"time"

	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/google/uuid"
)

// DocumentUploadModel is the GORM model for uploaded scan files
type DocumentUploadModel struct {
	TenantAggregateModel
	FileName    string     `gorm:"type:varchar(255);not null"`
	ContentType string     `gorm:"type:varchar(100);not null"`
	Size        int64      `gorm:"not null"`
	StorageKey  string     `gorm:"type:varchar(500);not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	UploadedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ProcessedAt *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (DocumentUploadModel) TableName() string {
	return "document_uploads"
}

// ToDomain converts the model to a domain document upload
func (m *DocumentUploadModel) ToDomain() *ocr.DocumentUpload {
	doc := &ocr.DocumentUpload{
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		StorageKey:  m.StorageKey,
		Status:      ocr.DocumentStatus(m.Status),
		UploadedBy:  m.UploadedBy,
		ProcessedAt: m.ProcessedAt,
	}
	m.PopulateTenantAggregateRoot(&doc.TenantAggregateRoot)
	return doc
}

// FromDomain populates the model from a domain document upload
func (m *DocumentUploadModel) FromDomain(doc *ocr.DocumentUpload) {
	m.FromDomainTenantAggregateRoot(doc.TenantAggregateRoot)
	m.FileName = doc.FileName
	m.ContentType = doc.ContentType
	m.Size = doc.Size
	m.StorageKey = doc.StorageKey
	m.Status = string(doc.Status)
	m.UploadedBy = doc.UploadedBy
	m.ProcessedAt = doc.ProcessedAt
}

// OCRResultModel is the GORM model for recognition results
type OCRResultModel struct {
	TenantAggregateModel
	DocumentID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_ocr_result_document"`
	Status             string     `gorm:"type:varchar(20);not null;index"`
	Confidence         float64    `gorm:"not null;default:0"`
	Extracted          string     `gorm:"type:jsonb"`
	InvoiceID          *uuid.UUID `gorm:"type:uuid;index"`
	AutoCreatedInvoice bool       `gorm:"not null;default:false"`
	FailureReason      string     `gorm:"type:text"`
	CompletedAt        *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (OCRResultModel) TableName() string {
	return "ocr_results"
}

// ToDomain converts the model to a domain recognition result
func (m *OCRResultModel) ToDomain() *ocr.OCRResult {
	result := &ocr.OCRResult{
		DocumentID:         m.DocumentID,
		Status:             ocr.ResultStatus(m.Status),
		Confidence:         m.Confidence,
		InvoiceID:          m.InvoiceID,
		AutoCreatedInvoice: m.AutoCreatedInvoice,
		FailureReason:      m.FailureReason,
		CompletedAt:        m.CompletedAt,
	}
	if m.Extracted != "" {
		var data ocr.ExtractedData
		if err := json.Unmarshal([]byte(m.Extracted), &data); err == nil {
			result.Extracted = &data
		}
	}
	m.PopulateTenantAggregateRoot(&result.TenantAggregateRoot)
	return result
}

// FromDomain populates the model from a domain recognition result
func (m *OCRResultModel) FromDomain(result *ocr.OCRResult) {
	m.FromDomainTenantAggregateRoot(result.TenantAggregateRoot)
	m.DocumentID = result.DocumentID
	m.Status = string(result.Status)
	m.Confidence = result.Confidence
	m.InvoiceID = result.InvoiceID
	m.AutoCreatedInvoice = result.AutoCreatedInvoice
	m.FailureReason = result.FailureReason
	m.CompletedAt = result.CompletedAt
	m.Extracted = ""
	if result.Extracted != nil {
		if raw, err := json.Marshal(result.Extracted); err == nil {
			m.Extracted = string(raw)
		}
	}
}
