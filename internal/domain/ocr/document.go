package ocr

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentStatus is the upload-side processing state shown to users.
// Once a result exists its status is a projection of the result status,
// never written independently.
type DocumentStatus string

const (
	DocumentUploaded   DocumentStatus = "uploaded"
	DocumentQueued     DocumentStatus = "queued"
	DocumentProcessing DocumentStatus = "processing"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentFailed     DocumentStatus = "failed"
	DocumentCancelled  DocumentStatus = "cancelled"
)

// MaxDocumentSize is the upload size limit in bytes (10 MiB)
const MaxDocumentSize = 10 << 20

var allowedContentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// DocumentUpload is a scanned invoice file submitted for recognition
type DocumentUpload struct {
	shared.TenantAggregateRoot
	FileName    string
	ContentType string
	Size        int64
	StorageKey  string
	Status      DocumentStatus
	UploadedBy  uuid.UUID
	ProcessedAt *time.Time
}

// TableName returns the table name for GORM
func (DocumentUpload) TableName() string {
	return "document_uploads"
}

// NewDocumentUpload validates and registers an uploaded file
func NewDocumentUpload(tenantID, uploadedBy uuid.UUID, fileName, contentType string, size int64) (*DocumentUpload, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "File name is required")
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "File is empty")
	}
	if size > MaxDocumentSize {
		return nil, shared.NewDomainError("DOCUMENT_TOO_LARGE", "File exceeds the 10 MB limit")
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_TYPE", "Only PDF, JPEG and PNG documents are accepted")
	}

	doc := &DocumentUpload{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FileName:            fileName,
		ContentType:         contentType,
		Size:                size,
		Status:              DocumentUploaded,
		UploadedBy:          uploadedBy,
	}
	doc.StorageKey = buildStorageKey(tenantID, doc.ID, fileName)
	doc.AddDomainEvent(NewDocumentUploadedEvent(doc))
	return doc, nil
}

// Cancel aborts processing of a document that has not finished
func (d *DocumentUpload) Cancel() error {
	switch d.Status {
	case DocumentCompleted, DocumentFailed, DocumentCancelled:
		return shared.NewDomainError("INVALID_STATE", "Finished documents cannot be cancelled")
	}
	d.Status = DocumentCancelled
	d.Touch()
	d.IncrementVersion()
	return nil
}

// ApplyResultStatus projects the recognition result status onto the upload.
// This is the only path that moves an upload past "uploaded".
func (d *DocumentUpload) ApplyResultStatus(rs ResultStatus, at time.Time) {
	if d.Status == DocumentCancelled {
		return
	}
	mapped := DocumentStatusFor(rs)
	if mapped == d.Status {
		return
	}
	d.Status = mapped
	if mapped == DocumentCompleted || mapped == DocumentFailed {
		d.ProcessedAt = &at
	}
	d.Touch()
	d.IncrementVersion()
}

// DocumentStatusFor maps a recognition result status to the upload status
func DocumentStatusFor(rs ResultStatus) DocumentStatus {
	switch rs {
	case ResultPending:
		return DocumentQueued
	case ResultProcessing:
		return DocumentProcessing
	case ResultCompleted, ResultManualReview:
		return DocumentCompleted
	case ResultFailed:
		return DocumentFailed
	default:
		return DocumentQueued
	}
}

func buildStorageKey(tenantID, docID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return "ocr/" + tenantID.String() + "/" + docID.String() + ext
}
