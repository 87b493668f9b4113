package ocr

import (
	"context"

	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentRepository defines the persistence contract for uploads
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DocumentUpload, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*DocumentUpload, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]DocumentUpload, error)
	Save(ctx context.Context, doc *DocumentUpload) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// ResultRepository defines the persistence contract for recognition results
type ResultRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OCRResult, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*OCRResult, error)
	FindByDocument(ctx context.Context, tenantID, documentID uuid.UUID) (*OCRResult, error)
	FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (*OCRResult, error)
	FindPendingReview(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]OCRResult, error)
	Save(ctx context.Context, result *OCRResult) error
}
