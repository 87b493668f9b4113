package persistence

import (
	"context"
	"errors"

	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/faktulove/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOCRResultRepository implements ResultRepository using GORM
type GormOCRResultRepository struct {
	db *gorm.DB
}

// NewGormOCRResultRepository creates a new GormOCRResultRepository
func NewGormOCRResultRepository(db *gorm.DB) *GormOCRResultRepository {
	return &GormOCRResultRepository{db: db}
}

// FindByID finds a recognition result by its ID
func (r *GormOCRResultRepository) FindByID(ctx context.Context, id uuid.UUID) (*ocr.OCRResult, error) {
	var model models.OCRResultModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a recognition result by ID within a tenant
func (r *GormOCRResultRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ocr.OCRResult, error) {
	var model models.OCRResultModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDocument finds the recognition result for an uploaded document
func (r *GormOCRResultRepository) FindByDocument(ctx context.Context, tenantID, documentID uuid.UUID) (*ocr.OCRResult, error) {
	var model models.OCRResultModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND document_id = ?", tenantID, documentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoice finds the recognition result linked to an invoice
func (r *GormOCRResultRepository) FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (*ocr.OCRResult, error) {
	var model models.OCRResultModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND invoice_id = ?", tenantID, invoiceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPendingReview finds results waiting for human confirmation
func (r *GormOCRResultRepository) FindPendingReview(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ocr.OCRResult, error) {
	var resultModels []models.OCRResultModel
	query := r.db.WithContext(ctx).Model(&models.OCRResultModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, ocr.ResultManualReview)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := filter.Offset()
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, OCRResultSortFields)
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&resultModels).Error; err != nil {
		return nil, err
	}

	results := make([]ocr.OCRResult, len(resultModels))
	for i, model := range resultModels {
		results[i] = *model.ToDomain()
	}
	return results, nil
}

// Save creates or updates a recognition result
func (r *GormOCRResultRepository) Save(ctx context.Context, result *ocr.OCRResult) error {
	var model models.OCRResultModel
	model.FromDomain(result)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormOCRResultRepository implements ResultRepository
var _ ocr.ResultRepository = (*GormOCRResultRepository)(nil)
