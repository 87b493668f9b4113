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

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document upload by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ocr.DocumentUpload, error) {
	var model models.DocumentUploadModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a document upload by ID within a tenant
func (r *GormDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ocr.DocumentUpload, error) {
	var model models.DocumentUploadModel
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

// FindAllForTenant finds all document uploads for a tenant
func (r *GormDocumentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ocr.DocumentUpload, error) {
	var documentModels []models.DocumentUploadModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DocumentUploadModel{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]ocr.DocumentUpload, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// Save creates or updates a document upload
func (r *GormDocumentRepository) Save(ctx context.Context, doc *ocr.DocumentUpload) error {
	var model models.DocumentUploadModel
	model.FromDomain(doc)
	return r.db.WithContext(ctx).Save(&model).Error
}

// CountForTenant counts document uploads for a tenant
func (r *GormDocumentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DocumentUploadModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("file_name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "uploaded_by":
			query = query.Where("uploaded_by = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := filter.Offset()
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DocumentSortFields)
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ ocr.DocumentRepository = (*GormDocumentRepository)(nil)
