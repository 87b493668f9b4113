package persistence

import (
	"context"
	"errors"

	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/faktulove/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContractorRepository implements ContractorRepository using GORM
type GormContractorRepository struct {
	db *gorm.DB
}

// NewGormContractorRepository creates a new GormContractorRepository
func NewGormContractorRepository(db *gorm.DB) *GormContractorRepository {
	return &GormContractorRepository{db: db}
}

// FindByID finds a contractor by its ID
func (r *GormContractorRepository) FindByID(ctx context.Context, id uuid.UUID) (*contractor.Contractor, error) {
	var model models.ContractorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a contractor by ID within a tenant
func (r *GormContractorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*contractor.Contractor, error) {
	var model models.ContractorModel
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

// FindByNIP finds a contractor by NIP within a tenant
func (r *GormContractorRepository) FindByNIP(ctx context.Context, tenantID uuid.UUID, nip string) (*contractor.Contractor, error) {
	var model models.ContractorModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND nip = ?", tenantID, nip).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompany finds contractors linked to a tenant company profile
func (r *GormContractorRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]contractor.Contractor, error) {
	var contractorModels []models.ContractorModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Find(&contractorModels).Error; err != nil {
		return nil, err
	}

	contractors := make([]contractor.Contractor, len(contractorModels))
	for i, model := range contractorModels {
		contractors[i] = *model.ToDomain()
	}
	return contractors, nil
}

// FindAllForTenant finds all contractors for a tenant
func (r *GormContractorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]contractor.Contractor, error) {
	var contractorModels []models.ContractorModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ContractorModel{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&contractorModels).Error; err != nil {
		return nil, err
	}

	contractors := make([]contractor.Contractor, len(contractorModels))
	for i, model := range contractorModels {
		contractors[i] = *model.ToDomain()
	}
	return contractors, nil
}

// Save creates or updates a contractor
func (r *GormContractorRepository) Save(ctx context.Context, c *contractor.Contractor) error {
	var model models.ContractorModel
	model.FromDomain(c)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForTenant deletes a contractor within a tenant
func (r *GormContractorRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContractorModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts contractors for a tenant
func (r *GormContractorRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.ContractorModel{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNIP checks if a contractor with the given NIP exists in the tenant
func (r *GormContractorRepository) ExistsByNIP(ctx context.Context, tenantID uuid.UUID, nip string) (bool, error) {
	if nip == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ContractorModel{}).
		Where("tenant_id = ? AND nip = ?", tenantID, nip).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormContractorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := filter.Offset()
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ContractorSortFields)
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormContractorRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR nip LIKE ? OR email ILIKE ? OR city ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		case "anonymized":
			query = query.Where("anonymized = ?", value)
		case "linked":
			if value == true {
				query = query.Where("company_id IS NOT NULL")
			} else {
				query = query.Where("company_id IS NULL")
			}
		}
	}

	return query
}

// Ensure GormContractorRepository implements ContractorRepository
var _ contractor.ContractorRepository = (*GormContractorRepository)(nil)
