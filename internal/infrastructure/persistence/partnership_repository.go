package persistence

import (
	"context"
	"errors"

	"github.com/faktulove/backend/internal/domain/partnership"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/faktulove/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartnershipRepository implements PartnershipRepository using GORM
type GormPartnershipRepository struct {
	db *gorm.DB
}

// NewGormPartnershipRepository creates a new GormPartnershipRepository
func NewGormPartnershipRepository(db *gorm.DB) *GormPartnershipRepository {
	return &GormPartnershipRepository{db: db}
}

// FindByID finds a partnership by its ID
func (r *GormPartnershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*partnership.Partnership, error) {
	var model models.PartnershipModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBetween finds the partnership for an unordered company pair.
// Rows are stored with the pair normalized, so a single lookup suffices.
func (r *GormPartnershipRepository) FindBetween(ctx context.Context, companyA, companyB uuid.UUID) (*partnership.Partnership, error) {
	first, second := partnership.NormalizePair(companyA, companyB)

	var model models.PartnershipModel
	if err := r.db.WithContext(ctx).
		Where("company1_id = ? AND company2_id = ?", first, second).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForCompany finds all partnerships a company participates in
func (r *GormPartnershipRepository) FindForCompany(ctx context.Context, companyID uuid.UUID) ([]partnership.Partnership, error) {
	var partnershipModels []models.PartnershipModel
	if err := r.db.WithContext(ctx).
		Where("company1_id = ? OR company2_id = ?", companyID, companyID).
		Order("created_at desc").
		Find(&partnershipModels).Error; err != nil {
		return nil, err
	}

	partnerships := make([]partnership.Partnership, len(partnershipModels))
	for i, model := range partnershipModels {
		partnerships[i] = *model.ToDomain()
	}
	return partnerships, nil
}

// FindActiveWithAutoPosting finds all partnerships eligible for mirroring
func (r *GormPartnershipRepository) FindActiveWithAutoPosting(ctx context.Context) ([]partnership.Partnership, error) {
	var partnershipModels []models.PartnershipModel
	if err := r.db.WithContext(ctx).
		Where("active = ? AND auto_posting = ?", true, true).
		Order("created_at asc").
		Find(&partnershipModels).Error; err != nil {
		return nil, err
	}

	partnerships := make([]partnership.Partnership, len(partnershipModels))
	for i, model := range partnershipModels {
		partnerships[i] = *model.ToDomain()
	}
	return partnerships, nil
}

// Save creates or updates a partnership
func (r *GormPartnershipRepository) Save(ctx context.Context, p *partnership.Partnership) error {
	var model models.PartnershipModel
	model.FromDomain(p)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a partnership
func (r *GormPartnershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PartnershipModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsBetween checks if a partnership exists for the unordered pair
func (r *GormPartnershipRepository) ExistsBetween(ctx context.Context, companyA, companyB uuid.UUID) (bool, error) {
	first, second := partnership.NormalizePair(companyA, companyB)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PartnershipModel{}).
		Where("company1_id = ? AND company2_id = ?", first, second).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormPartnershipRepository implements PartnershipRepository
var _ partnership.PartnershipRepository = (*GormPartnershipRepository)(nil)
