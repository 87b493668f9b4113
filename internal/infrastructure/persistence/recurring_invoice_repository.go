package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/faktulove/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecurringInvoiceRepository implements RecurringInvoiceRepository using GORM
type GormRecurringInvoiceRepository struct {
	db *gorm.DB
}

// NewGormRecurringInvoiceRepository creates a new GormRecurringInvoiceRepository
func NewGormRecurringInvoiceRepository(db *gorm.DB) *GormRecurringInvoiceRepository {
	return &GormRecurringInvoiceRepository{db: db}
}

// FindByID finds a schedule by its ID
func (r *GormRecurringInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.RecurringInvoice, error) {
	var model models.RecurringInvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a schedule by ID within a tenant
func (r *GormRecurringInvoiceRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*invoicing.RecurringInvoice, error) {
	var model models.RecurringInvoiceModel
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

// FindAllForTenant finds all schedules for a tenant
func (r *GormRecurringInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*invoicing.RecurringInvoice, error) {
	var scheduleModels []models.RecurringInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&scheduleModels).Error; err != nil {
		return nil, err
	}

	schedules := make([]*invoicing.RecurringInvoice, len(scheduleModels))
	for i, model := range scheduleModels {
		schedules[i] = model.ToDomain()
	}
	return schedules, nil
}

// FindDue finds active schedules whose next generation time has passed,
// across all tenants. The scheduler drives this.
func (r *GormRecurringInvoiceRepository) FindDue(ctx context.Context, now time.Time) ([]*invoicing.RecurringInvoice, error) {
	var scheduleModels []models.RecurringInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("active = ? AND next_generation <= ?", true, now).
		Order("next_generation asc").
		Find(&scheduleModels).Error; err != nil {
		return nil, err
	}

	schedules := make([]*invoicing.RecurringInvoice, len(scheduleModels))
	for i, model := range scheduleModels {
		schedules[i] = model.ToDomain()
	}
	return schedules, nil
}

// Save creates or updates a schedule
func (r *GormRecurringInvoiceRepository) Save(ctx context.Context, schedule *invoicing.RecurringInvoice) error {
	var model models.RecurringInvoiceModel
	model.FromDomain(schedule)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a schedule within a tenant
func (r *GormRecurringInvoiceRepository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RecurringInvoiceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRecurringInvoiceRepository implements RecurringInvoiceRepository
var _ invoicing.RecurringInvoiceRepository = (*GormRecurringInvoiceRepository)(nil)
