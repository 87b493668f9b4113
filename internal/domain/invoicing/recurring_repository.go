package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecurringInvoiceRepository defines the persistence contract for billing schedules
type RecurringInvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RecurringInvoice, error)
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*RecurringInvoice, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*RecurringInvoice, error)
	FindDue(ctx context.Context, now time.Time) ([]*RecurringInvoice, error)
	Save(ctx context.Context, schedule *RecurringInvoice) error
	Delete(ctx context.Context, id, tenantID uuid.UUID) error
}
