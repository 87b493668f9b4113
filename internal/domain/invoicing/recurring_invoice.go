package invoicing

import (
	"time"

	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Frequency is the recurrence interval of a billing schedule
type Frequency string

const (
	FrequencyDaily        Frequency = "daily"
	FrequencyWeekly       Frequency = "weekly"
	FrequencyBiweekly     Frequency = "biweekly"
	FrequencyMonthly      Frequency = "monthly"
	FrequencyBimonthly    Frequency = "bimonthly"
	FrequencyQuarterly    Frequency = "quarterly"
	FrequencySemiannually Frequency = "semiannually"
	FrequencyYearly       Frequency = "yearly"
)

// RecurringInvoice is a schedule that periodically clones an original invoice.
// Generation is driven by the scheduler sweep; each cycle copies the original's
// lines, preserves its payment-term offset and re-enters the normal issue path,
// so mirroring applies to generated invoices exactly as to hand-written ones.
type RecurringInvoice struct {
	shared.TenantAggregateRoot
	OriginalInvoiceID uuid.UUID
	Frequency         Frequency
	NextGeneration    time.Time
	EndDate           *time.Time
	MaxCycles         *int
	GeneratedCount    int
	Active            bool
}

// TableName returns the table name for GORM
func (RecurringInvoice) TableName() string {
	return "recurring_invoices"
}

// NewRecurringInvoice creates an active schedule for an original invoice
func NewRecurringInvoice(tenantID, originalInvoiceID uuid.UUID, freq Frequency, firstGeneration time.Time) (*RecurringInvoice, error) {
	if originalInvoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORIGINAL", "Original invoice is required")
	}
	if err := validateFrequency(freq); err != nil {
		return nil, err
	}
	if firstGeneration.IsZero() {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "First generation date is required")
	}

	return &RecurringInvoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OriginalInvoiceID:   originalInvoiceID,
		Frequency:           freq,
		NextGeneration:      firstGeneration,
		Active:              true,
	}, nil
}

// SetEndDate caps the schedule at a calendar date
func (r *RecurringInvoice) SetEndDate(end time.Time) error {
	if end.Before(r.NextGeneration) {
		return shared.NewDomainError("INVALID_SCHEDULE", "End date precedes the next generation date")
	}
	r.EndDate = &end
	r.Touch()
	r.IncrementVersion()
	return nil
}

// SetMaxCycles caps the schedule at a number of generated invoices
func (r *RecurringInvoice) SetMaxCycles(max int) error {
	if max <= 0 {
		return shared.NewDomainError("INVALID_SCHEDULE", "Max cycles must be positive")
	}
	r.MaxCycles = &max
	r.Touch()
	r.IncrementVersion()
	return nil
}

// CanGenerate reports whether a new invoice is due: the schedule is active,
// the generation date has been reached, and neither cap is exhausted.
func (r *RecurringInvoice) CanGenerate(now time.Time) bool {
	if !r.Active {
		return false
	}
	if now.Before(r.NextGeneration) {
		return false
	}
	if r.EndDate != nil && now.After(*r.EndDate) {
		return false
	}
	if r.MaxCycles != nil && r.GeneratedCount >= *r.MaxCycles {
		return false
	}
	return true
}

// NextDate computes the generation date following the given one
func (r *RecurringInvoice) NextDate(from time.Time) time.Time {
	switch r.Frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return from.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case FrequencyBimonthly:
		return from.AddDate(0, 2, 0)
	case FrequencyQuarterly:
		return from.AddDate(0, 3, 0)
	case FrequencySemiannually:
		return from.AddDate(0, 6, 0)
	case FrequencyYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// RecordGeneration advances the schedule after a successful generation and
// deactivates it once an end condition is met.
func (r *RecurringInvoice) RecordGeneration() {
	r.GeneratedCount++
	r.NextGeneration = r.NextDate(r.NextGeneration)
	r.Touch()
	r.IncrementVersion()

	if r.MaxCycles != nil && r.GeneratedCount >= *r.MaxCycles {
		r.Active = false
	}
	if r.EndDate != nil && r.NextGeneration.After(*r.EndDate) {
		r.Active = false
	}
}

// Deactivate stops the schedule
func (r *RecurringInvoice) Deactivate() {
	r.Active = false
	r.Touch()
	r.IncrementVersion()
}

func validateFrequency(f Frequency) error {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly,
		FrequencyBimonthly, FrequencyQuarterly, FrequencySemiannually, FrequencyYearly:
		return nil
	default:
		return shared.NewDomainError("INVALID_FREQUENCY", "Unknown billing frequency")
	}
}
