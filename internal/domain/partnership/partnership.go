package partnership

import (
	"bytes"

	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Partnership links two tenant companies so that invoices issued between them
// can be mirrored automatically. The pair is unordered: a partnership between
// A and B is the same record as one between B and A.
//
// The pair is normalized at construction (smaller company UUID first) and the
// persistence layer backs it with a composite unique index, so a duplicate
// pair cannot be created even by concurrent writers.
type Partnership struct {
	shared.BaseAggregateRoot
	// Company1ID and Company2ID hold the normalized pair; Company1ID is
	// always the byte-wise smaller UUID.
	Company1ID uuid.UUID
	Company2ID uuid.UUID
	Active     bool
	// AutoPosting enables the mirroring engine for invoices between the pair
	AutoPosting bool
	Notes       string
}

// TableName returns the table name for GORM
func (Partnership) TableName() string {
	return "partnerships"
}

// NewPartnership creates a partnership between two distinct companies
func NewPartnership(companyA, companyB uuid.UUID) (*Partnership, error) {
	if companyA == companyB {
		return nil, shared.NewDomainError("SELF_PARTNERSHIP", "A company cannot partner with itself")
	}
	if companyA == uuid.Nil || companyB == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Both companies are required")
	}

	first, second := NormalizePair(companyA, companyB)
	p := &Partnership{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Company1ID:        first,
		Company2ID:        second,
		Active:            true,
		AutoPosting:       false,
	}
	p.AddDomainEvent(NewPartnershipCreatedEvent(p))
	return p, nil
}

// NormalizePair orders two company IDs into their canonical storage order
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

// Involves reports whether the company is one of the two partners
func (p *Partnership) Involves(companyID uuid.UUID) bool {
	return p.Company1ID == companyID || p.Company2ID == companyID
}

// OtherCompany returns the partner of the given company.
// Returns uuid.Nil when the company is not part of the partnership.
func (p *Partnership) OtherCompany(companyID uuid.UUID) uuid.UUID {
	switch companyID {
	case p.Company1ID:
		return p.Company2ID
	case p.Company2ID:
		return p.Company1ID
	default:
		return uuid.Nil
	}
}

// MirroringEnabled reports whether invoices between the pair should be mirrored
func (p *Partnership) MirroringEnabled() bool {
	return p.Active && p.AutoPosting
}

// Activate re-enables an inactive partnership
func (p *Partnership) Activate() error {
	if p.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Partnership is already active")
	}
	p.Active = true
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewPartnershipStatusChangedEvent(p))
	return nil
}

// Deactivate suspends the partnership; mirroring stops immediately
func (p *Partnership) Deactivate() error {
	if !p.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Partnership is already inactive")
	}
	p.Active = false
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewPartnershipStatusChangedEvent(p))
	return nil
}

// EnableAutoPosting turns on invoice mirroring for the pair
func (p *Partnership) EnableAutoPosting() error {
	if !p.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot enable auto-posting on an inactive partnership")
	}
	if p.AutoPosting {
		return shared.NewDomainError("ALREADY_ENABLED", "Auto-posting is already enabled")
	}
	p.AutoPosting = true
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewPartnershipAutoPostingChangedEvent(p))
	return nil
}

// DisableAutoPosting turns off invoice mirroring for the pair
func (p *Partnership) DisableAutoPosting() error {
	if !p.AutoPosting {
		return shared.NewDomainError("ALREADY_DISABLED", "Auto-posting is already disabled")
	}
	p.AutoPosting = false
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewPartnershipAutoPostingChangedEvent(p))
	return nil
}
