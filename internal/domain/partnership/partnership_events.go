package partnership

import (
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypePartnership = "Partnership"

const (
	EventTypePartnershipCreated            = "PartnershipCreated"
	EventTypePartnershipStatusChanged      = "PartnershipStatusChanged"
	EventTypePartnershipAutoPostingChanged = "PartnershipAutoPostingChanged"
)

// PartnershipCreatedEvent is published when two companies are linked.
// Partnerships span two tenants, so the event carries no tenant scoping.
type PartnershipCreatedEvent struct {
	shared.BaseDomainEvent
	PartnershipID uuid.UUID `json:"partnership_id"`
	Company1ID    uuid.UUID `json:"company1_id"`
	Company2ID    uuid.UUID `json:"company2_id"`
}

// NewPartnershipCreatedEvent creates a new PartnershipCreatedEvent
func NewPartnershipCreatedEvent(p *Partnership) *PartnershipCreatedEvent {
	return &PartnershipCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartnershipCreated, AggregateTypePartnership, p.ID, uuid.Nil),
		PartnershipID:   p.ID,
		Company1ID:      p.Company1ID,
		Company2ID:      p.Company2ID,
	}
}

// PartnershipStatusChangedEvent is published when a partnership is (de)activated
type PartnershipStatusChangedEvent struct {
	shared.BaseDomainEvent
	PartnershipID uuid.UUID `json:"partnership_id"`
	Active        bool      `json:"active"`
}

// NewPartnershipStatusChangedEvent creates a new PartnershipStatusChangedEvent
func NewPartnershipStatusChangedEvent(p *Partnership) *PartnershipStatusChangedEvent {
	return &PartnershipStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartnershipStatusChanged, AggregateTypePartnership, p.ID, uuid.Nil),
		PartnershipID:   p.ID,
		Active:          p.Active,
	}
}

// PartnershipAutoPostingChangedEvent is published when mirroring is toggled
type PartnershipAutoPostingChangedEvent struct {
	shared.BaseDomainEvent
	PartnershipID uuid.UUID `json:"partnership_id"`
	AutoPosting   bool      `json:"auto_posting"`
}

// NewPartnershipAutoPostingChangedEvent creates a new PartnershipAutoPostingChangedEvent
func NewPartnershipAutoPostingChangedEvent(p *Partnership) *PartnershipAutoPostingChangedEvent {
	return &PartnershipAutoPostingChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartnershipAutoPostingChanged, AggregateTypePartnership, p.ID, uuid.Nil),
		PartnershipID:   p.ID,
		AutoPosting:     p.AutoPosting,
	}
}
