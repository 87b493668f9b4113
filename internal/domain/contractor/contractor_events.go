package contractor

import (
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypeContractor = "Contractor"

const (
	EventTypeContractorCreated    = "ContractorCreated"
	EventTypeContractorUpdated    = "ContractorUpdated"
	EventTypeContractorAnonymized = "ContractorAnonymized"
)

// ContractorCreatedEvent is published when a contractor is added
type ContractorCreatedEvent struct {
	shared.BaseDomainEvent
	ContractorID uuid.UUID `json:"contractor_id"`
	Name         string    `json:"name"`
	NIP          string    `json:"nip"`
	Kind         Kind      `json:"kind"`
}

// NewContractorCreatedEvent creates a new ContractorCreatedEvent
func NewContractorCreatedEvent(c *Contractor) *ContractorCreatedEvent {
	return &ContractorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractorCreated, AggregateTypeContractor, c.ID, c.TenantID),
		ContractorID:    c.ID,
		Name:            c.Name,
		NIP:             c.NIP,
		Kind:            c.Kind,
	}
}

// ContractorUpdatedEvent is published when a contractor is updated
type ContractorUpdatedEvent struct {
	shared.BaseDomainEvent
	ContractorID uuid.UUID `json:"contractor_id"`
	Name         string    `json:"name"`
}

// NewContractorUpdatedEvent creates a new ContractorUpdatedEvent
func NewContractorUpdatedEvent(c *Contractor) *ContractorUpdatedEvent {
	return &ContractorUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractorUpdated, AggregateTypeContractor, c.ID, c.TenantID),
		ContractorID:    c.ID,
		Name:            c.Name,
	}
}

// ContractorAnonymizedEvent is published when a GDPR erasure scrubs a contractor
type ContractorAnonymizedEvent struct {
	shared.BaseDomainEvent
	ContractorID uuid.UUID `json:"contractor_id"`
}

// NewContractorAnonymizedEvent creates a new ContractorAnonymizedEvent
func NewContractorAnonymizedEvent(c *Contractor) *ContractorAnonymizedEvent {
	return &ContractorAnonymizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractorAnonymized, AggregateTypeContractor, c.ID, c.TenantID),
		ContractorID:    c.ID,
	}
}
