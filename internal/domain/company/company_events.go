package company

import (
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypeCompany = "Company"

const (
	EventTypeCompanyCreated = "CompanyCreated"
	EventTypeCompanyUpdated = "CompanyUpdated"
)

// CompanyCreatedEvent is published when a tenant registers its company profile
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	NIP       string    `json:"nip"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(c *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, c.ID, c.TenantID),
		CompanyID:       c.ID,
		Name:            c.Name,
		NIP:             c.NIP,
	}
}

// CompanyUpdatedEvent is published when the company profile changes
type CompanyUpdatedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
}

// NewCompanyUpdatedEvent creates a new CompanyUpdatedEvent
func NewCompanyUpdatedEvent(c *Company) *CompanyUpdatedEvent {
	return &CompanyUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyUpdated, AggregateTypeCompany, c.ID, c.TenantID),
		CompanyID:       c.ID,
		Name:            c.Name,
	}
}
