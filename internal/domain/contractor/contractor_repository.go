package contractor

import (
	"context"

	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContractorRepository defines the interface for contractor persistence
type ContractorRepository interface {
	// FindByID finds a contractor by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contractor, error)

	// FindByIDForTenant finds a contractor by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Contractor, error)

	// FindByNIP finds a contractor by NIP within a tenant
	FindByNIP(ctx context.Context, tenantID uuid.UUID, nip string) (*Contractor, error)

	// FindByCompany finds contractors linked to a tenant company profile
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]Contractor, error)

	// FindAllForTenant finds all contractors for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Contractor, error)

	// Save creates or updates a contractor
	Save(ctx context.Context, c *Contractor) error

	// DeleteForTenant deletes a contractor within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts contractors for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNIP checks if a contractor with the given NIP exists in the tenant
	ExistsByNIP(ctx context.Context, tenantID uuid.UUID, nip string) (bool, error)
}
