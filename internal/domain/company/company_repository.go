package company

import (
	"context"

	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID finds a company by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByTenant finds the company profile owned by a tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*Company, error)

	// FindByNIP finds a company by its NIP across all tenants.
	// Used by the auto-posting engine to resolve partner companies.
	FindByNIP(ctx context.Context, nip string) (*Company, error)

	// FindAll finds all companies matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)

	// Save creates or updates a company
	Save(ctx context.Context, c *Company) error

	// Delete deletes a company
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByNIP checks if a company with the given NIP is registered
	ExistsByNIP(ctx context.Context, nip string) (bool, error)
}
