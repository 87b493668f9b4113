package partnership

import (
	"context"

	"github.com/google/uuid"
)

// PartnershipRepository defines the interface for partnership persistence
type PartnershipRepository interface {
	// FindByID finds a partnership by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Partnership, error)

	// FindBetween finds the partnership for an unordered company pair
	FindBetween(ctx context.Context, companyA, companyB uuid.UUID) (*Partnership, error)

	// FindForCompany finds all partnerships a company participates in
	FindForCompany(ctx context.Context, companyID uuid.UUID) ([]Partnership, error)

	// FindActiveWithAutoPosting finds all partnerships eligible for mirroring
	FindActiveWithAutoPosting(ctx context.Context) ([]Partnership, error)

	// Save creates or updates a partnership
	Save(ctx context.Context, p *Partnership) error

	// Delete deletes a partnership
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsBetween checks if a partnership exists for the unordered pair
	ExistsBetween(ctx context.Context, companyA, companyB uuid.UUID) (bool, error)
}
