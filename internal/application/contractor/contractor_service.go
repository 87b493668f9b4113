package contractor

import (
	"context"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/compliance"
	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContractorService handles address book operations
type ContractorService struct {
	contractorRepo contractor.ContractorRepository
	companyRepo    company.CompanyRepository
	eventPublisher shared.EventPublisher
}

// NewContractorService creates a new ContractorService
func NewContractorService(contractorRepo contractor.ContractorRepository, companyRepo company.CompanyRepository) *ContractorService {
	return &ContractorService{
		contractorRepo: contractorRepo,
		companyRepo:    companyRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ContractorService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create adds a counterparty to the tenant's address book. When the NIP
// belongs to a registered tenant company the contractor is linked to it,
// which makes the pair eligible for invoice mirroring.
func (s *ContractorService) Create(ctx context.Context, tenantID uuid.UUID, req CreateContractorRequest) (*ContractorResponse, error) {
	nip := compliance.NormalizeNIP(req.NIP)
	if nip != "" {
		exists, err := s.contractorRepo.ExistsByNIP(ctx, tenantID, nip)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A contractor with this NIP already exists")
		}
	}

	c, err := contractor.NewContractor(tenantID, req.Name, req.NIP, contractor.Kind(req.Kind))
	if err != nil {
		return nil, err
	}
	c.REGON = req.REGON
	if req.Street != "" || req.City != "" || req.Email != "" || req.Phone != "" || req.Notes != "" {
		if err := c.Update(req.Name, req.Street, req.City, req.PostalCode, req.Email, req.Phone, req.Notes); err != nil {
			return nil, err
		}
	}

	if c.NIP != "" {
		if registered, err := s.companyRepo.FindByNIP(ctx, c.NIP); err == nil && registered != nil {
			c.LinkCompany(registered.ID)
		}
	}

	if err := s.contractorRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, c)

	resp := ToContractorResponse(c)
	return &resp, nil
}

// GetByID retrieves a contractor by ID
func (s *ContractorService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ContractorResponse, error) {
	c, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToContractorResponse(c)
	return &resp, nil
}

// List retrieves contractors with pagination
func (s *ContractorService) List(ctx context.Context, tenantID uuid.UUID, filter ContractorListFilter) (*shared.Paginated[ContractorResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Kind != "" {
		f.Filters["kind"] = filter.Kind
	}

	items, err := s.contractorRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.contractorRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]ContractorResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToContractorResponse(&items[i]))
	}
	page := shared.NewPaginated(responses, total, f.Page, f.PageSize)
	return &page, nil
}

// Update updates a contractor's details
func (s *ContractorService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateContractorRequest) (*ContractorResponse, error) {
	c, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if c.Anonymized {
		return nil, shared.NewDomainError("ANONYMIZED", "Anonymized contractors cannot be edited")
	}
	if err := c.Update(req.Name, req.Street, req.City, req.PostalCode, req.Email, req.Phone, req.Notes); err != nil {
		return nil, err
	}
	if err := s.contractorRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, c)

	resp := ToContractorResponse(c)
	return &resp, nil
}

// Delete removes a contractor from the address book
func (s *ContractorService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.contractorRepo.DeleteForTenant(ctx, tenantID, id)
}

func (s *ContractorService) publishEvents(ctx context.Context, c *contractor.Contractor) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range c.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	c.ClearDomainEvents()
}
