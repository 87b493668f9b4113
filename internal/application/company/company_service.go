package company

import (
	"context"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/compliance"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyService handles tenant company profile operations
type CompanyService struct {
	companyRepo    company.CompanyRepository
	eventPublisher shared.EventPublisher
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo company.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CompanyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates the company profile for a tenant. Each tenant owns at most one.
func (s *CompanyService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCompanyRequest) (*CompanyResponse, error) {
	if existing, err := s.companyRepo.FindByTenant(ctx, tenantID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant already has a company profile")
	}

	nip := compliance.NormalizeNIP(req.NIP)
	exists, err := s.companyRepo.ExistsByNIP(ctx, nip)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A company with this NIP is already registered")
	}

	c, err := company.NewCompany(tenantID, req.Name, req.NIP)
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, c)

	resp := ToCompanyResponse(c)
	return &resp, nil
}

// Get retrieves the tenant's company profile
func (s *CompanyService) Get(ctx context.Context, tenantID uuid.UUID) (*CompanyResponse, error) {
	c, err := s.companyRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(c)
	return &resp, nil
}

// Update updates the tenant's company details
func (s *CompanyService) Update(ctx context.Context, tenantID uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	c, err := s.companyRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateDetails(req.Name, req.REGON, req.Street, req.City, req.PostalCode, req.Email, req.Phone); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, c)

	resp := ToCompanyResponse(c)
	return &resp, nil
}

// SetBankAccount sets the bank details printed on invoices
func (s *CompanyService) SetBankAccount(ctx context.Context, tenantID uuid.UUID, req SetBankAccountRequest) (*CompanyResponse, error) {
	c, err := s.companyRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := c.SetBankAccount(req.BankName, req.BankAccount); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCompanyResponse(c)
	return &resp, nil
}

func (s *CompanyService) publishEvents(ctx context.Context, c *company.Company) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range c.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	c.ClearDomainEvents()
}
