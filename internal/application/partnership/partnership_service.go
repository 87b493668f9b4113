package partnership

import (
	"context"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/compliance"
	"github.com/faktulove/backend/internal/domain/partnership"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnershipService manages company-to-company links for invoice mirroring
type PartnershipService struct {
	partnershipRepo partnership.PartnershipRepository
	companyRepo     company.CompanyRepository
	eventPublisher  shared.EventPublisher
}

// NewPartnershipService creates a new PartnershipService
func NewPartnershipService(partnershipRepo partnership.PartnershipRepository, companyRepo company.CompanyRepository) *PartnershipService {
	return &PartnershipService{
		partnershipRepo: partnershipRepo,
		companyRepo:     companyRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PartnershipService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create links the tenant's company with a partner found by NIP. The pair is
// stored in normalized order, so creating it from either side yields the same
// record and a duplicate attempt fails the existence check.
func (s *PartnershipService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePartnershipRequest) (*PartnershipResponse, error) {
	own, err := s.companyRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	partnerNIP := compliance.NormalizeNIP(req.PartnerNIP)
	partner, err := s.companyRepo.FindByNIP(ctx, partnerNIP)
	if err != nil {
		return nil, shared.NewDomainError("PARTNER_NOT_FOUND", "No registered company with this NIP")
	}
	if partner.ID == own.ID {
		return nil, shared.NewDomainError("SELF_PARTNERSHIP", "A company cannot partner with itself")
	}

	exists, err := s.partnershipRepo.ExistsBetween(ctx, own.ID, partner.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "These companies are already partnered")
	}

	p, err := partnership.NewPartnership(own.ID, partner.ID)
	if err != nil {
		return nil, err
	}
	p.Notes = req.Notes

	if err := s.partnershipRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, p)

	resp := ToPartnershipResponse(p)
	return &resp, nil
}

// List retrieves all partnerships of the tenant's company
func (s *PartnershipService) List(ctx context.Context, tenantID uuid.UUID) ([]PartnershipResponse, error) {
	own, err := s.companyRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items, err := s.partnershipRepo.FindForCompany(ctx, own.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]PartnershipResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToPartnershipResponse(&items[i]))
	}
	return responses, nil
}

// SetActive activates or deactivates a partnership
func (s *PartnershipService) SetActive(ctx context.Context, tenantID, id uuid.UUID, active bool) (*PartnershipResponse, error) {
	p, err := s.authorized(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if active {
		err = p.Activate()
	} else {
		err = p.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.partnershipRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, p)

	resp := ToPartnershipResponse(p)
	return &resp, nil
}

// SetAutoPosting toggles invoice mirroring for the pair
func (s *PartnershipService) SetAutoPosting(ctx context.Context, tenantID, id uuid.UUID, enabled bool) (*PartnershipResponse, error) {
	p, err := s.authorized(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if enabled {
		err = p.EnableAutoPosting()
	} else {
		err = p.DisableAutoPosting()
	}
	if err != nil {
		return nil, err
	}

	if err := s.partnershipRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, p)

	resp := ToPartnershipResponse(p)
	return &resp, nil
}

// Delete removes a partnership
func (s *PartnershipService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	p, err := s.authorized(ctx, tenantID, id)
	if err != nil {
		return err
	}
	return s.partnershipRepo.Delete(ctx, p.ID)
}

// authorized loads a partnership and verifies the tenant's company is a member
func (s *PartnershipService) authorized(ctx context.Context, tenantID, id uuid.UUID) (*partnership.Partnership, error) {
	own, err := s.companyRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	p, err := s.partnershipRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Involves(own.ID) {
		return nil, shared.ErrForbidden
	}
	return p, nil
}

func (s *PartnershipService) publishEvents(ctx context.Context, p *partnership.Partnership) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range p.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	p.ClearDomainEvents()
}
