package export

import (
	"context"
	"time"

	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/identity"
	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PersonalDataExport is the subject-access bundle for one contractor
type PersonalDataExport struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Contractor  ContractorPersonalData `json:"contractor"`
	Invoices    []InvoiceReference     `json:"invoices"`
}

// ContractorPersonalData holds the personal fields stored for a contractor
type ContractorPersonalData struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	NIP        string    `json:"nip,omitempty"`
	Street     string    `json:"street,omitempty"`
	City       string    `json:"city,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// InvoiceReference lists an invoice the data subject appears on
type InvoiceReference struct {
	ID         uuid.UUID `json:"id"`
	Number     string    `json:"number"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	IssueDate  string    `json:"issue_date,omitempty"`
	TotalGross string    `json:"total_gross"`
	Currency   string    `json:"currency"`
}

// GDPRService handles subject-access exports and erasure requests.
// Erasure scrubs personal fields in place instead of deleting rows, so
// historical invoices keep resolving.
type GDPRService struct {
	contractorRepo contractor.ContractorRepository
	invoiceRepo    invoicing.InvoiceRepository
	userRepo       identity.UserRepository
	logger         *zap.Logger
}

// NewGDPRService creates a new GDPRService
func NewGDPRService(
	contractorRepo contractor.ContractorRepository,
	invoiceRepo invoicing.InvoiceRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *GDPRService {
	return &GDPRService{
		contractorRepo: contractorRepo,
		invoiceRepo:    invoiceRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// ExportContractorData collects everything stored about a contractor
func (s *GDPRService) ExportContractorData(ctx context.Context, tenantID, contractorID uuid.UUID) (*PersonalDataExport, error) {
	c, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, contractorID)
	if err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	filter.PageSize = backupPageSize
	filter.Filters["contractor_id"] = contractorID
	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	refs := make([]InvoiceReference, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		ref := InvoiceReference{
			ID:         inv.ID,
			Number:     inv.Number,
			Type:       string(inv.Type),
			Status:     string(inv.Status),
			TotalGross: inv.TotalGross.StringFixed(2),
			Currency:   inv.Currency,
		}
		if !inv.IssueDate.IsZero() {
			ref.IssueDate = inv.IssueDate.Format(dateLayout)
		}
		refs = append(refs, ref)
	}

	return &PersonalDataExport{
		GeneratedAt: time.Now().UTC(),
		Contractor: ContractorPersonalData{
			ID:         c.ID,
			Name:       c.Name,
			NIP:        c.NIP,
			Street:     c.Street,
			City:       c.City,
			PostalCode: c.PostalCode,
			Email:      c.Email,
			Phone:      c.Phone,
			Notes:      c.Notes,
			CreatedAt:  c.CreatedAt,
		},
		Invoices: refs,
	}, nil
}

// AnonymizeContractor scrubs a contractor's personal data in place.
// Contractors linked to a partner tenant are company profiles, not data
// subjects, and cannot be anonymized.
func (s *GDPRService) AnonymizeContractor(ctx context.Context, tenantID, contractorID uuid.UUID) error {
	c, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, contractorID)
	if err != nil {
		return err
	}
	if c.Anonymized {
		return shared.NewDomainError("ALREADY_ANONYMIZED", "Contractor data has already been erased")
	}
	if c.IsLinked() {
		return shared.NewDomainError("CONTRACTOR_LINKED", "Contractors linked to a partner company cannot be anonymized")
	}

	c.Anonymize()
	if err := s.contractorRepo.Save(ctx, c); err != nil {
		return err
	}
	s.logger.Info("contractor anonymized",
		zap.String("tenant_id", tenantID.String()),
		zap.String("contractor_id", contractorID.String()))
	return nil
}

// AnonymizeUser scrubs and deactivates a tenant user account
func (s *GDPRService) AnonymizeUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.TenantID != tenantID {
		return shared.ErrForbidden
	}

	u.Anonymize()
	if err := s.userRepo.Save(ctx, u); err != nil {
		return err
	}
	s.logger.Info("user anonymized",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", userID.String()))
	return nil
}
