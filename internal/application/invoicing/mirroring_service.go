package invoicing

import (
	"context"
	"errors"
	"time"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/partnership"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SkipReason explains why a source invoice was not mirrored
type SkipReason string

const (
	SkipAlreadyMirrored    SkipReason = "already_mirrored"
	SkipNoLinkedCompany    SkipReason = "no_linked_company"
	SkipNoPartnership      SkipReason = "no_partnership"
	SkipMirroringDisabled  SkipReason = "mirroring_disabled"
	SkipDuplicateDelivery  SkipReason = "duplicate_delivery"
	SkipNotIssued          SkipReason = "not_issued"
	SkipNotSales           SkipReason = "not_sales"
	SkipPartnerHasNoTenant SkipReason = "partner_has_no_tenant"
)

// MirrorOutcome reports the result of one mirroring attempt
type MirrorOutcome struct {
	Mirrored        bool
	SkipReason      SkipReason
	MirrorInvoiceID uuid.UUID
	TargetTenantID  uuid.UUID
}

// MirroringService is the auto-posting engine. When a sales invoice is issued
// between partnered companies with auto-posting enabled, it materializes the
// matching cost invoice in the partner's ledger.
//
// Two independent idempotency guards protect against double posting: a
// processed-key check on the source invoice ID catches redelivered events,
// and a source-invoice existence check in the target tenant catches
// everything else, including retries after a partial failure.
type MirroringService struct {
	invoiceRepo     invoicing.InvoiceRepository
	companyRepo     company.CompanyRepository
	contractorRepo  contractor.ContractorRepository
	partnershipRepo partnership.PartnershipRepository
	idempotency     shared.IdempotencyStore
	idempotencyTTL  time.Duration
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewMirroringService creates a new MirroringService
func NewMirroringService(
	invoiceRepo invoicing.InvoiceRepository,
	companyRepo company.CompanyRepository,
	contractorRepo contractor.ContractorRepository,
	partnershipRepo partnership.PartnershipRepository,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *MirroringService {
	return &MirroringService{
		invoiceRepo:     invoiceRepo,
		companyRepo:     companyRepo,
		contractorRepo:  contractorRepo,
		partnershipRepo: partnershipRepo,
		idempotency:     idempotency,
		idempotencyTTL:  shared.DefaultIdempotencyConfig().TTL,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *MirroringService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// MirrorInvoice mirrors one issued sales invoice into the partner tenant.
// Skips are not errors: an invoice to a contractor outside the platform, or
// between companies without an auto-posting partnership, simply stays single
// sided.
func (s *MirroringService) MirrorInvoice(ctx context.Context, sourceInvoiceID uuid.UUID) (*MirrorOutcome, error) {
	source, err := s.invoiceRepo.FindByID(ctx, sourceInvoiceID)
	if err != nil {
		return nil, err
	}

	if source.Type != invoicing.TypeSales {
		return &MirrorOutcome{SkipReason: SkipNotSales}, nil
	}
	if source.Status != invoicing.StatusIssued {
		return &MirrorOutcome{SkipReason: SkipNotIssued}, nil
	}
	if source.Mirrored {
		return &MirrorOutcome{SkipReason: SkipAlreadyMirrored}, nil
	}

	buyer, err := s.contractorRepo.FindByIDForTenant(ctx, source.TenantID, source.ContractorID)
	if err != nil {
		return nil, err
	}
	if buyer.CompanyID == nil {
		return &MirrorOutcome{SkipReason: SkipNoLinkedCompany}, nil
	}

	pair, err := s.partnershipRepo.FindBetween(ctx, source.SellerCompanyID, *buyer.CompanyID)
	if errors.Is(err, shared.ErrNotFound) {
		return &MirrorOutcome{SkipReason: SkipNoPartnership}, nil
	}
	if err != nil {
		return nil, err
	}
	if !pair.MirroringEnabled() {
		return &MirrorOutcome{SkipReason: SkipMirroringDisabled}, nil
	}

	targetCompany, err := s.companyRepo.FindByID(ctx, *buyer.CompanyID)
	if err != nil {
		return nil, err
	}
	if targetCompany.TenantID == uuid.Nil {
		return &MirrorOutcome{SkipReason: SkipPartnerHasNoTenant}, nil
	}

	// Guard one: redelivered events for the same source are dropped here
	if s.idempotency != nil {
		fresh, err := s.idempotency.MarkProcessed(ctx, mirrorKey(source.ID), s.idempotencyTTL)
		if err != nil {
			s.logger.Warn("idempotency store unavailable, relying on persistence guard",
				zap.Error(err))
		} else if !fresh {
			return &MirrorOutcome{SkipReason: SkipDuplicateDelivery}, nil
		}
	}

	// Guard two: a mirror already persisted in the target tenant wins
	exists, err := s.invoiceRepo.ExistsBySourceInvoice(ctx, targetCompany.TenantID, source.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return &MirrorOutcome{SkipReason: SkipAlreadyMirrored}, nil
	}

	sellerContractor, err := s.resolveSellerContractor(ctx, targetCompany.TenantID, source.SellerCompanyID)
	if err != nil {
		return nil, err
	}

	mirror, err := invoicing.NewMirroredCost(source, targetCompany.TenantID, targetCompany.ID, sellerContractor.ID)
	if err != nil {
		return nil, err
	}
	if err := source.MarkMirrored(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveMirror(ctx, mirror, source); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		for _, event := range mirror.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		mirror.ClearDomainEvents()
	}

	s.logger.Info("mirrored sales invoice into partner ledger",
		zap.String("number", source.Number),
		zap.String("source_invoice_id", source.ID.String()),
		zap.String("mirror_invoice_id", mirror.ID.String()),
		zap.String("target_tenant_id", targetCompany.TenantID.String()))

	return &MirrorOutcome{
		Mirrored:        true,
		MirrorInvoiceID: mirror.ID,
		TargetTenantID:  targetCompany.TenantID,
	}, nil
}

// SweepPartnerships walks every auto-posting partnership and mirrors issued
// sales invoices the event path missed, for example those issued while the
// partnership had auto-posting switched off and on again. Returns the number
// of invoices mirrored.
func (s *MirroringService) SweepPartnerships(ctx context.Context) (int, error) {
	pairs, err := s.partnershipRepo.FindActiveWithAutoPosting(ctx)
	if err != nil {
		return 0, err
	}

	mirrored := 0
	for i := range pairs {
		p := &pairs[i]
		for _, sellerCompanyID := range []uuid.UUID{p.Company1ID, p.Company2ID} {
			n, err := s.sweepDirection(ctx, sellerCompanyID, p.OtherCompany(sellerCompanyID))
			if err != nil {
				s.logger.Warn("partnership sweep direction failed",
					zap.String("partnership_id", p.ID.String()),
					zap.Error(err))
				continue
			}
			mirrored += n
		}
	}
	return mirrored, nil
}

// sweepDirection mirrors pending invoices issued by sellerCompany to buyerCompany
func (s *MirroringService) sweepDirection(ctx context.Context, sellerCompanyID, buyerCompanyID uuid.UUID) (int, error) {
	seller, err := s.companyRepo.FindByID(ctx, sellerCompanyID)
	if err != nil {
		return 0, err
	}

	// Contractors in the seller's address book that point at the buyer company
	linked, err := s.contractorRepo.FindByCompany(ctx, buyerCompanyID)
	if err != nil {
		return 0, err
	}

	mirrored := 0
	for i := range linked {
		if linked[i].TenantID != seller.TenantID {
			continue
		}
		pending, err := s.invoiceRepo.FindIssuedUnmirrored(ctx, seller.TenantID, linked[i].ID)
		if err != nil {
			return mirrored, err
		}
		for j := range pending {
			outcome, err := s.MirrorInvoice(ctx, pending[j].ID)
			if err != nil {
				s.logger.Warn("sweep failed to mirror invoice",
					zap.String("invoice_id", pending[j].ID.String()),
					zap.Error(err))
				continue
			}
			if outcome.Mirrored {
				mirrored++
			}
		}
	}
	return mirrored, nil
}

// resolveSellerContractor finds, or creates, the contractor record that
// represents the seller company inside the target tenant's address book.
func (s *MirroringService) resolveSellerContractor(ctx context.Context, targetTenantID, sellerCompanyID uuid.UUID) (*contractor.Contractor, error) {
	seller, err := s.companyRepo.FindByID(ctx, sellerCompanyID)
	if err != nil {
		return nil, err
	}

	existing, err := s.contractorRepo.FindByNIP(ctx, targetTenantID, seller.NIP)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.CompanyID == nil {
			existing.LinkCompany(seller.ID)
			if err := s.contractorRepo.Save(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	created, err := contractor.NewContractor(targetTenantID, seller.Name, seller.NIP, contractor.KindCompany)
	if err != nil {
		return nil, err
	}
	created.Street = seller.Street
	created.City = seller.City
	created.PostalCode = seller.PostalCode
	created.LinkCompany(seller.ID)
	if err := s.contractorRepo.Save(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

func mirrorKey(sourceInvoiceID uuid.UUID) string {
	return "mirror:" + sourceInvoiceID.String()
}
