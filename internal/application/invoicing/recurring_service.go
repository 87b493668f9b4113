package invoicing

import (
	"context"
	"time"

	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecurringService manages billing schedules and generates invoices from them
type RecurringService struct {
	recurringRepo  invoicing.RecurringInvoiceRepository
	invoiceRepo    invoicing.InvoiceRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(recurringRepo invoicing.RecurringInvoiceRepository, invoiceRepo invoicing.InvoiceRepository, logger *zap.Logger) *RecurringService {
	return &RecurringService{
		recurringRepo: recurringRepo,
		invoiceRepo:   invoiceRepo,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *RecurringService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create schedules periodic generation from an existing invoice
func (s *RecurringService) Create(ctx context.Context, tenantID uuid.UUID, req CreateRecurringRequest) (*RecurringResponse, error) {
	original, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, req.OriginalInvoiceID)
	if err != nil {
		return nil, err
	}
	if original.Status == invoicing.StatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cancelled invoices cannot be recurring templates")
	}
	if len(original.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_INVOICE", "The template invoice has no line items")
	}

	schedule, err := invoicing.NewRecurringInvoice(tenantID, original.ID, invoicing.Frequency(req.Frequency), req.FirstGeneration)
	if err != nil {
		return nil, err
	}
	if req.EndDate != nil {
		if err := schedule.SetEndDate(*req.EndDate); err != nil {
			return nil, err
		}
	}
	if req.MaxCycles != nil {
		if err := schedule.SetMaxCycles(*req.MaxCycles); err != nil {
			return nil, err
		}
	}

	if err := s.recurringRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}

	resp := ToRecurringResponse(schedule)
	return &resp, nil
}

// List retrieves all schedules of a tenant
func (s *RecurringService) List(ctx context.Context, tenantID uuid.UUID) ([]RecurringResponse, error) {
	items, err := s.recurringRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]RecurringResponse, 0, len(items))
	for _, r := range items {
		responses = append(responses, ToRecurringResponse(r))
	}
	return responses, nil
}

// Deactivate stops a schedule
func (s *RecurringService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) (*RecurringResponse, error) {
	schedule, err := s.recurringRepo.FindByIDForTenant(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	schedule.Deactivate()
	if err := s.recurringRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}
	resp := ToRecurringResponse(schedule)
	return &resp, nil
}

// Delete removes a schedule; invoices already generated from it remain
func (s *RecurringService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.recurringRepo.FindByIDForTenant(ctx, id, tenantID); err != nil {
		return err
	}
	return s.recurringRepo.Delete(ctx, id, tenantID)
}

// GenerateDue generates invoices for all schedules whose time has come.
// The scheduler calls it periodically. Returns the number of invoices issued.
func (s *RecurringService) GenerateDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.recurringRepo.FindDue(ctx, now)
	if err != nil {
		return 0, err
	}

	generated := 0
	for _, schedule := range due {
		if !schedule.CanGenerate(now) {
			continue
		}
		if err := s.generateOne(ctx, schedule); err != nil {
			s.logger.Warn("recurring generation failed",
				zap.String("schedule_id", schedule.ID.String()),
				zap.String("original_invoice_id", schedule.OriginalInvoiceID.String()),
				zap.Error(err))
			continue
		}
		generated++
	}
	return generated, nil
}

// generateOne clones the template, issues the copy on the generation date
// with the template's payment-term offset preserved, and advances the
// schedule. The issued copy goes through the normal event path, so
// auto-posting applies to generated invoices too.
func (s *RecurringService) generateOne(ctx context.Context, schedule *invoicing.RecurringInvoice) error {
	original, err := s.invoiceRepo.FindByIDForTenant(ctx, schedule.TenantID, schedule.OriginalInvoiceID)
	if err != nil {
		// Template gone; stop the schedule instead of failing forever
		schedule.Deactivate()
		_ = s.recurringRepo.Save(ctx, schedule)
		return err
	}

	generationDate := schedule.NextGeneration
	inv, err := invoicing.NewInvoice(schedule.TenantID, original.SellerCompanyID, original.ContractorID, original.Type, generationDate)
	if err != nil {
		return err
	}
	inv.PaymentMethod = original.PaymentMethod
	inv.Currency = original.Currency
	if original.Notes != "" {
		inv.SetNotes(original.Notes)
	}
	for _, l := range original.Lines {
		if err := inv.AddLine(l.Copy()); err != nil {
			return err
		}
	}

	number, err := s.invoiceRepo.NextNumber(ctx, schedule.TenantID, inv.Type, generationDate)
	if err != nil {
		return err
	}
	dueDate := generationDate.AddDate(0, 0, original.PaymentTermDays())
	if err := inv.Issue(number, generationDate, dueDate); err != nil {
		return err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return err
	}

	schedule.RecordGeneration()
	if err := s.recurringRepo.Save(ctx, schedule); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		for _, event := range inv.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		inv.ClearDomainEvents()
	}

	s.logger.Info("generated recurring invoice",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number),
		zap.Time("generation_date", generationDate))
	return nil
}
