package invoicing

import (
	"context"
	"time"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceService handles invoice lifecycle operations
type InvoiceService struct {
	invoiceRepo    invoicing.InvoiceRepository
	companyRepo    company.CompanyRepository
	contractorRepo contractor.ContractorRepository
	eventPublisher shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo invoicing.InvoiceRepository, companyRepo company.CompanyRepository, contractorRepo contractor.ContractorRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:    invoiceRepo,
		companyRepo:    companyRepo,
		contractorRepo: contractorRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a draft invoice with its line items
func (s *InvoiceService) Create(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	own, err := s.companyRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, req.ContractorID); err != nil {
		return nil, err
	}

	saleDate := time.Now()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	inv, err := invoicing.NewInvoice(tenantID, own.ID, req.ContractorID, invoicing.InvoiceType(req.Type), saleDate)
	if err != nil {
		return nil, err
	}
	if req.PaymentMethod != "" {
		inv.PaymentMethod = req.PaymentMethod
	}
	if req.Notes != "" {
		inv.SetNotes(req.Notes)
	}
	for _, lr := range req.Lines {
		line, err := invoicing.NewInvoiceLine(lr.Name, lr.Quantity, lr.UnitPrice, lr.Unit, lr.VATRate, lr.Discount)
		if err != nil {
			return nil, err
		}
		if err := inv.AddLine(line); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// GetByID retrieves an invoice with its lines
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	items, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToInvoiceResponse(&items[i]))
	}
	page := shared.NewPaginated(responses, total, f.Page, f.PageSize)
	return &page, nil
}

// Issue assigns the next number in the tenant's monthly series and issues
// the invoice. Issuing a sales invoice triggers the auto-posting engine
// through the published event.
func (s *InvoiceService) Issue(ctx context.Context, tenantID, id uuid.UUID, req IssueInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	issueDate := time.Now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	var dueDate time.Time
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	number, err := s.invoiceRepo.NextNumber(ctx, tenantID, inv.Type, issueDate)
	if err != nil {
		return nil, err
	}
	if err := inv.Issue(number, issueDate, dueDate); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// MarkPaid records payment of an invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, tenantID, id uuid.UUID, paidAt *time.Time) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if paidAt != nil {
		at = *paidAt
	}
	if err := inv.MarkPaid(at); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// Cancel voids an unpaid invoice
func (s *InvoiceService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := inv.Cancel(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// Delete removes a draft invoice. Issued invoices are immutable accounting
// records and can only be cancelled; mirrored copies are never deleted by
// the partner side.
func (s *InvoiceService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if inv.Status != invoicing.StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be deleted")
	}

	if err := s.invoiceRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, invoicing.NewInvoiceDeletedEvent(inv))
	}
	return nil
}

func (s *InvoiceService) publishEvents(ctx context.Context, inv *invoicing.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range inv.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	inv.ClearDomainEvents()
}
