package ocr

import (
	"context"
	"time"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/compliance"
	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProcessingService drives documents through recognition. The result status
// is the source of truth; after every transition the upload status is
// re-projected from it and both are saved together.
type ProcessingService struct {
	documentRepo   ocr.DocumentRepository
	resultRepo     ocr.ResultRepository
	invoiceRepo    invoicing.InvoiceRepository
	contractorRepo contractor.ContractorRepository
	companyRepo    company.CompanyRepository
	recognizer     ocr.Recognizer
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProcessingService creates a new ProcessingService
func NewProcessingService(
	documentRepo ocr.DocumentRepository,
	resultRepo ocr.ResultRepository,
	invoiceRepo invoicing.InvoiceRepository,
	contractorRepo contractor.ContractorRepository,
	companyRepo company.CompanyRepository,
	recognizer ocr.Recognizer,
	logger *zap.Logger,
) *ProcessingService {
	return &ProcessingService{
		documentRepo:   documentRepo,
		resultRepo:     resultRepo,
		invoiceRepo:    invoiceRepo,
		contractorRepo: contractorRepo,
		companyRepo:    companyRepo,
		recognizer:     recognizer,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProcessingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ProcessDocument runs recognition for one pending result. The worker pool
// calls it after an upload; it is safe to call again after a crash because
// only pending results enter processing.
func (s *ProcessingService) ProcessDocument(ctx context.Context, resultID uuid.UUID) error {
	result, err := s.resultRepo.FindByID(ctx, resultID)
	if err != nil {
		return err
	}
	doc, err := s.documentRepo.FindByIDForTenant(ctx, result.TenantID, result.DocumentID)
	if err != nil {
		return err
	}
	if doc.Status == ocr.DocumentCancelled {
		return nil
	}

	if err := result.StartProcessing(); err != nil {
		return err
	}
	if err := s.syncAndSave(ctx, result, doc); err != nil {
		return err
	}

	recognition, rerr := s.recognizer.Recognize(ctx, doc.StorageKey, doc.ContentType)
	now := time.Now()
	if rerr != nil {
		s.logger.Warn("recognition failed",
			zap.String("document_id", doc.ID.String()),
			zap.Error(rerr))
		if err := result.Fail(rerr.Error(), now); err != nil {
			return err
		}
		return s.syncAndSave(ctx, result, doc)
	}

	if err := result.Complete(recognition.Data, recognition.Confidence, now); err != nil {
		return err
	}
	if err := s.syncAndSave(ctx, result, doc); err != nil {
		return err
	}

	if result.ShouldAutoCreate() {
		if err := s.autoCreateInvoice(ctx, result, doc); err != nil {
			// The result stays completed; the invoice can still be created
			// manually from the extracted data
			s.logger.Warn("auto-creation from recognition failed",
				zap.String("result_id", result.ID.String()),
				zap.Error(err))
		}
	}
	return nil
}

// GetResult retrieves the recognition result for a document
func (s *ProcessingService) GetResult(ctx context.Context, tenantID, documentID uuid.UUID) (*ResultResponse, error) {
	result, err := s.resultRepo.FindByDocument(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}
	resp := ToResultResponse(result)
	return &resp, nil
}

// ListPendingReview retrieves results waiting for human confirmation
func (s *ProcessingService) ListPendingReview(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ResultResponse, error) {
	items, err := s.resultRepo.FindPendingReview(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ResultResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToResultResponse(&items[i]))
	}
	return responses, nil
}

// ConfirmReview resolves a manual_review result. With an explicit invoice it
// links the two; otherwise it creates the invoice from the extracted data.
func (s *ProcessingService) ConfirmReview(ctx context.Context, tenantID, resultID uuid.UUID, req ConfirmReviewRequest) (*ResultResponse, error) {
	result, err := s.resultRepo.FindByIDForTenant(ctx, tenantID, resultID)
	if err != nil {
		return nil, err
	}
	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, result.DocumentID)
	if err != nil {
		return nil, err
	}

	var invoiceID uuid.UUID
	if req.InvoiceID != nil {
		existing, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, *req.InvoiceID)
		if err != nil {
			return nil, err
		}
		invoiceID = existing.ID
	} else {
		if result.Extracted == nil {
			return nil, shared.NewDomainError("NO_EXTRACTED_DATA", "Result has no extracted data to create an invoice from")
		}
		created, err := s.draftFromExtraction(ctx, tenantID, result, doc)
		if err != nil {
			return nil, err
		}
		invoiceID = created.ID
	}

	if err := result.LinkInvoice(invoiceID, false); err != nil {
		return nil, err
	}
	if err := s.syncAndSave(ctx, result, doc); err != nil {
		return nil, err
	}

	resp := ToResultResponse(result)
	return &resp, nil
}

// autoCreateInvoice drafts the cost invoice for a high-confidence result
func (s *ProcessingService) autoCreateInvoice(ctx context.Context, result *ocr.OCRResult, doc *ocr.DocumentUpload) error {
	inv, err := s.draftFromExtraction(ctx, result.TenantID, result, doc)
	if err != nil {
		return err
	}
	if err := result.LinkInvoice(inv.ID, true); err != nil {
		return err
	}
	if err := s.resultRepo.Save(ctx, result); err != nil {
		return err
	}
	s.publish(ctx, result.GetDomainEvents())
	result.ClearDomainEvents()

	s.logger.Info("invoice drafted from recognition",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.Float64("confidence", result.Confidence))
	return nil
}

// draftFromExtraction creates a draft cost invoice from the recognized fields
func (s *ProcessingService) draftFromExtraction(ctx context.Context, tenantID uuid.UUID, result *ocr.OCRResult, doc *ocr.DocumentUpload) (*invoicing.Invoice, error) {
	data := result.Extracted
	if data == nil {
		return nil, shared.NewDomainError("NO_EXTRACTED_DATA", "Result has no extracted data")
	}

	own, err := s.companyRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	seller, err := s.resolveSeller(ctx, tenantID, data)
	if err != nil {
		return nil, err
	}

	saleDate := time.Now()
	if data.IssueDate != nil {
		saleDate = *data.IssueDate
	}
	inv, err := invoicing.NewInvoice(tenantID, own.ID, seller.ID, invoicing.TypeCost, saleDate)
	if err != nil {
		return nil, err
	}

	lineName := "Dokument " + data.InvoiceNumber
	if data.InvoiceNumber == "" {
		lineName = "Dokument " + doc.FileName
	}
	line, err := invoicing.NewInvoiceLine(lineName, decimal.NewFromInt(1), data.TotalNet, "szt.", inferVATRate(data), decimal.Zero)
	if err != nil {
		return nil, err
	}
	if err := inv.AddLine(line); err != nil {
		return nil, err
	}
	inv.AttachSourceDocument(doc.ID)
	inv.SetNotes("Utworzono z dokumentu " + doc.FileName)

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.publish(ctx, inv.GetDomainEvents())
	inv.ClearDomainEvents()
	return inv, nil
}

// resolveSeller finds, or creates, the contractor record for the document's
// seller within the tenant's address book
func (s *ProcessingService) resolveSeller(ctx context.Context, tenantID uuid.UUID, data *ocr.ExtractedData) (*contractor.Contractor, error) {
	nip := compliance.NormalizeNIP(data.SellerNIP)
	if nip != "" {
		if existing, err := s.contractorRepo.FindByNIP(ctx, tenantID, nip); err == nil && existing != nil {
			return existing, nil
		}
	}

	name := data.SellerName
	if name == "" {
		name = "Nieznany dostawca"
	}
	kind := contractor.KindCompany
	if !compliance.ValidateNIP(nip) {
		kind = contractor.KindPerson
		nip = ""
	}
	created, err := contractor.NewContractor(tenantID, name, nip, kind)
	if err != nil {
		return nil, err
	}
	if err := s.contractorRepo.Save(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// syncAndSave projects the result status onto the upload and persists both
func (s *ProcessingService) syncAndSave(ctx context.Context, result *ocr.OCRResult, doc *ocr.DocumentUpload) error {
	at := time.Now()
	if result.CompletedAt != nil {
		at = *result.CompletedAt
	}
	doc.ApplyResultStatus(result.Status, at)

	if err := s.resultRepo.Save(ctx, result); err != nil {
		return err
	}
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return err
	}
	s.publish(ctx, result.GetDomainEvents())
	result.ClearDomainEvents()
	return nil
}

func (s *ProcessingService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		_ = s.eventPublisher.Publish(ctx, event)
	}
}

// inferVATRate backs out the VAT rate from the recognized totals. Falls back
// to the standard rate when the amounts do not match any known rate.
func inferVATRate(data *ocr.ExtractedData) string {
	if data.TotalNet.IsZero() {
		if data.TotalVAT.IsZero() {
			return "zw"
		}
		return "23"
	}
	ratio := data.TotalVAT.Div(data.TotalNet)
	tolerance := decimal.RequireFromString("0.005")
	for _, rate := range []string{"23", "8", "5", "0"} {
		value, _ := compliance.VATRateValue(rate)
		if ratio.Sub(value).Abs().LessThanOrEqual(tolerance) {
			return rate
		}
	}
	return "23"
}
