package ocr

import (
	"context"

	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/faktulove/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceCreatedHandler links recognition results to invoices drafted from
// their documents. Covers invoices created manually out of extracted data
// as well as the auto-created path.
type InvoiceCreatedHandler struct {
	resultRepo   ocr.ResultRepository
	documentRepo ocr.DocumentRepository
	logger       *zap.Logger
}

// NewInvoiceCreatedHandler creates a new InvoiceCreatedHandler
func NewInvoiceCreatedHandler(resultRepo ocr.ResultRepository, documentRepo ocr.DocumentRepository, logger *zap.Logger) *InvoiceCreatedHandler {
	return &InvoiceCreatedHandler{
		resultRepo:   resultRepo,
		documentRepo: documentRepo,
		logger:       logger,
	}
}

// Handle processes an InvoiceCreatedEvent
func (h *InvoiceCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*invoicing.InvoiceCreatedEvent)
	if !ok || created.SourceDocumentID == nil {
		return nil
	}

	result, err := h.resultRepo.FindByDocument(ctx, created.TenantID(), *created.SourceDocumentID)
	if err != nil {
		return nil
	}
	if result.InvoiceID != nil {
		return nil
	}
	if err := result.LinkInvoice(created.InvoiceID, false); err != nil {
		h.logger.Debug("result not linkable",
			zap.String("result_id", result.ID.String()),
			zap.Error(err))
		return nil
	}
	return h.resultRepo.Save(ctx, result)
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceCreatedHandler) EventTypes() []string {
	return []string{invoicing.EventTypeInvoiceCreated}
}

// InvoiceDeletedHandler reopens a recognition result for review when the
// invoice created from its document is deleted
type InvoiceDeletedHandler struct {
	resultRepo ocr.ResultRepository
	logger     *zap.Logger
}

// NewInvoiceDeletedHandler creates a new InvoiceDeletedHandler
func NewInvoiceDeletedHandler(resultRepo ocr.ResultRepository, logger *zap.Logger) *InvoiceDeletedHandler {
	return &InvoiceDeletedHandler{
		resultRepo: resultRepo,
		logger:     logger,
	}
}

// Handle processes an InvoiceDeletedEvent
func (h *InvoiceDeletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	deleted, ok := event.(*invoicing.InvoiceDeletedEvent)
	if !ok || deleted.SourceDocumentID == nil {
		return nil
	}

	result, err := h.resultRepo.FindByDocument(ctx, deleted.TenantID(), *deleted.SourceDocumentID)
	if err != nil {
		return nil
	}
	if result.InvoiceID == nil || *result.InvoiceID != deleted.InvoiceID {
		return nil
	}

	result.UnlinkInvoice()
	if err := h.resultRepo.Save(ctx, result); err != nil {
		return err
	}
	h.logger.Info("recognition result reopened after invoice deletion",
		zap.String("result_id", result.ID.String()),
		zap.String("invoice_id", deleted.InvoiceID.String()))
	return nil
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceDeletedHandler) EventTypes() []string {
	return []string{invoicing.EventTypeInvoiceDeleted}
}
