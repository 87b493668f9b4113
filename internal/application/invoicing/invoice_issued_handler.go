package invoicing

import (
	"context"

	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceIssuedHandler feeds issued sales invoices into the auto-posting engine
type InvoiceIssuedHandler struct {
	mirroring *MirroringService
	logger    *zap.Logger
}

// NewInvoiceIssuedHandler creates a new InvoiceIssuedHandler
func NewInvoiceIssuedHandler(mirroring *MirroringService, logger *zap.Logger) *InvoiceIssuedHandler {
	return &InvoiceIssuedHandler{
		mirroring: mirroring,
		logger:    logger,
	}
}

// Handle processes an InvoiceIssuedEvent
func (h *InvoiceIssuedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	issued, ok := event.(*invoicing.InvoiceIssuedEvent)
	if !ok {
		return nil
	}
	if issued.Type != invoicing.TypeSales {
		return nil
	}

	outcome, err := h.mirroring.MirrorInvoice(ctx, issued.InvoiceID)
	if err != nil {
		h.logger.Error("auto-posting failed",
			zap.String("invoice_id", issued.InvoiceID.String()),
			zap.String("number", issued.Number),
			zap.Error(err))
		return err
	}
	if !outcome.Mirrored {
		h.logger.Debug("invoice not mirrored",
			zap.String("invoice_id", issued.InvoiceID.String()),
			zap.String("reason", string(outcome.SkipReason)))
	}
	return nil
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceIssuedHandler) EventTypes() []string {
	return []string{invoicing.EventTypeInvoiceIssued}
}
