package ocr

import (
	"context"
	"testing"
	"time"

	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func reviewedResult(t *testing.T, tenantID, documentID uuid.UUID) *ocr.OCRResult {
	t.Helper()
	r, err := ocr.NewOCRResult(tenantID, documentID)
	require.NoError(t, err)
	require.NoError(t, r.StartProcessing())
	require.NoError(t, r.Complete(ocr.ExtractedData{
		InvoiceNumber: "FV/0001/03/2026",
		TotalNet:      decimal.RequireFromString("100.00"),
		TotalVAT:      decimal.RequireFromString("23.00"),
		TotalGross:    decimal.RequireFromString("123.00"),
	}, 80, time.Now()))
	r.ClearDomainEvents()
	return r
}

// pendingCreatedEvent pulls the created event off the aggregate, the same
// event the services publish after save
func pendingCreatedEvent(t *testing.T, inv *invoicing.Invoice) *invoicing.InvoiceCreatedEvent {
	t.Helper()
	for _, evt := range inv.GetDomainEvents() {
		if created, ok := evt.(*invoicing.InvoiceCreatedEvent); ok {
			return created
		}
	}
	t.Fatal("invoice has no pending created event")
	return nil
}

func TestInvoiceCreatedHandler(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	documentID := uuid.New()

	t.Run("links result to invoice drafted from its document", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		documentRepo := new(MockDocumentRepository)
		handler := NewInvoiceCreatedHandler(resultRepo, documentRepo, zap.NewNop())

		result := reviewedResult(t, tenantID, documentID)
		inv, err := invoicing.NewInvoice(tenantID, uuid.New(), uuid.New(), invoicing.TypeCost, time.Now())
		require.NoError(t, err)
		inv.AttachSourceDocument(documentID)

		resultRepo.On("FindByDocument", mock.Anything, tenantID, documentID).Return(result, nil)
		resultRepo.On("Save", mock.Anything, result).Return(nil)

		require.NoError(t, handler.Handle(ctx, pendingCreatedEvent(t, inv)))

		require.NotNil(t, result.InvoiceID)
		assert.Equal(t, inv.ID, *result.InvoiceID)
		assert.False(t, result.AutoCreatedInvoice)
	})

	t.Run("ignores invoices without source document", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		documentRepo := new(MockDocumentRepository)
		handler := NewInvoiceCreatedHandler(resultRepo, documentRepo, zap.NewNop())

		inv, err := invoicing.NewInvoice(tenantID, uuid.New(), uuid.New(), invoicing.TypeSales, time.Now())
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, pendingCreatedEvent(t, inv)))
		resultRepo.AssertNotCalled(t, "FindByDocument", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("does not relink an already linked result", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		documentRepo := new(MockDocumentRepository)
		handler := NewInvoiceCreatedHandler(resultRepo, documentRepo, zap.NewNop())

		result := reviewedResult(t, tenantID, documentID)
		require.NoError(t, result.LinkInvoice(uuid.New(), false))

		inv, err := invoicing.NewInvoice(tenantID, uuid.New(), uuid.New(), invoicing.TypeCost, time.Now())
		require.NoError(t, err)
		inv.AttachSourceDocument(documentID)

		resultRepo.On("FindByDocument", mock.Anything, tenantID, documentID).Return(result, nil)

		require.NoError(t, handler.Handle(ctx, pendingCreatedEvent(t, inv)))
		resultRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestInvoiceDeletedHandler(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	documentID := uuid.New()

	t.Run("reopens result for review after invoice deletion", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		handler := NewInvoiceDeletedHandler(resultRepo, zap.NewNop())

		result := reviewedResult(t, tenantID, documentID)
		inv, err := invoicing.NewInvoice(tenantID, uuid.New(), uuid.New(), invoicing.TypeCost, time.Now())
		require.NoError(t, err)
		inv.AttachSourceDocument(documentID)
		require.NoError(t, result.LinkInvoice(inv.ID, true))
		result.ClearDomainEvents()

		resultRepo.On("FindByDocument", mock.Anything, tenantID, documentID).Return(result, nil)
		resultRepo.On("Save", mock.Anything, result).Return(nil)

		require.NoError(t, handler.Handle(ctx, invoicing.NewInvoiceDeletedEvent(inv)))

		assert.Nil(t, result.InvoiceID)
		assert.Equal(t, ocr.ResultManualReview, result.Status)
	})

	t.Run("ignores deletion of an unrelated invoice", func(t *testing.T) {
		resultRepo := new(MockResultRepository)
		handler := NewInvoiceDeletedHandler(resultRepo, zap.NewNop())

		result := reviewedResult(t, tenantID, documentID)
		require.NoError(t, result.LinkInvoice(uuid.New(), false))

		other, err := invoicing.NewInvoice(tenantID, uuid.New(), uuid.New(), invoicing.TypeCost, time.Now())
		require.NoError(t, err)
		other.AttachSourceDocument(documentID)

		resultRepo.On("FindByDocument", mock.Anything, tenantID, documentID).Return(result, nil)

		require.NoError(t, handler.Handle(ctx, invoicing.NewInvoiceDeletedEvent(other)))
		resultRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
