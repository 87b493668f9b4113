package invoicing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, qty, price int64, rate string) InvoiceLine {
	t.Helper()
	line, err := NewInvoiceLine("Usługa księgowa", decimal.NewFromInt(qty), decimal.NewFromInt(price), "szt.", rate, decimal.Zero)
	require.NoError(t, err)
	return line
}

func draftSalesInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), TypeSales, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("should create draft with defaults", func(t *testing.T) {
		inv := draftSalesInvoice(t)

		assert.Equal(t, StatusDraft, inv.Status)
		assert.Equal(t, "PLN", inv.Currency)
		assert.Equal(t, "przelew", inv.PaymentMethod)
		assert.False(t, inv.Mirrored)
		assert.Len(t, inv.GetDomainEvents(), 1)
	})

	t.Run("should reject unknown type", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), InvoiceType("proforma"), time.Now())
		assert.Error(t, err)
	})

	t.Run("should reject missing contractor", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), uuid.New(), uuid.Nil, TypeSales, time.Now())
		assert.Error(t, err)
	})
}

func TestAttachSourceDocument(t *testing.T) {
	t.Run("should re-project pending created event", func(t *testing.T) {
		inv := draftSalesInvoice(t)
		documentID := uuid.New()

		inv.AttachSourceDocument(documentID)

		require.Len(t, inv.GetDomainEvents(), 1)
		created, ok := inv.GetDomainEvents()[0].(*InvoiceCreatedEvent)
		require.True(t, ok)
		require.NotNil(t, created.SourceDocumentID)
		assert.Equal(t, documentID, *created.SourceDocumentID)
	})

	t.Run("should leave published events alone", func(t *testing.T) {
		inv := draftSalesInvoice(t)
		inv.ClearDomainEvents()

		inv.AttachSourceDocument(uuid.New())

		assert.Empty(t, inv.GetDomainEvents())
		assert.NotNil(t, inv.SourceDocumentID)
	})
}

func TestInvoiceTotals(t *testing.T) {
	inv := draftSalesInvoice(t)

	require.NoError(t, inv.AddLine(mustLine(t, 1, 100, "23")))

	assert.Equal(t, "100.00", inv.TotalNet.StringFixed(2))
	assert.Equal(t, "23.00", inv.TotalVAT.StringFixed(2))
	assert.Equal(t, "123.00", inv.TotalGross.StringFixed(2))

	require.NoError(t, inv.AddLine(mustLine(t, 2, 50, "8")))

	assert.Equal(t, "200.00", inv.TotalNet.StringFixed(2))
	assert.Equal(t, "31.00", inv.TotalVAT.StringFixed(2))

	require.NoError(t, inv.RemoveLine(inv.Lines[1].ID))
	assert.Equal(t, "123.00", inv.TotalGross.StringFixed(2))
}

func TestInvoiceIssue(t *testing.T) {
	t.Run("should issue draft with lines", func(t *testing.T) {
		inv := draftSalesInvoice(t)
		require.NoError(t, inv.AddLine(mustLine(t, 1, 100, "23")))

		issueDate := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
		err := inv.Issue("FV/0001/03/2026", issueDate, issueDate.AddDate(0, 0, 14))

		require.NoError(t, err)
		assert.Equal(t, StatusIssued, inv.Status)
		assert.Equal(t, "FV/0001/03/2026", inv.Number)
	})

	t.Run("should reject empty invoice", func(t *testing.T) {
		inv := draftSalesInvoice(t)
		err := inv.Issue("FV/0001/03/2026", time.Now(), time.Time{})
		assert.Error(t, err)
	})

	t.Run("should reject due date before issue date", func(t *testing.T) {
		inv := draftSalesInvoice(t)
		require.NoError(t, inv.AddLine(mustLine(t, 1, 100, "23")))

		issueDate := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
		err := inv.Issue("FV/0001/03/2026", issueDate, issueDate.AddDate(0, 0, -1))
		assert.Error(t, err)
	})

	t.Run("should reject issuing twice", func(t *testing.T) {
		inv := draftSalesInvoice(t)
		require.NoError(t, inv.AddLine(mustLine(t, 1, 100, "23")))
		require.NoError(t, inv.Issue("FV/0001/03/2026", time.Now(), time.Time{}))

		err := inv.Issue("FV/0002/03/2026", time.Now(), time.Time{})
		assert.Error(t, err)
	})

	t.Run("should freeze lines after issue", func(t *testing.T) {
		inv := draftSalesInvoice(t)
		require.NoError(t, inv.AddLine(mustLine(t, 1, 100, "23")))
		require.NoError(t, inv.Issue("FV/0001/03/2026", time.Now(), time.Time{}))

		assert.Error(t, inv.AddLine(mustLine(t, 1, 50, "23")))
		assert.Error(t, inv.RemoveLine(inv.Lines[0].ID))
	})
}

func TestInvoiceLifecycle(t *testing.T) {
	issued := func(t *testing.T) *Invoice {
		inv := draftSalesInvoice(t)
		require.NoError(t, inv.AddLine(mustLine(t, 1, 100, "23")))
		require.NoError(t, inv.Issue("FV/0001/03/2026", time.Now(), time.Time{}))
		return inv
	}

	t.Run("should mark issued invoice paid", func(t *testing.T) {
		inv := issued(t)
		require.NoError(t, inv.MarkPaid(time.Now()))

		assert.Equal(t, StatusPaid, inv.Status)
		assert.NotNil(t, inv.PaidAt)
	})

	t.Run("should not pay a draft", func(t *testing.T) {
		inv := draftSalesInvoice(t)
		assert.Error(t, inv.MarkPaid(time.Now()))
	})

	t.Run("should cancel unpaid invoice", func(t *testing.T) {
		inv := issued(t)
		require.NoError(t, inv.Cancel())
		assert.Equal(t, StatusCancelled, inv.Status)
	})

	t.Run("should not cancel a paid invoice", func(t *testing.T) {
		inv := issued(t)
		require.NoError(t, inv.MarkPaid(time.Now()))
		assert.Error(t, inv.Cancel())
	})

	t.Run("should mark mirrored exactly once", func(t *testing.T) {
		inv := issued(t)
		require.NoError(t, inv.MarkMirrored())
		assert.Error(t, inv.MarkMirrored())
	})

	t.Run("should not mirror a cost invoice", func(t *testing.T) {
		inv, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), TypeCost, time.Now())
		require.NoError(t, err)
		assert.Error(t, inv.MarkMirrored())
	})
}

func TestPaymentTermDays(t *testing.T) {
	inv := draftSalesInvoice(t)
	require.NoError(t, inv.AddLine(mustLine(t, 1, 100, "23")))

	issueDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, inv.Issue("FV/0001/03/2026", issueDate, issueDate.AddDate(0, 0, 30)))

	assert.Equal(t, 30, inv.PaymentTermDays())
}

func TestIsOverdue(t *testing.T) {
	inv := draftSalesInvoice(t)
	require.NoError(t, inv.AddLine(mustLine(t, 1, 100, "23")))

	issueDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, inv.Issue("FV/0001/03/2026", issueDate, issueDate.AddDate(0, 0, 14)))

	assert.False(t, inv.IsOverdue(issueDate.AddDate(0, 0, 10)))
	assert.True(t, inv.IsOverdue(issueDate.AddDate(0, 0, 20)))

	require.NoError(t, inv.MarkPaid(issueDate.AddDate(0, 0, 20)))
	assert.False(t, inv.IsOverdue(issueDate.AddDate(0, 0, 30)))
}

func TestNewMirroredCost(t *testing.T) {
	sourceTenant := uuid.New()
	targetTenant := uuid.New()
	targetCompany := uuid.New()
	sellerContractor := uuid.New()

	newIssuedSource := func(t *testing.T) *Invoice {
		inv, err := NewInvoice(sourceTenant, uuid.New(), uuid.New(), TypeSales, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, inv.AddLine(mustLine(t, 1, 100, "23")))
		require.NoError(t, inv.Issue("FV/0007/03/2026", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC)))
		return inv
	}

	t.Run("should build issued cost copy in partner tenant", func(t *testing.T) {
		source := newIssuedSource(t)

		mirror, err := NewMirroredCost(source, targetTenant, targetCompany, sellerContractor)
		require.NoError(t, err)

		assert.Equal(t, targetTenant, mirror.TenantID)
		assert.Equal(t, TypeCost, mirror.Type)
		assert.Equal(t, StatusIssued, mirror.Status)
		assert.Equal(t, source.Number, mirror.Number)
		assert.True(t, mirror.Mirrored)
		require.NotNil(t, mirror.SourceInvoiceID)
		assert.Equal(t, source.ID, *mirror.SourceInvoiceID)
		assert.Equal(t, sellerContractor, mirror.ContractorID)
	})

	t.Run("should copy lines with fresh identity and equal totals", func(t *testing.T) {
		source := newIssuedSource(t)

		mirror, err := NewMirroredCost(source, targetTenant, targetCompany, sellerContractor)
		require.NoError(t, err)

		require.Len(t, mirror.Lines, 1)
		assert.NotEqual(t, source.Lines[0].ID, mirror.Lines[0].ID)
		assert.Equal(t, mirror.ID, mirror.Lines[0].InvoiceID)
		assert.True(t, source.TotalGross.Equal(mirror.TotalGross))
		assert.True(t, source.TotalVAT.Equal(mirror.TotalVAT))
	})

	t.Run("should reject non-sales source", func(t *testing.T) {
		cost, err := NewInvoice(sourceTenant, uuid.New(), uuid.New(), TypeCost, time.Now())
		require.NoError(t, err)
		_, err = NewMirroredCost(cost, targetTenant, targetCompany, sellerContractor)
		assert.Error(t, err)
	})

	t.Run("should reject draft source", func(t *testing.T) {
		draft := draftSalesInvoice(t)
		_, err := NewMirroredCost(draft, targetTenant, targetCompany, sellerContractor)
		assert.Error(t, err)
	})
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "FV/0001/03/2026", FormatNumber(TypeSales, 1, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "FK/0042/11/2025", FormatNumber(TypeCost, 42, time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)))
}
