package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/faktulove/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInvoiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.InvoiceModel{}, &models.InvoiceLineModel{}))
	return db
}

func issuedSalesInvoice(t *testing.T, tenantID uuid.UUID, number string) *invoicing.Invoice {
	t.Helper()
	saleDate := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	inv, err := invoicing.NewInvoice(tenantID, uuid.New(), uuid.New(), invoicing.TypeSales, saleDate)
	require.NoError(t, err)
	line, err := invoicing.NewInvoiceLine("Usługa księgowa", decimal.NewFromInt(2), decimal.NewFromInt(500), "szt.", "23", decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, inv.AddLine(line))
	require.NoError(t, inv.Issue(number, saleDate, saleDate.AddDate(0, 0, 14)))
	inv.ClearDomainEvents()
	return inv
}

func TestGormInvoiceRepository_SaveAndFind(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	inv := issuedSalesInvoice(t, tenantID, "FV/0001/03/2026")
	require.NoError(t, repo.Save(ctx, inv))

	t.Run("round trips the invoice with its lines", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, inv.ID)
		require.NoError(t, err)

		assert.Equal(t, inv.Number, found.Number)
		assert.Equal(t, invoicing.StatusIssued, found.Status)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, "Usługa księgowa", found.Lines[0].Name)
		assert.True(t, found.TotalGross.Equal(decimal.RequireFromString("1230")),
			"gross %s", found.TotalGross)
	})

	t.Run("does not leak across tenants", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), inv.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("replaces lines on update", func(t *testing.T) {
		draft, err := invoicing.NewInvoice(tenantID, uuid.New(), uuid.New(), invoicing.TypeSales, time.Now())
		require.NoError(t, err)
		l1, err := invoicing.NewInvoiceLine("Pozycja A", decimal.NewFromInt(1), decimal.NewFromInt(100), "szt.", "23", decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, draft.AddLine(l1))
		require.NoError(t, repo.Save(ctx, draft))

		require.NoError(t, draft.RemoveLine(draft.Lines[0].ID))
		l2, err := invoicing.NewInvoiceLine("Pozycja B", decimal.NewFromInt(1), decimal.NewFromInt(200), "szt.", "8", decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, draft.AddLine(l2))
		require.NoError(t, repo.Save(ctx, draft))

		found, err := repo.FindByIDForTenant(ctx, tenantID, draft.ID)
		require.NoError(t, err)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, "Pozycja B", found.Lines[0].Name)
	})
}

func TestGormInvoiceRepository_MirrorGuard(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	sourceTenant := uuid.New()
	targetTenant := uuid.New()
	source := issuedSalesInvoice(t, sourceTenant, "FV/0007/03/2026")
	require.NoError(t, repo.Save(ctx, source))

	mirror, err := invoicing.NewMirroredCost(source, targetTenant, uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, mirror))

	t.Run("finds the mirror by source invoice", func(t *testing.T) {
		found, err := repo.FindBySourceInvoice(ctx, targetTenant, source.ID)
		require.NoError(t, err)
		assert.Equal(t, mirror.ID, found.ID)

		exists, err := repo.ExistsBySourceInvoice(ctx, targetTenant, source.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("unique index rejects a second mirror of the same source", func(t *testing.T) {
		dup, err := invoicing.NewMirroredCost(source, targetTenant, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Error(t, repo.Save(ctx, dup))
	})
}

func TestGormInvoiceRepository_SaveMirror(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	sourceTenant := uuid.New()
	targetTenant := uuid.New()

	t.Run("persists mirror and source flag together", func(t *testing.T) {
		source := issuedSalesInvoice(t, sourceTenant, "FV/0010/03/2026")
		require.NoError(t, repo.Save(ctx, source))

		mirror, err := invoicing.NewMirroredCost(source, targetTenant, uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, source.MarkMirrored())
		require.NoError(t, repo.SaveMirror(ctx, mirror, source))

		storedMirror, err := repo.FindBySourceInvoice(ctx, targetTenant, source.ID)
		require.NoError(t, err)
		assert.Equal(t, mirror.ID, storedMirror.ID)

		storedSource, err := repo.FindByIDForTenant(ctx, sourceTenant, source.ID)
		require.NoError(t, err)
		assert.True(t, storedSource.Mirrored)
	})

	t.Run("rolls back the source flag when the mirror write fails", func(t *testing.T) {
		source := issuedSalesInvoice(t, sourceTenant, "FV/0011/03/2026")
		require.NoError(t, repo.Save(ctx, source))

		existing, err := invoicing.NewMirroredCost(source, targetTenant, uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, existing))

		dup, err := invoicing.NewMirroredCost(source, targetTenant, uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, source.MarkMirrored())
		require.Error(t, repo.SaveMirror(ctx, dup, source))

		stored, err := repo.FindByIDForTenant(ctx, sourceTenant, source.ID)
		require.NoError(t, err)
		assert.False(t, stored.Mirrored)
	})
}
