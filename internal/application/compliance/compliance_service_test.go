package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComplianceService_CheckInvoice(t *testing.T) {
	tenantID := uuid.New()

	comp, err := company.NewCompany(tenantID, "Sprzedawca Sp. z o.o.", "5260250274")
	require.NoError(t, err)
	contr, err := contractor.NewContractor(tenantID, "Nabywca Sp. z o.o.", "5252248481", contractor.KindCompany)
	require.NoError(t, err)

	inv, err := invoicing.NewInvoice(tenantID, comp.ID, contr.ID, invoicing.TypeSales, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	line, err := invoicing.NewInvoiceLine("Usługa księgowa", decimal.NewFromInt(1), decimal.NewFromInt(1000), "szt.", "23", decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, inv.AddLine(line))
	require.NoError(t, inv.Issue("FV/0001/03/2026", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC)))

	t.Run("issued invoice scores clean", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		companyRepo := new(MockCompanyRepository)
		contractorRepo := new(MockContractorRepository)
		svc := NewComplianceService(invoiceRepo, companyRepo, contractorRepo)

		invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
		companyRepo.On("FindByTenant", mock.Anything, tenantID).Return(comp, nil)
		contractorRepo.On("FindByIDForTenant", mock.Anything, tenantID, contr.ID).Return(contr, nil)

		report, err := svc.CheckInvoice(context.Background(), tenantID, inv.ID)
		require.NoError(t, err)
		assert.True(t, report.Compliant())
		assert.Equal(t, 100, report.Score)
	})

	t.Run("unknown invoice maps to not found", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		svc := NewComplianceService(invoiceRepo, new(MockCompanyRepository), new(MockContractorRepository))

		missing := uuid.New()
		invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, missing).Return(nil, shared.ErrNotFound)

		_, err := svc.CheckInvoice(context.Background(), tenantID, missing)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestComplianceService_ValidateNIP(t *testing.T) {
	svc := NewComplianceService(nil, nil, nil)

	normalized, ok := svc.ValidateNIP("PL 526-025-02-74")
	assert.True(t, ok)
	assert.Equal(t, "5260250274", normalized)

	_, ok = svc.ValidateNIP("1234567890")
	assert.False(t, ok)
}
