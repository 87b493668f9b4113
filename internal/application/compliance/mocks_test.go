package compliance

import (
	"context"
	"time"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string, typ invoicing.InvoiceType) (*invoicing.Invoice, error) {
	args := m.Called(ctx, tenantID, number, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindBySourceInvoice(ctx context.Context, tenantID, sourceInvoiceID uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, tenantID, sourceInvoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindBySourceDocument(ctx context.Context, tenantID, documentID uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, tenantID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindIssuedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindIssuedUnmirrored(ctx context.Context, tenantID, contractorID uuid.UUID) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, tenantID, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *invoicing.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveMirror(ctx context.Context, mirror, source *invoicing.Invoice) error {
	args := m.Called(ctx, mirror, source)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string, typ invoicing.InvoiceType) (bool, error) {
	args := m.Called(ctx, tenantID, number, typ)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsBySourceInvoice(ctx context.Context, tenantID, sourceInvoiceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, sourceInvoiceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) NextNumber(ctx context.Context, tenantID uuid.UUID, typ invoicing.InvoiceType, date time.Time) (string, error) {
	args := m.Called(ctx, tenantID, typ, date)
	return args.String(0), args.Error(1)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByNIP(ctx context.Context, nip string) (*company.Company, error) {
	args := m.Called(ctx, nip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]company.Company, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) ExistsByNIP(ctx context.Context, nip string) (bool, error) {
	args := m.Called(ctx, nip)
	return args.Bool(0), args.Error(1)
}

type MockContractorRepository struct {
	mock.Mock
}

func (m *MockContractorRepository) FindByID(ctx context.Context, id uuid.UUID) (*contractor.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contractor.Contractor), args.Error(1)
}

func (m *MockContractorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*contractor.Contractor, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contractor.Contractor), args.Error(1)
}

func (m *MockContractorRepository) FindByNIP(ctx context.Context, tenantID uuid.UUID, nip string) (*contractor.Contractor, error) {
	args := m.Called(ctx, tenantID, nip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contractor.Contractor), args.Error(1)
}

func (m *MockContractorRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]contractor.Contractor, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]contractor.Contractor), args.Error(1)
}

func (m *MockContractorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]contractor.Contractor, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]contractor.Contractor), args.Error(1)
}

func (m *MockContractorRepository) Save(ctx context.Context, c *contractor.Contractor) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractorRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockContractorRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContractorRepository) ExistsByNIP(ctx context.Context, tenantID uuid.UUID, nip string) (bool, error) {
	args := m.Called(ctx, tenantID, nip)
	return args.Bool(0), args.Error(1)
}
