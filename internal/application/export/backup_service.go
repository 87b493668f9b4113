package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/faktulove/backend/internal/domain/partnership"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const backupFormatVersion = "1.0"

// backupPageSize bounds a single repository read while walking tenant data
const backupPageSize = 500

// BackupMetadata describes a backup archive
type BackupMetadata struct {
	TenantID      uuid.UUID      `json:"tenant_id"`
	CreatedAt     time.Time      `json:"created_at"`
	FormatVersion string         `json:"format_version"`
	Counts        map[string]int `json:"counts"`
}

// BackupService bundles all of a tenant's data into a zip of JSON files.
// The archive holds metadata.json plus one file per entity collection.
type BackupService struct {
	companyRepo     company.CompanyRepository
	contractorRepo  contractor.ContractorRepository
	partnershipRepo partnership.PartnershipRepository
	invoiceRepo     invoicing.InvoiceRepository
	logger          *zap.Logger
}

// NewBackupService creates a new BackupService
func NewBackupService(
	companyRepo company.CompanyRepository,
	contractorRepo contractor.ContractorRepository,
	partnershipRepo partnership.PartnershipRepository,
	invoiceRepo invoicing.InvoiceRepository,
	logger *zap.Logger,
) *BackupService {
	return &BackupService{
		companyRepo:     companyRepo,
		contractorRepo:  contractorRepo,
		partnershipRepo: partnershipRepo,
		invoiceRepo:     invoiceRepo,
		logger:          logger,
	}
}

// CreateBackup walks the tenant's data and returns a zip archive
func (s *BackupService) CreateBackup(ctx context.Context, tenantID uuid.UUID) ([]byte, error) {
	contractors, err := s.collectContractors(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.collectInvoices(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{
		"contractors": len(contractors),
		"invoices":    len(invoices),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	comp, err := s.companyRepo.FindByTenant(ctx, tenantID)
	if err == nil && comp != nil {
		if err := writeJSONEntry(zw, "company.json", comp); err != nil {
			return nil, err
		}
		counts["companies"] = 1

		partnerships, err := s.partnershipRepo.FindForCompany(ctx, comp.ID)
		if err != nil {
			return nil, err
		}
		if err := writeJSONEntry(zw, "partnerships.json", partnerships); err != nil {
			return nil, err
		}
		counts["partnerships"] = len(partnerships)
	} else {
		counts["companies"] = 0
	}

	if err := writeJSONEntry(zw, "contractors.json", contractors); err != nil {
		return nil, err
	}
	if err := writeJSONEntry(zw, "invoices.json", invoices); err != nil {
		return nil, err
	}
	meta := BackupMetadata{
		TenantID:      tenantID,
		CreatedAt:     time.Now().UTC(),
		FormatVersion: backupFormatVersion,
		Counts:        counts,
	}
	if err := writeJSONEntry(zw, "metadata.json", meta); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	s.logger.Info("backup created",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("contractors", counts["contractors"]),
		zap.Int("invoices", counts["invoices"]))
	return buf.Bytes(), nil
}

func (s *BackupService) collectContractors(ctx context.Context, tenantID uuid.UUID) ([]contractor.Contractor, error) {
	var all []contractor.Contractor
	filter := backupFilter()
	for {
		page, err := s.contractorRepo.FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < filter.PageSize {
			return all, nil
		}
		filter.Page++
	}
}

func (s *BackupService) collectInvoices(ctx context.Context, tenantID uuid.UUID) ([]invoicing.Invoice, error) {
	var all []invoicing.Invoice
	filter := backupFilter()
	for {
		page, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < filter.PageSize {
			return all, nil
		}
		filter.Page++
	}
}

func backupFilter() shared.Filter {
	f := shared.DefaultFilter()
	f.PageSize = backupPageSize
	f.OrderBy = "created_at"
	f.OrderDir = "asc"
	return f
}

func writeJSONEntry(zw *zip.Writer, name string, v interface{}) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
