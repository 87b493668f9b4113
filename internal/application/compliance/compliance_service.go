package compliance

import (
	"context"
	"time"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/compliance"
	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/google/uuid"
)

// ComplianceService runs the invoice linter against stored invoices
type ComplianceService struct {
	invoiceRepo    invoicing.InvoiceRepository
	companyRepo    company.CompanyRepository
	contractorRepo contractor.ContractorRepository
}

// NewComplianceService creates a new ComplianceService
func NewComplianceService(
	invoiceRepo invoicing.InvoiceRepository,
	companyRepo company.CompanyRepository,
	contractorRepo contractor.ContractorRepository,
) *ComplianceService {
	return &ComplianceService{
		invoiceRepo:    invoiceRepo,
		companyRepo:    companyRepo,
		contractorRepo: contractorRepo,
	}
}

// CheckInvoice loads an invoice with its parties and returns the scored
// compliance report
func (s *ComplianceService) CheckInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (*compliance.Report, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	comp, err := s.companyRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	contr, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, inv.ContractorID)
	if err != nil {
		return nil, err
	}

	data := compliance.InvoiceData{
		Number:     inv.Number,
		IssueDate:  inv.IssueDate,
		SaleDate:   inv.SaleDate,
		DueDate:    inv.DueDate,
		Currency:   inv.Currency,
		TotalNet:   inv.TotalNet,
		TotalVAT:   inv.TotalVAT,
		TotalGross: inv.TotalGross,
	}

	// The company is the seller on sales invoices and the buyer on cost
	// invoices; the contractor takes the opposite side.
	if inv.Type == invoicing.TypeSales {
		data.SellerName = comp.Name
		data.SellerNIP = comp.NIP
		data.BuyerName = contr.Name
		data.BuyerNIP = contr.NIP
	} else {
		data.SellerName = contr.Name
		data.SellerNIP = contr.NIP
		data.BuyerName = comp.Name
		data.BuyerNIP = comp.NIP
	}

	for _, l := range inv.Lines {
		data.Lines = append(data.Lines, compliance.LineData{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			VATRate:   l.VATRate,
			Net:       l.Net(),
			VAT:       l.VAT(),
			Gross:     l.Gross(),
		})
	}

	return compliance.CheckInvoice(data, time.Now()), nil
}

// ValidateNIP runs the checksum validation on a raw tax identifier
func (s *ComplianceService) ValidateNIP(nip string) (string, bool) {
	normalized := compliance.NormalizeNIP(nip)
	return normalized, compliance.ValidateNIP(normalized)
}
