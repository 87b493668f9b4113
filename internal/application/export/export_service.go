package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// utf8BOM prefixes CSV exports so Excel on Polish locales picks up the encoding
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const dateLayout = "2006-01-02"

// registerColumns are the invoice register columns, in order
var registerColumns = []string{
	"Lp.", "Numer", "Typ", "Status", "Data wystawienia", "Data sprzedaży",
	"Termin płatności", "Kontrahent", "NIP", "Netto", "VAT", "Brutto", "Waluta",
}

// ExportService renders tenant invoice registers as XLSX and CSV files
type ExportService struct {
	invoiceRepo    invoicing.InvoiceRepository
	contractorRepo contractor.ContractorRepository
}

// NewExportService creates a new ExportService
func NewExportService(invoiceRepo invoicing.InvoiceRepository, contractorRepo contractor.ContractorRepository) *ExportService {
	return &ExportService{
		invoiceRepo:    invoiceRepo,
		contractorRepo: contractorRepo,
	}
}

// registerRow is one rendered line of the invoice register
type registerRow struct {
	Number         string
	Type           string
	Status         string
	IssueDate      string
	SaleDate       string
	DueDate        string
	ContractorName string
	ContractorNIP  string
	TotalNet       decimal.Decimal
	TotalVAT       decimal.Decimal
	TotalGross     decimal.Decimal
	Currency       string
}

// loadRegister loads issued invoices in the range and resolves contractor names
func (s *ExportService) loadRegister(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]registerRow, error) {
	invoices, err := s.invoiceRepo.FindIssuedBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]*contractor.Contractor)
	rows := make([]registerRow, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		c, ok := names[inv.ContractorID]
		if !ok {
			c, err = s.contractorRepo.FindByIDForTenant(ctx, tenantID, inv.ContractorID)
			if err != nil {
				c = nil
			}
			names[inv.ContractorID] = c
		}
		row := registerRow{
			Number:     inv.Number,
			Type:       string(inv.Type),
			Status:     string(inv.Status),
			IssueDate:  inv.IssueDate.Format(dateLayout),
			SaleDate:   inv.SaleDate.Format(dateLayout),
			DueDate:    inv.DueDate.Format(dateLayout),
			TotalNet:   inv.TotalNet,
			TotalVAT:   inv.TotalVAT,
			TotalGross: inv.TotalGross,
			Currency:   inv.Currency,
		}
		if c != nil {
			row.ContractorName = c.Name
			row.ContractorNIP = c.NIP
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// InvoiceRegisterXLSX renders the issued-invoice register for the period as
// an XLSX workbook with a totals row
func (s *ExportService) InvoiceRegisterXLSX(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]byte, error) {
	rows, err := s.loadRegister(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Rejestr"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for i, h := range registerColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	totalNet, totalVAT, totalGross := decimal.Zero, decimal.Zero, decimal.Zero
	for i, row := range rows {
		values := []interface{}{
			i + 1, row.Number, row.Type, row.Status,
			row.IssueDate, row.SaleDate, row.DueDate,
			row.ContractorName, row.ContractorNIP,
			row.TotalNet.InexactFloat64(),
			row.TotalVAT.InexactFloat64(),
			row.TotalGross.InexactFloat64(),
			row.Currency,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
		totalNet = totalNet.Add(row.TotalNet)
		totalVAT = totalVAT.Add(row.TotalVAT)
		totalGross = totalGross.Add(row.TotalGross)
	}

	sumRow := len(rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("H%d", sumRow), "Razem")
	f.SetCellValue(sheet, fmt.Sprintf("J%d", sumRow), totalNet.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("K%d", sumRow), totalVAT.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("L%d", sumRow), totalGross.InexactFloat64())

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InvoiceRegisterCSV renders the register in the Polish spreadsheet
// convention: UTF-8 BOM, semicolon delimiter, decimal comma amounts
func (s *ExportService) InvoiceRegisterCSV(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]byte, error) {
	rows, err := s.loadRegister(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(registerColumns); err != nil {
		return nil, err
	}
	for i, row := range rows {
		record := []string{
			fmt.Sprint(i + 1), row.Number, row.Type, row.Status,
			row.IssueDate, row.SaleDate, row.DueDate,
			row.ContractorName, row.ContractorNIP,
			plAmount(row.TotalNet), plAmount(row.TotalVAT), plAmount(row.TotalGross),
			row.Currency,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InvoiceRegisterCSVWindows1250 renders the register transcoded to the
// Windows-1250 code page. Older Polish accounting packages only import
// that encoding.
func (s *ExportService) InvoiceRegisterCSVWindows1250(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]byte, error) {
	utf8CSV, err := s.InvoiceRegisterCSV(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	encoder := encoding.ReplaceUnsupported(charmap.Windows1250.NewEncoder())
	out, _, err := transform.Bytes(encoder, bytes.TrimPrefix(utf8CSV, utf8BOM))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// plAmount formats a decimal with a comma separator, as Polish spreadsheets expect
func plAmount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
