package invoicing

import (
	"time"

	"github.com/faktulove/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Invoice DTOs
// =============================================================================

// InvoiceLineRequest represents a line item in create/update requests
type InvoiceLineRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit" binding:"max=20"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	VATRate   string          `json:"vat_rate" binding:"required"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateInvoiceRequest represents a request to create a draft invoice
type CreateInvoiceRequest struct {
	Type          string               `json:"type" binding:"required,oneof=sales cost"`
	ContractorID  uuid.UUID            `json:"contractor_id" binding:"required"`
	SaleDate      *time.Time           `json:"sale_date"`
	PaymentMethod string               `json:"payment_method" binding:"max=50"`
	Notes         string               `json:"notes"`
	Lines         []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// IssueInvoiceRequest represents a request to issue a draft invoice
type IssueInvoiceRequest struct {
	IssueDate *time.Time `json:"issue_date"`
	DueDate   *time.Time `json:"due_date"`
}

// InvoiceLineResponse represents a line item in API responses
type InvoiceLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VATRate   string          `json:"vat_rate"`
	Discount  decimal.Decimal `json:"discount"`
	Net       decimal.Decimal `json:"net"`
	VAT       decimal.Decimal `json:"vat"`
	Gross     decimal.Decimal `json:"gross"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID               uuid.UUID             `json:"id"`
	TenantID         uuid.UUID             `json:"tenant_id"`
	Number           string                `json:"number"`
	Type             string                `json:"type"`
	Status           string                `json:"status"`
	SellerCompanyID  uuid.UUID             `json:"seller_company_id"`
	ContractorID     uuid.UUID             `json:"contractor_id"`
	IssueDate        *time.Time            `json:"issue_date,omitempty"`
	SaleDate         time.Time             `json:"sale_date"`
	DueDate          *time.Time            `json:"due_date,omitempty"`
	PaymentMethod    string                `json:"payment_method"`
	Currency         string                `json:"currency"`
	Lines            []InvoiceLineResponse `json:"lines"`
	TotalNet         decimal.Decimal       `json:"total_net"`
	TotalVAT         decimal.Decimal       `json:"total_vat"`
	TotalGross       decimal.Decimal       `json:"total_gross"`
	Mirrored         bool                  `json:"mirrored"`
	SourceInvoiceID  *uuid.UUID            `json:"source_invoice_id,omitempty"`
	SourceDocumentID *uuid.UUID            `json:"source_document_id,omitempty"`
	Notes            string                `json:"notes"`
	PaidAt           *time.Time            `json:"paid_at,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// InvoiceListFilter holds list query parameters
type InvoiceListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Type     string `form:"type"`
	Status   string `form:"status"`
	Search   string `form:"search"`
}

// =============================================================================
// Recurring schedule DTOs
// =============================================================================

// CreateRecurringRequest represents a request to schedule periodic generation
type CreateRecurringRequest struct {
	OriginalInvoiceID uuid.UUID  `json:"original_invoice_id" binding:"required"`
	Frequency         string     `json:"frequency" binding:"required,oneof=daily weekly biweekly monthly bimonthly quarterly semiannually yearly"`
	FirstGeneration   time.Time  `json:"first_generation" binding:"required"`
	EndDate           *time.Time `json:"end_date"`
	MaxCycles         *int       `json:"max_cycles"`
}

// RecurringResponse represents a schedule in API responses
type RecurringResponse struct {
	ID                uuid.UUID  `json:"id"`
	TenantID          uuid.UUID  `json:"tenant_id"`
	OriginalInvoiceID uuid.UUID  `json:"original_invoice_id"`
	Frequency         string     `json:"frequency"`
	NextGeneration    time.Time  `json:"next_generation"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	MaxCycles         *int       `json:"max_cycles,omitempty"`
	GeneratedCount    int        `json:"generated_count"`
	Active            bool       `json:"active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to its response DTO
func ToInvoiceResponse(inv *invoicing.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, InvoiceLineResponse{
			ID:        l.ID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Unit:      l.Unit,
			UnitPrice: l.UnitPrice,
			VATRate:   l.VATRate,
			Discount:  l.Discount,
			Net:       l.Net(),
			VAT:       l.VAT(),
			Gross:     l.Gross(),
		})
	}

	resp := InvoiceResponse{
		ID:               inv.ID,
		TenantID:         inv.TenantID,
		Number:           inv.Number,
		Type:             string(inv.Type),
		Status:           string(inv.Status),
		SellerCompanyID:  inv.SellerCompanyID,
		ContractorID:     inv.ContractorID,
		SaleDate:         inv.SaleDate,
		PaymentMethod:    inv.PaymentMethod,
		Currency:         inv.Currency,
		Lines:            lines,
		TotalNet:         inv.TotalNet,
		TotalVAT:         inv.TotalVAT,
		TotalGross:       inv.TotalGross,
		Mirrored:         inv.Mirrored,
		SourceInvoiceID:  inv.SourceInvoiceID,
		SourceDocumentID: inv.SourceDocumentID,
		Notes:            inv.Notes,
		PaidAt:           inv.PaidAt,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
	if !inv.IssueDate.IsZero() {
		issueDate := inv.IssueDate
		resp.IssueDate = &issueDate
	}
	if !inv.DueDate.IsZero() {
		dueDate := inv.DueDate
		resp.DueDate = &dueDate
	}
	return resp
}

// ToRecurringResponse converts a domain schedule to its response DTO
func ToRecurringResponse(r *invoicing.RecurringInvoice) RecurringResponse {
	return RecurringResponse{
		ID:                r.ID,
		TenantID:          r.TenantID,
		OriginalInvoiceID: r.OriginalInvoiceID,
		Frequency:         string(r.Frequency),
		NextGeneration:    r.NextGeneration,
		EndDate:           r.EndDate,
		MaxCycles:         r.MaxCycles,
		GeneratedCount:    r.GeneratedCount,
		Active:            r.Active,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
