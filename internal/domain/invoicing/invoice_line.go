package invoicing

import (
	"strings"

	"github.com/faktulove/backend/internal/domain/compliance"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLine is a single position on an invoice. Amounts are derived, never
// stored by the caller: Polish VAT practice rounds half-up to grosz precision
// at every step, which decimal.Round implements for non-negative amounts.
type InvoiceLine struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal // net price per unit
	VATRate   string          // 23, 8, 5, 0, zw, np
	Discount  decimal.Decimal // percentage, 0-100
}

// NewInvoiceLine creates a validated invoice line
func NewInvoiceLine(name string, quantity, unitPrice decimal.Decimal, unit, vatRate string, discount decimal.Decimal) (InvoiceLine, error) {
	if strings.TrimSpace(name) == "" {
		return InvoiceLine{}, shared.NewDomainError("INVALID_LINE", "Line item name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return InvoiceLine{}, shared.NewDomainError("INVALID_LINE", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return InvoiceLine{}, shared.NewDomainError("INVALID_LINE", "Unit price cannot be negative")
	}
	if _, ok := compliance.VATRateValue(vatRate); !ok {
		return InvoiceLine{}, shared.NewDomainError("INVALID_VAT_RATE", "Unknown VAT rate: "+vatRate)
	}
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return InvoiceLine{}, shared.NewDomainError("INVALID_LINE", "Discount must be between 0 and 100 percent")
	}
	if unit == "" {
		unit = "szt."
	}

	return InvoiceLine{
		ID:        uuid.New(),
		Name:      name,
		Quantity:  quantity,
		Unit:      unit,
		UnitPrice: unitPrice,
		VATRate:   strings.ToLower(strings.TrimSpace(vatRate)),
		Discount:  discount,
	}, nil
}

// Net returns the net value: quantity x unit price less discount, rounded half-up
func (l InvoiceLine) Net() decimal.Decimal {
	gross := l.Quantity.Mul(l.UnitPrice)
	if !l.Discount.IsZero() {
		factor := decimal.NewFromInt(1).Sub(l.Discount.Div(decimal.NewFromInt(100)))
		gross = gross.Mul(factor)
	}
	return gross.Round(2)
}

// VAT returns the VAT amount for the line, rounded half-up
func (l InvoiceLine) VAT() decimal.Decimal {
	rate, ok := compliance.VATRateValue(l.VATRate)
	if !ok {
		return decimal.Zero
	}
	return l.Net().Mul(rate).Round(2)
}

// Gross returns net plus VAT
func (l InvoiceLine) Gross() decimal.Decimal {
	return l.Net().Add(l.VAT())
}

// Copy returns a detached duplicate of the line with a fresh identity,
// used when mirroring an invoice or generating one from a recurring schedule.
func (l InvoiceLine) Copy() InvoiceLine {
	return InvoiceLine{
		ID:        uuid.New(),
		Name:      l.Name,
		Quantity:  l.Quantity,
		Unit:      l.Unit,
		UnitPrice: l.UnitPrice,
		VATRate:   l.VATRate,
		Discount:  l.Discount,
	}
}
