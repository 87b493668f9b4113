package invoicing

import (
	"fmt"
	"time"
)

// Series prefixes for invoice numbering, per document type.
const (
	SeriesPrefixSales = "FV"
	SeriesPrefixCost  = "FK"
)

// SeriesPrefix returns the numbering prefix for an invoice type
func SeriesPrefix(typ InvoiceType) string {
	if typ == TypeCost {
		return SeriesPrefixCost
	}
	return SeriesPrefixSales
}

// FormatNumber renders an invoice number in the FV/0001/MM/YYYY convention.
// The sequence restarts every month within a tenant.
func FormatNumber(typ InvoiceType, seq int, date time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/%d", SeriesPrefix(typ), seq, int(date.Month()), date.Year())
}
