package compliance

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Severity classifies a compliance finding
type Severity string

const (
	SeverityViolation Severity = "violation"
	SeverityWarning   Severity = "warning"
)

// Finding is a single rule result produced by the invoice linter
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the outcome of a compliance check: a 0-100 score plus the
// findings that produced it. Each violation costs 20 points, each warning 5,
// floored at zero.
type Report struct {
	Score      int       `json:"score"`
	Violations []Finding `json:"violations"`
	Warnings   []Finding `json:"warnings"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Compliant reports whether the invoice passed without violations
func (r *Report) Compliant() bool {
	return len(r.Violations) == 0
}

// LineData is the plain representation of an invoice line fed to the linter
type LineData struct {
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	VATRate   string
	Net       decimal.Decimal
	VAT       decimal.Decimal
	Gross     decimal.Decimal
}

// InvoiceData is the plain representation of an invoice fed to the linter.
// It deliberately carries no ORM types so the checker stays stateless and
// usable against both stored invoices and OCR extractions.
type InvoiceData struct {
	Number     string
	SellerName string
	SellerNIP  string
	BuyerName  string
	BuyerNIP   string
	IssueDate  time.Time
	SaleDate   time.Time
	DueDate    time.Time
	Currency   string
	TotalNet   decimal.Decimal
	TotalVAT   decimal.Decimal
	TotalGross decimal.Decimal
	Lines      []LineData
}

const (
	scoreViolation = 20
	scoreWarning   = 5

	// arithmeticTolerance is the maximum accepted drift between declared and
	// recomputed amounts, matching Polish rounding practice.
	arithmeticTolerance = "0.01"
)

var (
	invoiceNumberPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/\-\. ]*$`)
	knownVATRates        = map[string]decimal.Decimal{
		"23": decimal.NewFromFloat(0.23),
		"8":  decimal.NewFromFloat(0.08),
		"5":  decimal.NewFromFloat(0.05),
		"0":  decimal.Zero,
		"zw": decimal.Zero,
		"np": decimal.Zero,
	}
)

// VATRateValue returns the numeric rate for a Polish VAT rate symbol
func VATRateValue(rate string) (decimal.Decimal, bool) {
	v, ok := knownVATRates[strings.ToLower(strings.TrimSpace(rate))]
	return v, ok
}

// CheckInvoice runs the full rule set over the invoice data and returns a
// scored report. The checker is deterministic: same input, same report.
func CheckInvoice(data InvoiceData, now time.Time) *Report {
	var findings []Finding
	findings = append(findings, checkRequiredFields(data)...)
	findings = append(findings, checkNIPs(data)...)
	findings = append(findings, checkNumber(data)...)
	findings = append(findings, checkDates(data, now)...)
	findings = append(findings, checkAmounts(data)...)
	findings = append(findings, checkArithmetic(data)...)

	report := &Report{CheckedAt: now}
	score := 100
	for _, f := range findings {
		switch f.Severity {
		case SeverityViolation:
			report.Violations = append(report.Violations, f)
			score -= scoreViolation
		case SeverityWarning:
			report.Warnings = append(report.Warnings, f)
			score -= scoreWarning
		}
	}
	if score < 0 {
		score = 0
	}
	report.Score = score
	return report
}

func violation(rule, msg string) Finding {
	return Finding{Rule: rule, Severity: SeverityViolation, Message: msg}
}

func warning(rule, msg string) Finding {
	return Finding{Rule: rule, Severity: SeverityWarning, Message: msg}
}

func checkRequiredFields(data InvoiceData) []Finding {
	var out []Finding
	required := []struct {
		rule  string
		value string
		label string
	}{
		{"required.number", data.Number, "invoice number"},
		{"required.seller_name", data.SellerName, "seller name"},
		{"required.seller_nip", data.SellerNIP, "seller NIP"},
		{"required.buyer_name", data.BuyerName, "buyer name"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			out = append(out, violation(f.rule, fmt.Sprintf("missing %s", f.label)))
		}
	}
	if len(data.Lines) == 0 {
		out = append(out, violation("required.lines", "invoice has no line items"))
	}
	if strings.TrimSpace(data.BuyerNIP) == "" {
		// B2C invoices legitimately omit the buyer NIP
		out = append(out, warning("required.buyer_nip", "missing buyer NIP"))
	}
	return out
}

func checkNIPs(data InvoiceData) []Finding {
	var out []Finding
	if data.SellerNIP != "" && !ValidateNIP(data.SellerNIP) {
		out = append(out, violation("nip.seller", fmt.Sprintf("seller NIP %q fails checksum validation", data.SellerNIP)))
	}
	if data.BuyerNIP != "" && !ValidateNIP(data.BuyerNIP) {
		out = append(out, violation("nip.buyer", fmt.Sprintf("buyer NIP %q fails checksum validation", data.BuyerNIP)))
	}
	return out
}

func checkNumber(data InvoiceData) []Finding {
	if data.Number == "" {
		return nil // already a required-field violation
	}
	if !invoiceNumberPattern.MatchString(data.Number) {
		return []Finding{warning("number.format", fmt.Sprintf("invoice number %q has an unusual format", data.Number))}
	}
	return nil
}

func checkDates(data InvoiceData, now time.Time) []Finding {
	var out []Finding
	if data.IssueDate.IsZero() {
		out = append(out, violation("dates.issue", "missing issue date"))
		return out
	}
	if !data.SaleDate.IsZero() && data.SaleDate.After(data.IssueDate.AddDate(0, 0, 30)) {
		out = append(out, warning("dates.sale_after_issue", "sale date is more than 30 days after the issue date"))
	}
	if !data.DueDate.IsZero() && data.DueDate.Before(data.IssueDate) {
		out = append(out, violation("dates.due_before_issue", "due date precedes the issue date"))
	}
	if data.IssueDate.After(now.AddDate(0, 0, 1)) {
		out = append(out, violation("dates.future_issue", "issue date is in the future"))
	}
	return out
}

func checkAmounts(data InvoiceData) []Finding {
	var out []Finding
	if data.Currency != "" && len(data.Currency) != 3 {
		out = append(out, warning("currency.code", fmt.Sprintf("currency %q is not a 3-letter code", data.Currency)))
	}
	if data.TotalGross.IsNegative() {
		out = append(out, violation("amounts.negative_gross", "total gross amount is negative"))
	}
	if data.TotalGross.IsZero() && len(data.Lines) > 0 {
		out = append(out, warning("amounts.zero_gross", "total gross amount is zero"))
	}
	return out
}

// checkArithmetic recomputes every line and the totals, accepting drift up to
// the tolerance on each comparison.
func checkArithmetic(data InvoiceData) []Finding {
	var out []Finding
	tolerance := decimal.RequireFromString(arithmeticTolerance)

	lineNet := decimal.Zero
	lineVAT := decimal.Zero
	lineGross := decimal.Zero
	for i, line := range data.Lines {
		rate, ok := VATRateValue(line.VATRate)
		if !ok {
			out = append(out, violation("vat.rate", fmt.Sprintf("line %d: unknown VAT rate %q", i+1, line.VATRate)))
			continue
		}

		expectedNet := line.Quantity.Mul(line.UnitPrice).Round(2)
		if !line.Net.IsZero() && expectedNet.Sub(line.Net).Abs().GreaterThan(tolerance) {
			out = append(out, violation("vat.line_net",
				fmt.Sprintf("line %d: declared net %s does not match computed %s", i+1, line.Net, expectedNet)))
		}
		expectedVAT := expectedNet.Mul(rate).Round(2)
		if !line.VAT.IsZero() && expectedVAT.Sub(line.VAT).Abs().GreaterThan(tolerance) {
			out = append(out, violation("vat.line_vat",
				fmt.Sprintf("line %d: declared VAT %s does not match computed %s", i+1, line.VAT, expectedVAT)))
		}

		lineNet = lineNet.Add(expectedNet)
		lineVAT = lineVAT.Add(expectedVAT)
		lineGross = lineGross.Add(expectedNet.Add(expectedVAT))
	}

	if len(data.Lines) > 0 {
		if !data.TotalNet.IsZero() && lineNet.Sub(data.TotalNet).Abs().GreaterThan(tolerance) {
			out = append(out, violation("vat.total_net",
				fmt.Sprintf("declared total net %s does not match line sum %s", data.TotalNet, lineNet)))
		}
		if !data.TotalVAT.IsZero() && lineVAT.Sub(data.TotalVAT).Abs().GreaterThan(tolerance) {
			out = append(out, violation("vat.total_vat",
				fmt.Sprintf("declared total VAT %s does not match line sum %s", data.TotalVAT, lineVAT)))
		}
		if !data.TotalGross.IsZero() && lineGross.Sub(data.TotalGross).Abs().GreaterThan(tolerance) {
			out = append(out, violation("vat.total_gross",
				fmt.Sprintf("declared total gross %s does not match line sum %s", data.TotalGross, lineGross)))
		}
	}
	return out
}
