package ocrengine

import (
	"context"
	"time"

	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/shopspring/decimal"
)

// StubRecognizer returns canned extraction data. Used in development setups
// without Document AI credentials.
type StubRecognizer struct {
	// Confidence lets tests steer the routing decision
	Confidence float64
}

// NewStubRecognizer creates a recognizer that reports high confidence
func NewStubRecognizer() *StubRecognizer {
	return &StubRecognizer{Confidence: 95}
}

// Recognize returns a fixed Polish invoice extraction
func (r *StubRecognizer) Recognize(ctx context.Context, storageKey, contentType string) (*ocr.Recognition, error) {
	issue := time.Now().AddDate(0, 0, -7).Truncate(24 * time.Hour)
	due := issue.AddDate(0, 0, 14)

	return &ocr.Recognition{
		Data: ocr.ExtractedData{
			InvoiceNumber: "FV/0001/01/2026",
			SellerNIP:     "5260250274",
			SellerName:    "Przykładowy Dostawca Sp. z o.o.",
			BuyerNIP:      "5252248481",
			BuyerName:     "Nabywca Testowy S.A.",
			IssueDate:     &issue,
			DueDate:       &due,
			TotalNet:      decimal.NewFromInt(1000),
			TotalVAT:      decimal.NewFromInt(230),
			TotalGross:    decimal.NewFromInt(1230),
			Currency:      "PLN",
		},
		Confidence: r.Confidence,
	}, nil
}

// Ensure StubRecognizer implements Recognizer
var _ ocr.Recognizer = (*StubRecognizer)(nil)
