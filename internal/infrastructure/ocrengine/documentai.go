// Package ocrengine provides document recognition engines for uploaded scans.
package ocrengine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/faktulove/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const processTimeout = 60 * time.Second

// DocumentAIRecognizer extracts invoice fields through Google Document AI's
// invoice processor
type DocumentAIRecognizer struct {
	client    *documentai.DocumentProcessorClient
	files     ocr.FileStore
	projectID string
	location  string
	processor string
	logger    *zap.Logger
}

// NewDocumentAIRecognizer creates the client against the regional endpoint
func NewDocumentAIRecognizer(ctx context.Context, cfg *config.OCRConfig, files ocr.FileStore, logger *zap.Logger) (*DocumentAIRecognizer, error) {
	if cfg.ProjectID == "" || cfg.ProcessorID == "" {
		return nil, errors.New("documentai requires project_id and processor_id")
	}
	location := cfg.Location
	if location == "" {
		location = "eu"
	}

	var opts []option.ClientOption
	if location != "us" {
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("%s-documentai.googleapis.com:443", location)))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}

	return &DocumentAIRecognizer{
		client:    client,
		files:     files,
		projectID: cfg.ProjectID,
		location:  location,
		processor: cfg.ProcessorID,
		logger:    logger,
	}, nil
}

// Recognize reads the stored document and runs it through the processor
func (r *DocumentAIRecognizer) Recognize(ctx context.Context, storageKey, contentType string) (*ocr.Recognition, error) {
	reader, err := r.files.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	processCtx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	resp, err := r.client.ProcessDocument(processCtx, &documentaipb.ProcessRequest{
		Name: fmt.Sprintf("projects/%s/locations/%s/processors/%s",
			r.projectID, r.location, r.processor),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: contentType,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("document processing failed: %w", err)
	}
	if resp.Document == nil {
		return nil, errors.New("document processing returned no document")
	}

	return r.extract(resp.Document), nil
}

// Close releases the underlying gRPC connection
func (r *DocumentAIRecognizer) Close() error {
	return r.client.Close()
}

// extract maps processor entities onto invoice fields. Overall confidence is
// the average entity confidence scaled to 0-100.
func (r *DocumentAIRecognizer) extract(doc *documentaipb.Document) *ocr.Recognition {
	data := ocr.ExtractedData{Currency: "PLN"}

	var confidenceSum float64
	var confidenceCount int

	for _, entity := range doc.Entities {
		value := strings.TrimSpace(entity.MentionText)
		confidenceSum += float64(entity.Confidence)
		confidenceCount++

		switch entity.Type {
		case "invoice_id", "invoice_number":
			data.InvoiceNumber = value
		case "supplier_name", "vendor_name":
			data.SellerName = value
		case "supplier_tax_id":
			data.SellerNIP = normalizeNIP(value)
		case "receiver_name", "buyer_name", "customer_name":
			data.BuyerName = value
		case "receiver_tax_id", "buyer_tax_id":
			data.BuyerNIP = normalizeNIP(value)
		case "invoice_date":
			if date, ok := parseDate(value); ok {
				data.IssueDate = &date
			}
		case "due_date":
			if date, ok := parseDate(value); ok {
				data.DueDate = &date
			}
		case "net_amount", "subtotal_amount":
			if amount, err := parseAmount(value); err == nil {
				data.TotalNet = amount
			} else {
				r.logger.Warn("unparseable net amount", zap.String("value", value))
			}
		case "total_tax_amount", "vat_amount":
			if amount, err := parseAmount(value); err == nil {
				data.TotalVAT = amount
			}
		case "total_amount", "gross_amount":
			if amount, err := parseAmount(value); err == nil {
				data.TotalGross = amount
			} else {
				r.logger.Warn("unparseable gross amount", zap.String("value", value))
			}
		case "currency":
			if len(value) == 3 {
				data.Currency = strings.ToUpper(value)
			}
		}
	}

	confidence := 0.0
	if confidenceCount > 0 {
		confidence = confidenceSum / float64(confidenceCount) * 100
	}

	return &ocr.Recognition{Data: data, Confidence: confidence}
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// normalizeNIP strips the PL prefix and separators from a tax identifier
func normalizeNIP(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

var dateLayouts = []string{"2006-01-02", "02.01.2006", "02-01-2006", "02/01/2006"}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

// parseAmount handles Polish number formatting: spaces as thousands
// separators, comma as the decimal mark
func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(
		" ", "",
		" ", "",
		"zł", "",
		"PLN", "",
		",", ".",
	).Replace(value)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	return decimal.NewFromString(cleaned)
}

// Ensure DocumentAIRecognizer implements Recognizer
var _ ocr.Recognizer = (*DocumentAIRecognizer)(nil)
