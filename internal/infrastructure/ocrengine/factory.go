package ocrengine

import (
	"context"
	"fmt"

	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/faktulove/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewRecognizer picks the recognition engine from configuration
func NewRecognizer(ctx context.Context, cfg *config.OCRConfig, files ocr.FileStore, logger *zap.Logger) (ocr.Recognizer, error) {
	switch cfg.Engine {
	case "documentai":
		return NewDocumentAIRecognizer(ctx, cfg, files, logger)
	case "stub", "":
		return NewStubRecognizer(), nil
	default:
		return nil, fmt.Errorf("unknown ocr engine: %s", cfg.Engine)
	}
}
