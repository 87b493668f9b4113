package storage

import (
	"fmt"

	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/faktulove/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewFileStore picks the file store implementation from configuration
func NewFileStore(cfg *config.StorageConfig, logger *zap.Logger) (ocr.FileStore, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3FileStore(cfg, logger)
	case "local", "":
		return NewLocalFileStore(cfg.LocalDir)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
