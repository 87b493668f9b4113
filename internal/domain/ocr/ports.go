package ocr

import (
	"context"
	"io"
)

// FileStore persists uploaded document files under their storage key
type FileStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Recognition is the outcome of running a document through the engine
type Recognition struct {
	Data       ExtractedData
	Confidence float64
}

// Recognizer extracts invoice fields from a stored document
type Recognizer interface {
	Recognize(ctx context.Context, storageKey, contentType string) (*Recognition, error)
}
