package ocr

import (
	"context"
	"io"

	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadService accepts document uploads and queues them for recognition
type UploadService struct {
	documentRepo   ocr.DocumentRepository
	resultRepo     ocr.ResultRepository
	fileStore      ocr.FileStore
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(documentRepo ocr.DocumentRepository, resultRepo ocr.ResultRepository, fileStore ocr.FileStore, logger *zap.Logger) *UploadService {
	return &UploadService{
		documentRepo: documentRepo,
		resultRepo:   resultRepo,
		fileStore:    fileStore,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *UploadService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Upload stores the file, registers the upload and creates the pending
// recognition result. The document status becomes "queued" through the
// result projection.
func (s *UploadService) Upload(ctx context.Context, tenantID, userID uuid.UUID, fileName, contentType string, size int64, body io.Reader) (*DocumentResponse, error) {
	doc, err := ocr.NewDocumentUpload(tenantID, userID, fileName, contentType, size)
	if err != nil {
		return nil, err
	}

	if err := s.fileStore.Put(ctx, doc.StorageKey, contentType, body, size); err != nil {
		return nil, err
	}

	result, err := ocr.NewOCRResult(tenantID, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.ApplyResultStatus(result.Status, doc.CreatedAt)

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.resultRepo.Save(ctx, result); err != nil {
		return nil, err
	}

	s.publish(ctx, doc.GetDomainEvents())
	doc.ClearDomainEvents()
	s.publish(ctx, result.GetDomainEvents())
	result.ClearDomainEvents()

	s.logger.Info("document queued for recognition",
		zap.String("document_id", doc.ID.String()),
		zap.String("file_name", doc.FileName))

	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// Get retrieves an upload with its current status
func (s *UploadService) Get(ctx context.Context, tenantID, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// List retrieves the tenant's uploads
func (s *UploadService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]DocumentResponse, int64, error) {
	items, err := s.documentRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.documentRepo.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]DocumentResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToDocumentResponse(&items[i]))
	}
	return responses, total, nil
}

// Cancel aborts recognition of an unfinished upload
func (s *UploadService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := doc.Cancel(); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	resp := ToDocumentResponse(doc)
	return &resp, nil
}

func (s *UploadService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		_ = s.eventPublisher.Publish(ctx, event)
	}
}
