package scheduler

import (
	"context"
	"sync"

	"github.com/faktulove/backend/internal/domain/ocr"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentProcessor runs recognition for one pending result
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, resultID uuid.UUID) error
}

// OCRWorkerPool takes recognition work off the request path. It subscribes
// to result-created events and feeds a bounded number of workers; uploads
// return immediately while recognition happens here.
type OCRWorkerPool struct {
	processor DocumentProcessor
	logger    *zap.Logger
	queue     chan uuid.UUID
	workers   int

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewOCRWorkerPool creates a pool with the given number of workers
func NewOCRWorkerPool(processor DocumentProcessor, workers int, logger *zap.Logger) *OCRWorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &OCRWorkerPool{
		processor: processor,
		logger:    logger,
		queue:     make(chan uuid.UUID, workers*16),
		workers:   workers,
	}
}

// Start launches the workers
func (p *OCRWorkerPool) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}

	p.logger.Info("ocr worker pool started", zap.Int("workers", p.workers))
	return nil
}

// Stop drains the workers, bounded by the context
func (p *OCRWorkerPool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("ocr worker pool stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handle enqueues newly created results for recognition. A full queue drops
// the event; the result stays pending and can be reprocessed later.
func (p *OCRWorkerPool) Handle(ctx context.Context, event shared.DomainEvent) error {
	select {
	case p.queue <- event.AggregateID():
		return nil
	default:
		p.logger.Warn("ocr queue full, result left pending",
			zap.String("result_id", event.AggregateID().String()),
		)
		return nil
	}
}

// EventTypes subscribes the pool to result creation
func (p *OCRWorkerPool) EventTypes() []string {
	return []string{ocr.EventTypeResultCreated}
}

func (p *OCRWorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case resultID := <-p.queue:
			if err := p.processor.ProcessDocument(ctx, resultID); err != nil {
				p.logger.Error("document recognition failed",
					zap.String("result_id", resultID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

// Ensure OCRWorkerPool implements EventHandler
var _ shared.EventHandler = (*OCRWorkerPool)(nil)
