// Package scheduler runs the periodic background jobs: recurring invoice
// generation and the partnership mirroring sweep.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/faktulove/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RecurringGenerator generates invoices for schedules that are due
type RecurringGenerator interface {
	GenerateDue(ctx context.Context, now time.Time) (int, error)
}

// MirrorSweeper re-mirrors issued invoices the event path missed
type MirrorSweeper interface {
	SweepPartnerships(ctx context.Context) (int, error)
}

// Scheduler drives the periodic jobs on their configured intervals
type Scheduler struct {
	config    config.SchedulerConfig
	recurring RecurringGenerator
	sweeper   MirrorSweeper
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a new Scheduler
func NewScheduler(cfg config.SchedulerConfig, recurring RecurringGenerator, sweeper MirrorSweeper, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		config:    cfg,
		recurring: recurring,
		sweeper:   sweeper,
		logger:    logger,
	}
}

// Start launches the job loops. Both jobs run once on startup so a restart
// does not wait a full interval to catch up.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(2)
	go s.runLoop(ctx, "recurring_invoices", s.config.RecurringInterval, s.runRecurring)
	go s.runLoop(ctx, "mirror_sweep", s.config.MirrorSweepInterval, s.runSweep)

	s.logger.Info("scheduler started",
		zap.Duration("recurring_interval", s.config.RecurringInterval),
		zap.Duration("mirror_sweep_interval", s.config.MirrorSweepInterval),
	)
	return nil
}

// Stop waits for running jobs to finish, bounded by the context
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runLoop(ctx context.Context, name string, interval time.Duration, job func(context.Context)) {
	defer s.wg.Done()

	s.runJob(ctx, name, job)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJob(ctx, name, job)
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, name string, job func(context.Context)) {
	jobCtx := ctx
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled job panicked",
				zap.String("job", name),
				zap.Any("panic", r),
			)
		}
	}()

	job(jobCtx)
}

func (s *Scheduler) runRecurring(ctx context.Context) {
	generated, err := s.recurring.GenerateDue(ctx, time.Now())
	if err != nil {
		s.logger.Error("recurring invoice generation failed", zap.Error(err))
		return
	}
	if generated > 0 {
		s.logger.Info("generated recurring invoices", zap.Int("count", generated))
	}
}

func (s *Scheduler) runSweep(ctx context.Context) {
	mirrored, err := s.sweeper.SweepPartnerships(ctx)
	if err != nil {
		s.logger.Error("mirror sweep failed", zap.Error(err))
		return
	}
	if mirrored > 0 {
		s.logger.Info("mirror sweep caught up invoices", zap.Int("count", mirrored))
	}
}
