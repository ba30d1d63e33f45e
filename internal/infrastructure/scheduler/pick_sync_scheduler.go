// Package scheduler runs periodic background jobs for the warehouse backend.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wms/backend/internal/application/fulfillment"
)

// PickSyncSchedulerConfig holds configuration for the pick ticket sync scheduler
type PickSyncSchedulerConfig struct {
	// Interval is how often the pick ticket backlog is swept
	Interval time.Duration
}

// DefaultPickSyncSchedulerConfig returns default configuration
func DefaultPickSyncSchedulerConfig() PickSyncSchedulerConfig {
	return PickSyncSchedulerConfig{
		Interval: time.Minute,
	}
}

// PickSyncScheduler periodically drives the pick ticket sync service so that
// ready tickets become shipments without manual intervention
type PickSyncScheduler struct {
	config PickSyncSchedulerConfig
	sync   *fulfillment.SyncService
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewPickSyncScheduler creates a new pick ticket sync scheduler
func NewPickSyncScheduler(config PickSyncSchedulerConfig, syncService *fulfillment.SyncService, logger *zap.Logger) *PickSyncScheduler {
	return &PickSyncScheduler{
		config: config,
		sync:   syncService,
		logger: logger,
	}
}

// Start starts the scheduler loop
func (s *PickSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Pick sync scheduler started",
		zap.Duration("interval", s.config.Interval),
	)

	return nil
}

// Stop stops the scheduler and waits for the current sweep to finish
func (s *PickSyncScheduler) Stop(ctx context.Context) error {
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
		s.logger.Info("Pick sync scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop sweeps the backlog on every tick
func (s *PickSyncScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Run immediately on start
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *PickSyncScheduler) sweep(ctx context.Context) {
	result, err := s.sync.Run(ctx)
	if err != nil {
		s.logger.Error("Pick ticket sync sweep failed", zap.Error(err))
		return
	}

	if result.Scanned == 0 {
		s.logger.Debug("Pick ticket backlog empty")
		return
	}

	s.logger.Info("Pick ticket sync sweep completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failures", result.Failures),
	)
}
