// Package cleanup recovers video analyses left in processing by a crash or
// restart.
package cleanup

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// InterruptedMessage is stored on videos whose analysis never finished
const InterruptedMessage = "analysis interrupted before completion"

// Repository is the persistence the cleanup service needs
type Repository interface {
	FailStaleVideos(ctx context.Context, cutoff time.Time, message string) (int64, error)
}

// Service periodically marks stale processing videos as failed so every
// analysis ends in a terminal status
type Service struct {
	repository      Repository
	maxAge          time.Duration
	cleanupInterval time.Duration
	logger          *zap.Logger
	now             func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewService creates a cleanup service. Videos processing for longer than
// maxAge are failed every cleanupInterval.
func NewService(repository Repository, maxAge, cleanupInterval time.Duration, logger *zap.Logger) *Service {
	if maxAge <= 0 {
		maxAge = 30 * time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repository:      repository,
		maxAge:          maxAge,
		cleanupInterval: cleanupInterval,
		logger:          logger,
		now:             time.Now,
	}
}

// Start runs one sweep immediately, then sweeps in the background until
// Stop is called or ctx ends
func (s *Service) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	s.Sweep(ctx)

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep(ctx)
			case <-ctx.Done():
				s.logger.Debug("Cleanup service stopped")
				return
			}
		}
	}()

	s.logger.Info("Cleanup service started",
		zap.Duration("interval", s.cleanupInterval),
		zap.Duration("max_age", s.maxAge))
}

// Stop stops the background sweeps and waits for the current one
func (s *Service) Stop() {
	s.once.Do(func() {
		if s.cancel == nil {
			return
		}
		s.cancel()
		<-s.done
	})
}

// Sweep fails videos that have been processing for longer than maxAge
func (s *Service) Sweep(ctx context.Context) int64 {
	failed, err := s.repository.FailStaleVideos(ctx, s.now().UTC().Add(-s.maxAge), InterruptedMessage)
	if err != nil {
		s.logger.Error("Failed to recover stale analyses", zap.Error(err))
		return 0
	}
	if failed > 0 {
		s.logger.Warn("Marked stale analyses as failed", zap.Int64("videos", failed))
	}
	return failed
}
