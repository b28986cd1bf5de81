package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// AnalyticsRetentionStore deletes search events older than a cutoff.
type AnalyticsRetentionStore interface {
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionSweeper prunes aged search events on each poll cycle. Events are
// append-only, so the sweeper is the only thing that ever removes them.
type RetentionSweeper struct {
	store     AnalyticsRetentionStore
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewRetentionSweeper creates a sweeper that keeps events for the given
// retention window.
func NewRetentionSweeper(store AnalyticsRetentionStore, retention time.Duration, logger *zap.Logger) *RetentionSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetentionSweeper{
		store:     store,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// ProcessJobs implements JobProcessor.
func (s *RetentionSweeper) ProcessJobs(ctx context.Context) error {
	cutoff := s.now().Add(-s.retention)

	deleted, err := s.store.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune search events: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("pruned search events",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}

	return nil
}
