package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

const jobTimeout = time.Minute

// Flusher writes pending mirror writes to the remote store.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Pruner deletes evaluation history older than the retention.
type Pruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// Scheduler manages the periodic maintenance jobs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	flusher   Flusher // nil when no remote mirror is configured
	pruner    Pruner
	retention time.Duration
	logger    *slog.Logger
}

// New creates a scheduler whose daily jobs run in loc.
func New(loc *time.Location, flusher Flusher, pruner Pruner, retention time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		flusher:   flusher,
		pruner:    pruner,
		retention: retention,
		logger:    logger,
	}
}

// Start registers the jobs and runs them in the background.
func (s *Scheduler) Start() error {
	if s.flusher != nil {
		if _, err := s.scheduler.Every(1).Minute().Do(s.flushMirror); err != nil {
			return fmt.Errorf("failed to schedule mirror flush: %w", err)
		}
	}
	if _, err := s.scheduler.Every(1).Day().At("03:00").Do(s.pruneEvaluations); err != nil {
		return fmt.Errorf("failed to schedule evaluation pruning: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Jobs is the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}

func (s *Scheduler) flushMirror() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.flusher.Flush(ctx); err != nil {
		s.logger.Error("scheduled mirror flush failed", "error", err)
	}
}

func (s *Scheduler) pruneEvaluations() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.pruner.Prune(ctx, s.retention)
	if err != nil {
		s.logger.Error("scheduled evaluation pruning failed", "error", err)
		return
	}
	s.logger.Info("evaluations pruned", "deleted", n, "retention", s.retention.String())
}
