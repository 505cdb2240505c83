package scheduler

import (
	"context"
	"log/slog"
	"time"

	"jobtrack/internal/model"
	"jobtrack/internal/tracker"
)

// Scheduler owns the watch loop: ticks on an interval and runs one tracking
// cycle per tick, notifying on anything new.
type Scheduler struct {
	runner   *tracker.Runner
	notifier model.Notifier
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs a cycle at the given interval.
func NewScheduler(runner *tracker.Runner, notifier model.Notifier, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the watch loop: one immediate cycle, then a cycle per interval,
// counted from the end of the previous one. A cancelled ctx stops the loop
// cleanly and returns nil.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler running", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

// runOnce runs a single cycle and pushes any new postings to the notifier.
// Failures are logged, never fatal; the loop keeps its schedule.
func (s *Scheduler) runOnce(ctx context.Context) {
	result, err := s.runner.RunCycle(ctx)
	if err != nil {
		s.logger.Error("cycle failed",
			"error", err,
		)
		return
	}

	if len(result.New) == 0 {
		return
	}

	if err := s.notifier.Notify(result.New); err != nil {
		s.logger.Error("notify failed",
			"new_postings", len(result.New),
			"error", err,
		)
	}
}
