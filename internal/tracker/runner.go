package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"jobtrack/internal/metrics"
	"jobtrack/internal/model"
)

// Result is one cycle's output: everything fetched, and the subset never
// seen before.
type Result struct {
	All []model.Posting
	New []model.Posting
}

// Stats describes the seen-store for the stats surface.
type Stats struct {
	TotalSeen int
	Backend   string
}

// Runner owns the collect-then-dedup pipeline and the store behind it.
// Cycles are serialized: a second caller blocks until the running cycle
// finishes.
type Runner struct {
	mu        sync.Mutex
	collector *Collector
	deduper   *Deduper
	store     model.SeenStore
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewRunner(collector *Collector, store model.SeenStore, m *metrics.Metrics, logger *slog.Logger) *Runner {
	return &Runner{
		collector: collector,
		deduper:   NewDeduper(store, logger),
		store:     store,
		metrics:   m,
		logger:    logger,
	}
}

// RunCycle fetches every configured source and partitions the result
// against the seen-store.
func (r *Runner) RunCycle(ctx context.Context) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.collector.Collect(ctx)

	fresh, err := r.deduper.FindNew(all)
	if err != nil {
		r.metrics.CycleErrors.Inc()
		return Result{}, fmt.Errorf("dedup cycle: %w", err)
	}

	r.metrics.Cycles.Inc()
	for _, p := range all {
		r.metrics.PostingsFetched.WithLabelValues(p.Source).Inc()
	}
	r.metrics.NewPostings.Add(float64(len(fresh)))
	if count, err := r.store.Count(); err == nil {
		r.metrics.SeenIDs.Set(float64(count))
	}

	r.logger.Info("cycle complete", "fetched", len(all), "new", len(fresh))
	return Result{All: all, New: fresh}, nil
}

// Stats reports the store's size and backing identifier.
func (r *Runner) Stats() (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count, err := r.store.Count()
	if err != nil {
		return Stats{}, fmt.Errorf("reading store stats: %w", err)
	}
	return Stats{TotalSeen: count, Backend: r.store.Backend()}, nil
}
