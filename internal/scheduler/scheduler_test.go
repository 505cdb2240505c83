package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"jobtrack/internal/metrics"
	"jobtrack/internal/model"
	"jobtrack/internal/tracker"
)

// pulseFetcher returns the same batch on every call and counts calls.
type pulseFetcher struct {
	calls    atomic.Int32
	postings []model.Posting
}

func (f *pulseFetcher) FetchPostings(context.Context) ([]model.Posting, error) {
	f.calls.Add(1)
	return f.postings, nil
}

// memStore is a SeenStore kept entirely in memory.
type memStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newMemStore() *memStore {
	return &memStore{seen: make(map[string]struct{})}
}

func (s *memStore) Contains(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[id]
	return ok, nil
}

func (s *memStore) AddAll(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.seen[id] = struct{}{}
	}
	return nil
}

func (s *memStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen), nil
}

func (s *memStore) Backend() string { return "memory" }
func (s *memStore) Close() error    { return nil }

// captureNotifier counts Notify calls and keeps the most recent batch.
type captureNotifier struct {
	mu    sync.Mutex
	calls int
	last  []model.Posting
}

func (n *captureNotifier) Notify(postings []model.Posting) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	n.last = append([]model.Posting(nil), postings...)
	return nil
}

func (n *captureNotifier) snapshot() (int, []model.Posting) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls, n.last
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScheduler(fetcher model.PostingFetcher, n model.Notifier, interval time.Duration) *Scheduler {
	logger := discardLogger()
	sources := []tracker.Source{
		{Name: "testco", Kind: model.SourceGreenhouse, Fetcher: fetcher},
	}
	collector := tracker.NewCollector(sources, logger)
	runner := tracker.NewRunner(collector, newMemStore(), metrics.New(prometheus.NewRegistry()), logger)
	return NewScheduler(runner, n, interval, logger)
}

func TestRun_CancelReturnsPromptly(t *testing.T) {
	s := newTestScheduler(&pulseFetcher{}, &captureNotifier{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() after cancel = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() still blocked 2s after cancel")
	}
}

func TestRun_CyclesOnInterval(t *testing.T) {
	fetcher := &pulseFetcher{}
	s := newTestScheduler(fetcher, &captureNotifier{}, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// Enough time for the immediate cycle plus at least one tick.
	time.Sleep(250 * time.Millisecond)
	cancel()
	<-done

	if got := fetcher.calls.Load(); got < 2 {
		t.Errorf("ran %d cycles in 250ms at a 100ms interval, want at least 2", got)
	}
}

func TestRun_NotifiesOnlyOnNewPostings(t *testing.T) {
	fetcher := &pulseFetcher{postings: []model.Posting{
		{ID: "gh_acme_1", Title: "Engineer", Company: "Acme", Source: "greenhouse"},
	}}
	n := &captureNotifier{}
	s := newTestScheduler(fetcher, n, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// First cycle sees the posting as new; later cycles see it as known.
	time.Sleep(250 * time.Millisecond)
	cancel()
	<-done

	if got := fetcher.calls.Load(); got < 2 {
		t.Fatalf("ran %d cycles, want at least 2", got)
	}
	calls, last := n.snapshot()
	if calls != 1 {
		t.Errorf("Notify called %d times, want once (just the cycle that found something)", calls)
	}
	if len(last) != 1 || last[0].ID != "gh_acme_1" {
		t.Errorf("notified batch = %v, want the single new posting", last)
	}
}

func TestRun_NoNotifyWhenNothingFetched(t *testing.T) {
	n := &captureNotifier{}
	s := newTestScheduler(&pulseFetcher{}, n, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	if calls, _ := n.snapshot(); calls != 0 {
		t.Errorf("Notify called %d times for empty fetches, want 0", calls)
	}
}
