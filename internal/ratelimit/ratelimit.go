package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"jobtrack/internal/model"
)

// KindLimiter enforces a minimum gap between requests to the same upstream
// platform. Every source of one kind shares a limiter, so polling several
// greenhouse boards still paces the calls greenhouse sees.
type KindLimiter struct {
	limiters map[model.SourceKind]*rate.Limiter
}

// NewKindLimiter creates a limiter allowing one request per minDelay for
// each kind. A zero or negative delay disables waiting.
func NewKindLimiter(minDelay time.Duration) *KindLimiter {
	limit := rate.Inf
	if minDelay > 0 {
		limit = rate.Every(minDelay)
	}
	return &KindLimiter{
		limiters: map[model.SourceKind]*rate.Limiter{
			model.SourceGreenhouse: rate.NewLimiter(limit, 1),
			model.SourceLever:      rate.NewLimiter(limit, 1),
		},
	}
}

// Wait blocks until the kind's limiter allows a request or ctx is
// cancelled.
func (l *KindLimiter) Wait(ctx context.Context, kind model.SourceKind) error {
	limiter, ok := l.limiters[kind]
	if !ok {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", kind, err)
	}
	return nil
}

// LimitedFetcher is a decorator that enforces platform-level pacing before
// delegating to the wrapped PostingFetcher.
type LimitedFetcher struct {
	inner   model.PostingFetcher
	limiter *KindLimiter
	kind    model.SourceKind
}

// NewLimitedFetcher wraps a PostingFetcher with platform-level pacing.
// All fetchers of the same kind should share the same limiter instance.
func NewLimitedFetcher(inner model.PostingFetcher, limiter *KindLimiter, kind model.SourceKind) *LimitedFetcher {
	return &LimitedFetcher{
		inner:   inner,
		limiter: limiter,
		kind:    kind,
	}
}

// FetchPostings waits for the limiter to allow a request, then delegates
// to the wrapped fetcher.
func (f *LimitedFetcher) FetchPostings(ctx context.Context) ([]model.Posting, error) {
	if err := f.limiter.Wait(ctx, f.kind); err != nil {
		return nil, err
	}
	return f.inner.FetchPostings(ctx)
}
