// Package tracker runs the fetch-and-dedup pipeline at the heart of
// jobtrack: collect postings from every configured source, partition them
// against the seen-store, and surface only the new ones.
package tracker

import (
	"context"
	"log/slog"

	"jobtrack/internal/model"
)

// Source pairs a configured board with its adapter.
type Source struct {
	Name    string
	Kind    model.SourceKind
	Fetcher model.PostingFetcher
}

// Collector fetches every configured source sequentially, in configuration
// order, and concatenates the results.
type Collector struct {
	sources []Source
	logger  *slog.Logger
}

func NewCollector(sources []Source, logger *slog.Logger) *Collector {
	return &Collector{
		sources: sources,
		logger:  logger,
	}
}

// Collect runs each source's fetch in order. A failing source is logged
// and contributes nothing; the aggregate itself never fails.
func (c *Collector) Collect(ctx context.Context) []model.Posting {
	var all []model.Posting
	for _, src := range c.sources {
		if ctx.Err() != nil {
			c.logger.Info("collect interrupted", "fetched_so_far", len(all))
			return all
		}

		postings, err := src.Fetcher.FetchPostings(ctx)
		if err != nil {
			c.logger.Error("source fetch failed", "source", src.Name, "kind", src.Kind.String(), "error", err)
			continue
		}

		c.logger.Debug("source fetched", "source", src.Name, "postings", len(postings))
		all = append(all, postings...)
	}
	return all
}
