package tracker

import (
	"fmt"
	"log/slog"

	"jobtrack/internal/model"
)

// Deduper partitions batches of postings into new vs already-seen against
// a SeenStore.
type Deduper struct {
	store  model.SeenStore
	logger *slog.Logger
}

func NewDeduper(store model.SeenStore, logger *slog.Logger) *Deduper {
	return &Deduper{
		store:  store,
		logger: logger,
	}
}

// FindNew returns the postings whose ids are not yet in the store,
// preserving input order, and commits their ids with a single AddAll after
// the whole batch is partitioned. Postings without an id are dropped: an
// unidentifiable posting can never be proven new.
//
// A failed commit is logged but does not fail the partition; the ids are
// simply recorded on a later successful cycle instead.
func (d *Deduper) FindNew(postings []model.Posting) ([]model.Posting, error) {
	var fresh []model.Posting
	var freshIDs []string

	for _, p := range postings {
		if p.ID == "" {
			d.logger.Warn("dropping posting without id", "title", p.Title, "source", p.Source)
			continue
		}

		seen, err := d.store.Contains(p.ID)
		if err != nil {
			return nil, fmt.Errorf("checking seen status for %s: %w", p.ID, err)
		}
		if seen {
			continue
		}

		fresh = append(fresh, p)
		freshIDs = append(freshIDs, p.ID)
	}

	if len(freshIDs) > 0 {
		if err := d.store.AddAll(freshIDs); err != nil {
			d.logger.Error("persisting seen ids failed", "count", len(freshIDs), "error", err)
		}
	}

	return fresh, nil
}
