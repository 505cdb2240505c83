package tracker

import (
	"context"
	"errors"
	"testing"

	"jobtrack/internal/model"
)

func TestCollect_ConcatenatesInConfigOrder(t *testing.T) {
	first := &MockFetcher{Postings: []model.Posting{posting("a1"), posting("a2")}}
	second := &MockFetcher{Postings: []model.Posting{posting("b1")}}
	c := NewCollector([]Source{
		{Name: "alpha", Kind: model.SourceGreenhouse, Fetcher: first},
		{Name: "beta", Kind: model.SourceLever, Fetcher: second},
	}, discardLogger())

	all := c.Collect(context.Background())

	got := ids(all)
	want := []string{"a1", "a2", "b1"}
	if len(got) != len(want) {
		t.Fatalf("Collect = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Collect = %v, want %v", got, want)
		}
	}
}

func TestCollect_PartialSourceFailure(t *testing.T) {
	failing := &MockFetcher{Err: errors.New("upstream down")}
	healthy := &MockFetcher{Postings: []model.Posting{posting("b1")}}
	c := NewCollector([]Source{
		{Name: "alpha", Kind: model.SourceGreenhouse, Fetcher: failing},
		{Name: "beta", Kind: model.SourceLever, Fetcher: healthy},
	}, discardLogger())

	all := c.Collect(context.Background())

	if len(all) != 1 || all[0].ID != "b1" {
		t.Errorf("expected the healthy source's postings to survive, got %v", ids(all))
	}
	if healthy.Calls != 1 {
		t.Errorf("expected the healthy source to be fetched once, got %d", healthy.Calls)
	}
}

func TestCollect_AllSourcesFail(t *testing.T) {
	c := NewCollector([]Source{
		{Name: "alpha", Kind: model.SourceGreenhouse, Fetcher: &MockFetcher{Err: errors.New("down")}},
		{Name: "beta", Kind: model.SourceLever, Fetcher: &MockFetcher{Err: errors.New("down")}},
	}, discardLogger())

	all := c.Collect(context.Background())

	if len(all) != 0 {
		t.Errorf("expected no postings when every source fails, got %v", ids(all))
	}
}

func TestCollect_CancelledContextStopsEarly(t *testing.T) {
	fetcher := &MockFetcher{Postings: []model.Posting{posting("a1")}}
	c := NewCollector([]Source{
		{Name: "alpha", Kind: model.SourceGreenhouse, Fetcher: fetcher},
	}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	all := c.Collect(ctx)

	if len(all) != 0 {
		t.Errorf("expected no postings on a cancelled context, got %v", ids(all))
	}
	if fetcher.Calls != 0 {
		t.Errorf("expected no fetches on a cancelled context, got %d", fetcher.Calls)
	}
}
