package model

import "context"

// Posting is the normalized form of one job listing, identical across
// source kinds. Adapters fill the documented defaults at the boundary, so
// downstream code never has to guess at missing fields.
type Posting struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	URL      string `json:"url"`
	Location string `json:"location"`
	Source   string `json:"source"`
}

// Defaults applied while normalizing upstream items.
const (
	DefaultTitle    = "N/A"
	DefaultLocation = "Remote"
)

// SourceKind identifies which upstream API shape a source speaks. The set
// is closed: config strings enter only through ParseSourceKind, and adding
// a member means writing an adapter for it.
type SourceKind int

const (
	SourceGreenhouse SourceKind = iota
	SourceLever
)

// ParseSourceKind maps a config string to a SourceKind. ok is false for
// anything outside the closed set.
func ParseSourceKind(s string) (SourceKind, bool) {
	switch s {
	case "greenhouse":
		return SourceGreenhouse, true
	case "lever":
		return SourceLever, true
	default:
		return 0, false
	}
}

func (k SourceKind) String() string {
	switch k {
	case SourceGreenhouse:
		return "greenhouse"
	case SourceLever:
		return "lever"
	default:
		return "unknown"
	}
}

// PostingFetcher fetches the current normalized postings of one source.
type PostingFetcher interface {
	FetchPostings(ctx context.Context) ([]Posting, error)
}

// SeenStore records which posting ids have already been reported. The set
// only grows; implementations never evict or expire entries.
type SeenStore interface {
	Contains(id string) (bool, error)
	AddAll(ids []string) error
	Count() (int, error)
	Backend() string
	Close() error
}

// Notifier delivers newly discovered postings.
type Notifier interface {
	Notify(postings []Posting) error
}
