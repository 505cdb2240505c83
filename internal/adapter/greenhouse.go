package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"jobtrack/internal/location"
	"jobtrack/internal/model"
)

const greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"

// Boards API wire shapes, trimmed to the fields the Posting model needs.

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

type greenhouseJob struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Location    greenhouseLocation `json:"location"`
	AbsoluteURL string             `json:"absolute_url"`
}

type greenhouseLocation struct {
	Name string `json:"name"`
}

// GreenhouseAdapter fetches postings from the Greenhouse public boards API.
// Greenhouse boards list worldwide openings, so this adapter also drops
// postings the location classifier marks as outside the US.
type GreenhouseAdapter struct {
	board  string
	client *http.Client
	logger *slog.Logger
}

// NewGreenhouseAdapter returns an adapter for one Greenhouse board token.
func NewGreenhouseAdapter(board string, client *http.Client, logger *slog.Logger) *GreenhouseAdapter {
	return &GreenhouseAdapter{board: board, client: client, logger: logger}
}

// FetchPostings pulls the board's openings and normalizes them. Items
// without a native id are skipped; so are postings outside the US.
func (a *GreenhouseAdapter) FetchPostings(ctx context.Context) ([]model.Posting, error) {
	var listing greenhouseResponse
	url := fmt.Sprintf("%s/%s/jobs", greenhouseBaseURL, a.board)
	if err := fetchJSON(ctx, a.client, url, &listing); err != nil {
		return nil, fmt.Errorf("fetch greenhouse board %s: %w", a.board, err)
	}

	company := companyFromSlug(a.board)
	postings := make([]model.Posting, 0, len(listing.Jobs))
	for _, gj := range listing.Jobs {
		if gj.ID == 0 {
			a.logger.Warn("skipping greenhouse item without id", "board", a.board, "title", gj.Title)
			continue
		}

		p := model.Posting{
			ID:       fmt.Sprintf("gh_%s_%d", a.board, gj.ID),
			Title:    gj.Title,
			Company:  company,
			URL:      gj.AbsoluteURL,
			Location: gj.Location.Name,
			Source:   model.SourceGreenhouse.String(),
		}
		if p.Title == "" {
			p.Title = model.DefaultTitle
		}
		if p.Location == "" {
			p.Location = model.DefaultLocation
		}

		if !location.IncludeUS(p.Location) {
			continue
		}

		postings = append(postings, p)
	}

	return postings, nil
}
