package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"jobtrack/internal/model"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

// Postings API wire shapes; Lever nests the location under categories.

type leverJob struct {
	ID         string          `json:"id"`
	Text       string          `json:"text"`
	Categories leverCategories `json:"categories"`
	HostedURL  string          `json:"hostedUrl"`
}

type leverCategories struct {
	Location string `json:"location"`
}

// LeverAdapter fetches postings from the Lever public postings API.
// Lever results are returned unfiltered; only the Greenhouse adapter
// applies the location classifier.
type LeverAdapter struct {
	company string
	client  *http.Client
	logger  *slog.Logger
}

// NewLeverAdapter returns an adapter for one Lever company slug.
func NewLeverAdapter(company string, client *http.Client, logger *slog.Logger) *LeverAdapter {
	return &LeverAdapter{company: company, client: client, logger: logger}
}

// FetchPostings pulls the company's postings and normalizes them. Items
// without a native id are skipped.
func (a *LeverAdapter) FetchPostings(ctx context.Context) ([]model.Posting, error) {
	var listing []leverJob
	url := fmt.Sprintf("%s/%s?mode=json", leverBaseURL, a.company)
	if err := fetchJSON(ctx, a.client, url, &listing); err != nil {
		return nil, fmt.Errorf("fetch lever postings for %s: %w", a.company, err)
	}

	company := companyFromSlug(a.company)
	postings := make([]model.Posting, 0, len(listing))
	for _, lj := range listing {
		if lj.ID == "" {
			a.logger.Warn("skipping lever item without id", "board", a.company, "title", lj.Text)
			continue
		}

		p := model.Posting{
			ID:       fmt.Sprintf("lv_%s_%s", a.company, lj.ID),
			Title:    lj.Text,
			Company:  company,
			URL:      lj.HostedURL,
			Location: lj.Categories.Location,
			Source:   model.SourceLever.String(),
		}
		if p.Title == "" {
			p.Title = model.DefaultTitle
		}
		if p.Location == "" {
			p.Location = model.DefaultLocation
		}

		postings = append(postings, p)
	}

	return postings, nil
}
