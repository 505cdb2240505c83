// Package adapter normalizes the upstream job-board APIs into the unified
// Posting model, one adapter per source kind.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jobtrack/internal/model"
)

// New returns the adapter for kind, fetching the board identified by board.
// The switch is exhaustive over the closed kind set.
func New(kind model.SourceKind, board string, client *http.Client, logger *slog.Logger) model.PostingFetcher {
	switch kind {
	case model.SourceGreenhouse:
		return NewGreenhouseAdapter(board, client, logger)
	case model.SourceLever:
		return NewLeverAdapter(board, client, logger)
	default:
		// Unreachable: ParseSourceKind gates every kind entering the system.
		panic(fmt.Sprintf("adapter: unhandled source kind %d", kind))
	}
}

// companyFromSlug turns a board identifier like "acme-labs" into a display
// name like "Acme Labs". The upstream payloads carry no usable company
// field, so the slug is the only naming source.
func companyFromSlug(slug string) string {
	// cases.Title casers are stateful; build one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

// fetchJSON GETs url and decodes the 200 response body into dst.
func fetchJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
