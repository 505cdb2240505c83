package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"jobtrack/internal/adapter"
	"jobtrack/internal/config"
	"jobtrack/internal/model"
	"jobtrack/internal/review"
	"jobtrack/internal/store"
	"jobtrack/internal/tracker"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse postings interactively (TUI)",
	Long:  "Shows the source picker TUI, then launches the split-pane review view.",
	RunE:  runReviewCmd,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReviewCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath, logger)
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	// The TUI owns the terminal; route fetch and store logging to io.Discard
	// so stray lines don't corrupt the alt screen.
	silent := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path, silent)
	if err != nil {
		logger.Error("could not open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}
	runReview(cfg, st, httpClient, silent)
	return nil
}

func runReview(cfg *config.Config, st model.SeenStore, httpClient *http.Client, logger *slog.Logger) {
	for {
		choice, err := review.RunSourcePicker(cfg.Sources)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return
		}
		if choice < 0 {
			return
		}

		label, fetch := reviewFetch(cfg, choice, httpClient, logger)

		postings, err := review.RunLoader(label, fetch)
		if err != nil {
			fmt.Printf("Error fetching postings: %v\n", err)
			continue
		}

		fresh, err := review.PreviewNew(st, postings)
		if err != nil {
			fmt.Printf("Error reading seen store: %v\n", err)
			return
		}

		wantQuit, err := review.RunReviewTUI(postings, fresh)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return
		}
		// else: loop → back to picker
	}
}

// reviewFetch maps the picker choice to a loader label and fetch function:
// row 0 is every source combined, row i is cfg.Sources[i-1].
func reviewFetch(cfg *config.Config, choice int, httpClient *http.Client, logger *slog.Logger) (string, func(context.Context) ([]model.Posting, error)) {
	if choice == 0 {
		collector := tracker.NewCollector(buildSources(cfg, httpClient, logger), logger)
		return "all sources", func(ctx context.Context) ([]model.Posting, error) {
			return collector.Collect(ctx), nil
		}
	}

	src := cfg.Sources[choice-1]
	fetcher := adapter.New(src.Kind, src.Board, httpClient, logger)
	return src.Name, fetcher.FetchPostings
}
