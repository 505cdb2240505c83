package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jobtrack/internal/model"
	"jobtrack/internal/store"
	"jobtrack/internal/tracker"
)

var (
	checkJSON   bool
	checkDryRun bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one cycle, print new postings, exit",
	Long:  "One-shot cycle: fetches every source, prints postings never seen before, exits.",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the result as JSON")
	checkCmd.Flags().BoolVar(&checkDryRun, "dry-run", false, "do not mark postings as seen")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath, logger)
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	// Dry runs swap in a NopStore; no seen IDs get written.
	var st model.SeenStore
	if checkDryRun {
		logger.Info("dry-run mode enabled, no postings will be marked as seen")
		st = store.NewNopStore()
	} else {
		st, err = store.Open(cfg.Store.Backend, cfg.Store.Path, logger)
		if err != nil {
			logger.Error("could not open store", "error", err)
			os.Exit(1)
		}
		defer st.Close()
	}

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}
	runner := buildRunner(cfg, st, httpClient, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := runner.RunCycle(ctx)
	if err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	if checkJSON {
		return printJSON(result)
	}

	if len(result.New) == 0 {
		fmt.Printf("No new postings (%d fetched).\n", len(result.All))
		return nil
	}

	fmt.Printf("%d new postings out of %d fetched:\n\n", len(result.New), len(result.All))
	for _, p := range result.New {
		fmt.Printf("%-22s %-45s %s\n", p.Company, p.Title, p.Location)
		if p.URL != "" {
			fmt.Printf("    %s\n", p.URL)
		}
	}
	return nil
}

func printJSON(result tracker.Result) error {
	out := struct {
		AllPostings []model.Posting `json:"all_postings"`
		NewPostings []model.Posting `json:"new_postings"`
	}{
		AllPostings: result.All,
		NewPostings: result.New,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
