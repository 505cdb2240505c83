package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jobtrack/internal/scheduler"
	"jobtrack/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the polling daemon",
	Long:  "Runs a tracking cycle on the configured interval and notifies on new postings; blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath, logger)
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger.Info("starting watch",
		"interval", cfg.PollInterval.String(),
		"sources", len(cfg.Sources),
		"store", cfg.Store.Backend,
	)

	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path, logger)
	if err != nil {
		logger.Error("could not open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}
	n := setupNotifier(cfg, httpClient, logger)
	runner := buildRunner(cfg, st, httpClient, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(runner, n, cfg.PollInterval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("watch loop failed", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
