package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"jobtrack/internal/adapter"
	"jobtrack/internal/config"
	"jobtrack/internal/metrics"
	"jobtrack/internal/model"
	"jobtrack/internal/notifier"
	"jobtrack/internal/ratelimit"
	"jobtrack/internal/tracker"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobtrack",
	Short: "Job posting tracker — know when something new goes up",
	Long:  "Jobtrack polls job boards, keeps US roles, and surfaces postings it has never seen before.",
	// Default to `serve` so that `jobtrack` with no args runs the API server.
	RunE: runServe,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Values from .env feed the ${VAR} expansion in config.yaml.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBTRACK_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig locates and parses the config file.
// Priority: explicit path arg > JOBTRACK_CONFIG env var > "./config.yaml".
// A missing file at the implicit default path is not an error; the
// compiled-in defaults are used instead.
func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv("JOBTRACK_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}

	cfg, err := config.Load(path, logger)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		logger.Info("no config file found, using defaults", "path", path)
		return config.Default(), nil
	}
	return cfg, err
}

func setupLogger(dbg bool) *slog.Logger {
	level := slog.LevelInfo
	if dbg {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// setupNotifier picks the notifier from config: slack when a webhook is
// configured, plain logging otherwise.
func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	if cfg.Notification.Type == "slack" {
		logger.Info("slack notifier enabled")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	}
	return notifier.NewLogNotifier(logger)
}

// buildSources wires one rate-limited adapter per configured source. All
// sources of the same kind share the limiter.
func buildSources(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) []tracker.Source {
	limiter := ratelimit.NewKindLimiter(cfg.RateLimit.MinDelay)

	sources := make([]tracker.Source, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		var fetcher model.PostingFetcher = adapter.New(src.Kind, src.Board, httpClient, logger)
		fetcher = ratelimit.NewLimitedFetcher(fetcher, limiter, src.Kind)
		sources = append(sources, tracker.Source{Name: src.Name, Kind: src.Kind, Fetcher: fetcher})
		logger.Info("registered source", "name", src.Name, "kind", src.Kind.String(), "board", src.Board)
	}
	return sources
}

func buildRunner(cfg *config.Config, st model.SeenStore, httpClient *http.Client, logger *slog.Logger) *tracker.Runner {
	sources := buildSources(cfg, httpClient, logger)
	collector := tracker.NewCollector(sources, logger)
	m := metrics.New(prometheus.DefaultRegisterer)
	return tracker.NewRunner(collector, st, m, logger)
}
