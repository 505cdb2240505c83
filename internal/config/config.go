package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"jobtrack/internal/model"
)

// Config is the root configuration for the tracker.
type Config struct {
	PollInterval time.Duration
	FetchTimeout time.Duration
	Sources      []SourceConfig
	Store        StoreConfig
	Server       ServerConfig
	Notification NotificationConfig
	RateLimit    RateLimitConfig
}

// SourceConfig describes a single job board to poll. Board is the external
// identifier on the upstream API; it also seeds the derived company name.
type SourceConfig struct {
	Name  string
	Kind  model.SourceKind
	Board string
}

// StoreConfig selects the seen-store backend.
type StoreConfig struct {
	Backend string // "file" or "sqlite"
	Path    string
}

// ServerConfig controls the HTTP API surface.
type ServerConfig struct {
	Addr        string
	StaticDir   string   // optional directory served under /app
	CORSOrigins []string // origins allowed by the CORS middleware, "*" for any
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// RateLimitConfig controls platform-level request pacing.
type RateLimitConfig struct {
	MinDelay time.Duration // minimum gap between requests to the same platform
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	PollInterval string             `yaml:"poll_interval"`
	FetchTimeout string             `yaml:"fetch_timeout"`
	Sources      []rawSourceConfig  `yaml:"sources"`
	Store        rawStoreConfig     `yaml:"store"`
	Server       rawServerConfig    `yaml:"server"`
	Notification NotificationConfig `yaml:"notification"`
	RateLimit    rawRateLimitConfig `yaml:"rate_limit"`
}

type rawSourceConfig struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Board string `yaml:"board"`
}

type rawStoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type rawServerConfig struct {
	Addr        string   `yaml:"addr"`
	StaticDir   string   `yaml:"static_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type rawRateLimitConfig struct {
	MinDelay string `yaml:"min_delay"`
}

// Default returns the compiled-in configuration used when no config file
// is present: the stock boards against a JSON file store.
func Default() *Config {
	return &Config{
		PollInterval: 30 * time.Minute,
		FetchTimeout: 10 * time.Second,
		Sources: []SourceConfig{
			{Name: "airbnb", Kind: model.SourceGreenhouse, Board: "airbnb"},
			{Name: "stripe", Kind: model.SourceGreenhouse, Board: "stripe"},
			{Name: "netflix", Kind: model.SourceLever, Board: "netflix"},
		},
		Store:        StoreConfig{Backend: "file", Path: "seen.json"},
		Server:       ServerConfig{Addr: ":8000", CORSOrigins: []string{"*"}},
		Notification: NotificationConfig{Type: "log"},
		RateLimit:    RateLimitConfig{MinDelay: 2 * time.Second},
	}
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. Sources with an unrecognized kind are logged and skipped
// rather than failing the load.
func Load(path string, logger *slog.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	interval := 30 * time.Minute
	if raw.PollInterval != "" {
		interval, err = time.ParseDuration(raw.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("parse poll_interval %q: %w", raw.PollInterval, err)
		}
	}

	fetchTimeout := 10 * time.Second
	if raw.FetchTimeout != "" {
		fetchTimeout, err = time.ParseDuration(raw.FetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse fetch_timeout %q: %w", raw.FetchTimeout, err)
		}
	}

	minDelay := 2 * time.Second
	if raw.RateLimit.MinDelay != "" {
		minDelay, err = time.ParseDuration(raw.RateLimit.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.min_delay %q: %w", raw.RateLimit.MinDelay, err)
		}
	}

	sources := make([]SourceConfig, 0, len(raw.Sources))
	for _, rs := range raw.Sources {
		kind, ok := model.ParseSourceKind(rs.Kind)
		if !ok {
			logger.Warn("skipping source with unsupported kind", "source", rs.Name, "kind", rs.Kind)
			continue
		}
		board := rs.Board
		if board == "" {
			board = rs.Name
		}
		sources = append(sources, SourceConfig{Name: rs.Name, Kind: kind, Board: board})
	}

	store := StoreConfig{Backend: raw.Store.Backend, Path: raw.Store.Path}
	if store.Backend == "" {
		store.Backend = "file"
	}
	if store.Path == "" {
		if store.Backend == "sqlite" {
			store.Path = "seen.db"
		} else {
			store.Path = "seen.json"
		}
	}

	server := ServerConfig{
		Addr:        raw.Server.Addr,
		StaticDir:   raw.Server.StaticDir,
		CORSOrigins: raw.Server.CORSOrigins,
	}
	if server.Addr == "" {
		server.Addr = ":8000"
	}
	if len(server.CORSOrigins) == 0 {
		server.CORSOrigins = []string{"*"}
	}

	cfg := &Config{
		PollInterval: interval,
		FetchTimeout: fetchTimeout,
		Sources:      sources,
		Store:        store,
		Server:       server,
		Notification: raw.Notification,
		RateLimit:    RateLimitConfig{MinDelay: minDelay},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", cfg.PollInterval)
	}
	if cfg.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %v", cfg.FetchTimeout)
	}

	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one source with a supported kind is required")
	}
	seen := make(map[string]struct{}, len(cfg.Sources))
	for _, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("every source needs a name")
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("duplicate source name %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	if cfg.Store.Backend != "file" && cfg.Store.Backend != "sqlite" {
		return fmt.Errorf("store.backend must be \"file\" or \"sqlite\", got %q", cfg.Store.Backend)
	}

	if cfg.Notification.Type == "slack" {
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	}

	return nil
}
