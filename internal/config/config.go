package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when a setting is absent from both the config file
// and the environment.
const (
	DefaultBaseURL     = "http://technitium:5380"
	DefaultStatsRange  = "LastHour"
	DefaultTopLimit    = 50
	DefaultListenPort  = 9105
	DefaultServerLabel = "technitium"

	// RequestTimeout bounds every upstream API call. Not configurable; the
	// Technitium dashboard endpoints answer well within this on any healthy
	// server, and a scrape must never outlive the Prometheus scrape timeout.
	RequestTimeout = 10 * time.Second
)

// Config is the exporter's configuration value object, built once at startup
// and passed by reference into the API client and collector. Settings come
// from three layers: built-in defaults, an optional YAML file, and environment
// variables; later layers win.
type Config struct {
	// BaseURL is the Technitium server's base URL, without a trailing slash.
	BaseURL string `yaml:"base_url"`

	// Node selects a cluster node to query. Empty for standalone servers.
	Node string `yaml:"node"`

	// StatsRange is the dashboard stats time range, e.g. LastHour, LastDay.
	StatsRange string `yaml:"stats_range"`

	// TopLimit caps the number of entries requested from the getTop endpoints.
	TopLimit int `yaml:"top_limit"`

	// ListenPort is the port the /metrics endpoint listens on.
	ListenPort int `yaml:"listen_port"`

	// VerifyTLS disables upstream certificate verification when false.
	VerifyTLS bool `yaml:"verify_tls"`

	// ServerLabel is the value of the "server" label on every metric family,
	// identifying this Technitium instance in dashboards.
	ServerLabel string `yaml:"server_label"`

	// Token is the Technitium API token. Resolved from TECHNITIUM_TOKEN only,
	// never from the config file, so the file stays safe to commit.
	Token string `yaml:"-"`
}

// Load builds the exporter configuration. path may be empty, in which case
// only defaults and environment variables apply. A missing token is a fatal
// configuration error reported here, before any server starts.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		StatsRange:  DefaultStatsRange,
		TopLimit:    DefaultTopLimit,
		ListenPort:  DefaultListenPort,
		VerifyTLS:   true,
		ServerLabel: DefaultServerLabel,
	}
}

// applyEnv overlays environment variables onto cfg. Unset or empty variables
// leave the existing value in place.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("TECHNITIUM_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TECHNITIUM_NODE"); v != "" {
		cfg.Node = v
	}
	if v := os.Getenv("TECHNITIUM_STATS_RANGE"); v != "" {
		cfg.StatsRange = v
	}
	if v := os.Getenv("TECHNITIUM_TOP_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TECHNITIUM_TOP_LIMIT %q is not a number", v)
		}
		cfg.TopLimit = n
	}
	if v := os.Getenv("EXPORTER_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EXPORTER_PORT %q is not a number", v)
		}
		cfg.ListenPort = n
	}
	if v := os.Getenv("TECHNITIUM_VERIFY_SSL"); v != "" {
		// Matches the documented behavior: only the literal "true" (any case)
		// enables verification, everything else disables it.
		cfg.VerifyTLS = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SERVER_LABEL"); v != "" {
		cfg.ServerLabel = v
	}
	if v := os.Getenv("TECHNITIUM_TOKEN"); v != "" {
		cfg.Token = v
	}
	return nil
}

// validate checks required fields and ranges.
func validate(cfg *Config) error {
	if cfg.Token == "" {
		return fmt.Errorf("TECHNITIUM_TOKEN is required")
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if cfg.TopLimit <= 0 {
		return fmt.Errorf("top_limit must be positive, got %d", cfg.TopLimit)
	}
	if cfg.ListenPort <= 0 || cfg.ListenPort > 65535 {
		return fmt.Errorf("listen_port %d out of range", cfg.ListenPort)
	}
	return nil
}
