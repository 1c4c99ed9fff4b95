package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for boardwatch. One instance drives one
// site poller; nothing in here is site-specific beyond the chosen site key.
type Config struct {
	Poller  PollerConfig  `mapstructure:"poller"  yaml:"poller"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	DayFile DayFileConfig `mapstructure:"dayfile" yaml:"dayfile"`
	Ingest  IngestConfig  `mapstructure:"ingest"  yaml:"ingest"`
	Archive ArchiveConfig `mapstructure:"archive" yaml:"archive"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// PollerConfig controls the scrape cycle loop.
type PollerConfig struct {
	// Interval is the fixed post-cycle sleep. Actual cadence is
	// scrape duration + Interval.
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

// FetcherConfig controls page loading.
type FetcherConfig struct {
	// Type forces "browser" or "http" for every site; empty keeps each
	// site's own fetcher choice.
	Type            string        `mapstructure:"type"              yaml:"type"`
	Headless        bool          `mapstructure:"headless"          yaml:"headless"`
	NavigateTimeout time.Duration `mapstructure:"navigate_timeout"  yaml:"navigate_timeout"`
	ElementTimeout  time.Duration `mapstructure:"element_timeout"   yaml:"element_timeout"`
	PopulateTimeout time.Duration `mapstructure:"populate_timeout"  yaml:"populate_timeout"`
	CaptchaWait     time.Duration `mapstructure:"captcha_wait"      yaml:"captcha_wait"`
	Stealth         bool          `mapstructure:"stealth"           yaml:"stealth"`
	UserAgent       string        `mapstructure:"user_agent"        yaml:"user_agent"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"      yaml:"tls_insecure"`
}

// DayFileConfig controls the per-day tabular sink.
type DayFileConfig struct {
	Enabled bool   `mapstructure:"enabled"  yaml:"enabled"`
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`
	// BackupEvery is the number of successful persist cycles between
	// timestamped full-copy backups.
	BackupEvery int `mapstructure:"backup_every" yaml:"backup_every"`
}

// IngestConfig controls the REST ingestion sink.
type IngestConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	URL     string        `mapstructure:"url"     yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// MaxErrorDetails bounds how many per-record failures a cycle report
	// keeps verbatim.
	MaxErrorDetails int `mapstructure:"max_error_details" yaml:"max_error_details"`
}

// ArchiveConfig controls the optional MongoDB archive sink.
type ArchiveConfig struct {
	Enabled    bool   `mapstructure:"enabled"    yaml:"enabled"`
	URI        string `mapstructure:"uri"        yaml:"uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Port    int    `mapstructure:"port"    yaml:"port"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// DefaultConfig returns a Config with the defaults the per-site scripts
// shipped with: 30s cycle, backup every 60 persists, 10s API timeout.
func DefaultConfig() *Config {
	return &Config{
		Poller: PollerConfig{
			Interval: 30 * time.Second,
		},
		Fetcher: FetcherConfig{
			Headless:        true,
			NavigateTimeout: 30 * time.Second,
			ElementTimeout:  20 * time.Second,
			PopulateTimeout: 30 * time.Second,
			CaptchaWait:     30 * time.Second,
			Stealth:         true,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36",
			MaxBodySize:     10 * 1024 * 1024, // 10MB
		},
		DayFile: DayFileConfig{
			Enabled:     true,
			BaseDir:     "./boards",
			BackupEvery: 60,
		},
		Ingest: IngestConfig{
			Enabled:         true,
			URL:             "https://api.courtlivestream.com/api/display-boards/create",
			Timeout:         10 * time.Second,
			MaxErrorDetails: 5,
		},
		Archive: ArchiveConfig{
			Enabled:    false,
			URI:        "mongodb://localhost:27017",
			Database:   "boardwatch",
			Collection: "records",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}
