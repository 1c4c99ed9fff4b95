package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and CLI flags.
// Priority (highest to lowest): CLI flags > env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults from struct
	setDefaults(v, cfg)

	// Environment variable support
	v.SetEnvPrefix("BOARDWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Search default locations
		v.SetConfigName("boardwatch")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".boardwatch"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("poller.interval", cfg.Poller.Interval)

	v.SetDefault("fetcher.type", cfg.Fetcher.Type)
	v.SetDefault("fetcher.headless", cfg.Fetcher.Headless)
	v.SetDefault("fetcher.navigate_timeout", cfg.Fetcher.NavigateTimeout)
	v.SetDefault("fetcher.element_timeout", cfg.Fetcher.ElementTimeout)
	v.SetDefault("fetcher.populate_timeout", cfg.Fetcher.PopulateTimeout)
	v.SetDefault("fetcher.captcha_wait", cfg.Fetcher.CaptchaWait)
	v.SetDefault("fetcher.stealth", cfg.Fetcher.Stealth)
	v.SetDefault("fetcher.user_agent", cfg.Fetcher.UserAgent)
	v.SetDefault("fetcher.max_body_size", cfg.Fetcher.MaxBodySize)

	v.SetDefault("dayfile.enabled", cfg.DayFile.Enabled)
	v.SetDefault("dayfile.base_dir", cfg.DayFile.BaseDir)
	v.SetDefault("dayfile.backup_every", cfg.DayFile.BackupEvery)

	v.SetDefault("ingest.enabled", cfg.Ingest.Enabled)
	v.SetDefault("ingest.url", cfg.Ingest.URL)
	v.SetDefault("ingest.timeout", cfg.Ingest.Timeout)
	v.SetDefault("ingest.max_error_details", cfg.Ingest.MaxErrorDetails)

	v.SetDefault("archive.enabled", cfg.Archive.Enabled)
	v.SetDefault("archive.uri", cfg.Archive.URI)
	v.SetDefault("archive.database", cfg.Archive.Database)
	v.SetDefault("archive.collection", cfg.Archive.Collection)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.port", cfg.Metrics.Port)
	v.SetDefault("metrics.path", cfg.Metrics.Path)
}
