package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Poller.Interval <= 0 {
		return fmt.Errorf("poller.interval must be > 0")
	}

	if cfg.Fetcher.Type != "" && cfg.Fetcher.Type != "http" && cfg.Fetcher.Type != "browser" {
		return fmt.Errorf("fetcher.type must be 'http' or 'browser', got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.NavigateTimeout <= 0 {
		return fmt.Errorf("fetcher.navigate_timeout must be > 0")
	}
	if cfg.Fetcher.ElementTimeout <= 0 {
		return fmt.Errorf("fetcher.element_timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}

	if cfg.DayFile.Enabled {
		if cfg.DayFile.BaseDir == "" {
			return fmt.Errorf("dayfile.base_dir must be set when dayfile.enabled")
		}
		if cfg.DayFile.BackupEvery < 1 {
			return fmt.Errorf("dayfile.backup_every must be >= 1, got %d", cfg.DayFile.BackupEvery)
		}
	}

	if cfg.Ingest.Enabled {
		if err := ValidateURL(cfg.Ingest.URL); err != nil {
			return fmt.Errorf("ingest.url: %w", err)
		}
		if cfg.Ingest.Timeout <= 0 {
			return fmt.Errorf("ingest.timeout must be > 0")
		}
		if cfg.Ingest.MaxErrorDetails < 0 {
			return fmt.Errorf("ingest.max_error_details must be >= 0")
		}
	}

	if cfg.Archive.Enabled {
		if cfg.Archive.URI == "" || cfg.Archive.Database == "" || cfg.Archive.Collection == "" {
			return fmt.Errorf("archive.uri, archive.database and archive.collection must be set when archive.enabled")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Port < 1 || cfg.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be 1-65535, got %d", cfg.Metrics.Port)
		}
	}

	return nil
}

// ValidateURL checks if a URL string is usable as a board or API endpoint.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
