package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.Poller.Interval = 0 }},
		{"bad fetcher type", func(c *Config) { c.Fetcher.Type = "carrier-pigeon" }},
		{"zero navigate timeout", func(c *Config) { c.Fetcher.NavigateTimeout = 0 }},
		{"empty base dir", func(c *Config) { c.DayFile.BaseDir = "" }},
		{"zero backup cadence", func(c *Config) { c.DayFile.BackupEvery = 0 }},
		{"bad ingest url", func(c *Config) { c.Ingest.URL = "ftp://api.example.com" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad metrics port", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Port = 0
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateSkipsDisabledSections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ingest.Enabled = false
	cfg.Ingest.URL = "not a url"
	cfg.DayFile.Enabled = false
	cfg.DayFile.BaseDir = ""

	if err := Validate(cfg); err != nil {
		t.Errorf("disabled sections must not be validated: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boardwatch.yaml")
	yaml := `
poller:
  interval: 45s
dayfile:
  base_dir: /tmp/boards
  backup_every: 10
ingest:
  enabled: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Poller.Interval != 45*time.Second {
		t.Errorf("interval: got %s", cfg.Poller.Interval)
	}
	if cfg.DayFile.BackupEvery != 10 {
		t.Errorf("backup_every: got %d", cfg.DayFile.BackupEvery)
	}
	if cfg.Ingest.Enabled {
		t.Error("ingest.enabled override lost")
	}
	// Untouched keys keep their defaults.
	if cfg.Ingest.URL == "" || cfg.Fetcher.NavigateTimeout != 30*time.Second {
		t.Error("defaults must survive a partial file")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for an explicit missing file")
	}
}
