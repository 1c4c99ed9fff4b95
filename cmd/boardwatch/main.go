package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtlivestream/boardwatch/internal/board"
	"github.com/courtlivestream/boardwatch/internal/config"
	"github.com/courtlivestream/boardwatch/internal/observability"
	"github.com/courtlivestream/boardwatch/internal/poller"
)

var (
	cfgFile     string
	verbose     bool
	interval    string
	fetcherType string
	baseDir     string
	ingestURL   string
	noIngest    bool
	noDayFile   bool
	visible     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boardwatch",
		Short: "Boardwatch — High Court display board watcher",
		Long: `Boardwatch polls Indian High Court display-board pages, extracts the
court/serial/case entries shown on screen, accumulates them into per-day
spreadsheets with periodic backups, and posts every entry to the shared
livestream ingestion API.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(sitesCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runCmd creates the "run" subcommand.
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [site]",
		Short: "Poll one site's display board",
		Long:  "Start the polling loop for the named site. Runs until interrupted.",
		Args:  cobra.ExactArgs(1),
		RunE:  runPoller,
	}

	cmd.Flags().StringVar(&interval, "interval", "", "pause between cycles (e.g. 30s)")
	cmd.Flags().StringVar(&fetcherType, "fetcher", "", "force fetcher type: browser, http")
	cmd.Flags().StringVarP(&baseDir, "base-dir", "o", "", "directory for day files")
	cmd.Flags().StringVar(&ingestURL, "ingest-url", "", "override the ingestion API endpoint")
	cmd.Flags().BoolVar(&noIngest, "no-ingest", false, "skip posting records to the API")
	cmd.Flags().BoolVar(&noDayFile, "no-dayfile", false, "skip writing day files")
	cmd.Flags().BoolVar(&visible, "visible", false, "run the browser with a visible window")

	return cmd
}

// runPoller executes the run command.
func runPoller(cmd *cobra.Command, args []string) error {
	site, err := board.Lookup(args[0])
	if err != nil {
		return fmt.Errorf("%w (run 'boardwatch sites' for the list)", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyCLIOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg)

	metrics := observability.NewMetrics(logger)
	if cfg.Metrics.Enabled {
		if err := metrics.StartServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Warn("failed to start metrics server", "error", err)
		}
	}

	p, err := poller.New(cfg, site, metrics, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := p.Run(ctx); err != nil {
		return err
	}

	snap := metrics.Snapshot()
	fmt.Printf("\nStopped after %s\n", time.Since(start).Round(time.Second))
	fmt.Printf("   Cycles:   %d run, %d empty\n", snap["cycles_total"], snap["cycles_failed"])
	fmt.Printf("   Records:  %d extracted, %d persisted\n", snap["records_extracted"], snap["records_persisted"])
	fmt.Printf("   Posted:   %d ok, %d failed\n", snap["records_posted"], snap["records_failed"])
	fmt.Printf("   Backups:  %d\n", snap["backups_created"])
	return nil
}

// sitesCmd creates the "sites" subcommand.
func sitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List the registered display boards",
		Run: func(cmd *cobra.Command, args []string) {
			for _, key := range board.Keys() {
				site, _ := board.Lookup(key)
				bench := site.Bench
				if site.SubBench != "" {
					bench += " / " + site.SubBench
				}
				fmt.Printf("  %-16s %-28s %s\n", key, bench, site.Description)
			}
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Poller:\n")
			fmt.Printf("  Interval:          %s\n", cfg.Poller.Interval)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Type:              %s\n", orDefault(cfg.Fetcher.Type, "per-site"))
			fmt.Printf("  Headless:          %v\n", cfg.Fetcher.Headless)
			fmt.Printf("  Navigate Timeout:  %s\n", cfg.Fetcher.NavigateTimeout)
			fmt.Printf("  Element Timeout:   %s\n", cfg.Fetcher.ElementTimeout)
			fmt.Printf("  Stealth:           %v\n", cfg.Fetcher.Stealth)
			fmt.Printf("\nDay Files:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.DayFile.Enabled)
			fmt.Printf("  Base Dir:          %s\n", cfg.DayFile.BaseDir)
			fmt.Printf("  Backup Every:      %d cycles\n", cfg.DayFile.BackupEvery)
			fmt.Printf("\nIngest:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.Ingest.Enabled)
			fmt.Printf("  URL:               %s\n", cfg.Ingest.URL)
			fmt.Printf("  Timeout:           %s\n", cfg.Ingest.Timeout)
			fmt.Printf("\nArchive:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.Archive.Enabled)
			fmt.Printf("  Database:          %s/%s\n", cfg.Archive.Database, cfg.Archive.Collection)
			fmt.Printf("\nMetrics:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.Metrics.Enabled)
			fmt.Printf("  Port:              %d\n", cfg.Metrics.Port)
			return nil
		},
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Boardwatch %s\n", config.Version)
		},
	}
}

// setupLogger creates a structured logger from the logging config.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			cfg.Poller.Interval = d
		}
	}
	if fetcherType != "" {
		cfg.Fetcher.Type = strings.ToLower(fetcherType)
	}
	if baseDir != "" {
		cfg.DayFile.BaseDir = baseDir
	}
	if ingestURL != "" {
		cfg.Ingest.URL = ingestURL
	}
	if noIngest {
		cfg.Ingest.Enabled = false
	}
	if noDayFile {
		cfg.DayFile.Enabled = false
	}
	if visible {
		cfg.Fetcher.Headless = false
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
