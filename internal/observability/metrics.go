package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks operational metrics for the poller.
type Metrics struct {
	// Cycle metrics
	CyclesTotal  atomic.Int64
	CyclesFailed atomic.Int64

	// Fetch metrics
	FetchesTotal    atomic.Int64
	FetchesFailed   atomic.Int64
	BytesDownloaded atomic.Int64

	// Record metrics
	RecordsExtracted atomic.Int64
	RecordsPersisted atomic.Int64
	RecordsPosted    atomic.Int64
	RecordsFailed    atomic.Int64
	RowsSkipped      atomic.Int64

	// Sink metrics
	BackupsCreated atomic.Int64
	DayRollovers   atomic.Int64

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// ServeHTTP serves metrics in Prometheus text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	metrics := []struct {
		name  string
		help  string
		value int64
	}{
		{"boardwatch_cycles_total", "Total scrape cycles completed", m.CyclesTotal.Load()},
		{"boardwatch_cycles_failed_total", "Total cycles that produced no records", m.CyclesFailed.Load()},
		{"boardwatch_fetches_total", "Total page fetches", m.FetchesTotal.Load()},
		{"boardwatch_fetches_failed_total", "Total failed page fetches", m.FetchesFailed.Load()},
		{"boardwatch_bytes_downloaded_total", "Total bytes downloaded", m.BytesDownloaded.Load()},
		{"boardwatch_records_extracted_total", "Total records extracted from boards", m.RecordsExtracted.Load()},
		{"boardwatch_records_persisted_total", "Total records written to sinks", m.RecordsPersisted.Load()},
		{"boardwatch_records_posted_total", "Total records accepted by the ingestion API", m.RecordsPosted.Load()},
		{"boardwatch_records_failed_total", "Total records rejected by the ingestion API", m.RecordsFailed.Load()},
		{"boardwatch_rows_skipped_total", "Total board rows skipped during extraction", m.RowsSkipped.Load()},
		{"boardwatch_backups_created_total", "Total day file backups created", m.BackupsCreated.Load()},
		{"boardwatch_day_rollovers_total", "Total calendar day rollovers", m.DayRollovers.Load()},
	}

	for _, metric := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", metric.name, metric.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", metric.name)
		fmt.Fprintf(w, "%s %d\n", metric.name, metric.value)
	}
}

// StartServer starts the metrics HTTP server.
func (m *Metrics) StartServer(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, m)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	addr := fmt.Sprintf(":%d", port)
	m.logger.Info("metrics server starting", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			m.logger.Error("metrics server error", "error", err)
		}
	}()

	return nil
}

// Snapshot returns all metrics as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"cycles_total":      m.CyclesTotal.Load(),
		"cycles_failed":     m.CyclesFailed.Load(),
		"fetches_total":     m.FetchesTotal.Load(),
		"fetches_failed":    m.FetchesFailed.Load(),
		"bytes_downloaded":  m.BytesDownloaded.Load(),
		"records_extracted": m.RecordsExtracted.Load(),
		"records_persisted": m.RecordsPersisted.Load(),
		"records_posted":    m.RecordsPosted.Load(),
		"records_failed":    m.RecordsFailed.Load(),
		"rows_skipped":      m.RowsSkipped.Load(),
		"backups_created":   m.BackupsCreated.Load(),
		"day_rollovers":     m.DayRollovers.Load(),
	}
}
