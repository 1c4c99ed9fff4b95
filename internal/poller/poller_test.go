package poller

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/board"
	"github.com/courtlivestream/boardwatch/internal/config"
	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/observability"
	"github.com/courtlivestream/boardwatch/internal/types"
)

const boardMarkup = `<html><body><table id="board">
	<tr><th>Court</th><th>Serial</th><th>Case</th></tr>
	<tr><td>1</td><td>12</td><td>WP/100/2026</td></tr>
	<tr><td>2</td><td>3</td><td>CRL/7/2026</td></tr>
</table></body></html>`

func testRows(doc *goquery.Document, b *board.Builder) ([]*types.DisplayRecord, error) {
	table := extract.TableBySelector(doc, "#board")
	if table == nil {
		return nil, types.ErrNoTable
	}
	var records []*types.DisplayRecord
	for _, row := range extract.Rows(table)[1:] {
		cells := extract.Cells(row)
		rec := b.Record()
		rec.Set(types.FieldCourt, extract.CellText(cells[0]))
		rec.Set(types.FieldSerial, extract.CellText(cells[1]))
		rec.Set(types.FieldCase, extract.CellText(cells[2]))
		records = append(records, rec)
	}
	return records, nil
}

func testSite(url string) *board.Site {
	return &board.Site{
		Key:         "testboard",
		Bench:       "Test Bench",
		URL:         url,
		FetcherType: "http",
		Columns:     []string{"bench", types.FieldCourt, types.FieldCase, types.FieldScrapeDateTime},
		Payload: board.PayloadMapping{
			Fields: map[string]string{"serialNumber": types.FieldSerial},
		},
		Rows: testRows,
	}
}

func testPoller(t *testing.T, boardURL string, mutate func(*config.Config)) *Poller {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Poller.Interval = 10 * time.Millisecond
	cfg.DayFile.BaseDir = t.TempDir()
	cfg.DayFile.BackupEvery = 2
	cfg.Ingest.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := New(cfg, testSite(boardURL), observability.NewMetrics(logger), logger)
	if err != nil {
		t.Fatalf("new poller: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestRunCyclePersistsRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(boardMarkup))
	}))
	defer srv.Close()

	p := testPoller(t, srv.URL, nil)
	if err := p.runCycle(context.Background(), 1); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	if got := p.metrics.RecordsExtracted.Load(); got != 2 {
		t.Errorf("extracted: got %d, want 2", got)
	}
	if got := p.metrics.RecordsPersisted.Load(); got != 2 {
		t.Errorf("persisted: got %d, want 2", got)
	}
	if p.dayFile.Rows() != 2 {
		t.Errorf("day file rows: got %d", p.dayFile.Rows())
	}
	if p.persistCycles != 1 {
		t.Errorf("persist cycles: got %d", p.persistCycles)
	}
}

func TestRunCycleBackupCadence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(boardMarkup))
	}))
	defer srv.Close()

	p := testPoller(t, srv.URL, nil) // BackupEvery: 2
	for n := 1; n <= 5; n++ {
		if err := p.runCycle(context.Background(), n); err != nil {
			t.Fatalf("cycle %d: %v", n, err)
		}
	}

	if got := p.metrics.BackupsCreated.Load(); got != 2 {
		t.Errorf("backups after 5 cycles at cadence 2: got %d, want 2", got)
	}
	if p.lastBackup != 4 {
		t.Errorf("last backup marker: got %d, want 4", p.lastBackup)
	}
}

func TestRunCycleAbsorbsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := testPoller(t, srv.URL, nil)
	if err := p.runCycle(context.Background(), 1); err != nil {
		t.Fatalf("a failed fetch must not end the loop: %v", err)
	}
	if got := p.metrics.FetchesFailed.Load(); got != 1 {
		t.Errorf("failed fetches: got %d", got)
	}
	if got := p.metrics.CyclesFailed.Load(); got != 1 {
		t.Errorf("failed cycles: got %d", got)
	}
}

func TestRunCycleCountsSkippedRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(boardMarkup))
	}))
	defer srv.Close()

	p := testPoller(t, srv.URL, nil)
	p.site.Rows = func(doc *goquery.Document, b *board.Builder) ([]*types.DisplayRecord, error) {
		b.SkipRow(1, "too few cells")
		b.SkipRow(2, "empty slot")
		rec := b.Record()
		rec.Set(types.FieldCourt, "1")
		return []*types.DisplayRecord{rec}, nil
	}

	if err := p.runCycle(context.Background(), 1); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if got := p.metrics.RowsSkipped.Load(); got != 2 {
		t.Errorf("rows skipped: got %d, want 2", got)
	}
	if got := p.metrics.RecordsExtracted.Load(); got != 1 {
		t.Errorf("extracted: got %d, want 1", got)
	}
}

func TestRunCycleRecoversPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(boardMarkup))
	}))
	defer srv.Close()

	p := testPoller(t, srv.URL, nil)
	p.site.Rows = func(doc *goquery.Document, b *board.Builder) ([]*types.DisplayRecord, error) {
		panic("bad index")
	}

	err := p.runCycle(context.Background(), 1)
	if err == nil {
		t.Fatal("expected the recovered panic as an error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(boardMarkup))
	}))
	defer srv.Close()

	p := testPoller(t, srv.URL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("clean shutdown expected, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop on context cancellation")
	}
}
