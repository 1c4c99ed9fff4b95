package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/courtlivestream/boardwatch/internal/board"
	"github.com/courtlivestream/boardwatch/internal/config"
	"github.com/courtlivestream/boardwatch/internal/fetcher"
	"github.com/courtlivestream/boardwatch/internal/ingest"
	"github.com/courtlivestream/boardwatch/internal/observability"
	"github.com/courtlivestream/boardwatch/internal/sink"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Poller drives the scrape loop for one site: fetch the board, extract
// records, persist them, post them, sleep, repeat. A failed cycle logs and
// waits for the next one; only a panic inside a cycle or a cancelled context
// ends the loop.
type Poller struct {
	cfg     *config.Config
	site    *board.Site
	fetcher fetcher.Fetcher
	sinks   sink.Sink
	dayFile *sink.DayFile
	ingest  *ingest.Client
	metrics *observability.Metrics
	logger  *slog.Logger

	// cycles with a successful persist since the current day started, and
	// the count at which the last backup was taken. Both reset on rollover.
	persistCycles int
	lastBackup    int
}

// New assembles a poller for one site from configuration: the fetcher the
// site asks for, the enabled sinks and the ingest client.
func New(cfg *config.Config, site *board.Site, metrics *observability.Metrics, logger *slog.Logger) (*Poller, error) {
	f, err := fetcher.New(cfg, site, logger)
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	var backends []sink.Sink
	var dayFile *sink.DayFile
	if cfg.DayFile.Enabled {
		dayFile = sink.NewDayFile(cfg.DayFile.BaseDir, site.Key, site.Columns, logger)
		backends = append(backends, dayFile)
	}
	if cfg.Archive.Enabled {
		archive, err := sink.NewMongoSink(cfg.Archive, logger)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create archive sink: %w", err)
		}
		backends = append(backends, archive)
	}

	var client *ingest.Client
	if cfg.Ingest.Enabled {
		client = ingest.NewClient(cfg.Ingest, logger)
	}

	return &Poller{
		cfg:     cfg,
		site:    site,
		fetcher: f,
		sinks:   sink.NewMulti(backends, logger),
		dayFile: dayFile,
		ingest:  client,
		metrics: metrics,
		logger:  logger.With("component", "poller", "site", site.Key),
	}, nil
}

// Run executes scrape cycles until the context is cancelled. It returns nil
// on a clean shutdown and an error only when a cycle panicked.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller starting",
		"bench", p.site.Bench,
		"url", p.site.URL,
		"interval", p.cfg.Poller.Interval,
		"fetcher", p.fetcher.Type(),
	)

	for n := 1; ; n++ {
		if err := p.runCycle(ctx, n); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			p.logger.Error("cycle panicked, shutting down", "cycle", n, "error", err)
			return err
		}

		select {
		case <-ctx.Done():
		case <-time.After(p.cfg.Poller.Interval):
			continue
		}
		break
	}

	p.logSummary()
	return nil
}

// Close releases the fetcher and sinks.
func (p *Poller) Close() error {
	err := p.fetcher.Close()
	if cerr := p.sinks.Close(); err == nil {
		err = cerr
	}
	return err
}

// runCycle performs one fetch-extract-persist-post pass. Every failure mode
// short of a panic is absorbed here; the returned error is either a recovered
// panic or the context's cancellation.
func (p *Poller) runCycle(ctx context.Context, n int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panic: %v", r)
		}
	}()

	if ctx.Err() != nil {
		return context.Canceled
	}

	if p.dayFile != nil && p.dayFile.Rollover() {
		p.persistCycles = 0
		p.lastBackup = 0
		p.metrics.DayRollovers.Add(1)
	}

	start := time.Now()
	records := p.scrape(ctx, n)
	if len(records) == 0 {
		p.metrics.CyclesFailed.Add(1)
		p.metrics.CyclesTotal.Add(1)
		return ctx.Err()
	}
	p.metrics.RecordsExtracted.Add(int64(len(records)))

	if p.persist(records) {
		p.maybeBackup()
	}

	if p.ingest != nil {
		report := p.ingest.PostBatch(ctx, p.site, records)
		p.metrics.RecordsPosted.Add(int64(report.Successful))
		p.metrics.RecordsFailed.Add(int64(report.Failed))
	}

	p.metrics.CyclesTotal.Add(1)
	p.logger.Info("cycle complete",
		"cycle", n,
		"records", len(records),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return ctx.Err()
}

// scrape fetches the page and runs the site's extractor. Any failure logs
// and yields an empty batch so the cycle simply waits for the next round.
func (p *Poller) scrape(ctx context.Context, n int) []*types.DisplayRecord {
	page, err := p.fetcher.Fetch(ctx, p.site)
	if err != nil {
		p.metrics.FetchesFailed.Add(1)
		retryable := false
		var ferr *types.FetchError
		if errors.As(err, &ferr) {
			retryable = ferr.IsRetryable()
		}
		p.logger.Error("fetch failed", "cycle", n, "retryable", retryable, "error", err)
		return nil
	}
	p.metrics.FetchesTotal.Add(1)
	p.metrics.BytesDownloaded.Add(int64(len(page.HTML)))

	doc, err := page.Document()
	if err != nil {
		p.logger.Error("parse failed", "cycle", n, "error", err)
		return nil
	}

	b := board.NewBuilder(p.site, page.FetchedAt, p.logger)
	records, err := p.site.Rows(doc, b)
	p.metrics.RowsSkipped.Add(int64(b.Skipped()))
	if err != nil {
		eerr := &types.ExtractError{Site: p.site.Key, Err: err}
		p.logger.Warn("extraction failed", "cycle", n, "error", eerr)
		return nil
	}
	if len(records) == 0 {
		p.logger.Info("board empty", "cycle", n)
	}
	return records
}

// persist stores the batch and advances the backup counter on success.
func (p *Poller) persist(records []*types.DisplayRecord) bool {
	if err := p.sinks.Store(records); err != nil {
		p.logger.Error("persist failed", "error", err)
		return false
	}
	p.metrics.RecordsPersisted.Add(int64(len(records)))
	p.persistCycles++
	return true
}

// maybeBackup snapshots the day file once enough persist cycles passed since
// the previous snapshot.
func (p *Poller) maybeBackup() {
	if p.dayFile == nil || p.persistCycles-p.lastBackup < p.cfg.DayFile.BackupEvery {
		return
	}

	rows, err := p.dayFile.Backup()
	switch {
	case errors.Is(err, types.ErrDayFileMissing), errors.Is(err, types.ErrDayFileEmpty):
		p.logger.Info("backup skipped", "reason", err)
	case err != nil:
		p.logger.Error("backup failed", "error", err)
		return
	default:
		p.metrics.BackupsCreated.Add(1)
		p.logger.Info("backup done", "rows", rows)
	}
	p.lastBackup = p.persistCycles
}

// logSummary reports run totals at shutdown.
func (p *Poller) logSummary() {
	snap := p.metrics.Snapshot()
	p.logger.Info("poller stopped",
		"cycles", snap["cycles_total"],
		"records_extracted", snap["records_extracted"],
		"records_persisted", snap["records_persisted"],
		"records_posted", snap["records_posted"],
		"records_post_failed", snap["records_failed"],
		"backups", snap["backups_created"],
	)
}
