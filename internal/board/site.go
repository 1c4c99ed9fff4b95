package board

import (
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/types"
)

// Site describes one High Court display board: where it lives, how the page
// must be prepared, how its table turns into records, and how those records
// map onto the ingestion payload. Sites are data plus one extraction
// function; the poller, sinks and fetchers are shared.
type Site struct {
	// Key is the registry identifier used on the command line.
	Key string

	// Description is a one-line human label.
	Description string

	// Bench is the bench name stamped on every record and payload.
	Bench string

	// SubBench distinguishes circuit benches, "" for principal seats.
	SubBench string

	// URL is the public display-board page.
	URL string

	// FetcherType selects "browser" (default, script-rendered boards) or
	// "http" (static markup).
	FetcherType string

	// WaitSelector is the element that must exist before the page is
	// considered loaded.
	WaitSelector string

	// PopulateJS, when set, is a JavaScript predicate the browser fetcher
	// polls (1s cadence, bounded by fetcher.populate_timeout) until it
	// returns true. Used by boards whose tbody is filled by AJAX well after
	// the table element exists.
	PopulateJS string

	// SettleDelay is an extra pause after the wait conditions pass, for
	// boards that keep rendering briefly after the table appears.
	SettleDelay time.Duration

	// Setup lists page interactions performed after navigation
	// (entries-per-page dropdowns, manual CAPTCHA gates). They run every
	// cycle unless PrepareOnce is set.
	Setup []Interaction

	// PrepareOnce makes navigation and Setup run a single time, when the
	// session page opens; later cycles re-read the live page. Required for
	// CAPTCHA-gated boards, where re-navigating re-arms the gate.
	PrepareOnce bool

	// Columns is the day-file column order. Names resolve against record
	// fields plus the reserved "bench", "sub_bench" and "datetime".
	Columns []string

	// Payload maps ingestion payload keys onto record field keys.
	Payload PayloadMapping

	// Rows turns a rendered document into records. Per-row failures are
	// logged and skipped inside the function; it only returns an error for
	// page-level problems (table missing entirely).
	Rows RowExtractor
}

// RowExtractor is the per-site table-to-records function.
type RowExtractor func(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error)

// InteractionKind enumerates one-time page setup actions.
type InteractionKind string

const (
	// InteractSelect picks the option with the given value in a <select>.
	InteractSelect InteractionKind = "select"
	// InteractCaptchaWait blocks until the selector appears, giving an
	// operator time to solve a CAPTCHA in the visible browser window.
	InteractCaptchaWait InteractionKind = "captcha_wait"
)

// Interaction is a single one-time page setup step.
type Interaction struct {
	Kind     InteractionKind
	Selector string
	Value    string
}

// PayloadMapping declares which record fields feed which ingestion payload
// keys. benchName, courtHallNumber, date and time are always populated from
// the record envelope; every other key is sent only when the mapping lists
// it, so boards that never report a stage or list simply leave those out.
type PayloadMapping struct {
	// Fields maps payload keys ("caseNumber", "serialNumber", "stage",
	// "judgeName", ...) to record field keys. An empty field name sends the
	// key's zero value. The serialNumber and listNumber keys are coerced to
	// integers, 0 on parse failure.
	Fields map[string]string

	// CourtField overrides the record field feeding courtHallNumber;
	// defaults to the canonical court field.
	CourtField string
}

// Builder hands site extractors stamped, pre-addressed records and a scoped
// logger for skip messages.
type Builder struct {
	site      *Site
	scrapedAt time.Time
	logger    *slog.Logger
	skipped   int
}

// NewBuilder creates a Builder for one scrape cycle.
func NewBuilder(site *Site, scrapedAt time.Time, logger *slog.Logger) *Builder {
	return &Builder{
		site:      site,
		scrapedAt: scrapedAt,
		logger:    logger.With("site", site.Key),
	}
}

// Record returns a fresh record stamped with the cycle timestamp and the
// site's bench identity.
func (b *Builder) Record() *types.DisplayRecord {
	return types.NewDisplayRecord(b.site.Key, b.site.Bench, b.site.SubBench, b.scrapedAt)
}

// ScrapedAt returns the cycle timestamp.
func (b *Builder) ScrapedAt() time.Time {
	return b.scrapedAt
}

// SkipRow logs a skipped table row and counts it. Extraction never aborts on
// a single bad row; it records why and moves on.
func (b *Builder) SkipRow(row int, reason string) {
	b.skipped++
	b.logger.Warn("row skipped", "row", row, "reason", reason)
}

// Skipped returns how many rows this cycle's extraction skipped.
func (b *Builder) Skipped() int {
	return b.skipped
}
