package types

import (
	"encoding/json"
	"time"
)

// Canonical field keys shared across all site layouts. Site descriptors may
// add their own keys on top of these (e.g. "round", "purpose", "list_type").
const (
	FieldCourt          = "court"
	FieldSerial         = "serial"
	FieldSerialNumeric  = "serial_numeric"
	FieldCase           = "case"
	FieldCaseNumeric    = "case_numeric"
	FieldJudge          = "judge"
	FieldStage          = "stage"
	FieldList           = "list"
	FieldPetitioner     = "petitioner"
	FieldRespondent     = "respondent"
	FieldImportantInfo  = "important_info"
	FieldScrapeDateTime = "datetime"
)

// TimestampLayout is the wall-clock format written into every record and
// day-file row.
const TimestampLayout = "2006-01-02 15:04:05"

// DisplayRecord is one courtroom's state as captured in a single scrape
// cycle. Records are write-once: built from the page, serialized to the
// day-file and the ingest payload, never mutated afterwards.
type DisplayRecord struct {
	// Site is the registry key of the site that produced this record.
	Site string

	// Bench is the human-readable bench name (e.g. "New Delhi", "Kochi").
	Bench string

	// SubBench distinguishes circuit benches sharing one board, "" otherwise.
	SubBench string

	// Fields holds the extracted per-column values keyed by canonical or
	// site-specific field names.
	Fields map[string]string

	// ScrapedAt is when the scrape cycle that produced this record ran.
	ScrapedAt time.Time
}

// NewDisplayRecord creates an empty record for a site stamped with the cycle
// timestamp.
func NewDisplayRecord(site, bench, subBench string, scrapedAt time.Time) *DisplayRecord {
	return &DisplayRecord{
		Site:      site,
		Bench:     bench,
		SubBench:  subBench,
		Fields:    make(map[string]string),
		ScrapedAt: scrapedAt,
	}
}

// Set sets a field value.
func (r *DisplayRecord) Set(key, value string) {
	r.Fields[key] = value
}

// Get retrieves a field value, "" if absent.
func (r *DisplayRecord) Get(key string) string {
	return r.Fields[key]
}

// Has reports whether the field exists.
func (r *DisplayRecord) Has(key string) bool {
	_, ok := r.Fields[key]
	return ok
}

// Timestamp returns the scrape time in the shared wall-clock format.
func (r *DisplayRecord) Timestamp() string {
	return r.ScrapedAt.Format(TimestampLayout)
}

// Row flattens the record into day-file cells following the given column
// order. Column names resolve against Fields; the reserved names "bench",
// "sub_bench" and "datetime" resolve against the record envelope.
func (r *DisplayRecord) Row(columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		switch col {
		case "bench":
			row[i] = r.Bench
		case "sub_bench":
			row[i] = r.SubBench
		case FieldScrapeDateTime:
			row[i] = r.Timestamp()
		default:
			row[i] = r.Fields[col]
		}
	}
	return row
}

// ToJSON serializes the record for archival sinks.
func (r *DisplayRecord) ToJSON() ([]byte, error) {
	return json.Marshal(struct {
		Site      string            `json:"site"`
		Bench     string            `json:"bench"`
		SubBench  string            `json:"sub_bench,omitempty"`
		Fields    map[string]string `json:"fields"`
		ScrapedAt time.Time         `json:"scraped_at"`
	}{
		Site:      r.Site,
		Bench:     r.Bench,
		SubBench:  r.SubBench,
		Fields:    r.Fields,
		ScrapedAt: r.ScrapedAt,
	})
}

// Clone creates a deep copy of the record. Used by packed layouts that fan a
// serial range out into one record per serial number.
func (r *DisplayRecord) Clone() *DisplayRecord {
	clone := &DisplayRecord{
		Site:      r.Site,
		Bench:     r.Bench,
		SubBench:  r.SubBench,
		Fields:    make(map[string]string, len(r.Fields)),
		ScrapedAt: r.ScrapedAt,
	}
	for k, v := range r.Fields {
		clone.Fields[k] = v
	}
	return clone
}
