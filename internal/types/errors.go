package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrUnknownSite    = errors.New("site is not registered")
	ErrNoTable        = errors.New("display-board table not found")
	ErrTableEmpty     = errors.New("display-board table has no data rows")
	ErrTableNotReady  = errors.New("table never populated within the wait window")
	ErrDayFileMissing = errors.New("day-file does not exist yet")
	ErrDayFileEmpty   = errors.New("day-file has no data rows")
)

// FetchError wraps errors that occur while loading a board page.
type FetchError struct {
	URL       string
	Err       error
	Retryable bool
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) IsRetryable() bool { return e.Retryable }

// ExtractError wraps errors that occur while walking the board table.
type ExtractError struct {
	Site string
	Row  int
	Err  error
}

func (e *ExtractError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("extract error for site %s (row %d): %v", e.Site, e.Row, e.Err)
	}
	return fmt.Sprintf("extract error for site %s: %v", e.Site, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// SinkError wraps errors from the tabular or archive sinks.
type SinkError struct {
	Sink string
	Path string
	Err  error
}

func (e *SinkError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("sink error (%s, %s): %v", e.Sink, e.Path, e.Err)
	}
	return fmt.Sprintf("sink error (%s): %v", e.Sink, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// IngestError wraps a failed POST of one record to the ingestion endpoint.
type IngestError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *IngestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("ingest error: %v", e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }
