package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/courtlivestream/boardwatch/internal/board"
	"github.com/courtlivestream/boardwatch/internal/config"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// payloadTimeLayout is the clock-face format the ingestion endpoint expects,
// e.g. "03:41 PM".
const payloadTimeLayout = "03:04 PM"

// Client posts display records to the shared ingestion endpoint, one POST per
// record. Individual failures never interrupt the batch; the caller gets a
// Report totalling what went through.
type Client struct {
	http   *resty.Client
	url    string
	maxErr int
	logger *slog.Logger
}

// Report summarizes one batch of posts.
type Report struct {
	Total      int
	Successful int
	Failed     int

	// Errors holds the first few failure messages, capped so one broken
	// cycle cannot flood the log.
	Errors []string
}

// NewClient creates an ingest client from configuration.
func NewClient(cfg config.IngestConfig, logger *slog.Logger) *Client {
	http := resty.New()
	http.SetTimeout(cfg.Timeout)
	http.SetHeader("Content-Type", "application/json")
	http.SetHeader("Accept", "application/json")

	return &Client{
		http:   http,
		url:    cfg.URL,
		maxErr: cfg.MaxErrorDetails,
		logger: logger.With("component", "ingest"),
	}
}

// PostBatch sends every record in the batch and reports the outcome.
func (c *Client) PostBatch(ctx context.Context, site *board.Site, records []*types.DisplayRecord) Report {
	report := Report{Total: len(records)}

	for i, rec := range records {
		ok, msg := c.postRecord(ctx, site, rec)
		if ok {
			report.Successful++
			continue
		}
		report.Failed++
		if len(report.Errors) < c.maxErr {
			report.Errors = append(report.Errors, fmt.Sprintf("record %d: %s", i+1, msg))
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			break
		}
	}

	if report.Failed > 0 {
		c.logger.Warn("batch posted with failures",
			"site", site.Key,
			"total", report.Total,
			"successful", report.Successful,
			"failed", report.Failed,
			"errors", report.Errors,
		)
	} else {
		c.logger.Info("batch posted",
			"site", site.Key,
			"total", report.Total,
			"successful", report.Successful,
		)
	}
	return report
}

// postRecord sends one record. Returns (ok, message); the message explains
// the failure and is "" on success.
func (c *Client) postRecord(ctx context.Context, site *board.Site, rec *types.DisplayRecord) (bool, string) {
	payload := BuildPayload(site, rec)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return false, "request timeout"
		}
		return false, "connection error: " + err.Error()
	}

	if resp.StatusCode() == 200 || resp.StatusCode() == 201 {
		return true, ""
	}

	ierr := &types.IngestError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	return false, ierr.Error()
}

// BuildPayload flattens a record into the ingestion JSON body. benchName,
// courtHallNumber, date and time always come from the record envelope; the
// rest follows the site's payload mapping.
func BuildPayload(site *board.Site, rec *types.DisplayRecord) map[string]any {
	courtField := site.Payload.CourtField
	if courtField == "" {
		courtField = types.FieldCourt
	}

	payload := map[string]any{
		"benchName":       rec.Bench,
		"courtHallNumber": rec.Get(courtField),
		"date":            rec.ScrapedAt.Format("2006-01-02"),
		"time":            rec.ScrapedAt.Format(payloadTimeLayout),
	}

	for key, field := range site.Payload.Fields {
		switch key {
		case "serialNumber", "listNumber":
			payload[key] = coerceInt(rec.Get(field))
		default:
			if field == "" {
				payload[key] = ""
			} else {
				payload[key] = rec.Get(field)
			}
		}
	}
	return payload
}

// coerceInt turns a display value into the integer the endpoint expects.
// Mixed values ("D-10", "6/L1") contribute their first digit run; anything
// without digits becomes 0.
func coerceInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(s[start:])
		return n
	}
	return 0
}
