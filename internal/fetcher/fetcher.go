package fetcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courtlivestream/boardwatch/internal/board"
	"github.com/courtlivestream/boardwatch/internal/config"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Fetcher retrieves a rendered snapshot of a site's display board page.
type Fetcher interface {
	// Fetch loads the site's page, runs its setup interactions and wait
	// conditions, and returns the rendered markup.
	Fetch(ctx context.Context, site *board.Site) (*types.Page, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}

// New creates the fetcher a site asks for. The config's fetcher.type, when
// set, overrides the site's choice.
func New(cfg *config.Config, site *board.Site, logger *slog.Logger) (Fetcher, error) {
	kind := site.FetcherType
	if cfg.Fetcher.Type != "" {
		kind = cfg.Fetcher.Type
	}

	switch kind {
	case "browser":
		return NewBrowserFetcher(cfg, logger)
	case "http":
		return NewHTTPFetcher(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown fetcher type %q", kind)
	}
}
