package sink

import (
	"log/slog"

	"github.com/courtlivestream/boardwatch/internal/types"
)

// Sink is the interface for all record persistence backends.
type Sink interface {
	// Store persists a batch of records from one scrape cycle.
	Store(records []*types.DisplayRecord) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the sink backend identifier.
	Name() string
}

// Multi fans a batch out to several sinks. One failing backend does not stop
// the others; the first error is reported after all backends ran.
type Multi struct {
	backends []Sink
	logger   *slog.Logger
}

// NewMulti creates a fan-out sink.
func NewMulti(backends []Sink, logger *slog.Logger) *Multi {
	return &Multi{
		backends: backends,
		logger:   logger.With("component", "multi_sink"),
	}
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Store(records []*types.DisplayRecord) error {
	var firstErr error
	for _, backend := range m.backends {
		if err := backend.Store(records); err != nil {
			m.logger.Error("backend store failed", "backend", backend.Name(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (m *Multi) Close() error {
	var firstErr error
	for _, backend := range m.backends {
		if err := backend.Close(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
