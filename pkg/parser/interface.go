package parser

import (
	"context"
	"errors"
)

// ErrSourceUnavailable indicates the log source could not be opened or read.
// This is fatal for the run; per-line parse failures are skipped instead.
var ErrSourceUnavailable = errors.New("log source unavailable")

// EventSource provides an iterator over parsed log events.
// Implementations must be safe for sequential access (not concurrent).
type EventSource interface {
	// Next returns the next parsed log event.
	// Returns io.EOF when no more events are available.
	// Lines that are not candidate events are skipped silently.
	Next(ctx context.Context) (*LogEvent, error)

	// Close releases any resources held by the source.
	Close() error
}
