// Package parser converts raw log lines into structured log events.
package parser

import "time"

// MaxMessageLength bounds stored event messages. Truncation is lossy and
// intentional: reports need bounded width, not full payloads.
const MaxMessageLength = 200

// LogEvent is a single structured log event extracted from a raw line.
// Immutable once created.
type LogEvent struct {
	// Timestamp is the parsed timestamp. Zero value means no timestamp
	// could be extracted from the line.
	Timestamp time.Time

	// Level is the severity token, UNKNOWN when none was found.
	Level string

	// Category is the normalized error-type tag (e.g. CONNECTION_ERROR).
	Category string

	// Message is the raw line content, truncated to MaxMessageLength.
	Message string

	// Source is the file path this event came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int

	// Window is the start of the aggregation window this event landed in.
	// Set during window aggregation; zero for events without timestamps.
	Window time.Time
}

// HasTimestamp reports whether a timestamp was extracted for this event.
func (e *LogEvent) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}
