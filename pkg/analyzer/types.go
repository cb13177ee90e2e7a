// Package analyzer aggregates log events over time windows and surfaces
// statistical anomalies and recurring error patterns.
package analyzer

import (
	"time"
)

// Spike is a window whose event count is a statistical outlier relative
// to all windows in the run.
type Spike struct {
	// Window is the start of the spiking window.
	Window time.Time `json:"window"`

	// EventCount is the number of events in the window.
	EventCount int `json:"event_count"`

	// DeviationScore is how many standard deviations the count sits
	// above the mean. Zero when the deviation is undefined.
	DeviationScore float64 `json:"deviation_score"`
}

// RecurringPattern is an error category appearing in at least the
// configured minimum number of distinct windows.
type RecurringPattern struct {
	// Category is the normalized error-type tag.
	Category string `json:"category"`

	// Windows are the distinct window keys where the category appeared,
	// sorted ascending with no duplicates.
	Windows []time.Time `json:"windows"`

	// AvgIntervalMinutes is the mean gap between consecutive occurrence
	// windows, in minutes. Nil when fewer than 2 occurrences exist.
	AvgIntervalMinutes *float64 `json:"avg_interval_minutes,omitempty"`
}

// TimeRange defines a time window for filtering log events.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Result contains the complete analysis output for one run.
type Result struct {
	// TotalEvents is the number of events extracted from the source.
	TotalEvents int

	// TimestampedEvents is how many of those carried a timestamp and
	// therefore landed in a window.
	TimestampedEvents int

	// Levels maps severity level to event count.
	Levels map[string]int

	// Messages maps truncated raw message to occurrence count.
	Messages map[string]int

	// Buckets holds the per-window aggregates in chronological order.
	Buckets []*WindowBucket

	// Frequency is the per-category count and occurrence-window table.
	Frequency FrequencyTable

	// Spikes are outlier windows, sorted by event count descending.
	Spikes []Spike

	// Patterns are recurring categories, most frequent first.
	Patterns []RecurringPattern

	// Metadata provides context about the run.
	Metadata Metadata
}

// Metadata provides context about an analysis run.
type Metadata struct {
	// Sources lists the log files that were analyzed.
	Sources []string

	// WindowSizeMinutes is the aggregation window size used.
	WindowSizeMinutes int

	// Threshold is the spike/pattern sensitivity used.
	Threshold int

	// ErrorsOnly reports whether non-error lines were filtered out.
	ErrorsOnly bool

	// TimeRange is the time filter applied, if any.
	TimeRange *TimeRange

	// StartTime is when analysis began.
	StartTime time.Time

	// EndTime is when analysis completed.
	EndTime time.Time
}

// HasEvents reports whether the run extracted any events at all.
// Zero events is the soft failure mode: the source was readable but
// contained nothing parseable.
func (r *Result) HasEvents() bool {
	return r.TotalEvents > 0
}
