// Package output builds and renders analysis reports.
package output

import (
	"sort"
	"time"

	"github.com/spikelog/spikelog/pkg/analyzer"
)

// Severity is the overall health verdict for a run.
type Severity string

const (
	SeverityHealthy  Severity = "healthy"
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// Severity cutoffs on the aggregate event count. Fixed, not adaptive.
const (
	lowSeverityBelow = 10
	highSeverityFrom = 100
)

// Report is the complete analysis output, ordered deterministically:
// identical inputs render byte-identical reports.
type Report struct {
	Summary         Summary                     `json:"summary"`
	Levels          []LevelCount                `json:"levels"`
	Categories      []CategoryCount             `json:"categories"`
	TopMessages     []MessageCount              `json:"top_messages"`
	Timeline        []WindowCount               `json:"timeline"`
	Spikes          []analyzer.Spike            `json:"spikes"`
	Patterns        []analyzer.RecurringPattern `json:"patterns"`
	Recommendations []string                    `json:"recommendations"`
	Metadata        Metadata                    `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	TotalEvents       int      `json:"total_events"`
	TimestampedEvents int      `json:"timestamped_events"`
	WindowsAnalyzed   int      `json:"windows_analyzed"`
	SpikeCount        int      `json:"spike_count"`
	PatternCount      int      `json:"pattern_count"`
	Severity          Severity `json:"severity"`
}

// LevelCount is one severity level with its event count.
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// CategoryCount is one error category with its total event count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// MessageCount is one raw message with its occurrence count.
type MessageCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// WindowCount is one time window with its event count, for the
// window-by-window magnitude view.
type WindowCount struct {
	Window time.Time `json:"window"`
	Count  int       `json:"count"`
}

// Metadata provides context about the analysis run. Wall-clock fields
// are excluded from JSON so identical inputs produce identical bytes.
type Metadata struct {
	Sources           []string            `json:"sources,omitempty"`
	WindowSizeMinutes int                 `json:"window_size_minutes"`
	Threshold         int                 `json:"threshold"`
	ErrorsOnly        bool                `json:"errors_only"`
	TimeRange         *analyzer.TimeRange `json:"time_range,omitempty"`
	AnalyzedAt        time.Time           `json:"-"`
	Duration          time.Duration       `json:"-"`
}

// NewReport assembles a Report from an analysis result. topMessages
// bounds the most-frequent-messages list.
func NewReport(result *analyzer.Result, topMessages int) *Report {
	report := &Report{
		Summary: Summary{
			TotalEvents:       result.TotalEvents,
			TimestampedEvents: result.TimestampedEvents,
			WindowsAnalyzed:   len(result.Buckets),
			SpikeCount:        len(result.Spikes),
			PatternCount:      len(result.Patterns),
			Severity:          severityFor(result.TotalEvents),
		},
		Levels:      sortedLevelCounts(result.Levels),
		Categories:  sortedCategoryCounts(result.Frequency),
		TopMessages: topMessageCounts(result.Messages, topMessages),
		Timeline:    timelineOf(result.Buckets),
		Spikes:      result.Spikes,
		Patterns:    result.Patterns,
		Metadata: Metadata{
			Sources:           result.Metadata.Sources,
			WindowSizeMinutes: result.Metadata.WindowSizeMinutes,
			Threshold:         result.Metadata.Threshold,
			ErrorsOnly:        result.Metadata.ErrorsOnly,
			TimeRange:         result.Metadata.TimeRange,
			AnalyzedAt:        result.Metadata.EndTime,
			Duration:          result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
	}

	report.Recommendations = recommend(report)

	return report
}

// HasSpikes returns true if any spike windows were detected.
func (r *Report) HasSpikes() bool {
	return r.Summary.SpikeCount > 0
}

func severityFor(totalEvents int) Severity {
	switch {
	case totalEvents == 0:
		return SeverityHealthy
	case totalEvents < lowSeverityBelow:
		return SeverityLow
	case totalEvents < highSeverityFrom:
		return SeverityModerate
	default:
		return SeverityHigh
	}
}

// recommend picks canned guidance from fixed thresholds. No learned or
// adaptive logic.
func recommend(r *Report) []string {
	var recs []string

	switch r.Summary.Severity {
	case SeverityHealthy:
		recs = append(recs, "No error events found. The log looks healthy.")
	case SeverityLow:
		recs = append(recs, "Low error volume. Review the top messages when convenient.")
	case SeverityModerate:
		recs = append(recs, "Moderate error volume. Review the dominant categories and their sources.")
	case SeverityHigh:
		recs = append(recs, "High error volume. Investigate the dominant categories as a priority.")
	}

	if r.Summary.SpikeCount > 0 {
		recs = append(recs, "Error spikes detected. Correlate the spike windows with deploys, traffic shifts, or upstream incidents.")
	}
	if r.Summary.PatternCount > 0 {
		recs = append(recs, "Recurring error categories detected. Steady repetition usually means a systemic cause, not a transient one.")
	}
	if r.Summary.TotalEvents > 0 && r.Summary.TimestampedEvents == 0 {
		recs = append(recs, "No timestamps could be parsed, so windowed analysis was skipped. Check the log's timestamp format.")
	}

	return recs
}

func sortedLevelCounts(levels map[string]int) []LevelCount {
	out := make([]LevelCount, 0, len(levels))
	for level, count := range levels {
		out = append(out, LevelCount{Level: level, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Level < out[j].Level
	})
	return out
}

func sortedCategoryCounts(table analyzer.FrequencyTable) []CategoryCount {
	out := make([]CategoryCount, 0, len(table))
	for category, freq := range table {
		out = append(out, CategoryCount{Category: category, Count: freq.Count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func topMessageCounts(messages map[string]int, limit int) []MessageCount {
	out := make([]MessageCount, 0, len(messages))
	for message, count := range messages {
		out = append(out, MessageCount{Message: message, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Message < out[j].Message
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func timelineOf(buckets []*analyzer.WindowBucket) []WindowCount {
	out := make([]WindowCount, len(buckets))
	for i, bucket := range buckets {
		out[i] = WindowCount{Window: bucket.Key, Count: bucket.EventCount()}
	}
	return out
}
