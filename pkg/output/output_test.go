package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikelog/spikelog/pkg/analyzer"
	"github.com/spikelog/spikelog/pkg/parser"
	"github.com/spikelog/spikelog/pkg/trace"
)

func sampleResult() *analyzer.Result {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	interval := 60.0

	buckets := []*analyzer.WindowBucket{
		{
			Key:        base,
			Events:     []parser.LogEvent{{Category: "TIMEOUT"}, {Category: "TIMEOUT"}},
			Categories: map[string]int{"TIMEOUT": 2},
		},
		{
			Key:        base.Add(time.Hour),
			Events:     []parser.LogEvent{{Category: "TIMEOUT"}},
			Categories: map[string]int{"TIMEOUT": 1},
		},
	}

	return &analyzer.Result{
		TotalEvents:       3,
		TimestampedEvents: 3,
		Levels:            map[string]int{"ERROR": 2, "FATAL": 1},
		Messages:          map[string]int{"timeout calling billing": 2, "timeout calling search": 1},
		Buckets:           buckets,
		Frequency: analyzer.FrequencyTable{
			"TIMEOUT": {Count: 3, Windows: []time.Time{base, base.Add(time.Hour)}},
		},
		Spikes: []analyzer.Spike{
			{Window: base, EventCount: 2, DeviationScore: 2.5},
		},
		Patterns: []analyzer.RecurringPattern{
			{Category: "TIMEOUT", Windows: []time.Time{base, base.Add(time.Hour)}, AvgIntervalMinutes: &interval},
		},
		Metadata: analyzer.Metadata{
			Sources:           []string{"/var/log/app.log"},
			WindowSizeMinutes: 60,
			Threshold:         2,
			ErrorsOnly:        true,
		},
	}
}

func TestNewReport(t *testing.T) {
	report := NewReport(sampleResult(), 5)

	assert.Equal(t, 3, report.Summary.TotalEvents)
	assert.Equal(t, 2, report.Summary.WindowsAnalyzed)
	assert.Equal(t, 1, report.Summary.SpikeCount)
	assert.Equal(t, 1, report.Summary.PatternCount)
	assert.Equal(t, SeverityLow, report.Summary.Severity)

	require.Len(t, report.Levels, 2)
	assert.Equal(t, "ERROR", report.Levels[0].Level)

	require.Len(t, report.TopMessages, 2)
	assert.Equal(t, "timeout calling billing", report.TopMessages[0].Message)

	require.Len(t, report.Timeline, 2)
	assert.True(t, report.Timeline[0].Window.Before(report.Timeline[1].Window))
}

func TestNewReport_TopMessagesLimit(t *testing.T) {
	result := sampleResult()
	report := NewReport(result, 1)
	assert.Len(t, report.TopMessages, 1)
}

func TestSeverityThresholds(t *testing.T) {
	tests := []struct {
		events int
		want   Severity
	}{
		{0, SeverityHealthy},
		{1, SeverityLow},
		{9, SeverityLow},
		{10, SeverityModerate},
		{99, SeverityModerate},
		{100, SeverityHigh},
		{5000, SeverityHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, severityFor(tt.events), "events=%d", tt.events)
	}
}

func TestRecommendations(t *testing.T) {
	report := NewReport(sampleResult(), 5)

	joined := strings.Join(report.Recommendations, "\n")
	assert.Contains(t, joined, "spikes detected")
	assert.Contains(t, joined, "Recurring error categories")
}

func TestRecommendations_Healthy(t *testing.T) {
	report := NewReport(&analyzer.Result{}, 5)

	require.NotEmpty(t, report.Recommendations)
	assert.Contains(t, report.Recommendations[0], "healthy")
	assert.Equal(t, SeverityHealthy, report.Summary.Severity)
}

func TestTextFormatter(t *testing.T) {
	report := NewReport(sampleResult(), 5)

	var buf bytes.Buffer
	err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "=== Log Event Analysis Report ===")
	assert.Contains(t, out, "TIMEOUT")
	assert.Contains(t, out, "Timeline:")
	assert.Contains(t, out, "#")
	assert.Contains(t, out, "Spikes:")
	assert.Contains(t, out, "Recurring patterns:")
	assert.Contains(t, out, "every 60m on average")
	assert.Contains(t, out, "severity low")
}

func TestTextFormatter_Quiet(t *testing.T) {
	report := NewReport(sampleResult(), 5)

	var buf bytes.Buffer
	err := NewTextFormatter(FormatOptions{Quiet: true}).Format(context.Background(), report, &buf)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "quiet output is a single line")
}

func TestTextFormatter_Deterministic(t *testing.T) {
	render := func() string {
		report := NewReport(sampleResult(), 5)
		var buf bytes.Buffer
		require.NoError(t, NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf))
		return buf.String()
	}

	assert.Equal(t, render(), render(), "identical inputs must render byte-identical reports")
}

func TestJSONFormatter_Deterministic(t *testing.T) {
	render := func() string {
		report := NewReport(sampleResult(), 5)
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter(FormatOptions{}).Format(context.Background(), report, &buf))
		return buf.String()
	}

	first := render()
	assert.Equal(t, first, render())
	assert.Contains(t, first, `"severity": "low"`)
	assert.Contains(t, first, `"avg_interval_minutes": 60`)
}

func TestJSONFormatter_Quiet(t *testing.T) {
	report := NewReport(sampleResult(), 5)

	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(FormatOptions{Quiet: true}).Format(context.Background(), report, &buf))

	out := buf.String()
	assert.Contains(t, out, `"total_events": 3`)
	assert.NotContains(t, out, `"timeline"`)
}

func TestFormatTraceText(t *testing.T) {
	report := &trace.TraceReport{
		ErrorType:    "KeyError",
		ErrorMessage: "'x'",
		Explanation:  trace.Explain("KeyError"),
		Suggestions:  trace.Suggest("KeyError"),
		Frames: []trace.StackFrame{
			{Function: "main", File: "app.py", Line: 10, Snippet: "run()"},
			{Function: "run", File: "app.py", Line: 22},
		},
	}

	var buf bytes.Buffer
	FormatTraceText(report, &buf)

	out := buf.String()
	assert.Contains(t, out, "Error type: KeyError")
	assert.Contains(t, out, "outermost first")
	assert.Contains(t, out, "app.py:10")
	assert.Contains(t, out, "run()")
	// The root location is the innermost frame, not the first listed.
	assert.Contains(t, out, "Root location: app.py:22 in run")
	assert.Contains(t, out, "Suggestions:")
	assert.Contains(t, out, "Check if the key exists before accessing it")
}

func TestBar(t *testing.T) {
	assert.Equal(t, timelineBarWidth, len(bar(10, 10)))
	assert.Equal(t, timelineBarWidth/2, len(bar(5, 10)))
	assert.Equal(t, 1, len(bar(1, 1000)), "non-zero counts always get a mark")
	assert.Equal(t, "", bar(0, 10))
}
