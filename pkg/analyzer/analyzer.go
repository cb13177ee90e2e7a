package analyzer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spikelog/spikelog/pkg/config"
	"github.com/spikelog/spikelog/pkg/parser"
)

// Engine runs the full analysis pipeline: drain an event source, bucket
// events into windows, then compute spikes and recurring patterns over
// the read-only bucket view. Engines are single-use per run and hold no
// state shared across runs.
type Engine struct {
	windowSize int
	threshold  int
	errorsOnly bool

	timeRange *TimeRange
}

// Option configures engine behavior beyond the loaded config.
type Option func(*Engine)

// WithTimeRange limits analysis to timestamped events within the range.
// Events without timestamps cannot be placed and always pass the filter.
func WithTimeRange(start, end time.Time) Option {
	return func(e *Engine) {
		e.timeRange = &TimeRange{Start: start, End: end}
	}
}

// WithWindowSize overrides the configured window size in minutes.
func WithWindowSize(minutes int) Option {
	return func(e *Engine) {
		if minutes > 0 {
			e.windowSize = minutes
		}
	}
}

// WithThreshold overrides the configured spike/pattern sensitivity.
func WithThreshold(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.threshold = n
		}
	}
}

// NewEngine creates an engine from configuration.
func NewEngine(cfg *config.Config, opts ...Option) (*Engine, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		windowSize: cfg.WindowSizeMinutes,
		threshold:  cfg.SpikeThreshold,
		errorsOnly: cfg.ErrorsOnly,
	}

	if cfg.TimeRangeHours > 0 {
		end := time.Now()
		e.timeRange = &TimeRange{
			Start: end.Add(-time.Duration(cfg.TimeRangeHours) * time.Hour),
			End:   end,
		}
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// ErrorsOnly reports whether the engine expects an errors-only source.
// The caller builds the LineParser; this keeps the two in agreement.
func (e *Engine) ErrorsOnly() bool {
	return e.errorsOnly
}

// Analyze drains the source and computes the full result. A malformed
// line never aborts the run (the parser skips it); only source-level I/O
// failures surface here.
func (e *Engine) Analyze(ctx context.Context, source parser.EventSource) (*Result, error) {
	agg := NewAggregator(e.windowSize)

	metadata := Metadata{
		WindowSizeMinutes: e.windowSize,
		Threshold:         e.threshold,
		ErrorsOnly:        e.errorsOnly,
		TimeRange:         e.timeRange,
		StartTime:         time.Now(),
	}

	sourcesSeen := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		event, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}

		if event.Source != "" && !sourcesSeen[event.Source] {
			sourcesSeen[event.Source] = true
			metadata.Sources = append(metadata.Sources, event.Source)
		}

		if e.timeRange != nil && event.HasTimestamp() {
			if event.Timestamp.Before(e.timeRange.Start) || event.Timestamp.After(e.timeRange.End) {
				continue
			}
		}

		agg.Add(*event)
	}

	buckets := agg.Buckets()
	frequency := agg.Frequency()

	metadata.EndTime = time.Now()

	return &Result{
		TotalEvents:       agg.TotalEvents(),
		TimestampedEvents: agg.TimestampedEvents(),
		Levels:            agg.Levels(),
		Messages:          agg.Messages(),
		Buckets:           buckets,
		Frequency:         frequency,
		Spikes:            NewSpikeDetector(e.threshold).Detect(buckets),
		Patterns:          NewPatternRecognizer(e.threshold).Recognize(frequency),
		Metadata:          metadata,
	}, nil
}
