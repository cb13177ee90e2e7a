package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spikelog/spikelog/pkg/trace"
)

const (
	timelineBarWidth = 40
	windowTimeLayout = "2006-01-02 15:04"
)

// TextFormatter renders reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "spikelog: %d events, %d windows, %d spikes, %d recurring patterns, severity %s\n",
		report.Summary.TotalEvents,
		report.Summary.WindowsAnalyzed,
		report.Summary.SpikeCount,
		report.Summary.PatternCount,
		report.Summary.Severity)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== Log Event Analysis Report ===")
	fmt.Fprintln(w)

	f.formatCounts(report, w)
	f.formatTopMessages(report, w)
	f.formatTimeline(report, w)
	f.formatSpikes(report, w)
	f.formatPatterns(report, w)

	fmt.Fprintln(w, "Recommendations:")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(w, "  - %s\n", rec)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d events (%d in windows), %d windows, %d spikes, %d recurring patterns, severity %s\n",
		report.Summary.TotalEvents,
		report.Summary.TimestampedEvents,
		report.Summary.WindowsAnalyzed,
		report.Summary.SpikeCount,
		report.Summary.PatternCount,
		report.Summary.Severity)

	if f.opts.Verbose {
		if len(report.Metadata.Sources) > 0 {
			fmt.Fprintf(w, "Sources: %s\n", strings.Join(report.Metadata.Sources, ", "))
		}
		fmt.Fprintf(w, "Window size: %dm, threshold: %d\n",
			report.Metadata.WindowSizeMinutes, report.Metadata.Threshold)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return nil
}

func (f *TextFormatter) formatCounts(report *Report, w io.Writer) {
	if len(report.Levels) > 0 {
		fmt.Fprintln(w, "Levels:")
		for _, lc := range report.Levels {
			fmt.Fprintf(w, "  %-10s %d\n", lc.Level, lc.Count)
		}
		fmt.Fprintln(w)
	}

	if len(report.Categories) > 0 {
		fmt.Fprintln(w, "Categories:")
		for _, cc := range report.Categories {
			fmt.Fprintf(w, "  %-20s %d\n", cc.Category, cc.Count)
		}
		fmt.Fprintln(w)
	}
}

func (f *TextFormatter) formatTopMessages(report *Report, w io.Writer) {
	if len(report.TopMessages) == 0 {
		return
	}

	fmt.Fprintln(w, "Top messages:")
	for _, mc := range report.TopMessages {
		fmt.Fprintf(w, "  %4dx %s\n", mc.Count, mc.Message)
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatTimeline(report *Report, w io.Writer) {
	if len(report.Timeline) == 0 {
		return
	}

	max := 0
	for _, wc := range report.Timeline {
		if wc.Count > max {
			max = wc.Count
		}
	}

	fmt.Fprintln(w, "Timeline:")
	for _, wc := range report.Timeline {
		fmt.Fprintf(w, "  %s  %-*s %d\n",
			wc.Window.Format(windowTimeLayout),
			timelineBarWidth, bar(wc.Count, max),
			wc.Count)
	}
	fmt.Fprintln(w)
}

// bar scales count against max into a fixed-width hash bar. Non-empty
// windows always get at least one mark.
func bar(count, max int) string {
	if max <= 0 || count <= 0 {
		return ""
	}
	width := count * timelineBarWidth / max
	if width < 1 {
		width = 1
	}
	return strings.Repeat("#", width)
}

func (f *TextFormatter) formatSpikes(report *Report, w io.Writer) {
	if len(report.Spikes) == 0 {
		return
	}

	fmt.Fprintln(w, "Spikes:")
	for _, spike := range report.Spikes {
		fmt.Fprintf(w, "  %s  %d events (%.1f standard deviations above the mean)\n",
			spike.Window.Format(windowTimeLayout), spike.EventCount, spike.DeviationScore)
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatPatterns(report *Report, w io.Writer) {
	if len(report.Patterns) == 0 {
		return
	}

	fmt.Fprintln(w, "Recurring patterns:")
	for _, pattern := range report.Patterns {
		if pattern.AvgIntervalMinutes != nil {
			fmt.Fprintf(w, "  %-20s %d windows, every %.0fm on average\n",
				pattern.Category, len(pattern.Windows), *pattern.AvgIntervalMinutes)
		} else {
			fmt.Fprintf(w, "  %-20s %d windows\n",
				pattern.Category, len(pattern.Windows))
		}
	}
	fmt.Fprintln(w)
}

// FormatTraceText renders a classified stack trace as text.
func FormatTraceText(report *trace.TraceReport, w io.Writer) {
	fmt.Fprintf(w, "Error type: %s\n", report.ErrorType)
	if report.ErrorMessage != "" {
		fmt.Fprintf(w, "Message:    %s\n", report.ErrorMessage)
	}
	fmt.Fprintf(w, "Hint:       %s\n", report.Explanation)

	if len(report.Frames) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Frames (outermost first):")
		for i, frame := range report.Frames {
			fmt.Fprintf(w, "  %2d. %s (%s)\n", i+1, frame.Function, frameLocation(frame))
			if frame.Snippet != "" {
				fmt.Fprintf(w, "      %s\n", frame.Snippet)
			}
		}
		if root := report.Root(); root != nil {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Root location: %s in %s\n", frameLocation(*root), root.Function)
		}
	}

	if len(report.Suggestions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Suggestions:")
		for _, step := range report.Suggestions {
			fmt.Fprintf(w, "  - %s\n", step)
		}
	}
}

func frameLocation(frame trace.StackFrame) string {
	location := frame.File
	if frame.Line > 0 {
		location = fmt.Sprintf("%s:%d", frame.File, frame.Line)
	}
	if frame.Column > 0 {
		location = fmt.Sprintf("%s:%d", location, frame.Column)
	}
	return location
}
