package analyzer

import (
	"sort"
	"time"
)

// PatternRecognizer detects error categories recurring across windows.
// Recurrence is measured in distinct windows, not total hits: a category
// hammering a single window is a spike's business, not a pattern.
type PatternRecognizer struct {
	minWindows int
}

// NewPatternRecognizer creates a recognizer requiring at least minWindows
// distinct occurrence windows. The same sensitivity knob as the spike
// minimum threshold.
func NewPatternRecognizer(minWindows int) *PatternRecognizer {
	return &PatternRecognizer{minWindows: minWindows}
}

// Recognize returns the recurring patterns in a frequency table, ordered
// by occurrence-window count descending, ties alphabetically by category.
func (r *PatternRecognizer) Recognize(table FrequencyTable) []RecurringPattern {
	var patterns []RecurringPattern

	for category, freq := range table {
		if len(freq.Windows) < r.minWindows {
			continue
		}

		patterns = append(patterns, RecurringPattern{
			Category:           category,
			Windows:            freq.Windows,
			AvgIntervalMinutes: averageInterval(freq.Windows),
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i].Windows) != len(patterns[j].Windows) {
			return len(patterns[i].Windows) > len(patterns[j].Windows)
		}
		return patterns[i].Category < patterns[j].Category
	})

	return patterns
}

// averageInterval is the mean of consecutive gaps between sorted
// occurrence windows, in minutes. Nil with fewer than 2 occurrences:
// a single data point has no interval, and reporting zero would lie.
func averageInterval(windows []time.Time) *float64 {
	if len(windows) < 2 {
		return nil
	}

	total := 0.0
	for i := 1; i < len(windows); i++ {
		total += windows[i].Sub(windows[i-1]).Minutes()
	}
	avg := total / float64(len(windows)-1)
	return &avg
}
