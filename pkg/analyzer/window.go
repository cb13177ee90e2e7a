package analyzer

import (
	"sort"
	"time"

	"github.com/spikelog/spikelog/pkg/parser"
)

// WindowBucket holds the events and per-category counts for one time
// window. Insertion is append-only; buckets are never evicted within a run.
type WindowBucket struct {
	// Key is the window start, aligned to the window size.
	Key time.Time `json:"key"`

	// Events are the events that landed in this window.
	Events []parser.LogEvent `json:"-"`

	// Categories maps category tag to count within this window.
	Categories map[string]int `json:"categories"`
}

// EventCount returns the number of events in the bucket.
func (b *WindowBucket) EventCount() int {
	return len(b.Events)
}

// CategoryFrequency is the total count and occurrence windows for one
// category.
type CategoryFrequency struct {
	// Count is the total number of events of this category, including
	// events without timestamps.
	Count int `json:"count"`

	// Windows are the distinct window keys where the category appeared,
	// sorted ascending.
	Windows []time.Time `json:"windows"`
}

// FrequencyTable maps category to its frequency data. Derived, read-only
// once computed.
type FrequencyTable map[string]*CategoryFrequency

// Aggregator buckets log events into fixed-size time windows. Events
// without timestamps cannot be placed in a window but still count toward
// level, category, and message totals.
type Aggregator struct {
	windowSize int

	buckets map[time.Time]*WindowBucket

	categoryCounts  map[string]int
	categoryWindows map[string]map[time.Time]bool
	levels          map[string]int
	messages        map[string]int

	total       int
	timestamped int
}

// NewAggregator creates an Aggregator with the given window size in
// minutes. The size must be positive; config validation enforces this.
func NewAggregator(windowSizeMinutes int) *Aggregator {
	return &Aggregator{
		windowSize:      windowSizeMinutes,
		buckets:         make(map[time.Time]*WindowBucket),
		categoryCounts:  make(map[string]int),
		categoryWindows: make(map[string]map[time.Time]bool),
		levels:          make(map[string]int),
		messages:        make(map[string]int),
	}
}

// WindowKey computes the window start for a timestamp: the minute floored
// to a multiple of the window size, seconds zeroed, hour and date kept.
// Window sizes that do not evenly divide 60 reset their boundaries at the
// top of each hour.
func (a *Aggregator) WindowKey(ts time.Time) time.Time {
	minute := ts.Minute() / a.windowSize * a.windowSize
	return time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), minute, 0, 0, ts.Location())
}

// Add inserts an event. Every event belongs to exactly one bucket;
// window assignment is a pure function of timestamp and window size.
func (a *Aggregator) Add(event parser.LogEvent) {
	a.total++
	a.levels[event.Level]++
	a.messages[event.Message]++
	a.categoryCounts[event.Category]++

	if !event.HasTimestamp() {
		return
	}
	a.timestamped++

	key := a.WindowKey(event.Timestamp)
	event.Window = key

	bucket := a.buckets[key]
	if bucket == nil {
		bucket = &WindowBucket{
			Key:        key,
			Categories: make(map[string]int),
		}
		a.buckets[key] = bucket
	}
	bucket.Events = append(bucket.Events, event)
	bucket.Categories[event.Category]++

	windows := a.categoryWindows[event.Category]
	if windows == nil {
		windows = make(map[time.Time]bool)
		a.categoryWindows[event.Category] = windows
	}
	windows[key] = true
}

// Buckets returns the window buckets in chronological order. The slice
// is a read-only view for the detector and recognizer.
func (a *Aggregator) Buckets() []*WindowBucket {
	keys := make([]time.Time, 0, len(a.buckets))
	for key := range a.buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	buckets := make([]*WindowBucket, len(keys))
	for i, key := range keys {
		buckets[i] = a.buckets[key]
	}
	return buckets
}

// Frequency builds the per-category frequency table. Counts include
// events without timestamps; occurrence windows necessarily do not.
func (a *Aggregator) Frequency() FrequencyTable {
	table := make(FrequencyTable, len(a.categoryCounts))
	for category, count := range a.categoryCounts {
		freq := &CategoryFrequency{Count: count}
		for key := range a.categoryWindows[category] {
			freq.Windows = append(freq.Windows, key)
		}
		sort.Slice(freq.Windows, func(i, j int) bool { return freq.Windows[i].Before(freq.Windows[j]) })
		table[category] = freq
	}
	return table
}

// Levels returns the severity level counts.
func (a *Aggregator) Levels() map[string]int {
	return a.levels
}

// Messages returns the raw message counts.
func (a *Aggregator) Messages() map[string]int {
	return a.messages
}

// TotalEvents returns the number of events added.
func (a *Aggregator) TotalEvents() int {
	return a.total
}

// TimestampedEvents returns the number of events placed in windows.
func (a *Aggregator) TimestampedEvents() int {
	return a.timestamped
}
