package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikelog/spikelog/pkg/parser"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 15, hour, minute, 30, 0, time.UTC)
}

func event(ts time.Time, category string) parser.LogEvent {
	return parser.LogEvent{
		Timestamp: ts,
		Level:     "ERROR",
		Category:  category,
		Message:   "boom: " + category,
	}
}

func TestAggregator_WindowKey(t *testing.T) {
	tests := []struct {
		name       string
		windowSize int
		ts         time.Time
		want       time.Time
	}{
		{
			"hourly window floors to hour",
			60,
			time.Date(2024, 1, 15, 10, 42, 17, 0, time.UTC),
			time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			"15 minute window",
			15,
			time.Date(2024, 1, 15, 10, 44, 59, 0, time.UTC),
			time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			"uneven window resets at the hour",
			45,
			time.Date(2024, 1, 15, 10, 50, 0, 0, time.UTC),
			time.Date(2024, 1, 15, 10, 45, 0, 0, time.UTC),
		},
		{
			"seconds zeroed",
			60,
			time.Date(2024, 1, 15, 10, 0, 59, 123, time.UTC),
			time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator(tt.windowSize)
			assert.Equal(t, tt.want, agg.WindowKey(tt.ts))
		})
	}
}

func TestAggregator_BucketsChronological(t *testing.T) {
	agg := NewAggregator(60)
	agg.Add(event(at(12, 0), "TIMEOUT"))
	agg.Add(event(at(10, 0), "TIMEOUT"))
	agg.Add(event(at(11, 0), "TIMEOUT"))

	buckets := agg.Buckets()
	require.Len(t, buckets, 3)
	assert.True(t, buckets[0].Key.Before(buckets[1].Key))
	assert.True(t, buckets[1].Key.Before(buckets[2].Key))
}

func TestAggregator_EventCountConservation(t *testing.T) {
	// Sum of bucket counts must equal the number of timestamped events.
	agg := NewAggregator(60)
	for i := 0; i < 7; i++ {
		agg.Add(event(at(10, i*7), "TIMEOUT"))
	}
	agg.Add(parser.LogEvent{Level: "ERROR", Category: "TIMEOUT", Message: "no timestamp"})

	total := 0
	for _, bucket := range agg.Buckets() {
		total += bucket.EventCount()
	}
	assert.Equal(t, agg.TimestampedEvents(), total)
	assert.Equal(t, 7, total)
	assert.Equal(t, 8, agg.TotalEvents())
}

func TestAggregator_FrequencyCountsAllEvents(t *testing.T) {
	agg := NewAggregator(60)
	agg.Add(event(at(10, 0), "TIMEOUT"))
	agg.Add(event(at(11, 0), "TIMEOUT"))
	agg.Add(parser.LogEvent{Level: "ERROR", Category: "TIMEOUT", Message: "untimestamped"})
	agg.Add(event(at(10, 5), "KEY_ERROR"))

	table := agg.Frequency()

	require.Contains(t, table, "TIMEOUT")
	assert.Equal(t, 3, table["TIMEOUT"].Count)
	// Windows only from timestamped events.
	assert.Len(t, table["TIMEOUT"].Windows, 2)

	require.Contains(t, table, "KEY_ERROR")
	assert.Equal(t, 1, table["KEY_ERROR"].Count)
}

func TestAggregator_FrequencyWindowsSortedUnique(t *testing.T) {
	agg := NewAggregator(60)
	agg.Add(event(at(12, 0), "TIMEOUT"))
	agg.Add(event(at(10, 0), "TIMEOUT"))
	agg.Add(event(at(10, 30), "TIMEOUT")) // same window as 10:00
	agg.Add(event(at(11, 0), "TIMEOUT"))

	windows := agg.Frequency()["TIMEOUT"].Windows
	require.Len(t, windows, 3)
	for i := 1; i < len(windows); i++ {
		assert.True(t, windows[i-1].Before(windows[i]), "windows must be ascending and unique")
	}
}

func TestAggregator_SameWindowSharedBucket(t *testing.T) {
	agg := NewAggregator(60)
	agg.Add(event(at(10, 5), "TIMEOUT"))
	agg.Add(event(at(10, 55), "KEY_ERROR"))

	buckets := agg.Buckets()
	require.Len(t, buckets, 1)
	assert.Equal(t, 2, buckets[0].EventCount())
	assert.Equal(t, 1, buckets[0].Categories["TIMEOUT"])
	assert.Equal(t, 1, buckets[0].Categories["KEY_ERROR"])
}

func TestAggregator_WindowStampedOnStoredEvent(t *testing.T) {
	agg := NewAggregator(60)
	agg.Add(event(at(10, 42), "TIMEOUT"))

	buckets := agg.Buckets()
	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].Events, 1)
	assert.Equal(t, buckets[0].Key, buckets[0].Events[0].Window)
}

func TestAggregator_LevelTotalsIncludeUntimestamped(t *testing.T) {
	agg := NewAggregator(60)
	agg.Add(event(at(10, 0), "TIMEOUT"))
	agg.Add(parser.LogEvent{Level: "FATAL", Category: "GENERIC_ERROR", Message: "x"})

	levels := agg.Levels()
	assert.Equal(t, 1, levels["ERROR"])
	assert.Equal(t, 1, levels["FATAL"])
}
