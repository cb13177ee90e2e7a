package analyzer

import (
	"math"
	"sort"
)

// SpikeDetector flags windows whose event count is a statistical outlier.
// A window qualifies when its count reaches mean + 2 standard deviations
// AND the configured minimum threshold; the second clause guards against
// flagging spikes in near-empty logs where the deviation collapses to zero.
type SpikeDetector struct {
	minThreshold int
}

// NewSpikeDetector creates a detector with the given minimum event count.
func NewSpikeDetector(minThreshold int) *SpikeDetector {
	return &SpikeDetector{minThreshold: minThreshold}
}

// Detect computes distributional statistics over the bucket counts and
// returns the outlier windows, sorted by event count descending with ties
// broken by earliest window first. With fewer than two windows the
// variance is meaningless, so no spike is ever flagged.
func (d *SpikeDetector) Detect(buckets []*WindowBucket) []Spike {
	if len(buckets) < 2 {
		return nil
	}

	counts := make([]float64, len(buckets))
	for i, bucket := range buckets {
		counts[i] = float64(bucket.EventCount())
	}

	mean := meanOf(counts)
	stddev := populationStddev(counts, mean)
	cutoff := mean + 2*stddev

	var spikes []Spike
	// Buckets arrive in chronological order, so a stable sort below
	// keeps earliest-window-first for equal counts.
	for _, bucket := range buckets {
		count := bucket.EventCount()
		if float64(count) < cutoff || count < d.minThreshold {
			continue
		}

		score := 0.0
		if stddev > 0 {
			score = (float64(count) - mean) / stddev
		}

		spikes = append(spikes, Spike{
			Window:         bucket.Key,
			EventCount:     count,
			DeviationScore: score,
		})
	}

	sort.SliceStable(spikes, func(i, j int) bool {
		return spikes[i].EventCount > spikes[j].EventCount
	})

	return spikes
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStddev(values []float64, mean float64) float64 {
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
