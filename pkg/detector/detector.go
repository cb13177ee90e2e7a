// Package detector samples a log file and reports which timestamp formats
// and how many error-bearing lines it contains. Used by the detect and
// diagnose commands to explain what the analyzer will see.
package detector

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spikelog/spikelog/pkg/parser"
)

// DetectionResult holds the result of sampling a log file.
type DetectionResult struct {
	Matches      []FormatMatch // Formats that matched, sorted by confidence descending
	SampledLines int           // Number of lines sampled
	ParsedLines  int           // Number of lines with detected timestamps (best format)
	ErrorLines   int           // Number of lines that pass errors-only filtering
}

// FormatMatch represents a timestamp format that matched, with its
// confidence score.
type FormatMatch struct {
	Format     *parser.Format
	Confidence float64   // 0.0 to 1.0 (share of sampled lines matched)
	MatchCount int       // Number of lines that matched
	SampleLine string    // Example line that matched
	ParsedTime time.Time // Parsed timestamp from sample
}

// Detector analyzes log files to identify timestamp formats and error density.
type Detector struct {
	formats    []*parser.Format
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a Detector using the analyzer's own timestamp format list.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    parser.DefaultFormats(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples a log file and returns detected formats.
func (d *Detector) DetectFromFile(_ context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of log lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}

	type formatStats struct {
		format     *parser.Format
		matchCount int
		sampleLine string
		parsedTime time.Time
	}

	stats := make(map[string]*formatStats)
	order := make([]string, 0)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if parser.Categorize(line) != parser.DefaultCategory || hasErrorToken(line) {
			result.ErrorLines++
		}

		for _, format := range d.formats {
			matches := format.Pattern.FindStringSubmatch(line)
			if len(matches) < 2 {
				continue
			}

			parsedTime, err := time.Parse(format.Layout, matches[1])
			if err != nil {
				continue
			}

			if stats[format.Name] == nil {
				stats[format.Name] = &formatStats{
					format:     format,
					sampleLine: line,
					parsedTime: parsedTime,
				}
				order = append(order, format.Name)
			}
			stats[format.Name].matchCount++
		}
	}

	for _, name := range order {
		s := stats[name]
		result.Matches = append(result.Matches, FormatMatch{
			Format:     s.format,
			Confidence: float64(s.matchCount) / float64(len(lines)),
			MatchCount: s.matchCount,
			SampleLine: s.sampleLine,
			ParsedTime: s.parsedTime,
		})
	}

	// Sort by confidence descending; for equal confidence prefer longer
	// patterns (more specific).
	sort.SliceStable(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return len(result.Matches[i].Format.PatternStr) > len(result.Matches[j].Format.PatternStr)
	})

	if len(result.Matches) > 0 {
		result.ParsedLines = result.Matches[0].MatchCount
	}

	return result
}

func hasErrorToken(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range []string{"error", "exception", "fatal", "critical", "fail"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// sampleFile reads up to sampleSize non-empty lines from a file.
func (d *Detector) sampleFile(path string) ([]string, error) {
	file, err := os.Open(path) // #nosec G304 -- path is provided by user via CLI
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", parser.ErrSourceUnavailable, path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() && len(lines) < d.sampleSize {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", parser.ErrSourceUnavailable, path, err)
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
