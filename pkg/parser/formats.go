package parser

import "regexp"

// Format is a recognized timestamp format. The pattern's first capture
// group is the timestamp portion; Layout parses it.
type Format struct {
	Name       string
	Pattern    *regexp.Regexp
	PatternStr string
	Layout     string
	Examples   []string
}

// DefaultFormats returns the built-in timestamp formats, in priority order.
// Patterns match anywhere in the line, so a timestamp preceded by a level
// tag or other prefix is still found. The first format whose pattern
// matches and parses wins; more specific patterns come first.
func DefaultFormats() []*Format {
	formats := []*Format{
		{
			Name:       "Bracketed datetime",
			PatternStr: `\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\]`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"[2024-01-15 10:30:00]"},
		},
		{
			Name:       "Bracketed ISO 8601",
			PatternStr: `\[(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2})Z?\]`,
			Layout:     "2006-01-02T15:04:05",
			Examples:   []string{"[2024-01-15T10:30:00Z]"},
		},
		{
			Name:       "ISO 8601 with timezone",
			PatternStr: `(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}[+-]\d{2}:\d{2})`,
			Layout:     "2006-01-02T15:04:05-07:00",
			Examples:   []string{"2024-01-15T10:30:00+00:00"},
		},
		{
			Name:       "ISO 8601 with Z (UTC)",
			PatternStr: `(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2})Z`,
			Layout:     "2006-01-02T15:04:05",
			Examples:   []string{"2024-01-15T10:30:00Z"},
		},
		{
			Name:       "ISO 8601",
			PatternStr: `(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2})`,
			Layout:     "2006-01-02T15:04:05",
			Examples:   []string{"2024-01-15T10:30:00"},
		},
		{
			Name:       "Python logging",
			PatternStr: `(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}),\d{3}`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"2024-01-15 10:30:00,123"},
		},
		{
			Name:       "Log4j/Java logging",
			PatternStr: `(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\.\d{3}`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"2024-01-15 10:30:00.123"},
		},
		{
			Name:       "Datetime (space-separated)",
			PatternStr: `(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"2024-01-15 10:30:00"},
		},
	}

	for _, f := range formats {
		f.Pattern = regexp.MustCompile(f.PatternStr)
	}

	return formats
}
