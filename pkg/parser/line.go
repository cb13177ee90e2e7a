package parser

import (
	"regexp"
	"strings"
	"time"
)

// Severity levels recognized in bracket or colon form.
var recognizedLevels = map[string]bool{
	"TRACE":    true,
	"DEBUG":    true,
	"INFO":     true,
	"NOTICE":   true,
	"WARN":     true,
	"WARNING":  true,
	"ERROR":    true,
	"FATAL":    true,
	"CRITICAL": true,
}

// errorLevels are the severities that make a line an error candidate.
var errorLevels = map[string]bool{
	"ERROR":    true,
	"FATAL":    true,
	"CRITICAL": true,
}

// errorKeywords mark a line as an error candidate even without a
// recognized severity token.
var errorKeywords = []string{"error", "exception", "fatal", "critical", "fail"}

// LevelUnknown is assigned when no severity token is present.
const LevelUnknown = "UNKNOWN"

// DefaultCategory is assigned when no error-type keyword matches.
const DefaultCategory = "GENERIC_ERROR"

var (
	levelBracketRe = regexp.MustCompile(`\[([A-Za-z]+)\]`)
	levelColonRe   = regexp.MustCompile(`(^|\s)([A-Za-z]+):`)
)

// categoryRule maps message keywords to a normalized error-type tag.
// Rules are checked in order; specific exception names come before the
// generic ERROR/EXCEPTION tokens.
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{"NULL_REFERENCE", []string{"nullpointerexception", "null pointer", "nil pointer dereference"}},
	{"KEY_ERROR", []string{"keyerror"}},
	{"INDEX_ERROR", []string{"indexerror", "index out of range", "array index out of bounds"}},
	{"TYPE_ERROR", []string{"typeerror", "type mismatch"}},
	{"VALUE_ERROR", []string{"valueerror"}},
	{"ATTRIBUTE_ERROR", []string{"attributeerror"}},
	{"FILE_NOT_FOUND", []string{"filenotfounderror", "no such file", "file not found"}},
	{"PERMISSION_DENIED", []string{"permissionerror", "permission denied", "access denied"}},
	{"CONNECTION_ERROR", []string{"connectionerror", "connection refused", "connection reset", "econnrefused", "broken pipe"}},
	{"TIMEOUT", []string{"timeouterror", "timed out", "timeout"}},
	{"OUT_OF_MEMORY", []string{"outofmemoryerror", "out of memory", "oom killed", "memoryerror"}},
	{"STACK_OVERFLOW", []string{"stackoverflowerror", "stack overflow", "maximum recursion depth"}},
	{"ASSERTION_FAILED", []string{"assertionerror", "assertion failed"}},
	{"DEADLOCK", []string{"deadlock"}},
	{"SEGFAULT", []string{"segmentation fault", "segfault", "sigsegv"}},
	{"DATABASE_ERROR", []string{"sqlexception", "database error", "sql error", "constraint violation"}},
	{"AUTH_ERROR", []string{"unauthorized", "authentication failed", "forbidden"}},
	// Bare HTTP status tokens, matched after everything more specific.
	{"HTTP_404", []string{"404"}},
	{"HTTP_500", []string{"500"}},
	{"HTTP_503", []string{"503"}},
	{"EXCEPTION", []string{"exception"}},
}

// LineParser turns raw log lines into LogEvents. Timestamp extraction
// tries an ordered list of formats, first match wins. Lines that carry no
// error indicator are discarded unless errors-only filtering is disabled.
type LineParser struct {
	formats    []*Format
	errorsOnly bool
}

// LineOption configures a LineParser.
type LineOption func(*LineParser)

// WithAllLevels disables errors-only filtering so every line with content
// becomes an event.
func WithAllLevels() LineOption {
	return func(p *LineParser) {
		p.errorsOnly = false
	}
}

// WithFormats overrides the timestamp format list.
func WithFormats(formats []*Format) LineOption {
	return func(p *LineParser) {
		if len(formats) > 0 {
			p.formats = formats
		}
	}
}

// NewLineParser creates a LineParser with the default timestamp formats
// and errors-only filtering enabled.
func NewLineParser(opts ...LineOption) *LineParser {
	p := &LineParser{
		formats:    DefaultFormats(),
		errorsOnly: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts a raw line into a LogEvent. The second return value is
// false when the line is not a candidate event (empty, or filtered out by
// errors-only mode).
func (p *LineParser) Parse(raw string) (LogEvent, bool) {
	line := strings.ToValidUTF8(strings.TrimRight(raw, "\r\n"), "�")
	if strings.TrimSpace(line) == "" {
		return LogEvent{}, false
	}

	level := extractLevel(line)
	if p.errorsOnly && !isErrorLine(line, level) {
		return LogEvent{}, false
	}

	return LogEvent{
		Timestamp: p.extractTimestamp(line),
		Level:     level,
		Category:  Categorize(line),
		Message:   Truncate(line, MaxMessageLength),
	}, true
}

// extractTimestamp tries each format in priority order and returns the
// first successfully parsed timestamp, or the zero time.
func (p *LineParser) extractTimestamp(line string) time.Time {
	for _, f := range p.formats {
		matches := f.Pattern.FindStringSubmatch(line)
		if len(matches) < 2 {
			continue
		}
		if ts, err := time.Parse(f.Layout, matches[1]); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// extractLevel finds a severity token in bracket form ([ERROR]) or
// leading-colon form (ERROR:). Returns LevelUnknown when absent.
func extractLevel(line string) string {
	for _, m := range levelBracketRe.FindAllStringSubmatch(line, -1) {
		token := strings.ToUpper(m[1])
		if recognizedLevels[token] {
			return normalizeLevel(token)
		}
	}

	for _, m := range levelColonRe.FindAllStringSubmatch(line, -1) {
		token := strings.ToUpper(m[2])
		if recognizedLevels[token] {
			return normalizeLevel(token)
		}
	}

	return LevelUnknown
}

func normalizeLevel(token string) string {
	if token == "WARNING" {
		return "WARN"
	}
	return token
}

// isErrorLine reports whether a line qualifies under errors-only filtering:
// an error-grade severity token, or any error keyword anywhere in the line.
func isErrorLine(line, level string) bool {
	if errorLevels[level] {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range errorKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Categorize scans a line for known error-type keywords in priority order
// and returns the first matching tag, or DefaultCategory.
func Categorize(line string) string {
	lower := strings.ToLower(line)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return DefaultCategory
}

// Truncate bounds s to max runes.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
