// Package trace parses multi-line stack-trace blobs into structured
// reports. Two grammars are tried in priority order; the first one that
// extracts an error-type/message pair from its expected line wins.
package trace

import (
	"errors"
	"strings"
)

// ErrUnparseableTrace indicates no grammar recognized the input.
// Non-fatal: callers report "could not classify" and continue.
var ErrUnparseableTrace = errors.New("unparseable stack trace")

// StackFrame is one call-site entry within a stack trace.
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

// TraceReport is a classified stack trace. Frames are normalized to
// outermost-call-first regardless of the source dialect's natural order.
type TraceReport struct {
	ErrorType    string       `json:"error_type"`
	ErrorMessage string       `json:"error_message"`
	Frames       []StackFrame `json:"frames"`
	Explanation  string       `json:"explanation"`
	Suggestions  []string     `json:"suggestions"`
}

// Root returns the innermost frame, where the error was raised.
// Nil when the trace carried no frames.
func (r *TraceReport) Root() *StackFrame {
	if len(r.Frames) == 0 {
		return nil
	}
	return &r.Frames[len(r.Frames)-1]
}

// grammar is one trace dialect. parse returns false when the blob does
// not belong to this dialect.
type grammar interface {
	name() string
	parse(lines []string) (*TraceReport, bool)
}

// Grammar order matters: the block dialect anchors on the terminal line,
// the list dialect on the first, so a blob is claimed by at most one.
var grammars = []grammar{
	blockGrammar{},
	listGrammar{},
}

// Classify parses a stack-trace blob. Returns ErrUnparseableTrace when
// no grammar matches.
func Classify(blob string) (*TraceReport, error) {
	lines := strings.Split(strings.ReplaceAll(blob, "\r\n", "\n"), "\n")

	for _, g := range grammars {
		if report, ok := g.parse(lines); ok {
			report.Explanation = Explain(report.ErrorType)
			report.Suggestions = Suggest(report.ErrorType)
			return report, nil
		}
	}

	return nil, ErrUnparseableTrace
}
