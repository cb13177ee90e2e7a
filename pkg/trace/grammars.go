package trace

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrorType: message. Only Error/Exception-suffixed type names
	// qualify, so ordinary "word: text" log lines are not mistaken
	// for an error line. The block dialect also accepts a bare
	// Exception, the list dialect a bare Error.
	blockErrorRe = regexp.MustCompile(`^(\w+(?:Error|Exception)|Exception): ?(.*)$`)
	listErrorRe  = regexp.MustCompile(`^(\w+(?:Error|Exception)|Error): ?(.*)$`)

	// File "<path>", line <n>, in <function>
	blockFrameRe = regexp.MustCompile(`^\s*File "(.+?)", line (\d+), in (.+)$`)

	// at <function> (<file>:<line>:<column>)
	listFrameRe = regexp.MustCompile(`^\s*at\s+(.+?)\s+\((.+?):(\d+):(\d+)\)$`)

	// at <file>:<line>:<column> (anonymous frame)
	listBareFrameRe = regexp.MustCompile(`^\s*at\s+([^\s()]+):(\d+):(\d+)$`)
)

// blockGrammar parses the dialect where the terminal line carries
// "ErrorType: message" and preceding lines alternate File/snippet pairs.
// Its natural frame order is already outermost-first.
type blockGrammar struct{}

func (blockGrammar) name() string { return "block" }

func (blockGrammar) parse(lines []string) (*TraceReport, bool) {
	last := lastNonBlank(lines)
	if last < 0 {
		return nil, false
	}

	m := blockErrorRe.FindStringSubmatch(strings.TrimSpace(lines[last]))
	if m == nil {
		return nil, false
	}

	report := &TraceReport{
		ErrorType:    m[1],
		ErrorMessage: m[2],
	}

	for i := 0; i < last; i++ {
		fm := blockFrameRe.FindStringSubmatch(lines[i])
		if fm == nil {
			continue
		}

		line, _ := strconv.Atoi(fm[2])
		frame := StackFrame{
			File:     fm[1],
			Line:     line,
			Function: strings.TrimSpace(fm[3]),
		}

		// The line after a frame, when it is not another frame or the
		// error line, is the source snippet for that frame.
		if i+1 < last {
			next := lines[i+1]
			if strings.TrimSpace(next) != "" && blockFrameRe.FindStringSubmatch(next) == nil {
				frame.Snippet = strings.TrimSpace(next)
				i++
			}
		}

		report.Frames = append(report.Frames, frame)
	}

	return report, true
}

// listGrammar parses the dialect where the first line carries
// "ErrorType: message" and subsequent lines are "at ..." frames.
// Its natural frame order is innermost-first, so frames are reversed
// into the canonical outermost-first order.
type listGrammar struct{}

func (listGrammar) name() string { return "list" }

func (listGrammar) parse(lines []string) (*TraceReport, bool) {
	first := firstNonBlank(lines)
	if first < 0 {
		return nil, false
	}

	m := listErrorRe.FindStringSubmatch(strings.TrimSpace(lines[first]))
	if m == nil {
		return nil, false
	}

	report := &TraceReport{
		ErrorType:    m[1],
		ErrorMessage: m[2],
	}

	for _, line := range lines[first+1:] {
		if fm := listFrameRe.FindStringSubmatch(line); fm != nil {
			lineNum, _ := strconv.Atoi(fm[3])
			column, _ := strconv.Atoi(fm[4])
			report.Frames = append(report.Frames, StackFrame{
				Function: fm[1],
				File:     fm[2],
				Line:     lineNum,
				Column:   column,
			})
			continue
		}
		if fm := listBareFrameRe.FindStringSubmatch(line); fm != nil {
			lineNum, _ := strconv.Atoi(fm[2])
			column, _ := strconv.Atoi(fm[3])
			report.Frames = append(report.Frames, StackFrame{
				Function: "<anonymous>",
				File:     fm[1],
				Line:     lineNum,
				Column:   column,
			})
		}
	}

	reverseFrames(report.Frames)

	return report, true
}

func reverseFrames(frames []StackFrame) {
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}
}

func firstNonBlank(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return -1
}

func lastNonBlank(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}
