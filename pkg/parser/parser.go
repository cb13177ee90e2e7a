package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// FileSource implements EventSource for reading from log files.
// Files are read sequentially; lines that are not candidate events are
// skipped without error.
type FileSource struct {
	files []string
	line  *LineParser

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// NewFileSource creates an EventSource that reads from the given files
// using the provided line parser.
func NewFileSource(files []string, line *LineParser) *FileSource {
	return &FileSource{
		files:     files,
		line:      line,
		fileIndex: -1,
	}
}

// Next returns the next parsed log event.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*LogEvent, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++

			event, ok := s.line.Parse(s.currentScanner.Text())
			if !ok {
				// Not every line is a log event.
				continue
			}

			event.Source = s.currentSource
			event.LineNum = s.currentLine
			return &event, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrSourceUnavailable, s.currentSource, err)
		}

		// Current file exhausted, try next.
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
		s.currentScanner = nil
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrSourceUnavailable, path, err)
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentScanner = nil
		return err
	}
	return nil
}
