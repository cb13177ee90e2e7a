package detector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spikelog/spikelog/pkg/parser"
)

func TestDetectFromLines_BracketedDatetime(t *testing.T) {
	lines := []string{
		"[2024-01-15 10:00:00] ERROR first",
		"[2024-01-15 10:01:00] ERROR second",
		"[2024-01-15 10:02:00] INFO third",
	}

	result := New().DetectFromLines(lines)

	if !result.HasMatch() {
		t.Fatal("HasMatch() = false, want true")
	}

	best := result.BestMatch()
	if best.Format.Name != "Bracketed datetime" {
		t.Errorf("BestMatch() = %q, want Bracketed datetime", best.Format.Name)
	}
	if best.MatchCount != 3 {
		t.Errorf("MatchCount = %d, want 3", best.MatchCount)
	}
	if best.Confidence != 1.0 {
		t.Errorf("Confidence = %f, want 1.0", best.Confidence)
	}
	if result.ErrorLines != 2 {
		t.Errorf("ErrorLines = %d, want 2", result.ErrorLines)
	}
}

func TestDetectFromLines_MixedFormats(t *testing.T) {
	lines := []string{
		"2024-01-15T10:00:00Z ERROR iso line",
		"2024-01-15 10:01:00 ERROR space line",
		"2024-01-15 10:02:00 ERROR another space line",
	}

	result := New().DetectFromLines(lines)

	best := result.BestMatch()
	if best == nil {
		t.Fatal("BestMatch() = nil")
	}
	if best.Format.Name != "Datetime (space-separated)" {
		t.Errorf("BestMatch() = %q, want Datetime (space-separated)", best.Format.Name)
	}
	if best.MatchCount != 2 {
		t.Errorf("MatchCount = %d, want 2", best.MatchCount)
	}
}

func TestDetectFromLines_NoTimestamps(t *testing.T) {
	result := New().DetectFromLines([]string{"no timestamps here", "none here either"})

	if result.HasMatch() {
		t.Error("HasMatch() = true, want false")
	}
	if result.ParsedLines != 0 {
		t.Errorf("ParsedLines = %d, want 0", result.ParsedLines)
	}
}

func TestDetectFromLines_Empty(t *testing.T) {
	result := New().DetectFromLines(nil)
	if result.SampledLines != 0 || result.HasMatch() {
		t.Error("empty input should produce empty result")
	}
}

func TestDetectFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	content := "[2024-01-15 10:00:00] ERROR boom\n\n[2024-01-15 10:01:00] ERROR again\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := New().DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}
	if result.SampledLines != 2 {
		t.Errorf("SampledLines = %d, want 2 (blank skipped)", result.SampledLines)
	}
}

func TestDetectFromFile_Missing(t *testing.T) {
	_, err := New().DetectFromFile(context.Background(), "/nonexistent/app.log")
	if !errors.Is(err, parser.ErrSourceUnavailable) {
		t.Errorf("DetectFromFile() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestWithSampleSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	content := ""
	for i := 0; i < 50; i++ {
		content += "[2024-01-15 10:00:00] ERROR line\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := New(WithSampleSize(10)).DetectFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("DetectFromFile() error = %v", err)
	}
	if result.SampledLines != 10 {
		t.Errorf("SampledLines = %d, want 10", result.SampledLines)
	}
}
