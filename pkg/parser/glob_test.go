package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"app.log", "db.log", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ExpandGlobs([]string{filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Got %d files, want 2", len(files))
	}
	if filepath.Base(files[0]) != "app.log" || filepath.Base(files[1]) != "db.log" {
		t.Errorf("files = %v, want sorted app.log, db.log", files)
	}
}

func TestExpandGlobs_Deduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := ExpandGlobs([]string{path, filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Got %d files, want 1 after dedup", len(files))
	}
}

func TestExpandGlobs_NoMatchKeepsLiteral(t *testing.T) {
	files, err := ExpandGlobs([]string{"/no/such/path.log"})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(files) != 1 || files[0] != "/no/such/path.log" {
		t.Errorf("files = %v, want literal path preserved", files)
	}
}

func TestExpandGlobs_InvalidPattern(t *testing.T) {
	if _, err := ExpandGlobs([]string{"[broken"}); err == nil {
		t.Error("ExpandGlobs() expected error for invalid pattern")
	}
}
