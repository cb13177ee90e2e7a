package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunDiagnose_HealthyLog(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "app.log")

	log := `2024-01-15 10:00:00 ERROR connection timeout
2024-01-15 10:05:00 INFO heartbeat ok
2024-01-15 10:10:00 ERROR KeyError: 'x'
`
	if err := os.WriteFile(logPath, []byte(log), 0644); err != nil {
		t.Fatalf("Failed to create log file: %v", err)
	}

	out := captureStdout(t, func() {
		cmd := NewDiagnoseCommand()
		cmd.SetArgs([]string{logPath})
		if err := cmd.ExecuteContext(context.Background()); err != nil {
			t.Errorf("Diagnose failed: %v", err)
		}
	})

	if !strings.Contains(out, "[PASS] Log File") {
		t.Errorf("Expected log file check to pass, got:\n%s", out)
	}
	if !strings.Contains(out, "[PASS] Timestamp Format") {
		t.Errorf("Expected timestamp format check to pass, got:\n%s", out)
	}
	if !strings.Contains(out, "[PASS] Error Content") {
		t.Errorf("Expected error content check to pass, got:\n%s", out)
	}
	if !strings.Contains(out, "0 errors") {
		t.Errorf("Expected zero-error summary, got:\n%s", out)
	}
}

func TestRunDiagnose_MissingLog(t *testing.T) {
	out := captureStdout(t, func() {
		cmd := NewDiagnoseCommand()
		cmd.SetArgs([]string{"/nonexistent/app.log"})
		// Diagnostics report problems, they don't error out
		if err := cmd.ExecuteContext(context.Background()); err != nil {
			t.Errorf("Diagnose should not fail, got: %v", err)
		}
	})

	if !strings.Contains(out, "[FAIL]") {
		t.Errorf("Expected a failed check, got:\n%s", out)
	}
	if !strings.Contains(out, "Fix the errors above") {
		t.Errorf("Expected fix-errors summary, got:\n%s", out)
	}
}

func TestRunDiagnose_NoErrorContent(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "quiet.log")

	if err := os.WriteFile(logPath, []byte("2024-01-15 10:00:00 INFO all good\n"), 0644); err != nil {
		t.Fatalf("Failed to create log file: %v", err)
	}

	out := captureStdout(t, func() {
		cmd := NewDiagnoseCommand()
		cmd.SetArgs([]string{logPath})
		if err := cmd.ExecuteContext(context.Background()); err != nil {
			t.Errorf("Diagnose failed: %v", err)
		}
	})

	if !strings.Contains(out, "[WARN] Error Content") {
		t.Errorf("Expected error content warning, got:\n%s", out)
	}
	if !strings.Contains(out, "all-levels") {
		t.Errorf("Expected all-levels hint, got:\n%s", out)
	}
}

func TestRunDiagnose_WithConfig(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "app.log")
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(logPath, []byte("2024-01-15 10:00:00 ERROR boom\n"), 0644); err != nil {
		t.Fatalf("Failed to create log file: %v", err)
	}
	config := `log_sources:
  - ` + logPath + `
window_size_minutes: 60
spike_threshold: 5
errors_only: true
top_messages: 5
`
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	out := captureStdout(t, func() {
		cmd := NewDiagnoseCommand()
		cmd.SetArgs([]string{"-c", configPath, logPath})
		if err := cmd.ExecuteContext(context.Background()); err != nil {
			t.Errorf("Diagnose failed: %v", err)
		}
	})

	if !strings.Contains(out, "[PASS] Config File") {
		t.Errorf("Expected config check to pass, got:\n%s", out)
	}
	if !strings.Contains(out, "[PASS] Config Log Sources") {
		t.Errorf("Expected config sources check to pass, got:\n%s", out)
	}
}

func TestTruncateHelper(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q, want unchanged", got)
	}
	long := strings.Repeat("x", 100)
	if got := truncate(long, 10); len(got) != 10 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate() = %q, want 10 chars ending in ellipsis", got)
	}
}
