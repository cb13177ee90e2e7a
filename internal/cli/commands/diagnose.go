package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spikelog/spikelog/pkg/config"
	"github.com/spikelog/spikelog/pkg/detector"
	"github.com/spikelog/spikelog/pkg/parser"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Config  string
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <log-file>",
		Short: "Diagnose common analysis problems",
		Long: `Diagnose common problems before running analysis.

This command checks a log file for:
- File existence and accessibility
- Timestamp format detectability
- Error-bearing content (anything for the errors-only filter to keep)
- Config file validity when --config is given

Example:
  spikelog diagnose /var/log/app.log
  spikelog diagnose -c config.yaml -v /var/log/app.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runDiagnose(ctx, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file to check alongside the log")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, logFile string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	// 1. Check log file existence
	result := checkLogFile(logFile)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(results, opts)
		return nil
	}

	// 2. Check timestamp format and error content
	results = append(results, checkLogContent(ctx, logFile, opts)...)

	// 3. Check config file if given
	if opts.Config != "" {
		results = append(results, checkConfig(ctx, opts.Config)...)
	}

	printDiagnostics(results, opts)
	return nil
}

func checkLogFile(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Log File: %s", filepath.Base(path)),
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Log file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use a glob pattern with 'spikelog analyze' to match rotated files",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access log file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		result.Suggests = []string{
			"Use a glob pattern to match files in the directory",
			"Example: /var/log/app/*.log",
		}
		return result
	}
	if info.Size() == 0 {
		result.Status = "warning"
		result.Message = "File is empty (0 bytes)"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkLogContent(ctx context.Context, logFile string, opts *DiagnoseOptions) []DiagnosticResult {
	results := []DiagnosticResult{}

	d := detector.New(detector.WithSampleSize(100))
	detResult, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		results = append(results, DiagnosticResult{
			Check:    "Log Sample",
			Status:   "error",
			Message:  fmt.Sprintf("Cannot sample file: %v", err),
			Suggests: []string{"Check file permissions"},
		})
		return results
	}

	// Timestamp format check
	tsResult := DiagnosticResult{Check: "Timestamp Format"}
	if !detResult.HasMatch() {
		tsResult.Status = "warning"
		tsResult.Message = "No timestamp format detected in sample"
		tsResult.Suggests = []string{
			"Events without timestamps are counted but skip windowed analysis",
			"Check the first few lines manually to identify the timestamp pattern",
		}
	} else {
		best := detResult.BestMatch()
		tsResult.Status = "ok"
		tsResult.Message = fmt.Sprintf("Detected: %s (%.1f%% of sample)", best.Format.Name, best.Confidence*100)
		if opts.Verbose {
			tsResult.Details = []string{
				"Sample match:",
				truncate(best.SampleLine, 80),
			}
		}
		if best.Confidence < 0.5 {
			tsResult.Status = "warning"
			tsResult.Suggests = []string{
				"Less than half the sample matched; the file may mix formats",
			}
		}
	}
	results = append(results, tsResult)

	// Error content check
	errResult := DiagnosticResult{Check: "Error Content"}
	switch {
	case detResult.SampledLines == 0:
		errResult.Status = "warning"
		errResult.Message = "No lines sampled"
	case detResult.ErrorLines == 0:
		errResult.Status = "warning"
		errResult.Message = "No error-bearing lines in sample"
		errResult.Suggests = []string{
			"The errors-only filter would keep nothing; the report will be healthy",
			"Use --all-levels with 'spikelog analyze' to analyze every line",
		}
	default:
		errResult.Status = "ok"
		errResult.Message = fmt.Sprintf("%d/%d sampled lines carry errors",
			detResult.ErrorLines, detResult.SampledLines)
	}
	results = append(results, errResult)

	return results
}

func checkConfig(ctx context.Context, configPath string) []DiagnosticResult {
	results := []DiagnosticResult{}

	result := DiagnosticResult{Check: "Config File"}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", configPath)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use 'spikelog detect <log-file> --write-config config.yaml' to generate a starter config",
		}
		results = append(results, result)
		return results
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		results = append(results, result)
		return results
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "Config file is empty"
		results = append(results, result)
		return results
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to parse config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		results = append(results, result)
		return results
	}

	result.Status = "ok"
	result.Message = "Config file parsed successfully"
	result.Details = []string{
		fmt.Sprintf("Log sources: %d", len(cfg.LogSources)),
		fmt.Sprintf("Window size: %dm", cfg.WindowSizeMinutes),
		fmt.Sprintf("Spike threshold: %d", cfg.SpikeThreshold),
	}
	results = append(results, result)

	// Check config log sources resolve to files
	if len(cfg.LogSources) > 0 {
		srcResult := DiagnosticResult{Check: "Config Log Sources"}
		files, err := parser.ExpandGlobs(cfg.LogSources)
		switch {
		case err != nil:
			srcResult.Status = "error"
			srcResult.Message = fmt.Sprintf("Invalid glob pattern: %v", err)
		case len(files) == 0:
			srcResult.Status = "warning"
			srcResult.Message = "Patterns match no files"
			srcResult.Suggests = []string{
				"Check if the log files exist at the configured paths",
			}
		default:
			srcResult.Status = "ok"
			srcResult.Message = fmt.Sprintf("Matches %d file(s)", len(files))
			srcResult.Details = files
		}
		results = append(results, srcResult)
	}

	return results
}

func printDiagnostics(results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Println("=== Spikelog Diagnostics ===")
	fmt.Println()

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Printf("[%s] %s\n", icon, r.Check)
		fmt.Printf("    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Printf("      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Printf("      Hint: %s\n", s)
		}

		fmt.Println()
	}

	// Summary
	fmt.Println("---")
	fmt.Printf("Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Println("\nFix the errors above before running analysis.")
	} else if warnCount > 0 {
		fmt.Println("\nSetup is usable but has warnings.")
	} else {
		fmt.Println("\nEverything looks good!")
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
