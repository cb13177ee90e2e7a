package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spikelog/spikelog/pkg/analyzer"
	"github.com/spikelog/spikelog/pkg/config"
	"github.com/spikelog/spikelog/pkg/output"
	"github.com/spikelog/spikelog/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	Config    string
	Output    string
	Window    int
	Threshold int
	AllLevels bool
	TimeRange string
	Verbose   bool
	Quiet     bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [log-file|glob]...",
		Short: "Analyze logs for error spikes and recurring patterns",
		Long: `Parse log files into structured events, aggregate them into time windows,
and report statistical error spikes and recurring error categories.

Log files can be given as arguments or via a config file (--config).
Arguments take precedence over the config's log_sources.

Exit codes:
  0 - Report produced (spikes in the report do not fail the run)
  1 - No parseable log events found
  2 - Configuration or runtime error`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVar(&opts.Window, "window", 0, "Aggregation window size in minutes (overrides config)")
	cmd.Flags().IntVar(&opts.Threshold, "threshold", 0, "Minimum event count for a spike window (overrides config)")
	cmd.Flags().BoolVar(&opts.AllLevels, "all-levels", false, "Keep all log lines, not just error-bearing ones")
	cmd.Flags().StringVar(&opts.TimeRange, "time-range", "", "Limit analysis to recent window (e.g., 2h, 24h)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show run metadata in the report")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration (flag overrides applied on top)
	cfg, err := loadAnalyzeConfig(ctx, opts)
	if err != nil {
		return err
	}

	// CLI args take precedence over config log sources
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.LogSources
	}
	if len(patterns) == 0 {
		return fmt.Errorf("no log files given (pass files as arguments or set log_sources in config)")
	}

	files, err := parser.ExpandGlobs(patterns)
	if err != nil {
		return fmt.Errorf("expanding log sources: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no log files matched patterns: %v", patterns)
	}

	var engineOpts []analyzer.Option
	if opts.TimeRange != "" {
		duration, err := time.ParseDuration(opts.TimeRange)
		if err != nil {
			return fmt.Errorf("invalid time-range %q: %w", opts.TimeRange, err)
		}
		end := time.Now()
		engineOpts = append(engineOpts, analyzer.WithTimeRange(end.Add(-duration), end))
	}

	engine, err := analyzer.NewEngine(cfg, engineOpts...)
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}

	source := buildSource(files, engine.ErrorsOnly())
	defer source.Close()

	result, err := engine.Analyze(ctx, source)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := output.NewReport(result, cfg.TopMessages)

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Zero parseable events is a soft failure, not an error
	if !result.HasEvents() {
		fmt.Fprintln(os.Stderr, "No parseable log events found.")
		ExitCode = 1
	}

	return nil
}

// loadAnalyzeConfig loads the config file if given, then layers flag
// overrides on top and validates the merged result.
func loadAnalyzeConfig(ctx context.Context, opts *AnalyzeOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.Config != "" {
		loaded, err := config.Load(ctx, opts.Config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if opts.Window > 0 {
		cfg.WindowSizeMinutes = opts.Window
	}
	if opts.Threshold > 0 {
		cfg.SpikeThreshold = opts.Threshold
	}
	if opts.AllLevels {
		cfg.ErrorsOnly = false
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSource creates a log source with timestamp-ordered merging
// across files.
func buildSource(files []string, errorsOnly bool) parser.EventSource {
	lineOpts := []parser.LineOption{}
	if !errorsOnly {
		lineOpts = append(lineOpts, parser.WithAllLevels())
	}

	if len(files) == 1 {
		// Single file - use simple FileSource
		return parser.NewFileSource(files, parser.NewLineParser(lineOpts...))
	}

	// Multiple files - use MergedSource for chronological ordering
	sources := make([]parser.EventSource, len(files))
	for i, file := range files {
		sources[i] = parser.NewFileSource([]string{file}, parser.NewLineParser(lineOpts...))
	}
	return parser.NewMergedSource(sources...)
}

func createFormatter(opts *AnalyzeOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}
