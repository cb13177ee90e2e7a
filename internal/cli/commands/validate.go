package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spikelog/spikelog/pkg/config"
	"github.com/spikelog/spikelog/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a spikelog configuration file without running analysis.

Checks:
  - YAML syntax
  - Window size and threshold bounds
  - Log source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	// Load and validate config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Log sources:     %d pattern(s)\n", len(cfg.LogSources))
	fmt.Printf("  Window size:     %dm\n", cfg.WindowSizeMinutes)
	fmt.Printf("  Spike threshold: %d\n", cfg.SpikeThreshold)
	fmt.Printf("  Errors only:     %t\n", cfg.ErrorsOnly)
	if cfg.TimeRangeHours > 0 {
		fmt.Printf("  Time range:      last %dh\n", cfg.TimeRangeHours)
	}

	// Check if log sources exist (warnings only)
	files, err := parser.ExpandGlobs(cfg.LogSources)
	if err != nil {
		fmt.Printf("\nWarning: Error expanding log source patterns: %v\n", err)
	} else if len(files) == 0 {
		fmt.Printf("\nWarning: No files match log source patterns\n")
	} else {
		fmt.Printf("\nLog files matched: %d\n", len(files))
		for _, f := range files {
			fmt.Printf("  - %s\n", f)
		}
	}

	return nil
}
