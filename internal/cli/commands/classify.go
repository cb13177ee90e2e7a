package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spikelog/spikelog/pkg/output"
	"github.com/spikelog/spikelog/pkg/trace"
)

// ClassifyOptions holds command-line options for the classify command.
type ClassifyOptions struct {
	Output string
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand() *cobra.Command {
	opts := &ClassifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify <trace-file|->",
		Short: "Classify a stack trace",
		Long: `Classify a stack-trace blob into error type, message, and frames.

Reads the trace from a file, or from stdin when the argument is "-".
Recognizes block-style traces (File "...", line N, in fn) and list-style
traces (at fn (file:line:col)). Frames are reported outermost first.

Example:
  spikelog classify crash.txt
  kubectl logs my-pod | spikelog classify -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string, opts *ClassifyOptions) error {
	blob, err := readTraceBlob(args[0])
	if err != nil {
		return err
	}

	report, err := trace.Classify(blob)
	if err != nil {
		if errors.Is(err, trace.ErrUnparseableTrace) {
			// Soft failure with a distinct message, not a usage error
			fmt.Fprintln(os.Stderr, "could not classify: input does not match any known trace format")
			ExitCode = 1
			return nil
		}
		return fmt.Errorf("classifying trace: %w", err)
	}

	switch opts.Output {
	case "text":
		output.FormatTraceText(report, os.Stdout)
		return nil
	case "json":
		return output.FormatTraceJSON(report, os.Stdout)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func readTraceBlob(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided trace path
	if err != nil {
		return "", fmt.Errorf("reading trace file: %w", err)
	}
	return string(data), nil
}
