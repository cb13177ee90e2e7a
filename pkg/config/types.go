// Package config provides configuration loading and validation for spikelog.
package config

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// LogSources lists log file paths or glob patterns to analyze.
	// Positional CLI arguments take precedence over this list.
	LogSources []string `yaml:"log_sources,omitempty"`

	// WindowSizeMinutes is the aggregation window size in minutes.
	WindowSizeMinutes int `yaml:"window_size_minutes"`

	// SpikeThreshold is the minimum event count for a window to qualify
	// as a spike, and the minimum distinct-window count for a category
	// to qualify as a recurring pattern. A single sensitivity knob.
	SpikeThreshold int `yaml:"spike_threshold"`

	// ErrorsOnly keeps only error-bearing lines when true.
	ErrorsOnly bool `yaml:"errors_only"`

	// TimeRangeHours drops events older than now minus N hours.
	// Zero disables the filter. Applies only to timestamped events.
	TimeRangeHours int `yaml:"time_range_hours,omitempty"`

	// TopMessages is how many of the most frequent raw messages the
	// report includes.
	TopMessages int `yaml:"top_messages"`
}
