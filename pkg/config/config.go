package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.WindowSizeMinutes <= 0 {
		return errors.New("window_size_minutes: must be greater than zero")
	}

	if cfg.SpikeThreshold < 1 {
		return errors.New("spike_threshold: must be at least 1")
	}

	if cfg.TimeRangeHours < 0 {
		return errors.New("time_range_hours: must not be negative")
	}

	if cfg.TopMessages < 1 {
		return errors.New("top_messages: must be at least 1")
	}

	// Window sizes that do not evenly divide an hour reset their bucket
	// boundaries at the top of each hour. Allowed, but worth rejecting
	// values above 60 since they silently degrade to hourly buckets.
	if cfg.WindowSizeMinutes > 60 {
		return errors.New("window_size_minutes: must not exceed 60 (windows are aligned within the hour)")
	}

	return nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if sources := os.Getenv(EnvLogSources); sources != "" {
		c.LogSources = nil
		for _, s := range strings.Split(sources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.LogSources = append(c.LogSources, s)
			}
		}
	}

	if minutes := os.Getenv(EnvWindowMinutes); minutes != "" {
		if n, err := strconv.Atoi(minutes); err == nil && n > 0 {
			c.WindowSizeMinutes = n
		}
	}
}
