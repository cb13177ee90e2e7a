package config

// Default values for configuration.
const (
	DefaultWindowSizeMinutes = 60
	DefaultSpikeThreshold    = 5
	DefaultTopMessages       = 5
)

// Environment variable names.
const (
	EnvLogSources    = "SPIKELOG_LOG_SOURCES"
	EnvWindowMinutes = "SPIKELOG_WINDOW_MINUTES"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		WindowSizeMinutes: DefaultWindowSizeMinutes,
		SpikeThreshold:    DefaultSpikeThreshold,
		ErrorsOnly:        true,
		TopMessages:       DefaultTopMessages,
	}
}
