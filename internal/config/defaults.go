package config

import (
	"os"
	"time"

	"github.com/phobologic/livetune/internal/typed"
)

// Default values for configuration.
const (
	DefaultFile          = "livetune.yaml"
	DefaultMarker        = "Live"
	DefaultLogLevel      = "warn"
	DefaultMaxFileSize   = 1_000_000 // 1 MB
	DefaultWatchInterval = 250 * time.Millisecond
)

// Environment variable names.
const (
	EnvMarker   = "LIVETUNE_MARKER"
	EnvLogLevel = "LIVETUNE_LOG_LEVEL"
	EnvRelease  = "LIVETUNE_RELEASE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Marker:   DefaultMarker,
		LogLevel: DefaultLogLevel,
		Scan: ScanConfig{
			MaxFileSize: DefaultMaxFileSize,
		},
		Watch: WatchConfig{
			Interval: DefaultWatchInterval,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if marker := os.Getenv(EnvMarker); marker != "" {
		c.Marker = marker
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
	if v, ok := typed.ParseBool(os.Getenv(EnvRelease)); ok {
		c.Release = v
	}
}
