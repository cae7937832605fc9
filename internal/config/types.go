// Package config provides configuration loading and validation for the
// livetune command.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Marker is the token that precedes each live literal.
	Marker string `yaml:"marker"`

	// Release disables file access in commands that drive a Registry.
	Release bool `yaml:"release"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Scan  ScanConfig  `yaml:"scan"`
	Watch WatchConfig `yaml:"watch"`
}

// ScanConfig controls source discovery for scan and check.
type ScanConfig struct {
	// Languages restricts discovery. Empty means all supported languages.
	Languages []string `yaml:"languages,omitempty"`

	// MaxFileSize skips files larger than this many bytes. 0 disables the limit.
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxFiles keeps only the busiest files in scan output. 0 keeps all.
	MaxFiles int `yaml:"max_files"`

	SkipTests bool `yaml:"skip_tests"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	// Interval is the polling period.
	Interval time.Duration `yaml:"interval"`
}
