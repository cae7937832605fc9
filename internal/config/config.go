package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phobologic/livetune/internal/lang"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// markerSeparators are the characters that can never appear inside a single
// marker token.
const markerSeparators = " \t\r\n()<>!=;+-*/&|,:.{}[]\"`"

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

// Resolve loads path when it is set. With an empty path it loads DefaultFile
// if that exists and otherwise falls back to the defaults plus environment
// overrides.
func Resolve(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}
	cfg, err := Load(ctx, DefaultFile)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	cfg = DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and normalizes the log level.
func Validate(cfg *Config) error {
	if cfg.Marker == "" {
		return fmt.Errorf("%w: marker is required", ErrInvalidConfig)
	}
	if strings.ContainsAny(cfg.Marker, markerSeparators) {
		return fmt.Errorf("%w: marker %q contains a separator character", ErrInvalidConfig, cfg.Marker)
	}

	level, ok := NormalizeLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("%w: log_level %q (must be debug, info, warn, or error)", ErrInvalidConfig, cfg.LogLevel)
	}
	cfg.LogLevel = level

	for i, name := range cfg.Scan.Languages {
		if _, ok := lang.Languages[name]; !ok {
			return fmt.Errorf("%w: scan.languages[%d]: unsupported language %q", ErrInvalidConfig, i, name)
		}
	}
	if cfg.Scan.MaxFileSize < 0 {
		return fmt.Errorf("%w: scan.max_file_size must be >= 0", ErrInvalidConfig)
	}
	if cfg.Scan.MaxFiles < 0 {
		return fmt.Errorf("%w: scan.max_files must be >= 0", ErrInvalidConfig)
	}

	if cfg.Watch.Interval <= 0 {
		return fmt.Errorf("%w: watch.interval must be positive", ErrInvalidConfig)
	}

	return nil
}

// NormalizeLevel maps a level name onto debug, info, warn or error. It
// accepts "warning" and "err" as aliases and ignores case.
func NormalizeLevel(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "warning":
		s = "warn"
	case "err":
		s = "error"
	}
	switch s {
	case "debug", "info", "warn", "error":
		return s, true
	default:
		return "", false
	}
}

// Level returns the slog level of a validated configuration.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

const fileHeader = `# livetune configuration.
# Values here are overridden by LIVETUNE_* environment variables and flags.
`

// Marshal renders cfg as a commented YAML document.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
