// Package cli provides the command-line interface for livetune.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phobologic/livetune/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrMisaligned is returned by check when any file's fragments disagree with
// its call sites.
var ErrMisaligned = errors.New("marker fragments and call sites disagree")

// app carries the global flags and the state shared by all subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	marker     string
	logLevel   string

	cfg *config.Config
	log *slog.Logger
}

// Run executes the livetune command line with args (without the program
// name) and writes to stdout and stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand creates the root cobra command.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "livetune",
		Short: "Inspect and verify live-tuned literals in source files",
		Long: `livetune works with programs that re-read their own literals while running.

Each tunable literal is wrapped in a marker call, e.g. speed.Live(3.5). The
library re-reads the file when it is saved; this tool lists the markers in a
tree, checks that the tokenizer and the syntax tree agree on their order,
and watches a file the way a running program would.

Configuration is read from livetune.yaml (or --config), then LIVETUNE_MARKER,
LIVETUNE_LOG_LEVEL and LIVETUNE_RELEASE, then flags.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("livetune {{.Version}}\n")

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&a.marker, "marker", "", "marker token (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newScanCommand(a))
	root.AddCommand(newCheckCommand(a))
	root.AddCommand(newWatchCommand(a))
	root.AddCommand(newInitCommand(a))
	root.AddCommand(newVersionCommand(a))

	return root
}

// load resolves the configuration and applies flag overrides.
func (a *app) load(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Resolve(ctx, a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("marker") {
		cfg.Marker = a.marker
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	return nil
}

// warnf prints a user-facing warning line on stderr.
func (a *app) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.stderr, "Warning: "+format+"\n", args...)
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(a.stdout, "livetune %s\n", Version)
			return err
		},
	}
}
