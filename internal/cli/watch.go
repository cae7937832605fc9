package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/phobologic/livetune"
	"github.com/phobologic/livetune/internal/report"
)

type watchOptions struct {
	interval time.Duration
	once     bool
	noColor  bool
}

func newWatchCommand(a *app) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Print live values as a running program would see them",
		Long: `Watch binds every marker of the given files as a string value and prints
each value when it first appears and whenever it changes. Files are polled
through the same registry a program uses, so settling and failure handling
behave exactly as they would at runtime.

Runs until interrupted unless --once is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "polling interval (overrides config)")
	cmd.Flags().BoolVar(&opts.once, "once", false, "poll once and exit")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, args []string, opts *watchOptions) error {
	ctx := cmd.Context()

	interval := a.cfg.Watch.Interval
	if opts.interval > 0 {
		interval = opts.interval
	}

	reg := livetune.New(
		livetune.WithMarker(a.cfg.Marker),
		livetune.WithRelease(a.cfg.Release),
		livetune.WithLogger(a.log),
	)
	if !reg.Enabled() {
		return errors.New("release mode is enabled; values are never re-read")
	}

	w := &watcher{
		reg:   reg,
		paths: args,
		out:   report.NewTextFormatter(report.FormatOptions{Color: !opts.noColor && report.ColorEnabled(a.stdout)}),
		seen:  make(map[string][]string),
		app:   a,
	}

	if err := w.poll(); err != nil || opts.once {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := w.poll(); err != nil {
				return err
			}
		}
	}
}

type watcher struct {
	reg   *livetune.Registry
	paths []string
	out   *report.TextFormatter
	seen  map[string][]string
	app   *app
}

// poll looks up every ordinal of every file once and prints what changed.
func (w *watcher) poll() error {
	for _, path := range w.paths {
		first := livetune.Check(w.reg, path, 0, "")
		n := len(w.reg.Fragments(path))

		values := make([]string, 0, n)
		if n > 0 {
			values = append(values, first.Load())
		}
		for i := 1; i < n; i++ {
			values = append(values, livetune.Check(w.reg, path, i, "").Load())
		}

		prev, known := w.seen[path]
		for i, v := range values {
			c := report.Change{Path: path, Ordinal: i, New: v}
			switch {
			case !known || i >= len(prev):
				c.Initial = true
			case prev[i] != v:
				c.Old = prev[i]
			default:
				continue
			}
			if err := w.out.FormatChange(w.app.stdout, c); err != nil {
				return err
			}
		}
		if !known && n == 0 {
			w.app.warnf("%s: no %s markers", path, w.reg.Marker())
		}
		w.seen[path] = values
	}
	return nil
}
