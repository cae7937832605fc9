package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/livetune/internal/discover"
	"github.com/phobologic/livetune/internal/lang"
	"github.com/phobologic/livetune/internal/model"
	"github.com/phobologic/livetune/internal/parse"
	"github.com/phobologic/livetune/internal/report"
)

type checkOptions struct {
	format  string
	noColor bool
}

func newCheckCommand(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Verify that marker ordinals line up with call sites",
		Long: `Check compares what the runtime tokenizer extracts with the marker calls the
syntax tree finds. A literal containing parentheses, a marker inside a
comment or string, or a nested marker call shifts the ordinals so that a
call site reads somebody else's literal. Check reports those files.

Paths may be files or directories. Directories are scanned like "scan" and
only files mentioning the marker are checked. Files in a language without a
grammar are reported as unchecked.

Exits non-zero when any file is misaligned or has a dangling marker.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format ("+strings.Join(report.Formats, "|")+")")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	ctx := cmd.Context()
	marker := a.cfg.Marker

	if len(args) == 0 {
		args = []string{"."}
	}

	var results []model.Alignment
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("check: %w", err)
		}

		var infos []model.FileInfo
		if info.IsDir() {
			files, err := discover.Files(arg, discover.Options{
				Languages: a.cfg.Scan.Languages,
				SkipTests: a.cfg.Scan.SkipTests,
			})
			if err != nil {
				return fmt.Errorf("discovering files: %w", err)
			}
			files = a.filterBySize(files, a.cfg.Scan.MaxFileSize)
			infos = a.analyzeFiles(ctx, arg, files, marker, false)
			for i := range infos {
				infos[i].Path = filepath.Join(arg, infos[i].Path)
			}
		} else {
			entry := discover.FileEntry{
				Path:     filepath.Base(arg),
				Language: lang.ForExtension(filepath.Ext(arg)),
				Size:     info.Size(),
			}
			infos = a.analyzeFiles(ctx, filepath.Dir(arg), []discover.FileEntry{entry}, marker, true)
			for i := range infos {
				infos[i].Path = arg
			}
		}

		for i := range infos {
			results = append(results, parse.Align(&infos[i]))
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := report.New(opts.format, report.FormatOptions{
		Color: !opts.noColor && report.ColorEnabled(a.stdout),
	})
	if err != nil {
		return err
	}
	if err := f.FormatCheck(ctx, marker, results, a.stdout); err != nil {
		return err
	}

	var bad int
	for i := range results {
		if !results[i].OK() {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrMisaligned, bad, len(results))
	}
	return nil
}
