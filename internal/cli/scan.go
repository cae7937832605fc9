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
	"github.com/phobologic/livetune/internal/ranking"
	"github.com/phobologic/livetune/internal/report"
)

type scanOptions struct {
	maxFiles    int
	langs       string
	maxFileSize int64
	format      string
	file        string
	verbose     bool
	noColor     bool
	skipTests   bool
}

func newScanCommand(a *app) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "List the live markers in a source tree",
		Long: `Scan a source tree for live markers and report each file's fragments.

Files are discovered from git (or .gitignore outside a repository) in the
supported languages. Files without the marker are left out. The busiest
files are listed first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScan(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.maxFiles, "max-files", "n", 0, "maximum number of files to include")
	cmd.Flags().StringVarP(&opts.langs, "langs", "l", "", "comma-separated languages to include")
	cmd.Flags().Int64Var(&opts.maxFileSize, "max-file-size", 0, "skip files larger than this many bytes")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format ("+strings.Join(report.Formats, "|")+")")
	cmd.Flags().StringVar(&opts.file, "file", "", "only include files whose path contains this text")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "list every marker")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&opts.skipTests, "skip-tests", false, "ignore test files")

	return cmd
}

func (a *app) runScan(cmd *cobra.Command, args []string, opts *scanOptions) error {
	ctx := cmd.Context()
	cfg := a.cfg

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	langFilter := cfg.Scan.Languages
	if opts.langs != "" {
		langFilter, err = parseLanguages(opts.langs)
		if err != nil {
			return err
		}
	}
	maxFileSize := cfg.Scan.MaxFileSize
	if cmd.Flags().Changed("max-file-size") {
		maxFileSize = opts.maxFileSize
	}
	maxFiles := cfg.Scan.MaxFiles
	if cmd.Flags().Changed("max-files") {
		maxFiles = opts.maxFiles
	}

	files, err := discover.Files(root, discover.Options{
		Languages: langFilter,
		SkipTests: opts.skipTests || cfg.Scan.SkipTests,
	})
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files found")
	}

	files = a.filterBySize(files, maxFileSize)
	if len(files) == 0 {
		return fmt.Errorf("no source files found (all exceeded size limit)")
	}

	a.log.Debug("scanning", "root", root, "files", len(files), "marker", cfg.Marker)
	infos := a.analyzeFiles(ctx, root, files, cfg.Marker, false)
	if err := ctx.Err(); err != nil {
		return err
	}

	rep := &model.ScanReport{
		Root:   filepath.Base(root),
		Marker: cfg.Marker,
		Files:  infos,
	}
	if rep.Files == nil {
		rep.Files = []model.FileInfo{}
	}
	ranking.Sort(rep)
	if opts.file != "" {
		rep = ranking.FilterByFile(rep, opts.file)
	}
	rep = ranking.SelectFiles(rep, maxFiles)

	f, err := report.New(opts.format, report.FormatOptions{
		Color:   !opts.noColor && report.ColorEnabled(a.stdout),
		Verbose: opts.verbose,
	})
	if err != nil {
		return err
	}
	return f.FormatScan(ctx, rep, a.stdout)
}

func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: not a directory", root)
	}
	return root, nil
}

func parseLanguages(list string) ([]string, error) {
	var out []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if _, ok := lang.Languages[name]; !ok {
			return nil, fmt.Errorf("unsupported language %q (supported: %s)", name, strings.Join(lang.Names(), ", "))
		}
		out = append(out, name)
	}
	return out, nil
}
