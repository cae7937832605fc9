package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/livetune/internal/config"
)

const (
	sentinelStart = "<!-- livetune:start -->"
	sentinelEnd   = "<!-- livetune:end -->"
)

type initOptions struct {
	dryRun bool
	force  bool
	doc    string
}

// newInitCommand implements `livetune init`, which writes a default config
// file and optionally a usage section into a markdown document.
func newInitCommand(a *app) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default livetune.yaml",
		Long: `Write a configuration file with the current settings (defaults, environment
and flags applied). path defaults to ./` + config.DefaultFile + `. An existing file is kept
unless --force is given.

With --doc FILE a short usage section is also written to FILE. The section is
wrapped in sentinel comments so it can be updated in place on later runs
without touching surrounding content.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runInit(args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print what would be written without modifying any file")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing config file")
	cmd.Flags().StringVar(&opts.doc, "doc", "", "also write a usage section to this markdown file")

	return cmd
}

func (a *app) runInit(args []string, opts *initOptions) error {
	path := config.DefaultFile
	if len(args) > 0 {
		path = args[0]
	}

	data, err := config.Marshal(a.cfg)
	if err != nil {
		return err
	}

	if opts.dryRun {
		_, _ = fmt.Fprint(a.stdout, string(data))
	} else {
		if err := writeConfig(path, data, opts.force); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(a.stderr, "wrote %s\n", path)
	}

	if opts.doc == "" {
		return nil
	}

	existing, err := os.ReadFile(opts.doc)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", opts.doc, err)
	}
	updated := applySection(string(existing), generateSection(a.cfg.Marker))

	if opts.dryRun {
		_, _ = fmt.Fprint(a.stdout, updated)
		return nil
	}
	if err := os.WriteFile(opts.doc, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.doc, err)
	}
	_, _ = fmt.Fprintf(a.stderr, "wrote livetune section to %s\n", opts.doc)
	return nil
}

func writeConfig(path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// generateSection returns the sentinel-wrapped usage block for marker.
func generateSection(marker string) string {
	body := `## Live tuning

Literals wrapped in a ` + "`" + marker + "(...)`" + ` call are re-read from the source file
while the program runs. Edit the literal and save; the running program picks
up the new value on its next lookup.

**Rules:**

1. Keep each literal on one line and free of parentheses.
2. Do not mention ` + "`" + marker + "`" + ` in comments or strings of a tuned file; every
   occurrence counts toward the ordinals.
3. Run ` + "`livetune check`" + ` after adding or moving call sites.

**Inspect:** ` + "`livetune scan -v`" + ` lists every marker, ` + "`livetune watch FILE`" + `
prints values as the program sees them.`

	return sentinelStart + "\n" + body + "\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if content == "" {
		return section + "\n"
	}
	return content + "\n" + section + "\n"
}
