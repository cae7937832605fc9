// Package report renders scan and check results.
package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"

	"github.com/phobologic/livetune/internal/model"
)

// Formatter renders results in a specific format.
type Formatter interface {
	// FormatScan renders a scan report to the given writer.
	FormatScan(ctx context.Context, rep *model.ScanReport, w io.Writer) error

	// FormatCheck renders alignment results to the given writer.
	FormatCheck(ctx context.Context, marker string, results []model.Alignment, w io.Writer) error

	// Name returns the format name (text, json, toon).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Color enables ANSI styling in text output.
	Color bool

	// Verbose lists every marker in text scan output.
	Verbose bool
}

// Formats lists the accepted format names.
var Formats = []string{"text", "json", "toon"}

// New returns the formatter registered under name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text", "":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "toon":
		return NewToonFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (must be text, json, or toon)", name)
	}
}

// ColorEnabled reports whether w is a terminal that can show colors.
func ColorEnabled(w io.Writer) bool {
	p := colorprofile.Detect(w, os.Environ())
	return p != colorprofile.NoTTY && p != colorprofile.Ascii
}
