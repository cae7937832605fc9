package report

import (
	"context"
	"fmt"
	"io"

	"github.com/phobologic/livetune/internal/model"
	"github.com/phobologic/livetune/internal/toon"
)

// ToonFormatter formats results as TOON tables.
type ToonFormatter struct{}

// NewToonFormatter creates a TOON formatter.
func NewToonFormatter() *ToonFormatter { return &ToonFormatter{} }

// Name returns the format name.
func (f *ToonFormatter) Name() string { return "toon" }

// FormatScan renders the scan report as TOON.
func (f *ToonFormatter) FormatScan(_ context.Context, rep *model.ScanReport, w io.Writer) error {
	_, err := fmt.Fprintln(w, toon.Encode(rep))
	return err
}

// FormatCheck renders alignment results as TOON.
func (f *ToonFormatter) FormatCheck(_ context.Context, marker string, results []model.Alignment, w io.Writer) error {
	_, err := fmt.Fprintln(w, toon.EncodeAlignments(marker, results))
	return err
}
