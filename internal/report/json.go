package report

import (
	"context"
	"encoding/json"
	"io"

	"github.com/phobologic/livetune/internal/model"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// FormatScan renders the scan report as JSON.
func (f *JSONFormatter) FormatScan(_ context.Context, rep *model.ScanReport, w io.Writer) error {
	return encode(w, rep)
}

type checkDocument struct {
	Marker string            `json:"marker"`
	OK     bool              `json:"ok"`
	Files  []model.Alignment `json:"files"`
}

// FormatCheck renders alignment results as JSON.
func (f *JSONFormatter) FormatCheck(_ context.Context, marker string, results []model.Alignment, w io.Writer) error {
	doc := checkDocument{Marker: marker, OK: true, Files: results}
	for i := range results {
		if !results[i].OK() {
			doc.OK = false
			break
		}
	}
	if doc.Files == nil {
		doc.Files = []model.Alignment{}
	}
	return encode(w, doc)
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
