// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phobologic/livetune/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a scan report into TOON format.
func Encode(rep *model.ScanReport) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("root: %s", encodeValue(rep.Root)))
	parts = append(parts, fmt.Sprintf("marker: %s", encodeValue(rep.Marker)))

	var fileRows [][]string
	for i := range rep.Files {
		fi := &rep.Files[i]
		fileRows = append(fileRows, []string{
			fi.Path,
			fi.Language,
			strconv.Itoa(fi.Markers()),
			fi.Fault,
		})
	}
	parts = append(parts, formatTabular("files", []string{"path", "language", "markers", "fault"}, fileRows))

	var markerRows [][]string
	for i := range rep.Files {
		fi := &rep.Files[i]
		for ord, frag := range fi.Fragments {
			var line, scope string
			if ord < len(fi.CallSites) {
				line = strconv.Itoa(fi.CallSites[ord].Line)
				scope = fi.CallSites[ord].Scope
			}
			markerRows = append(markerRows, []string{
				fi.Path,
				strconv.Itoa(ord),
				line,
				frag,
				scope,
			})
		}
	}
	parts = append(parts, formatTabular("markers", []string{"file", "ordinal", "line", "fragment", "scope"}, markerRows))

	return strings.Join(parts, "\n")
}

// EncodeAlignments converts check results into TOON format. The mismatches
// table is omitted when every file lines up.
func EncodeAlignments(marker string, results []model.Alignment) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("marker: %s", encodeValue(marker)))

	var checkRows, mismatchRows [][]string
	for i := range results {
		a := &results[i]
		checkRows = append(checkRows, []string{
			a.Path,
			strconv.Itoa(a.Fragments),
			strconv.Itoa(a.CallSites),
			Status(a),
		})
		for _, m := range a.Mismatches {
			var line string
			if m.Line > 0 {
				line = strconv.Itoa(m.Line)
			}
			mismatchRows = append(mismatchRows, []string{
				a.Path,
				strconv.Itoa(m.Ordinal),
				line,
				m.Fragment,
				m.Literal,
				m.Reason,
			})
		}
	}
	parts = append(parts, formatTabular("checks", []string{"path", "fragments", "callsites", "status"}, checkRows))

	if len(mismatchRows) > 0 {
		parts = append(parts, formatTabular("mismatches",
			[]string{"file", "ordinal", "line", "fragment", "literal", "reason"}, mismatchRows))
	}

	return strings.Join(parts, "\n")
}

// Status is the one-word verdict for an alignment.
func Status(a *model.Alignment) string {
	switch {
	case a.Fault != "":
		return "fault"
	case !a.Checked:
		return "unchecked"
	case len(a.Mismatches) > 0:
		return "misaligned"
	default:
		return "ok"
	}
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
