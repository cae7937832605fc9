package parse

import (
	"strings"

	"github.com/phobologic/livetune/internal/extract"
	"github.com/phobologic/livetune/internal/model"
)

// Mismatch reasons.
const (
	ReasonLiteral   = "literal differs"
	ReasonNoCall    = "no call site"
	ReasonNoMarker  = "no marker fragment"
	ReasonMultiline = "literal spans lines"
)

// Align compares the tokenizer's fragments with the syntax tree's call sites
// for one file. Ordinal N must have the same literal text on both sides.
// Files without call-site information are reported as unchecked.
func Align(fi *model.FileInfo) model.Alignment {
	a := model.Alignment{
		Path:      fi.Path,
		Fragments: len(fi.Fragments),
		CallSites: len(fi.CallSites),
		Checked:   fi.CallSites != nil,
		Fault:     fi.Fault,
	}
	if !a.Checked || a.Fault != "" {
		return a
	}

	n := max(len(fi.Fragments), len(fi.CallSites))
	for i := range n {
		m := model.Mismatch{Ordinal: i, Line: fi.Line(i)}
		switch {
		case i >= len(fi.CallSites):
			m.Fragment = fi.Fragments[i]
			m.Reason = ReasonNoCall
		case i >= len(fi.Fragments):
			m.Literal = fi.CallSites[i].Literal
			m.Reason = ReasonNoMarker
		default:
			m.Fragment = fi.Fragments[i]
			m.Literal = fi.CallSites[i].Literal
			if strings.ContainsAny(m.Literal, "\r\n") {
				m.Reason = ReasonMultiline
			} else if strings.TrimSpace(m.Fragment) != strings.TrimSpace(extract.Unquote(m.Literal)) {
				m.Reason = ReasonLiteral
			}
		}
		if m.Reason != "" {
			a.Mismatches = append(a.Mismatches, m)
		}
	}
	return a
}
