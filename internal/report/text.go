package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/phobologic/livetune/internal/model"
	"github.com/phobologic/livetune/internal/ranking"
	"github.com/phobologic/livetune/internal/toon"
)

type styles struct {
	title  lipgloss.Style
	path   lipgloss.Style
	muted  lipgloss.Style
	value  lipgloss.Style
	ok     lipgloss.Style
	bad    lipgloss.Style
	status lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain, path: plain, muted: plain, value: plain,
			ok: plain, bad: plain, status: plain.Width(11),
		}
	}
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		path:   lipgloss.NewStyle().Bold(true),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		bad:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		status: lipgloss.NewStyle().Width(11),
	}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct {
	opts FormatOptions
	st   styles
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts, st: newStyles(opts.Color)}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// FormatScan renders the scan report as text.
func (f *TextFormatter) FormatScan(_ context.Context, rep *model.ScanReport, w io.Writer) error {
	st := f.st
	fmt.Fprintln(w, st.title.Render(fmt.Sprintf("livetune scan: %s (marker %s)", rep.Root, rep.Marker)))
	fmt.Fprintln(w)

	for i := range rep.Files {
		fi := &rep.Files[i]
		if fi.Fault != "" {
			fmt.Fprintf(w, "%s  %s  %s\n",
				st.path.Render(fi.Path), st.muted.Render(fi.Language), st.bad.Render("fault: "+fi.Fault))
			continue
		}
		fmt.Fprintf(w, "%s  %s  %s\n",
			st.path.Render(fi.Path), st.muted.Render(fi.Language), plural(fi.Markers(), "marker"))
		if !f.opts.Verbose {
			continue
		}
		for ord, frag := range fi.Fragments {
			var where string
			if ord < len(fi.CallSites) {
				cs := &fi.CallSites[ord]
				where = fmt.Sprintf("L%d", cs.Line)
				if cs.Scope != "" {
					where += " " + cs.Scope
				}
			}
			fmt.Fprintf(w, "  #%-3d %s  %s\n", ord, st.value.Render(frag), st.muted.Render(where))
		}
	}

	markers, faults := ranking.Totals(rep)
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %s, %s, %s\n",
		plural(len(rep.Files), "file"), plural(markers, "marker"), plural(faults, "fault"))
	return nil
}

// FormatCheck renders alignment results as text.
func (f *TextFormatter) FormatCheck(_ context.Context, marker string, results []model.Alignment, w io.Writer) error {
	st := f.st
	var misaligned, faults, unchecked int

	for i := range results {
		a := &results[i]
		status := toon.Status(a)
		var label string
		switch status {
		case "ok":
			label = st.ok.Render(status)
		case "unchecked":
			label = st.muted.Render(status)
			unchecked++
		case "fault":
			label = st.bad.Render(status)
			faults++
		default:
			label = st.bad.Render(status)
			misaligned++
		}

		detail := fmt.Sprintf("%s, %s", plural(a.Fragments, "fragment"), plural(a.CallSites, "call site"))
		if a.Fault != "" {
			detail = a.Fault
		}
		fmt.Fprintf(w, "%s %s %s\n", st.status.Render(label), st.path.Render(a.Path), st.muted.Render("("+detail+")"))

		for _, m := range a.Mismatches {
			var b strings.Builder
			fmt.Fprintf(&b, "  #%d", m.Ordinal)
			if m.Line > 0 {
				fmt.Fprintf(&b, " L%d", m.Line)
			}
			fmt.Fprintf(&b, ": %s", m.Reason)
			if m.Fragment != "" {
				fmt.Fprintf(&b, " (%s %q", marker, m.Fragment)
				if m.Literal != "" {
					fmt.Fprintf(&b, ", call %q", m.Literal)
				}
				b.WriteString(")")
			} else if m.Literal != "" {
				fmt.Fprintf(&b, " (call %q)", m.Literal)
			}
			fmt.Fprintln(w, b.String())
		}
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %s checked, %d misaligned, %s, %d unchecked\n",
		plural(len(results), "file"), misaligned, plural(faults, "fault"), unchecked)
	return nil
}

// Change is one value update observed by watch.
type Change struct {
	Path    string
	Ordinal int
	Old     string
	New     string
	Initial bool
}

// FormatChange renders a single watch update.
func (f *TextFormatter) FormatChange(w io.Writer, c Change) error {
	st := f.st
	var err error
	if c.Initial {
		_, err = fmt.Fprintf(w, "%s #%d = %s\n", st.path.Render(c.Path), c.Ordinal, st.value.Render(c.New))
	} else {
		_, err = fmt.Fprintf(w, "%s #%d %s -> %s\n",
			st.path.Render(c.Path), c.Ordinal, st.muted.Render(c.Old), st.value.Render(c.New))
	}
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
