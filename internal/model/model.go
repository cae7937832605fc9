// Package model defines the data structures shared by scan and check.
package model

// CallSite is one marker call located by the syntax tree.
type CallSite struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Ordinal int    `json:"ordinal"`
	Callee  string `json:"callee"`
	Literal string `json:"literal"`

	// Scope is the enclosing function or method, "" at top level.
	Scope string `json:"scope,omitempty"`
}

// FileInfo holds what was extracted from a single source file.
type FileInfo struct {
	Path     string `json:"path"`
	Language string `json:"language"`

	// Fragments are the tokenizer's literals in marker order.
	Fragments []string `json:"fragments"`

	// CallSites are the syntax-tree marker calls in source order. Nil when
	// the language has no grammar.
	CallSites []CallSite `json:"call_sites,omitempty"`

	// Fault is set when the tokenizer rejected the file.
	Fault string `json:"fault,omitempty"`
}

// Markers returns the number of marker occurrences found by the tokenizer.
func (f *FileInfo) Markers() int { return len(f.Fragments) }

// Line returns the source line of the call site with the given ordinal, or
// 0 when the syntax tree has no such call.
func (f *FileInfo) Line(ordinal int) int {
	if ordinal < 0 || ordinal >= len(f.CallSites) {
		return 0
	}
	return f.CallSites[ordinal].Line
}

// ScanReport is the result of scanning a tree, ready for serialization.
type ScanReport struct {
	Root   string     `json:"root"`
	Marker string     `json:"marker"`
	Files  []FileInfo `json:"files"`
}

// Mismatch is one disagreement between the tokenizer and the syntax tree.
type Mismatch struct {
	Ordinal  int    `json:"ordinal"`
	Line     int    `json:"line,omitempty"`
	Fragment string `json:"fragment"`
	Literal  string `json:"literal"`
	Reason   string `json:"reason"`
}

// Alignment is the check result for one file.
type Alignment struct {
	Path       string     `json:"path"`
	Fragments  int        `json:"fragments"`
	CallSites  int        `json:"call_sites"`
	Checked    bool       `json:"checked"`
	Fault      string     `json:"fault,omitempty"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// OK reports whether every fragment lines up with its call site.
func (a *Alignment) OK() bool {
	return a.Fault == "" && len(a.Mismatches) == 0
}
