// Package extract pulls marked literal fragments out of source text.
//
// Text is split twice. Words are separated by parentheses and line breaks;
// each word is then split into tokens on whitespace and operator punctuation.
// When a token equals the marker, the following word is captured as a
// fragment and consumed. Fragments come back in file order, so fragment N
// belongs to the Nth marker occurrence in the file.
package extract

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDanglingMarker is returned when a marker is the last token of the text
// and there is no word left to capture.
var ErrDanglingMarker = errors.New("marker has no following literal")

// Reader reads whole files.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

const (
	wordSeparators  = "()\r\n"
	tokenSeparators = " \t<>!=;+-*/&|,:.{}[]"
)

// ExtractFile reads path through r and extracts the fragments following
// marker. A read failure yields no fragments and the wrapped read error.
func ExtractFile(r Reader, path, marker string) ([]string, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	frags, err := Extract(data, marker)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frags, nil
}

// Extract returns the fragments following each occurrence of marker in src.
// A marker with nothing after it aborts extraction with ErrDanglingMarker and
// no fragments.
func Extract(src []byte, marker string) ([]string, error) {
	if marker == "" {
		return nil, nil
	}
	words := split(string(src), wordSeparators)

	var frags []string
	for i := 0; i < len(words); i++ {
		for _, tok := range split(words[i], tokenSeparators) {
			if tok != marker {
				continue
			}
			if i+1 >= len(words) {
				return nil, fmt.Errorf("%w: occurrence %d", ErrDanglingMarker, len(frags))
			}
			i++
			frags = append(frags, Unquote(words[i]))
		}
	}
	return frags, nil
}

// Unquote trims surrounding spaces and tabs, then drops one leading and one
// trailing double quote or backquote. The two ends are handled separately, so
// a literal cut short by a parenthesis still loses its opening quote.
func Unquote(frag string) string {
	frag = strings.Trim(frag, " \t")
	if frag != "" && (frag[0] == '"' || frag[0] == '`') {
		frag = frag[1:]
	}
	if n := len(frag); n > 0 && (frag[n-1] == '"' || frag[n-1] == '`') {
		frag = frag[:n-1]
	}
	return frag
}

// split cuts s at any byte in seps and drops empty pieces.
func split(s, seps string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r < 0x80 && strings.IndexByte(seps, byte(r)) >= 0
	})
}
