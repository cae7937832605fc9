package livetune

import (
	"runtime"
	"sync"
)

// Source hands out call sites of one source file in registration order.
type Source struct {
	r    *Registry
	path string

	mu   sync.Mutex
	next int
}

// Source returns a Source for path. Each Source counts ordinals from zero,
// so create one per file and bind its sites in the order their Live calls
// appear in the file.
func (r *Registry) Source(path string) *Source {
	if r == nil {
		r = Default()
	}
	return &Source{r: r, path: path}
}

// Here returns a Source for the file that calls it.
func (r *Registry) Here() *Source {
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		file = ""
	}
	return r.Source(file)
}

// Path returns the source file path.
func (s *Source) Path() string { return s.path }

func (s *Source) claim() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.next
	s.next++
	return n
}

// Site is one live call site.
type Site[T Value] struct {
	src     *Source
	ordinal int
}

// Bind registers the next call site of src. The first Bind on a Source gets
// ordinal 0, matching the first marker occurrence in the file.
func Bind[T Value](src *Source) *Site[T] {
	return &Site[T]{src: src, ordinal: src.claim()}
}

// At returns the call site with an explicit ordinal without advancing the
// registration counter.
func At[T Value](src *Source, ordinal int) *Site[T] {
	return &Site[T]{src: src, ordinal: ordinal}
}

// Ordinal returns the position of the site among the markers of its file.
func (s *Site[T]) Ordinal() int { return s.ordinal }

// Path returns the source file of the site.
func (s *Site[T]) Path() string { return s.src.path }

// Live returns the current value of the site. fallback is the literal
// written in the source; it is returned until a different value is read
// from the file, and always in release mode.
func (s *Site[T]) Live(fallback T) T {
	if !s.src.r.enabled {
		return fallback
	}
	return Check(s.src.r, s.src.path, s.ordinal, fallback).Load()
}

// Slot returns the shared slot of the site.
func (s *Site[T]) Slot(fallback T) *Slot[T] {
	return Check(s.src.r, s.src.path, s.ordinal, fallback)
}
