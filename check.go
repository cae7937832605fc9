package livetune

import (
	"errors"
	"fmt"
	"sync"

	"github.com/phobologic/livetune/internal/typed"
)

// Value is the set of literal kinds a live value can hold: bool, the
// integer and float kinds, and string, including named types built on them.
type Value = typed.Value

// ErrTypeConflict reports that a call site was looked up with a value type
// different from the one it was first bound to. Check logs it and hands out
// an unshared slot holding the fallback.
var ErrTypeConflict = errors.New("live value type conflict")

// Slot holds the current value of one call site. Slots are shared: every
// lookup of the same call site returns the same Slot, and Load observes
// updates made by later lookups.
type Slot[T Value] struct {
	mu sync.RWMutex
	v  T
}

func newSlot[T Value](v T) *Slot[T] {
	return &Slot[T]{v: v}
}

// Load returns the current value.
func (s *Slot[T]) Load() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

func (s *Slot[T]) store(v T) {
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
}

// Check returns the slot of the call site (path, ordinal), creating it with
// fallback on first use. When path changed on disk since it was last
// settled, the file is re-scanned and fragment number ordinal is parsed into
// the slot. Fragments that are missing, empty or do not parse as T leave the
// slot untouched. A file that cannot be read is retried on the next lookup.
//
// Looking up a call site with a different T than it was first bound to is
// logged at error level and yields a fresh slot holding fallback that is
// never updated.
//
// In release mode Check returns a fresh slot holding fallback and does no
// file I/O. A nil Registry means Default().
func Check[T Value](r *Registry, path string, ordinal int, fallback T) *Slot[T] {
	if r == nil {
		r = Default()
	}
	if !r.enabled {
		return newSlot(fallback)
	}

	f := r.file(path)
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, err := slotOf(f, ordinal, fallback)
	if err != nil {
		r.log.Error("call site looked up with a different type",
			"path", path, "ordinal", ordinal, "type", typed.Kind[T](), "err", err)
		return newSlot(fallback)
	}

	changed, stamp := r.detector.Observe(path)
	if !changed {
		return slot
	}

	if !r.refresh(f, stamp) {
		return slot
	}
	if ordinal >= 0 && ordinal < len(f.fragments) {
		frag := f.fragments[ordinal]
		if frag != "" {
			if v, ok := typed.Parse[T](frag); ok {
				slot.store(v)
			} else {
				r.log.Debug("fragment does not parse",
					"path", path, "ordinal", ordinal, "fragment", frag,
					"type", typed.Kind[T](), "current", typed.Format(slot.Load()))
			}
		}
	} else if len(f.fragments) > 0 {
		r.log.Debug("ordinal out of range",
			"path", path, "ordinal", ordinal, "fragments", len(f.fragments))
	}
	r.settle(f, stamp)
	return slot
}

// slotOf returns the slot of ordinal in f, creating it with fallback. The
// caller holds f.mu.
func slotOf[T Value](f *trackedFile, ordinal int, fallback T) (*Slot[T], error) {
	existing, ok := f.slots[ordinal]
	if !ok {
		s := newSlot(fallback)
		f.slots[ordinal] = s
		return s, nil
	}
	s, ok := existing.(*Slot[T])
	if !ok {
		return nil, fmt.Errorf("%w: %s ordinal %d is %T, looked up as %s",
			ErrTypeConflict, f.path, ordinal, existing, typed.Kind[T]())
	}
	return s, nil
}
