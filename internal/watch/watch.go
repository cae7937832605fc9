// Package watch detects modifications of tracked source files by polling
// their modification time.
package watch

import (
	"io/fs"
	"sync"
	"time"
)

// Stater reports file metadata.
type Stater interface {
	Stat(name string) (fs.FileInfo, error)
}

// Option configures a Detector.
type Option func(*Detector)

// WithClock replaces the wall clock. The clock stands in for the modification
// time of files that cannot be stat'ed and drives the MinInterval throttle.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		if now != nil {
			d.now = now
		}
	}
}

// WithMinInterval skips the stat call for a settled file when the previous
// stat of that file happened less than interval ago.
func WithMinInterval(interval time.Duration) Option {
	return func(d *Detector) {
		if interval > 0 {
			d.minInterval = interval
		}
	}
}

type entry struct {
	baseline  time.Time
	settled   bool
	lastCheck time.Time
}

// Detector tracks the last committed modification time per path.
//
// The zero baseline recorded on first observation never equals a real
// modification time, so a path stays "changed" until Commit or Touch.
type Detector struct {
	stater      Stater
	now         func() time.Time
	minInterval time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a Detector that stats files through s.
func New(s Stater, opts ...Option) *Detector {
	d := &Detector{
		stater:  s,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Observe stats path and reports whether it differs from the committed
// baseline, together with the stamp that was observed. A failed stat yields
// the current time and always counts as a change.
func (d *Detector) Observe(path string) (bool, time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[path]
	if !ok {
		e = &entry{}
		d.entries[path] = e
		stamp, _ := d.stamp(path)
		e.lastCheck = d.now()
		return true, stamp
	}

	if e.settled && d.minInterval > 0 {
		if now := d.now(); now.Sub(e.lastCheck) < d.minInterval {
			return false, e.baseline
		}
	}

	stamp, ok := d.stamp(path)
	e.lastCheck = d.now()
	if !ok {
		return true, stamp
	}
	return !stamp.Equal(e.baseline), stamp
}

// HasChanged reports whether path changed since the last commit.
func (d *Detector) HasChanged(path string) bool {
	changed, _ := d.Observe(path)
	return changed
}

// Commit records stamp as the baseline of path.
func (d *Detector) Commit(path string, stamp time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[path]
	if !ok {
		e = &entry{}
		d.entries[path] = e
	}
	e.baseline = stamp
	e.settled = true
	e.lastCheck = d.now()
}

// Touch advances the baseline of path to its current modification time.
func (d *Detector) Touch(path string) {
	d.mu.Lock()
	stamp, _ := d.stamp(path)
	d.mu.Unlock()
	d.Commit(path, stamp)
}

// Settled reports whether path has a committed baseline.
func (d *Detector) Settled(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[path]
	return ok && e.settled
}

// Forget drops everything known about path.
func (d *Detector) Forget(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, path)
}

// stamp returns the modification time of path, or the current time and false
// when the file cannot be stat'ed.
func (d *Detector) stamp(path string) (time.Time, bool) {
	info, err := d.stater.Stat(path)
	if err != nil {
		return d.now(), false
	}
	return info.ModTime(), true
}
