// Package cadence decides when a changed file may be marked as settled.
//
// A file with K tracked call sites is re-extracted once per call site after
// an edit. Settling after the first pass would hide the edit from the other
// K-1 sites, so the controller counts passes per file and only reports
// settle once K passes have observed the same modification stamp.
package cadence

import (
	"sync"
	"time"
)

type round struct {
	stamp  time.Time
	passes int
}

// Controller counts re-extraction passes per file.
type Controller struct {
	mu     sync.Mutex
	rounds map[string]*round
}

// New creates an empty Controller.
func New() *Controller {
	return &Controller{rounds: make(map[string]*round)}
}

// Pass records one re-extraction of path that observed stamp and found k
// fragments. It reports true when the round is complete and the stamp can be
// committed; the round is reset in that case. A pass that observes a stamp
// different from the round's restarts the round at the new stamp.
func (c *Controller) Pass(path string, stamp time.Time, k int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.rounds[path]
	if !ok || !r.stamp.Equal(stamp) {
		r = &round{stamp: stamp}
		c.rounds[path] = r
	}
	r.passes++

	if r.passes < max(k, 1) {
		return false
	}
	delete(c.rounds, path)
	return true
}

// Pending returns the number of passes recorded for path in the open round.
func (c *Controller) Pending(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.rounds[path]; ok {
		return r.passes
	}
	return 0
}

// Reset discards the open round of path.
func (c *Controller) Reset(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rounds, path)
}
