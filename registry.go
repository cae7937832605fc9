package livetune

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phobologic/livetune/internal/cadence"
	"github.com/phobologic/livetune/internal/extract"
	"github.com/phobologic/livetune/internal/watch"
)

// Registry owns the live-value caches of one program. Create one with New
// at startup and keep it for the lifetime of the program; it is safe for
// concurrent use.
type Registry struct {
	marker  string
	enabled bool
	fsys    FileSystem
	log     *slog.Logger

	detector *watch.Detector
	cadence  *cadence.Controller

	mu    sync.RWMutex
	files map[string]*trackedFile
}

type trackedFile struct {
	path string

	mu        sync.Mutex
	fragments []string
	slots     map[int]any
	faultAt   time.Time
	faulted   bool
}

// New creates a Registry.
func New(opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Registry{
		marker:  o.marker,
		enabled: !o.release && !releaseBuild,
		fsys:    o.fsys,
		log:     o.logger,
		detector: watch.New(o.fsys,
			watch.WithClock(o.now),
			watch.WithMinInterval(o.minInterval),
		),
		cadence: cadence.New(),
		files:   make(map[string]*trackedFile),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns a process-wide Registry created on first use with default
// options. Passing a nil Registry to Check uses it.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Enabled reports whether lookups read source files. It is false in release
// mode.
func (r *Registry) Enabled() bool { return r.enabled }

// Marker returns the token the registry extracts literals after.
func (r *Registry) Marker() string { return r.marker }

func (r *Registry) file(path string) *trackedFile {
	r.mu.RLock()
	f, ok := r.files[path]
	r.mu.RUnlock()
	if ok {
		return f
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.files[path]; ok {
		return f
	}
	f = &trackedFile{path: path, slots: make(map[int]any)}
	r.files[path] = f
	return f
}

// refresh rebuilds the fragment list of f and reports whether the file could
// be read. A dangling marker counts as read: the file stays skipped until its
// next edit. The caller holds f.mu.
func (r *Registry) refresh(f *trackedFile, stamp time.Time) bool {
	frags, err := extract.ExtractFile(r.fsys, f.path, r.marker)
	f.fragments = frags
	if err == nil {
		f.faulted = false
		return true
	}

	if !errors.Is(err, extract.ErrDanglingMarker) {
		r.log.Debug("source unreadable", "path", f.path, "err", err)
		return false
	}
	if f.faulted && f.faultAt.Equal(stamp) {
		return true
	}
	f.faulted = true
	f.faultAt = stamp
	r.log.Warn("skipping source with dangling marker", "path", f.path, "marker", r.marker, "err", err)
	return true
}

// settle feeds one extraction pass to the cadence controller and commits the
// stamp once every call site of the file had its turn. The caller holds f.mu.
func (r *Registry) settle(f *trackedFile, stamp time.Time) {
	if r.cadence.Pass(f.path, stamp, len(f.fragments)) {
		r.detector.Commit(f.path, stamp)
	}
}

// Invalidate makes the next lookup in path re-read the file as on a cold
// start. Cached values and slots handed out earlier stay valid.
func (r *Registry) Invalidate(path string) {
	r.detector.Forget(path)
	r.cadence.Reset(path)
}

// Fragments returns the fragments of path as of its last extraction, or nil
// when the file has not been looked up yet.
func (r *Registry) Fragments(path string) []string {
	r.mu.RLock()
	f, ok := r.files[path]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fragments...)
}

// FileState describes one tracked file.
type FileState struct {
	Path      string
	Fragments []string
	Sites     int
	Settled   bool
	Pending   int
}

// Files returns the state of every tracked file, sorted by path.
func (r *Registry) Files() []FileState {
	r.mu.RLock()
	files := make([]*trackedFile, 0, len(r.files))
	for _, f := range r.files {
		files = append(files, f)
	}
	r.mu.RUnlock()

	states := make([]FileState, 0, len(files))
	for _, f := range files {
		f.mu.Lock()
		states = append(states, FileState{
			Path:      f.path,
			Fragments: append([]string(nil), f.fragments...),
			Sites:     len(f.slots),
			Settled:   r.detector.Settled(f.path),
			Pending:   r.cadence.Pending(f.path),
		})
		f.mu.Unlock()
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].Path < states[j].Path
	})
	return states
}
