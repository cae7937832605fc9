package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeInfo struct {
	fs.FileInfo
	mod time.Time
}

func (f fakeInfo) ModTime() time.Time { return f.mod }

type fakeStater struct {
	mu    sync.Mutex
	mods  map[string]time.Time
	calls int
}

func newFakeStater() *fakeStater {
	return &fakeStater{mods: make(map[string]time.Time)}
}

func (f *fakeStater) set(path string, mod time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mods[path] = mod
}

func (f *fakeStater) Stat(name string) (fs.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	mod, ok := f.mods[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return fakeInfo{mod: mod}, nil
}

type osStater struct{}

func (osStater) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFirstObservationIsChanged(t *testing.T) {
	t.Parallel()

	st := newFakeStater()
	st.set("a.go", epoch)
	d := New(st)

	changed, stamp := d.Observe("a.go")
	if !changed {
		t.Error("first observation should report changed")
	}
	if !stamp.Equal(epoch) {
		t.Errorf("stamp = %v, want %v", stamp, epoch)
	}
	if d.Settled("a.go") {
		t.Error("path should not be settled before commit")
	}
}

func TestUnsettledStaysChanged(t *testing.T) {
	t.Parallel()

	st := newFakeStater()
	st.set("a.go", epoch)
	d := New(st)

	for i := 0; i < 3; i++ {
		if !d.HasChanged("a.go") {
			t.Fatalf("call %d: expected changed until commit", i)
		}
	}
}

func TestCommitSettles(t *testing.T) {
	t.Parallel()

	st := newFakeStater()
	st.set("a.go", epoch)
	d := New(st)

	_, stamp := d.Observe("a.go")
	d.Commit("a.go", stamp)

	if d.HasChanged("a.go") {
		t.Error("expected no change after commit")
	}
	if !d.Settled("a.go") {
		t.Error("expected settled after commit")
	}

	st.set("a.go", epoch.Add(time.Second))
	if !d.HasChanged("a.go") {
		t.Error("expected change after mtime moved forward")
	}
}

func TestOlderMtimeCountsAsChange(t *testing.T) {
	t.Parallel()

	st := newFakeStater()
	st.set("a.go", epoch)
	d := New(st)
	d.Touch("a.go")

	st.set("a.go", epoch.Add(-time.Hour))
	if !d.HasChanged("a.go") {
		t.Error("an mtime moving backwards should count as a change")
	}
}

func TestMissingFileAlwaysChanged(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: epoch}
	d := New(newFakeStater(), WithClock(clock.Now))

	_, stamp := d.Observe("missing.go")
	if !stamp.Equal(epoch) {
		t.Errorf("stamp = %v, want clock time %v", stamp, epoch)
	}
	d.Commit("missing.go", stamp)

	// Frozen clock: the substituted stamp equals the baseline, still changed.
	if !d.HasChanged("missing.go") {
		t.Error("unreadable file should always report changed")
	}
}

func TestTouchUsesCurrentMtime(t *testing.T) {
	t.Parallel()

	st := newFakeStater()
	st.set("a.go", epoch)
	d := New(st)

	d.Touch("a.go")
	if d.HasChanged("a.go") {
		t.Error("expected no change right after touch")
	}
}

func TestMinIntervalThrottlesSettledFiles(t *testing.T) {
	t.Parallel()

	st := newFakeStater()
	st.set("a.go", epoch)
	clock := &fakeClock{now: epoch}
	d := New(st, WithClock(clock.Now), WithMinInterval(time.Second))

	_, stamp := d.Observe("a.go")
	d.Commit("a.go", stamp)
	calls := st.calls

	st.set("a.go", epoch.Add(time.Minute))
	if d.HasChanged("a.go") {
		t.Error("change should be hidden inside the throttle window")
	}
	if st.calls != calls {
		t.Errorf("stat calls = %d, want %d (no stat inside window)", st.calls, calls)
	}

	clock.Advance(2 * time.Second)
	if !d.HasChanged("a.go") {
		t.Error("change should be visible once the window elapsed")
	}
}

func TestForget(t *testing.T) {
	t.Parallel()

	st := newFakeStater()
	st.set("a.go", epoch)
	d := New(st)
	d.Touch("a.go")

	d.Forget("a.go")
	if d.Settled("a.go") {
		t.Error("forgotten path should not be settled")
	}
	if !d.HasChanged("a.go") {
		t.Error("forgotten path should start cold")
	}
}

func TestRealFilesystem(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := New(osStater{})
	d.Touch(path)
	if d.HasChanged(path) {
		t.Fatal("expected no change after touch")
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if !d.HasChanged(path) {
		t.Error("expected change after Chtimes")
	}
}
