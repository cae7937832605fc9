package livetune

import (
	"path/filepath"
	"testing"
)

const demoSource = `package main

func main() {
	for {
		n := number.Live(-1234)
		r := real.Live(3.14159)
		s := text.Live("hello world")
		ok := flag.Live(true)
		_, _, _, _ = n, r, s, ok
	}
}
`

func TestBindAssignsOrdinalsInOrder(t *testing.T) {
	t.Parallel()

	r := New(WithFileSystem(newMemFS()), WithRelease(false))
	src := r.Source("demo.go")

	a := Bind[int](src)
	b := Bind[string](src)
	c := Bind[float64](src)

	for i, got := range []int{a.Ordinal(), b.Ordinal(), c.Ordinal()} {
		if got != i {
			t.Errorf("site %d ordinal = %d", i, got)
		}
	}
	if a.Path() != "demo.go" {
		t.Errorf("Path() = %q, want demo.go", a.Path())
	}
}

func TestSitesFollowEdits(t *testing.T) {
	t.Parallel()

	mfs := newMemFS()
	mfs.write("demo.go", demoSource)
	r := New(WithFileSystem(mfs), WithRelease(false))
	src := r.Source("demo.go")

	number := Bind[int](src)
	ratio := Bind[float64](src)
	text := Bind[string](src)
	flag := Bind[bool](src)

	read := func() (int, float64, string, bool) {
		return number.Live(0), ratio.Live(0), text.Live(""), flag.Live(false)
	}

	n, f, s, ok := read()
	if n != -1234 || f != 3.14159 || s != "hello world" || !ok {
		t.Fatalf("initial = %d, %v, %q, %v", n, f, s, ok)
	}

	edited := `package main

func main() {
	for {
		n := number.Live(42)
		r := real.Live(2.5e-3)
		s := text.Live("goodbye (for now)")
		ok := flag.Live(off)
	}
}
`
	mfs.write("demo.go", edited)
	n, f, s, ok = read()
	if n != 42 || f != 2.5e-3 || ok {
		t.Errorf("after edit = %d, %v, %v", n, f, ok)
	}
	// Parentheses split words, so the string only survives up to "(".
	if s != "goodbye" {
		t.Errorf("text after edit = %q", s)
	}
}

func TestSiteSlotIsShared(t *testing.T) {
	t.Parallel()

	mfs := newMemFS()
	mfs.write("demo.go", demoSource)
	r := New(WithFileSystem(mfs), WithRelease(false))
	site := At[int](r.Source("demo.go"), 0)

	if site.Slot(0) != site.Slot(0) {
		t.Error("Slot should return the same slot on every call")
	}
	if got := site.Slot(0).Load(); got != -1234 {
		t.Errorf("Slot().Load() = %d, want -1234", got)
	}
}

func TestAtDoesNotAdvance(t *testing.T) {
	t.Parallel()

	src := New(WithRelease(false)).Source("x.go")
	At[int](src, 5)
	if got := Bind[int](src).Ordinal(); got != 0 {
		t.Errorf("Bind after At ordinal = %d, want 0", got)
	}
}

func TestReleaseSiteReturnsFallback(t *testing.T) {
	t.Parallel()

	mfs := newMemFS()
	mfs.write("demo.go", demoSource)
	r := New(WithFileSystem(mfs), WithRelease(true))
	number := Bind[int](r.Source("demo.go"))

	if got := number.Live(7); got != 7 {
		t.Errorf("Live() = %d, want fallback 7", got)
	}
	if mfs.readCount() != 0 {
		t.Error("release mode read the source")
	}
}

func TestHere(t *testing.T) {
	t.Parallel()

	src := New(WithRelease(false)).Here()
	if filepath.Base(src.Path()) != "site_test.go" {
		t.Errorf("Here().Path() = %q, want this file", src.Path())
	}
}

func TestFilesReportsState(t *testing.T) {
	t.Parallel()

	mfs := newMemFS()
	mfs.write("b.go", "x := s.Live(1)\ny := s.Live(2)\n")
	mfs.write("a.go", "x := s.Live(1)\n")
	r := New(WithFileSystem(mfs), WithRelease(false))

	Check(r, "b.go", 0, 0)
	Check(r, "a.go", 0, 0)

	files := r.Files()
	if len(files) != 2 {
		t.Fatalf("Files() = %d entries, want 2", len(files))
	}
	if files[0].Path != "a.go" || files[1].Path != "b.go" {
		t.Errorf("Files() not sorted: %q, %q", files[0].Path, files[1].Path)
	}
	if !files[0].Settled {
		t.Error("a.go should be settled")
	}
	b := files[1]
	if b.Settled || b.Pending != 1 || len(b.Fragments) != 2 || b.Sites != 1 {
		t.Errorf("b.go state = %+v", b)
	}
}

func TestFragmentsIsACopy(t *testing.T) {
	t.Parallel()

	mfs := newMemFS()
	mfs.write("a.go", "x := s.Live(1)\ny := s.Live(\"two\")\n")
	r := New(WithFileSystem(mfs), WithRelease(false))

	if got := r.Fragments("a.go"); got != nil {
		t.Errorf("Fragments() before lookup = %q, want nil", got)
	}

	Check(r, "a.go", 0, 0)
	got := r.Fragments("a.go")
	if len(got) != 2 || got[0] != "1" || got[1] != "two" {
		t.Fatalf("Fragments() = %q", got)
	}
	got[0] = "changed"
	if r.Fragments("a.go")[0] != "1" {
		t.Error("Fragments() should return a copy")
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	if Default() != Default() {
		t.Error("Default() should return one registry")
	}
	if Default().Marker() != DefaultMarker {
		t.Errorf("Marker() = %q, want %q", Default().Marker(), DefaultMarker)
	}
}
