package parse

import (
	"testing"

	"github.com/phobologic/livetune/internal/lang"
	"github.com/phobologic/livetune/internal/model"
)

func setup(t *testing.T, langName string) func(source string) []model.CallSite {
	t.Helper()
	l := lang.Languages[langName]
	if l == nil {
		t.Fatalf("language %q not registered", langName)
	}
	q, err := l.GetCallQuery()
	if err != nil {
		t.Fatalf("GetCallQuery: %v", err)
	}
	ext := l.Extensions[0]
	return func(source string) []model.CallSite {
		p := l.NewParser()
		return CallSites(l, p, q, []byte(source), "test"+ext, "Live")
	}
}

func literals(sites []model.CallSite) []string {
	out := make([]string, len(sites))
	for i, s := range sites {
		out[i] = s.Literal
	}
	return out
}

func assertLiterals(t *testing.T, sites []model.CallSite, want ...string) {
	t.Helper()
	got := literals(sites)
	if len(got) != len(want) {
		t.Fatalf("literals = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("literal %d = %q, want %q", i, got[i], want[i])
		}
		if sites[i].Ordinal != i {
			t.Errorf("site %d ordinal = %d", i, sites[i].Ordinal)
		}
	}
}

// --- Go tests ---

func TestGoCallSites(t *testing.T) {
	t.Parallel()
	sites := setup(t, "go")

	source := `package main

func main() {
	n := number.Live(-1234)
	s := text.Live("hello world")
	other.Call(5)
	f := Live(2.5)
}
`
	got := sites(source)
	assertLiterals(t, got, "-1234", `"hello world"`, "2.5")
	if got[0].Line != 4 || got[2].Line != 7 {
		t.Errorf("lines = %d, %d", got[0].Line, got[2].Line)
	}
	if got[0].Callee != "number.Live" {
		t.Errorf("callee = %q, want number.Live", got[0].Callee)
	}
	if got[0].Scope != "main" {
		t.Errorf("scope = %q, want main", got[0].Scope)
	}
	if got[0].File != "test.go" {
		t.Errorf("file = %q", got[0].File)
	}
}

func TestGoMethodScope(t *testing.T) {
	t.Parallel()
	sites := setup(t, "go")

	source := `package game

func (p *Player) Update() {
	go func() {
		p.x += speed.Live(3)
	}()
}
`
	got := sites(source)
	assertLiterals(t, got, "3")
	if got[0].Scope != "Player.Update" {
		t.Errorf("scope = %q, want Player.Update", got[0].Scope)
	}
}

func TestGoNestedCallsOrderedByCallee(t *testing.T) {
	t.Parallel()
	sites := setup(t, "go")

	source := `package main

var x = outer.Live(inner.Live(1))
`
	got := sites(source)
	assertLiterals(t, got, "inner.Live(1)", "1")
}

func TestGoSkipsComments(t *testing.T) {
	t.Parallel()
	sites := setup(t, "go")

	got := sites("package main\n\nvar x = v.Live(/* tuned */ 7)\n")
	assertLiterals(t, got, "7")
}

func TestGoEmptyArguments(t *testing.T) {
	t.Parallel()
	sites := setup(t, "go")

	got := sites("package main\n\nvar x = v.Live()\n")
	assertLiterals(t, got, "")
}

func TestOtherMarker(t *testing.T) {
	t.Parallel()
	l := lang.Languages["go"]
	q, err := l.GetCallQuery()
	if err != nil {
		t.Fatal(err)
	}
	src := []byte("package main\n\nvar a, b = x.Live(1), tweak(2)\n")
	got := CallSites(l, l.NewParser(), q, src, "m.go", "tweak")
	assertLiterals(t, got, "2")
}

func TestEmptySource(t *testing.T) {
	t.Parallel()
	sites := setup(t, "go")

	if got := sites(""); got != nil {
		t.Errorf("sites(empty) = %v, want nil", got)
	}
}

// --- Python tests ---

func TestPythonCallSites(t *testing.T) {
	t.Parallel()
	sites := setup(t, "python")

	source := `class Ship:
    def thrust(self):
        return tune.Live(0.75)

delay = Live(30)
`
	got := sites(source)
	assertLiterals(t, got, "0.75", "30")
	if got[0].Scope != "Ship.thrust" {
		t.Errorf("scope = %q, want Ship.thrust", got[0].Scope)
	}
	if got[1].Scope != "" {
		t.Errorf("top-level scope = %q, want empty", got[1].Scope)
	}
}

// --- Ruby tests ---

func TestRubyCallSites(t *testing.T) {
	t.Parallel()
	sites := setup(t, "ruby")

	source := `class Config
  def self.load(path)
    tune.Live("fast")
  end
end
`
	got := sites(source)
	assertLiterals(t, got, `"fast"`)
	if got[0].Scope != "Config.load" {
		t.Errorf("scope = %q, want Config.load", got[0].Scope)
	}
}
