package lang

import (
	"testing"
)

func TestForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{".py", "python"},
		{".go", "go"},
		{".rb", "ruby"},
		{".js", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()
			got := ForExtension(tt.ext)
			if got != tt.want {
				t.Errorf("ForExtension(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	got := Names()
	want := []string{"go", "python", "ruby"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLanguagesRegistered(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"go", "python", "ruby"} {
		l, ok := Languages[name]
		if !ok {
			t.Fatalf("%s language not registered", name)
		}
		if l.GetLanguage() == nil {
			t.Errorf("%s language is nil", name)
		}
		if l.NewParser() == nil {
			t.Errorf("%s NewParser returned nil", name)
		}
	}
}

func TestGetCallQuery(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"go", "python", "ruby"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			q, err := Languages[name].GetCallQuery()
			if err != nil {
				t.Fatalf("GetCallQuery: %v", err)
			}
			if q == nil {
				t.Fatal("query is nil")
			}
			seen := map[string]bool{}
			for i := uint32(0); i < q.CaptureCount(); i++ {
				seen[q.CaptureNameForId(i)] = true
			}
			for _, c := range []string{"call", "callee", "args"} {
				if !seen[c] {
					t.Errorf("query missing @%s capture", c)
				}
			}
		})
	}
}
