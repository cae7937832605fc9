package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "livetune.yaml")

	_, stderr, err := run(t, "--marker", "knob", "init", path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(stderr, "wrote "+path) {
		t.Errorf("stderr = %q", stderr)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file not created: %v", err)
	}
	if !strings.Contains(string(data), "marker: knob") {
		t.Errorf("config does not carry the flag marker:\n%s", data)
	}
}

// TestInitKeepsExisting verifies that an existing config is only replaced
// with --force.
func TestInitKeepsExisting(t *testing.T) {
	t.Parallel()
	path := writeTestFile(t, t.TempDir(), "livetune.yaml", "marker: mine\n")

	_, _, err := run(t, "init", path)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists error, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "marker: mine\n" {
		t.Errorf("existing file modified:\n%s", data)
	}

	if _, _, err := run(t, "init", "--force", path); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "marker: Live") {
		t.Errorf("--force did not overwrite:\n%s", data)
	}
}

// TestInitDryRun verifies that --dry-run prints the config and touches no
// file.
func TestInitDryRun(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "livetune.yaml")
	doc := filepath.Join(dir, "README.md")

	out, _, err := run(t, "init", "--dry-run", "--doc", doc, path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("--dry-run should not create the config")
	}
	if _, err := os.Stat(doc); err == nil {
		t.Error("--dry-run should not create the doc")
	}
	for _, want := range []string{"# livetune configuration.", "marker: Live", sentinelStart, sentinelEnd} {
		if !strings.Contains(out, want) {
			t.Errorf("dry-run output missing %q:\n%s", want, out)
		}
	}
}

// TestInitDocUpdatesInPlace verifies that a second run replaces the sentinel
// block without touching surrounding text.
func TestInitDocUpdatesInPlace(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	doc := writeTestFile(t, dir, "README.md", "# My Game\n\nSome existing content.\n")

	for i := range 2 {
		cfg := filepath.Join(dir, "livetune.yaml")
		if _, _, err := run(t, "init", "--force", "--doc", doc, cfg); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	data, err := os.ReadFile(doc)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# My Game\n\nSome existing content.\n") {
		t.Errorf("surrounding content changed:\n%s", content)
	}
	if strings.Count(content, sentinelStart) != 1 {
		t.Errorf("expected one section, got:\n%s", content)
	}
}

func TestApplySection(t *testing.T) {
	t.Parallel()

	section := sentinelStart + "\nnew\n" + sentinelEnd

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", section + "\n"},
		{"append", "# Title\n", "# Title\n\n" + section + "\n"},
		{"append no newline", "# Title", "# Title\n\n" + section + "\n"},
		{
			"replace",
			"before\n" + sentinelStart + "\nold\n" + sentinelEnd + "\nafter\n",
			"before\n" + section + "\nafter\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applySection(tt.content, section); got != tt.want {
				t.Errorf("applySection() = %q, want %q", got, tt.want)
			}
		})
	}
}
