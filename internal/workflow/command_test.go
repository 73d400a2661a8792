// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"strings"
	"testing"
)

func testSpec(projectDir string) CommandSpec {
	return CommandSpec{
		ProjectDir: projectDir,
		VenvDir:    ".venv",
		EntryPoint: "qr_local_decoder.py",
		Shell:      "/bin/zsh",
	}
}

func TestCommandSpec_Render_Deterministic(t *testing.T) {
	t.Parallel()

	spec := testSpec("/Users/alex/qr-local-decoder")

	first, err := spec.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := spec.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if first != second {
		t.Error("two renders of the same spec differ")
	}
}

func TestCommandSpec_Render_Content(t *testing.T) {
	t.Parallel()

	text, err := testSpec("/Users/alex/qr-local-decoder").Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"#!/bin/zsh",
		"set -euo pipefail",
		"# --- config ---",
		`PROJECT_DIR="/Users/alex/qr-local-decoder"`,
		"# --- logic ---",
		`source "$VENV_DIR/bin/activate"`,
		`"$@" --copy`,
		`[ "$status" -eq 0 ]`,
		`[ "$status" -eq 4 ]`,
		"Decoded, copied to clipboard",
		"No QR code found",
		"Decoder failed (status $status)",
		"sleep 1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered text missing %q:\n%s", want, text)
		}
	}
}

func TestCommandSpec_Render_MovedProject(t *testing.T) {
	t.Parallel()

	// Re-rendering after a project move must embed only the new path.
	oldPath := "/Users/alex/old-location"
	newPath := "/Volumes/work/new-location"

	text, err := testSpec(newPath).Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if strings.Contains(text, oldPath) {
		t.Errorf("rendered text contains stale path %q", oldPath)
	}
	if !strings.Contains(text, newPath) {
		t.Errorf("rendered text missing current path %q", newPath)
	}
}

func TestCommandSpec_Render_SpacesInPath(t *testing.T) {
	t.Parallel()

	text, err := testSpec("/Users/alex/My Projects/qr decoder").Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(text, `PROJECT_DIR="/Users/alex/My Projects/qr decoder"`) {
		t.Errorf("path with spaces not embedded quoted:\n%s", text)
	}
}

func TestCommandSpec_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*CommandSpec)
	}{
		{"relative project dir", func(s *CommandSpec) { s.ProjectDir = "qr-local-decoder" }},
		{"relative shell", func(s *CommandSpec) { s.Shell = "zsh" }},
		{"empty venv dir", func(s *CommandSpec) { s.VenvDir = "" }},
		{"empty entry point", func(s *CommandSpec) { s.EntryPoint = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec("/Users/alex/qr-local-decoder")
			tt.mutate(&spec)
			if _, err := spec.Render(); err == nil {
				t.Error("Render() should fail for invalid spec")
			}
		})
	}
}

func TestCommandSpec_Render_ParsesAsShell(t *testing.T) {
	t.Parallel()

	// Render already syntax-checks internally; this guards the invariant
	// explicitly for a path full of shell-significant but quotable characters.
	spec := testSpec("/Users/alex/p$a t&h;x")
	if _, err := spec.Render(); err != nil {
		t.Errorf("Render() error = %v for quotable path", err)
	}
}
