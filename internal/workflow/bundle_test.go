// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"os"
	"path/filepath"
	"testing"
)

// writeTemplate creates a minimal template bundle under dir and returns its path.
func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	bundle := filepath.Join(dir, "Decode QR Code.workflow")
	if err := os.MkdirAll(filepath.Join(bundle, "Contents"), 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		filepath.Join("Contents", "Info.plist"):    "<plist/>",
		filepath.Join("Contents", "document.wflow"): "<plist/>",
	} {
		if err := os.WriteFile(filepath.Join(bundle, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return bundle
}

func TestIsBundle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bundle := writeTemplate(t, dir)

	if !IsBundle(bundle) {
		t.Errorf("IsBundle(%q) = false, want true", bundle)
	}
	if IsBundle(filepath.Join(dir, "missing.workflow")) {
		t.Error("IsBundle() = true for a missing path")
	}
	if IsBundle(dir) {
		t.Error("IsBundle() = true for a directory without the suffix")
	}

	// A plain file with the suffix is not a bundle.
	file := filepath.Join(dir, "file.workflow")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if IsBundle(file) {
		t.Error("IsBundle() = true for a regular file")
	}
}

func TestStage_CopiesTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	template := writeTemplate(t, dir)
	staging := filepath.Join(dir, "build", "Decode QR Code.workflow")

	if err := Stage(template, staging); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}

	for _, rel := range []string{
		filepath.Join("Contents", "Info.plist"),
		filepath.Join("Contents", "document.wflow"),
	} {
		if _, err := os.Stat(filepath.Join(staging, rel)); err != nil {
			t.Errorf("staged bundle missing %s: %v", rel, err)
		}
	}

	// The template is untouched.
	if _, err := os.Stat(filepath.Join(template, "Contents", "document.wflow")); err != nil {
		t.Errorf("template mutated by staging: %v", err)
	}
}

func TestStage_ReplacesStaleCopy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	template := writeTemplate(t, dir)
	staging := filepath.Join(dir, "build", "Decode QR Code.workflow")

	// Leftover from a previous build, including a file the template lacks.
	if err := os.MkdirAll(staging, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(staging, "stale.txt")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Stage(template, staging); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file survived restaging")
	}
	if _, err := os.Stat(filepath.Join(staging, "Contents", "document.wflow")); err != nil {
		t.Errorf("restaged bundle incomplete: %v", err)
	}
}

func TestMoveDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeTemplate(t, dir)
	dst := filepath.Join(dir, "installed", "Decode QR Code.workflow")
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := moveDir(src, dst); err != nil {
		t.Fatalf("moveDir() error = %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still present after move")
	}
	if _, err := os.Stat(filepath.Join(dst, "Contents", "document.wflow")); err != nil {
		t.Errorf("destination incomplete after move: %v", err)
	}
}
