// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveProjectRoot_Directory(t *testing.T) {
	origRoot := projectRoot
	defer func() { projectRoot = origRoot }()

	dir := t.TempDir()
	projectRoot = dir

	got, err := resolveProjectRoot()
	if err != nil {
		t.Fatalf("resolveProjectRoot() error = %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("resolveProjectRoot() = %q, want absolute path", got)
	}
}

func TestResolveProjectRoot_Missing(t *testing.T) {
	origRoot := projectRoot
	defer func() { projectRoot = origRoot }()

	projectRoot = filepath.Join(t.TempDir(), "does-not-exist")

	if _, err := resolveProjectRoot(); err == nil {
		t.Fatal("resolveProjectRoot() error = nil, want error for missing directory")
	}
}

func TestResolveProjectRoot_File(t *testing.T) {
	origRoot := projectRoot
	defer func() { projectRoot = origRoot }()

	file := filepath.Join(t.TempDir(), "plain-file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	projectRoot = file

	if _, err := resolveProjectRoot(); err == nil {
		t.Fatal("resolveProjectRoot() error = nil, want error for non-directory")
	}
}
