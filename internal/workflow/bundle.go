// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BundleSuffix is the standard suffix for macOS workflow bundle directories.
const BundleSuffix = ".workflow"

// IsBundle checks if the given path is a workflow bundle directory.
// This is a quick check: the folder name must carry the bundle suffix and the
// path must be an existing directory.
func IsBundle(path string) bool {
	if !strings.HasSuffix(filepath.Base(path), BundleSuffix) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Stage replaces any stale copy at stagingPath with a fresh duplicate of the
// template bundle. The staging location is transient: it exists only between
// staging and installation, or after a failed patch for manual inspection.
func Stage(templateDir, stagingPath string) error {
	if err := os.RemoveAll(stagingPath); err != nil {
		return fmt.Errorf("failed to remove stale staging bundle: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(stagingPath), 0o755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	return copyDir(templateDir, stagingPath)
}

// copyFile copies a file from src to dst, preserving the file mode.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}

	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write destination file: %w", err)
	}

	return nil
}

// copyDir recursively copies a directory tree from src to dst.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// moveDir relocates a directory, falling back to copy-and-remove when a plain
// rename crosses filesystem boundaries (the staging copy lives in the project
// directory, the destination under the user's home).
func moveDir(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyDir(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}
