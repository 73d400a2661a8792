// SPDX-License-Identifier: MPL-2.0

// Package workflow builds and installs the macOS Quick Action bundle.
//
// The installer pipeline is strictly linear: validate inputs, stage the
// template bundle, render the machine-specific command text, patch the
// bundle's embedded property-list document, move the bundle into the per-user
// Services directory, and notify the operator. Every step is a hard stop on
// failure; there is no rollback. A staged bundle left behind after a patch
// failure stays in the project directory for manual inspection.
//
// Re-running is always safe: the command text is regenerated from scratch and
// the previous staging copy and installed bundle are fully replaced, so moving
// the project directory and re-running fixes every embedded absolute path.
package workflow
