// SPDX-License-Identifier: MPL-2.0

// Package provision handles the decoder's Python virtual environment.
//
// This package ensures an isolated runtime environment exists under the
// project root and has the declared dependencies installed. Provisioning is
// idempotent: an existing environment is never recreated, so a corrupted one
// must be removed manually before a re-run.
//
// The main entry point is the Provisioner:
//
//	p := provision.New(projectRoot, cfg, logger)
//	if err := p.Provision(ctx); err != nil { ... }
package provision
