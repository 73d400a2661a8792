// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/superbereza/qr-local-decoder/internal/config"
	"github.com/superbereza/qr-local-decoder/internal/issue"

	"github.com/charmbracelet/log"
)

type (
	// Runner executes a blocking subprocess. Implementations stream the
	// subprocess output to the operator; there is no timeout on dependency
	// installation, it blocks until the underlying process completes or fails.
	Runner interface {
		Run(ctx context.Context, name string, args ...string) error
	}

	// Provisioner ensures a usable virtual environment exists at a fixed
	// location under the project root, then ensures all declared dependencies
	// are installed into it.
	Provisioner struct {
		projectRoot string
		cfg         *config.Config
		logger      *log.Logger

		// runner and lookPath are swapped out by tests.
		runner   Runner
		lookPath func(file string) (string, error)
	}

	// execRunner runs subprocesses through os/exec with inherited output streams.
	execRunner struct {
		stdout io.Writer
		stderr io.Writer
	}
)

// NewRunner creates a Runner that writes subprocess output to the given streams.
func NewRunner(stdout, stderr io.Writer) Runner {
	return &execRunner{stdout: stdout, stderr: stderr}
}

// Run executes the command and blocks until it exits.
func (r *execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	return cmd.Run()
}

// New creates a Provisioner for the given project root.
func New(projectRoot string, cfg *config.Config, logger *log.Logger) *Provisioner {
	return &Provisioner{
		projectRoot: projectRoot,
		cfg:         cfg,
		logger:      logger,
		runner:      NewRunner(os.Stdout, os.Stderr),
		lookPath:    exec.LookPath,
	}
}

// VenvPath returns the absolute path of the virtual environment directory.
func (p *Provisioner) VenvPath() string {
	return filepath.Join(p.projectRoot, p.cfg.VenvDir)
}

// RequirementsPath returns the absolute path of the dependency manifest.
func (p *Provisioner) RequirementsPath() string {
	return filepath.Join(p.projectRoot, p.cfg.RequirementsFile)
}

// LocateInterpreter probes the configured interpreter candidates in order and
// returns the first usable one. Absolute candidates are checked directly;
// bare names are resolved through PATH.
func (p *Provisioner) LocateInterpreter() (string, error) {
	for _, candidate := range p.cfg.InterpreterCandidates {
		if filepath.IsAbs(candidate) {
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
			continue
		}
		if path, err := p.lookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", issue.NewErrorContext().
		WithOperation("locate a Python interpreter").
		WithSuggestion("Install Python 3 (e.g. 'brew install python3')").
		WithSuggestion("Or add your interpreter to interpreter_candidates in the config file").
		Wrap(fmt.Errorf("none of %v is available", p.cfg.InterpreterCandidates)).
		BuildError()
}

// EnsureEnv creates the virtual environment if it does not exist yet.
// An existing environment is left untouched, whatever its state.
func (p *Provisioner) EnsureEnv(ctx context.Context) error {
	venv := p.VenvPath()

	if info, err := os.Stat(venv); err == nil && info.IsDir() {
		p.logger.Debug("virtual environment present, leaving untouched", "path", venv)
		return nil
	}

	interpreter, err := p.LocateInterpreter()
	if err != nil {
		return err
	}

	p.logger.Info("creating virtual environment", "path", venv, "interpreter", interpreter)
	if err := p.runner.Run(ctx, interpreter, "-m", "venv", venv); err != nil {
		return issue.WrapWithContext(err, "create virtual environment", venv)
	}

	return nil
}

// InstallDeps installs the dependency manifest into the environment.
// A missing manifest is a warning, not a failure.
func (p *Provisioner) InstallDeps(ctx context.Context) error {
	manifest := p.RequirementsPath()

	if info, err := os.Stat(manifest); err != nil || !info.Mode().IsRegular() {
		p.logger.Warn("dependency manifest not found, skipping installation", "path", manifest)
		return nil
	}

	pip := filepath.Join(p.VenvPath(), "bin", "pip")
	p.logger.Info("installing dependencies", "manifest", manifest)
	if err := p.runner.Run(ctx, pip, "install", "-r", manifest); err != nil {
		return issue.NewErrorContext().
			WithOperation("install dependencies").
			WithResource(manifest).
			WithSuggestion("Check your network connection (pip downloads packages on first run)").
			WithSuggestion("Remove the virtual environment and re-run").
			Wrap(err).
			BuildError()
	}

	return nil
}

// Provision runs the full sequence: ensure the environment, install dependencies.
func (p *Provisioner) Provision(ctx context.Context) error {
	if err := p.EnsureEnv(ctx); err != nil {
		return err
	}
	return p.InstallDeps(ctx)
}
