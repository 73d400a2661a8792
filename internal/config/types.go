// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidServiceName is returned when the service name is empty or whitespace-only.
	ErrInvalidServiceName = errors.New("invalid service name")
	// ErrInvalidShell is the sentinel error wrapped by InvalidShellError.
	ErrInvalidShell = errors.New("invalid shell")
	// ErrNoInterpreterCandidates is returned when the interpreter candidate list is empty.
	ErrNoInterpreterCandidates = errors.New("no interpreter candidates configured")
)

type (
	// Config holds all installer settings. Relative paths are resolved against
	// the project root at run time, so a moved project directory only needs a
	// re-run to fix every embedded absolute path.
	Config struct {
		// ServiceName is the name of the installed Quick Action as it appears
		// in the Services menu (and of the .workflow bundle on disk).
		ServiceName string `mapstructure:"service_name" toml:"service_name"`

		// Shell is the absolute path of the shell that executes the embedded
		// command. It overrides whatever shell the template was saved with.
		Shell string `mapstructure:"shell" toml:"shell"`

		// VenvDir is the virtual environment directory, relative to the project root.
		VenvDir string `mapstructure:"venv_dir" toml:"venv_dir"`

		// TemplateDir is the workflow template bundle, relative to the project root.
		TemplateDir string `mapstructure:"template_dir" toml:"template_dir"`

		// EntryPoint is the decoder script, relative to the project root.
		EntryPoint string `mapstructure:"entry_point" toml:"entry_point"`

		// RequirementsFile is the dependency manifest, relative to the project
		// root. A missing manifest is a warning, not an error.
		RequirementsFile string `mapstructure:"requirements_file" toml:"requirements_file"`

		// StagingDir is where the bundle is assembled before installation,
		// relative to the project root.
		StagingDir string `mapstructure:"staging_dir" toml:"staging_dir"`

		// ServicesDir overrides the per-user services directory. Empty means
		// ~/Library/Services.
		ServicesDir string `mapstructure:"services_dir" toml:"services_dir"`

		// InterpreterCandidates are the interpreter names (or absolute paths)
		// probed, in order, when provisioning the virtual environment.
		InterpreterCandidates []string `mapstructure:"interpreter_candidates" toml:"interpreter_candidates"`

		// UI holds user interface settings.
		UI UIConfig `mapstructure:"ui" toml:"ui"`
	}

	// UIConfig holds user interface settings.
	UIConfig struct {
		// Verbose enables verbose output.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
	}

	// InvalidShellError is returned when the configured shell is not an
	// absolute path. It wraps ErrInvalidShell for errors.Is() compatibility.
	InvalidShellError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidShellError) Error() string {
	return fmt.Sprintf("invalid shell %q (must be an absolute path)", e.Value)
}

// Unwrap returns ErrInvalidShell so callers can use errors.Is for programmatic detection.
func (e *InvalidShellError) Unwrap() error { return ErrInvalidShell }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ServiceName:           "Decode QR Code",
		Shell:                 "/bin/zsh",
		VenvDir:               ".venv",
		TemplateDir:           filepath.Join("templates", "Decode QR Code.workflow"),
		EntryPoint:            "qr_local_decoder.py",
		RequirementsFile:      "requirements.txt",
		StagingDir:            "build",
		InterpreterCandidates: []string{"python3", "python"},
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return ErrInvalidServiceName
	}
	if !filepath.IsAbs(c.Shell) {
		return &InvalidShellError{Value: c.Shell}
	}
	if len(c.InterpreterCandidates) == 0 {
		return ErrNoInterpreterCandidates
	}
	return nil
}

// BundleName returns the on-disk name of the workflow bundle.
func (c *Config) BundleName() string {
	return c.ServiceName + ".workflow"
}
