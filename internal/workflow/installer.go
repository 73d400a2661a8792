// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/superbereza/qr-local-decoder/internal/config"
	"github.com/superbereza/qr-local-decoder/internal/issue"
	"github.com/superbereza/qr-local-decoder/internal/notify"

	"github.com/charmbracelet/log"
)

// Installer produces an installable Quick Action bundle with machine-specific
// absolute paths baked in, and installs it into the per-user Services
// directory, replacing any prior installation.
type Installer struct {
	projectRoot string
	cfg         *config.Config
	logger      *log.Logger
	notifier    notify.Notifier
}

// NewInstaller creates an Installer rooted at the given project directory.
// projectRoot must be absolute.
func NewInstaller(projectRoot string, cfg *config.Config, logger *log.Logger, notifier notify.Notifier) *Installer {
	return &Installer{
		projectRoot: projectRoot,
		cfg:         cfg,
		logger:      logger,
		notifier:    notifier,
	}
}

// TemplatePath returns the absolute path of the workflow template bundle.
func (i *Installer) TemplatePath() string {
	return filepath.Join(i.projectRoot, i.cfg.TemplateDir)
}

// EntryPointPath returns the absolute path of the decoder script.
func (i *Installer) EntryPointPath() string {
	return filepath.Join(i.projectRoot, i.cfg.EntryPoint)
}

// StagingPath returns where the bundle is assembled before installation.
func (i *Installer) StagingPath() string {
	return filepath.Join(i.projectRoot, i.cfg.StagingDir, i.cfg.BundleName())
}

// ServicesDir returns the per-user services directory, honoring the config
// override used by tests.
func (i *Installer) ServicesDir() (string, error) {
	if i.cfg.ServicesDir != "" {
		return i.cfg.ServicesDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Library", "Services"), nil
}

// InstalledPath returns the final install location of the bundle.
func (i *Installer) InstalledPath() (string, error) {
	dir, err := i.ServicesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, i.cfg.BundleName()), nil
}

// CommandSpec returns the command blueprint for this installation.
func (i *Installer) CommandSpec() CommandSpec {
	return CommandSpec{
		ProjectDir: i.projectRoot,
		VenvDir:    i.cfg.VenvDir,
		EntryPoint: i.cfg.EntryPoint,
		Shell:      i.cfg.Shell,
	}
}

// Validate checks that the template bundle and the decoder entry point exist.
// It performs no filesystem writes.
func (i *Installer) Validate() error {
	if !IsBundle(i.TemplatePath()) {
		return issue.NewErrorContext().
			WithOperation("locate workflow template").
			WithResource(i.TemplatePath()).
			WithSuggestion("Check that the project checkout is complete").
			WithSuggestion("Override template_dir in the config file if the template lives elsewhere").
			BuildError()
	}

	if info, err := os.Stat(i.EntryPointPath()); err != nil || !info.Mode().IsRegular() {
		return issue.NewErrorContext().
			WithOperation("locate decoder entry point").
			WithResource(i.EntryPointPath()).
			WithSuggestion("Check that the project checkout is complete").
			WithSuggestion("Override entry_point in the config file if the script lives elsewhere").
			BuildError()
	}

	return nil
}

// Run executes the full linear pipeline: validate, stage, template, patch,
// install, notify. Every failure is a hard stop with no rollback.
func (i *Installer) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("install canceled: %w", ctx.Err())
	default:
	}

	if err := i.Validate(); err != nil {
		return err
	}

	staging := i.StagingPath()
	i.logger.Info("staging workflow bundle", "template", i.TemplatePath(), "staging", staging)
	if err := Stage(i.TemplatePath(), staging); err != nil {
		return issue.WrapWithContext(err, "stage workflow bundle", staging)
	}

	command, err := i.CommandSpec().Render()
	if err != nil {
		return issue.WrapWithOperation(err, "render command text")
	}
	i.logger.Debug("rendered command text", "bytes", len(command))

	if err := PatchDocumentFile(DocumentPath(staging), command, i.cfg.Shell); err != nil {
		return err
	}

	installed, err := i.InstalledPath()
	if err != nil {
		return err
	}
	i.logger.Info("installing workflow bundle", "destination", installed)
	if err := i.install(staging, installed); err != nil {
		return err
	}

	if err := i.notifier.Notify(NotifyTitle, i.cfg.ServiceName+" installed"); err != nil {
		// The bundle is in place; a failed courtesy notification is not fatal.
		i.logger.Warn("could not send installation notification", "err", err)
	}

	return nil
}

// install moves the staged bundle into the services directory, replacing any
// previously installed bundle of the same name.
func (i *Installer) install(staging, installed string) error {
	if err := os.MkdirAll(filepath.Dir(installed), 0o755); err != nil {
		return issue.WrapWithContext(err, "create services directory", filepath.Dir(installed))
	}
	if err := os.RemoveAll(installed); err != nil {
		return issue.WrapWithContext(err, "remove previous installation", installed)
	}
	if err := moveDir(staging, installed); err != nil {
		return issue.WrapWithContext(err, "install workflow bundle", installed)
	}
	return nil
}

// Uninstall removes the installed bundle and any staging leftover.
// Both removals are best effort; the first error wins.
func (i *Installer) Uninstall() error {
	installed, err := i.InstalledPath()
	if err != nil {
		return err
	}

	i.logger.Info("removing installed bundle", "path", installed)
	if err := os.RemoveAll(installed); err != nil {
		return issue.WrapWithContext(err, "remove installed bundle", installed)
	}

	if err := os.RemoveAll(i.StagingPath()); err != nil {
		return issue.WrapWithContext(err, "remove staging leftover", i.StagingPath())
	}

	return nil
}
