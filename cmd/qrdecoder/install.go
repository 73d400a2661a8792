// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/superbereza/qr-local-decoder/internal/notify"
	"github.com/superbereza/qr-local-decoder/internal/provision"
	"github.com/superbereza/qr-local-decoder/internal/workflow"

	"github.com/spf13/cobra"
)

// installCmd is the explicit form of the bare invocation. Both run the
// full sequence: provision, stage, render, patch, install, notify.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Provision the environment and install the Quick Action",
	Long: `Provision the Python virtual environment, stage the workflow
template, embed this machine's absolute paths into the shell command,
and install the bundle into the Services directory.

The sequence is idempotent: an existing virtual environment is reused
as-is, and a previously installed bundle is replaced. Re-running after
moving the project directory re-bakes the paths.`,
	RunE: runInstall,
}

// runInstall performs the full install sequence. It backs both the bare
// root invocation and the install subcommand.
func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return NewExitError(1, fmt.Errorf("failed to load config: %w", err))
	}

	root, err := resolveProjectRoot()
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
		return NewExitError(1, err)
	}

	prov := provision.New(root, cfg, newLogger("provision"))
	if err := prov.Provision(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
		return NewExitError(1, err)
	}

	inst := workflow.NewInstaller(root, cfg, newLogger("install"), notify.NewDesktop())
	if err := inst.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
		return NewExitError(1, err)
	}

	fmt.Println(SuccessStyle.Render("✓") + " Installed " + CmdStyle.Render(cfg.BundleName()))
	fmt.Println(SubtitleStyle.Render("  Right-click an image in Finder and pick Quick Actions ▸ " + cfg.ServiceName))
	if verbose {
		if installed, pathErr := inst.InstalledPath(); pathErr == nil {
			fmt.Println(VerboseStyle.Render("  " + installed))
		}
	}
	return nil
}
