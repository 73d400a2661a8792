// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/superbereza/qr-local-decoder/internal/notify"
	"github.com/superbereza/qr-local-decoder/internal/workflow"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the installed Quick Action",
	Long: `Remove the workflow bundle from the Services directory and delete the
staging copy. The virtual environment is left in place; delete the project
directory to remove it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		inst := workflow.NewInstaller(root, cfg, newLogger("install"), notify.Nop{})
		if err := inst.Uninstall(); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
			return NewExitError(1, err)
		}

		fmt.Println(SuccessStyle.Render("✓") + " Removed " + CmdStyle.Render(cfg.BundleName()))
		return nil
	},
}
