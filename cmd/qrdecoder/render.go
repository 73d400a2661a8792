// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/superbereza/qr-local-decoder/internal/workflow"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the shell command that would be embedded in the workflow",
	Long: `Render the shell command with this machine's absolute paths and print it
to stdout without touching the filesystem. Useful for inspecting what the
installed Quick Action will execute.`,
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

		spec := workflow.CommandSpec{
			ProjectDir: root,
			VenvDir:    cfg.VenvDir,
			EntryPoint: cfg.EntryPoint,
			Shell:      cfg.Shell,
		}
		command, err := spec.Render()
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
			return NewExitError(1, err)
		}

		fmt.Print(command)
		return nil
	},
}
