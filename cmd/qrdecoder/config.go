// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/superbereza/qr-local-decoder/internal/config"

	"github.com/spf13/cobra"
)

// configCmd is the `qrdecoder config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage qrdecoder configuration",
	Long: `Manage qrdecoder configuration.

Configuration is stored in:
  - Linux: ~/.config/qrdecoder/config.toml
  - macOS: ~/Library/Application Support/qrdecoder/config.toml
  - Windows: %APPDATA%\qrdecoder\config.toml

Every key can also be set through the environment with a QRDECODER_
prefix, e.g. QRDECODER_SHELL=/bin/bash.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return NewExitError(1, err)
			}

			fmt.Println(TitleStyle.Render("Current Configuration"))
			fmt.Println()

			path, pathErr := config.DefaultConfigPath()
			if cfgFile != "" {
				path, pathErr = cfgFile, nil
			}
			if pathErr == nil {
				if _, statErr := os.Stat(path); statErr == nil {
					fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), path)
				} else {
					fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
				}
			}
			fmt.Println()

			rendered, err := cfg.Render()
			if err != nil {
				return NewExitError(1, err)
			}
			fmt.Print(rendered)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				var err error
				path, err = config.DefaultConfigPath()
				if err != nil {
					return NewExitError(1, err)
				}
			}

			if err := config.WriteDefault(path); err != nil {
				fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
				return NewExitError(1, err)
			}

			fmt.Println(SuccessStyle.Render("✓") + " Wrote " + CmdStyle.Render(path))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return NewExitError(1, err)
			}
			fmt.Println(path)
			return nil
		},
	})
}
