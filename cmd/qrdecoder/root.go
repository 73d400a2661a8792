// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/superbereza/qr-local-decoder/internal/config"
	"github.com/superbereza/qr-local-decoder/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// projectRoot is the project directory the installer operates on
	projectRoot string

	// rootCmd represents the base command. Invoked bare, it performs the
	// entire install sequence unconditionally.
	rootCmd = &cobra.Command{
		Use:   "qrdecoder",
		Short: "Install the offline QR decoder Quick Action",
		Long: TitleStyle.Render("qrdecoder") + SubtitleStyle.Render(" - Install the offline QR decoder Quick Action") + `

qrdecoder turns the bundled qr_local_decoder.py script into a macOS
Quick Action: select an image in Finder, run the action, and the decoded
text lands on your clipboard with a desktop notification.

Running qrdecoder without arguments performs the full sequence:
provision the Python virtual environment, stage the workflow template,
bake in this machine's absolute paths, and install the bundle into
~/Library/Services.

` + SubtitleStyle.Render("Examples:") + `
  qrdecoder                 Provision and install in one go
  qrdecoder render          Print the command text that would be embedded
  qrdecoder doctor          Check prerequisites without changing anything
  qrdecoder uninstall       Remove the installed Quick Action`,
		RunE: runInstall,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir)")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", ".", "project directory holding the decoder and template")

	// Add subcommands
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig loads configuration honoring the --config flag, and applies the
// config file's verbose setting when the flag was not given.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return nil, err
	}
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	return cfg, nil
}

// resolveProjectRoot resolves the --project-root flag to an absolute path and
// verifies it is a readable directory.
func resolveProjectRoot() (string, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", issue.NewErrorContext().
			WithOperation("open project root").
			WithResource(abs).
			WithSuggestion("Pass the project directory with --project-root").
			Wrap(err).
			BuildError()
	}
	return abs, nil
}

// newLogger creates a component-scoped logger honoring the verbose flag.
func newLogger(component string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: component,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
