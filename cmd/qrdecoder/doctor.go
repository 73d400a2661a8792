// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/superbereza/qr-local-decoder/internal/issue"
	"github.com/superbereza/qr-local-decoder/internal/notify"
	"github.com/superbereza/qr-local-decoder/internal/provision"
	"github.com/superbereza/qr-local-decoder/internal/workflow"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check prerequisites without changing anything",
	Long: `Check that everything the installer needs is in place: a Python
interpreter, the workflow template bundle, the decoder script, and the
Services directory. Nothing is written.`,
	RunE: runDoctor,
}

// doctorCheck is a single prerequisite probe. issueId is rendered as a
// fix-it card when the probe fails and an Issue is registered for it.
type doctorCheck struct {
	name     string
	issueId  issue.Id
	optional bool
	probe    func() (detail string, err error)
}

func runDoctor(cmd *cobra.Command, args []string) error {
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
	inst := workflow.NewInstaller(root, cfg, newLogger("install"), notify.Nop{})

	checks := []doctorCheck{
		{
			name:    "Python interpreter",
			issueId: issue.InterpreterNotFoundId,
			probe:   prov.LocateInterpreter,
		},
		{
			name:    "Workflow template",
			issueId: issue.TemplateNotFoundId,
			probe: func() (string, error) {
				path := inst.TemplatePath()
				if !workflow.IsBundle(path) {
					return "", fmt.Errorf("not a workflow bundle: %s", path)
				}
				if _, statErr := os.Stat(path); statErr != nil {
					return "", statErr
				}
				return path, nil
			},
		},
		{
			name:    "Workflow document",
			issueId: issue.DocumentMalformedId,
			probe: func() (string, error) {
				path := workflow.DocumentPath(inst.TemplatePath())
				if _, statErr := os.Stat(path); statErr != nil {
					return "", statErr
				}
				return path, nil
			},
		},
		{
			name:    "Decoder script",
			issueId: issue.DecoderNotFoundId,
			probe: func() (string, error) {
				path := inst.EntryPointPath()
				if _, statErr := os.Stat(path); statErr != nil {
					return "", statErr
				}
				return path, nil
			},
		},
		{
			name:     "Virtual environment",
			optional: true,
			probe: func() (string, error) {
				path := prov.VenvPath()
				info, statErr := os.Stat(path)
				if statErr != nil || !info.IsDir() {
					return "", fmt.Errorf("absent, will be created on install: %s", path)
				}
				return path, nil
			},
		},
		{
			name:     "Dependency manifest",
			optional: true,
			probe: func() (string, error) {
				path := prov.RequirementsPath()
				if _, statErr := os.Stat(path); statErr != nil {
					return "", statErr
				}
				return path, nil
			},
		},
		{
			name: "Services directory",
			probe: func() (string, error) {
				return inst.ServicesDir()
			},
		},
	}

	failed := false
	for _, check := range checks {
		detail, probeErr := check.probe()
		switch {
		case probeErr == nil:
			fmt.Println(SuccessStyle.Render("✓ ") + check.name + VerboseStyle.Render("  "+detail))
		case check.optional:
			fmt.Println(WarningStyle.Render("! ") + check.name + SubtitleStyle.Render("  "+probeErr.Error()))
		default:
			failed = true
			fmt.Println(ErrorStyle.Render("✗ ") + check.name)
			printIssue(check.issueId)
		}
	}

	if failed {
		return NewExitError(1, errors.New("doctor found problems"))
	}
	fmt.Println()
	fmt.Println(SuccessStyle.Render("All checks passed.") + SubtitleStyle.Render(" Run qrdecoder to install."))
	return nil
}

// printIssue renders the registered fix-it card for the given Id, falling
// back to the raw markdown when glamour rendering fails.
func printIssue(id issue.Id) {
	iss := issue.Get(id)
	if iss == nil {
		return
	}
	rendered, err := iss.Render("dark")
	if err != nil {
		fmt.Println(string(iss.MarkdownMsg()))
		return
	}
	fmt.Println(rendered)
}
