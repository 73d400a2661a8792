// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"mvdan.cc/sh/v3/syntax"
)

// CommandSpec describes the command text baked into the workflow bundle.
// Rendering is a pure function of the spec, so two renders with the same
// project path produce identical text.
type CommandSpec struct {
	// ProjectDir is the absolute project root embedded into the command.
	ProjectDir string
	// VenvDir is the virtual environment directory, relative to ProjectDir.
	VenvDir string
	// EntryPoint is the decoder script, relative to ProjectDir.
	EntryPoint string
	// Shell is the absolute shell path used for the shebang line.
	Shell string
}

// commandTemplate is the blueprint for the embedded command: a shebang, a
// strict-mode directive, a config section defining the project root, and a
// logic section that activates the virtual environment, runs the decoder with
// all forwarded arguments plus --copy, and dispatches a desktop notification
// keyed off the exit status. The trailing sleep lets the notification render
// before the invoking process tears down.
const commandTemplate = `#!{{ .Shell }}
set -euo pipefail

# --- config ---
PROJECT_DIR="{{ .ProjectDir }}"
VENV_DIR="$PROJECT_DIR/{{ .VenvDir }}"
DECODER="$PROJECT_DIR/{{ .EntryPoint }}"

# --- logic ---
source "$VENV_DIR/bin/activate"
status=0
"$VENV_DIR/bin/python3" "$DECODER" "$@" --copy || status=$?
if [ "$status" -eq {{ .SuccessStatus }} ]; then
	osascript -e 'display notification "{{ .SuccessMessage }}" with title "{{ .Title }}"'
elif [ "$status" -eq {{ .NoCodeStatus }} ]; then
	osascript -e 'display notification "{{ .NoCodeMessage }}" with title "{{ .Title }}"'
else
	osascript -e "display notification \"{{ .ErrorMessage }}\" with title \"{{ .Title }}\""
fi
sleep 1
`

var commandTmpl = template.Must(template.New("command").Parse(commandTemplate))

// Validate checks the spec for correctness.
func (s CommandSpec) Validate() error {
	if !filepath.IsAbs(s.ProjectDir) {
		return fmt.Errorf("project dir %q must be absolute", s.ProjectDir)
	}
	if !filepath.IsAbs(s.Shell) {
		return fmt.Errorf("shell %q must be absolute", s.Shell)
	}
	if s.VenvDir == "" || s.EntryPoint == "" {
		return fmt.Errorf("venv dir and entry point must be set")
	}
	return nil
}

// Render produces the command text and verifies it is still valid shell after
// substitution. Paths containing characters that would break out of the
// double-quoted assignments are rejected by the syntax check.
func (s CommandSpec) Render() (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	data := struct {
		CommandSpec
		Title          string
		SuccessStatus  ExitCode
		SuccessMessage string
		NoCodeStatus   ExitCode
		NoCodeMessage  string
		ErrorMessage   string
	}{
		CommandSpec:    s,
		Title:          NotifyTitle,
		SuccessStatus:  ExitSuccess,
		SuccessMessage: NotificationFor(ExitSuccess).Message,
		NoCodeStatus:   ExitNoCode,
		NoCodeMessage:  NotificationFor(ExitNoCode).Message,
		ErrorMessage:   fmt.Sprintf(errorMessageFormat, "$status"),
	}

	var buf bytes.Buffer
	if err := commandTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render command text: %w", err)
	}

	text := buf.String()
	if _, err := syntax.NewParser().Parse(strings.NewReader(text), "command"); err != nil {
		return "", fmt.Errorf("rendered command text is not valid shell: %w", err)
	}

	return text, nil
}
