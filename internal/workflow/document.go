// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/superbereza/qr-local-decoder/internal/issue"

	"howett.net/plist"
)

const (
	// DocumentName is the workflow's embedded configuration document inside
	// the bundle's Contents directory.
	DocumentName = "document.wflow"

	// paramCommand holds the shell command text of a "Run Shell Script" action.
	// Its presence is also how the target action is recognized: positional
	// order in the actions array is not trusted.
	paramCommand = "COMMAND_STRING"
	// paramShell selects the shell that executes the command text.
	paramShell = "shell"
	// paramInputMethod selects how service input reaches the command.
	paramInputMethod = "inputMethod"
)

const (
	// inputMethodArguments delivers service input as CLI arguments ($@).
	inputMethodArguments uint64 = 1
	// inputMethodStdin would deliver it on standard input; kept for reference,
	// the host OS interprets the integer encoding exactly.
	inputMethodStdin uint64 = 0
)

var (
	// ErrNoActions is returned when the document has no actions array.
	ErrNoActions = errors.New("document has no actions")
	// ErrNoShellAction is returned when no action carries a shell-command parameter.
	ErrNoShellAction = errors.New("document has no shell-script action")
)

// DocumentPath returns the path of the embedded configuration document for a
// given bundle directory.
func DocumentPath(bundlePath string) string {
	return filepath.Join(bundlePath, "Contents", DocumentName)
}

// PatchDocument overwrites the shell-script action's command text, shell, and
// input-passing mode in an already-decoded workflow document. All other keys
// in the document are left untouched.
func PatchDocument(doc map[string]interface{}, command, shell string) error {
	params, err := shellActionParameters(doc)
	if err != nil {
		return err
	}

	params[paramCommand] = command
	params[paramShell] = shell
	params[paramInputMethod] = inputMethodArguments

	return nil
}

// PatchDocumentFile decodes the document at path, patches it, and writes it
// back in XML property-list form.
func PatchDocumentFile(path, command, shell string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return issue.WrapWithContext(err, "read workflow document", path)
	}

	var doc map[string]interface{}
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		return issue.NewErrorContext().
			WithOperation("parse workflow document").
			WithResource(path).
			WithSuggestion("Restore the template bundle from a clean checkout").
			Wrap(err).
			BuildError()
	}

	if err := PatchDocument(doc, command, shell); err != nil {
		return issue.NewErrorContext().
			WithOperation("patch workflow document").
			WithResource(path).
			WithSuggestion("Open the template in Automator and confirm it contains a \"Run Shell Script\" action").
			Wrap(err).
			BuildError()
	}

	out, err := plist.MarshalIndent(doc, plist.XMLFormat, "\t")
	if err != nil {
		return issue.WrapWithContext(err, "encode workflow document", path)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return issue.WrapWithContext(err, "write workflow document", path)
	}

	return nil
}

// shellActionParameters locates the parameter map of the shell-script action.
// The action is recognized by the presence of the command-string parameter,
// not by its position in the actions array: a template that ever gains a
// preceding action must not be silently mispatched.
func shellActionParameters(doc map[string]interface{}) (map[string]interface{}, error) {
	actions, ok := doc["actions"].([]interface{})
	if !ok || len(actions) == 0 {
		return nil, ErrNoActions
	}

	for i, raw := range actions {
		action, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("action %d is not a dictionary", i)
		}
		params := actionParameters(action)
		if params == nil {
			continue
		}
		if _, ok := params[paramCommand]; ok {
			return params, nil
		}
	}

	return nil, ErrNoShellAction
}

// actionParameters extracts an action's parameter map. Automator nests it as
// action.ActionParameters; a flat ActionParameters map is accepted as well.
func actionParameters(action map[string]interface{}) map[string]interface{} {
	if inner, ok := action["action"].(map[string]interface{}); ok {
		if params, ok := inner["ActionParameters"].(map[string]interface{}); ok {
			return params
		}
	}
	if params, ok := action["ActionParameters"].(map[string]interface{}); ok {
		return params
	}
	return nil
}
