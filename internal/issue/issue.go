// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	InterpreterNotFoundId Id = iota + 1
	TemplateNotFoundId
	DecoderNotFoundId
	DependencyInstallFailedId
	DocumentMalformedId
)

type MarkdownMsg string

type Issue struct {
	id    Id          // ID used to lookup the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	interpreterNotFoundIssue = &Issue{
		id: InterpreterNotFoundId,
		mdMsg: `
# No Python interpreter found!

The decoder runs inside a Python virtual environment, but no suitable
interpreter was found on your PATH.

## Things you can try:
- Install Python 3:
~~~
$ brew install python3
~~~

- Or add your interpreter to the candidate list in the config file:
~~~toml
interpreter_candidates = ["/opt/homebrew/bin/python3"]
~~~`,
	}

	templateNotFoundIssue = &Issue{
		id: TemplateNotFoundId,
		mdMsg: `
# Workflow template not found!

The Automator workflow template bundle is missing from the project directory.

## Expected location:
~~~
<project root>/templates/Decode QR Code.workflow
~~~

## Things you can try:
- Check that the project checkout is complete
- Point the installer at the right project root:
~~~
$ qrdecoder --project-root /path/to/qr-local-decoder
~~~

- Or override the template path in the config file:
~~~toml
template_dir = "my-template.workflow"
~~~`,
	}

	decoderNotFoundIssue = &Issue{
		id: DecoderNotFoundId,
		mdMsg: `
# Decoder script not found!

The Quick Action wraps the decoder script, but it is missing from the
project directory.

## Expected location:
~~~
<project root>/qr_local_decoder.py
~~~

## Things you can try:
- Check that the project checkout is complete
- Override the entry point in the config file:
~~~toml
entry_point = "scripts/qr_local_decoder.py"
~~~`,
	}

	dependencyInstallFailedIssue = &Issue{
		id: DependencyInstallFailedId,
		mdMsg: `
# Dependency installation failed!

pip could not install the decoder's dependencies into the virtual environment.

## Common causes:
- No network access (pip downloads packages on first run)
- A corrupted virtual environment

## Things you can try:
- Re-run with verbose mode to see pip's output:
~~~
$ qrdecoder --verbose
~~~

- Remove the virtual environment and re-run (it is recreated from scratch):
~~~
$ rm -rf .venv && qrdecoder
~~~`,
	}

	documentMalformedIssue = &Issue{
		id: DocumentMalformedId,
		mdMsg: `
# Workflow document is malformed!

The template bundle's embedded document could not be parsed, or it contains
no shell-script action to patch.

## Expected structure:
- A property list with an ` + "`actions`" + ` array
- One action whose parameters carry a ` + "`COMMAND_STRING`" + ` entry
  (a "Run Shell Script" action)

## Things you can try:
- Restore the template bundle from a clean checkout
- Open the template in Automator and confirm it contains a single
  "Run Shell Script" action`,
	}
)

var registry = map[Id]*Issue{
	InterpreterNotFoundId:     interpreterNotFoundIssue,
	TemplateNotFoundId:        templateNotFoundIssue,
	DecoderNotFoundId:         decoderNotFoundIssue,
	DependencyInstallFailedId: dependencyInstallFailedIssue,
	DocumentMalformedId:       documentMalformedIssue,
}

// Get returns the Issue registered for the given Id, or nil if none exists.
func Get(id Id) *Issue {
	return registry[id]
}

// Ids returns all registered issue Ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(registry)
	slices.Sort(ids)
	return ids
}
