// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	// Verify all IDs are unique and sequential
	ids := []Id{
		InterpreterNotFoundId,
		TemplateNotFoundId,
		DecoderNotFoundId,
		DependencyInstallFailedId,
		DocumentMalformedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// Verify IDs start at 1 (iota + 1)
	if InterpreterNotFoundId != 1 {
		t.Errorf("InterpreterNotFoundId = %d, want 1", InterpreterNotFoundId)
	}
}

func TestIssue_Id(t *testing.T) {
	issue := Get(InterpreterNotFoundId)
	if issue == nil {
		t.Fatal("Get(InterpreterNotFoundId) returned nil")
	}

	if issue.Id() != InterpreterNotFoundId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), InterpreterNotFoundId)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(TemplateNotFoundId)
	if issue == nil {
		t.Fatal("Get(TemplateNotFoundId) returned nil")
	}

	msg := issue.MarkdownMsg()
	if msg == "" {
		t.Error("MarkdownMsg() returned empty string")
	}

	if !strings.Contains(string(msg), "Workflow template not found") {
		t.Error("MarkdownMsg() should contain 'Workflow template not found'")
	}
}

func TestGet_Unregistered(t *testing.T) {
	if got := Get(Id(999)); got != nil {
		t.Errorf("Get(999) = %v, want nil", got)
	}
}

func TestIds_AllRegistered(t *testing.T) {
	ids := Ids()
	if len(ids) != len(registry) {
		t.Fatalf("Ids() returned %d ids, want %d", len(ids), len(registry))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("Ids() not sorted: %v", ids)
		}
	}
	for _, id := range ids {
		if Get(id) == nil {
			t.Errorf("Get(%d) = nil for id returned by Ids()", id)
		}
	}
}

func TestIssue_Render(t *testing.T) {
	// Stub the renderer so the test doesn't depend on terminal detection.
	orig := render
	render = func(in, _ string) (string, error) { return in, nil }
	defer func() { render = orig }()

	out, err := Get(DocumentMalformedId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "COMMAND_STRING") {
		t.Error("Render() output should mention COMMAND_STRING")
	}
}
