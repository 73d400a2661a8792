// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"strings"
	"testing"
)

func TestExitCode_Predicates(t *testing.T) {
	t.Parallel()

	if !ExitSuccess.IsSuccess() {
		t.Error("ExitSuccess.IsSuccess() = false")
	}
	if !ExitNoCode.IsNoCode() {
		t.Error("ExitNoCode.IsNoCode() = false")
	}
	if ExitCode(7).IsSuccess() || ExitCode(7).IsNoCode() {
		t.Error("ExitCode(7) should be neither success nor no-code")
	}
}

func TestNotificationFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		code        ExitCode
		wantMessage string
	}{
		{"success", ExitSuccess, "Decoded, copied to clipboard"},
		{"no code detected", ExitNoCode, "No QR code found"},
		{"generic failure", ExitCode(7), "Decoder failed (status 7)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NotificationFor(tt.code)
			if got.Message != tt.wantMessage {
				t.Errorf("NotificationFor(%d).Message = %q, want %q", tt.code, got.Message, tt.wantMessage)
			}
			if got.Title != NotifyTitle {
				t.Errorf("NotificationFor(%d).Title = %q, want %q", tt.code, got.Title, NotifyTitle)
			}
		})
	}
}

func TestNotificationFor_GenericContainsStatus(t *testing.T) {
	t.Parallel()

	// Any non-zero, non-4 status must surface the numeric status verbatim.
	got := NotificationFor(ExitCode(7))
	if !strings.Contains(got.Message, "7") {
		t.Errorf("generic message %q should contain the literal status", got.Message)
	}
}
