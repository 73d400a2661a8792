// SPDX-License-Identifier: MPL-2.0

package workflow

import (
	"fmt"
	"strconv"
)

type (
	// ExitCode represents the decoder's process exit status.
	// The zero value (0) means a successful decode.
	ExitCode int

	// Notification pairs a title with a message for the desktop feedback the
	// wrapped command shows after each decoder run.
	Notification struct {
		Title   string
		Message string
	}
)

const (
	// ExitSuccess means the decoder found a code and copied it to the clipboard.
	ExitSuccess ExitCode = 0
	// ExitNoCode is part of the decoder contract: the run was valid but no
	// code was detected in the input.
	ExitNoCode ExitCode = 4
)

// NotifyTitle is the title of every decoder feedback notification.
const NotifyTitle = "QR Decoder"

const (
	successMessage = "Decoded, copied to clipboard"
	noCodeMessage  = "No QR code found"
	// errorMessageFormat embeds either a literal exit status (Go side) or the
	// shell's $status variable (command text side).
	errorMessageFormat = "Decoder failed (status %s)"
)

// IsSuccess returns true if the exit code indicates a successful decode.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// IsNoCode returns true if the exit code means "valid run, no code detected".
func (c ExitCode) IsNoCode() bool { return c == ExitNoCode }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// NotificationFor returns the desktop notification shown for a decoder exit
// status. The same messages are baked into the rendered command text, so this
// mapping is the single source of truth for both sides.
func NotificationFor(code ExitCode) Notification {
	switch {
	case code.IsSuccess():
		return Notification{Title: NotifyTitle, Message: successMessage}
	case code.IsNoCode():
		return Notification{Title: NotifyTitle, Message: noCodeMessage}
	default:
		return Notification{Title: NotifyTitle, Message: fmt.Sprintf(errorMessageFormat, code)}
	}
}
