// SPDX-License-Identifier: MPL-2.0

// Package notify sends desktop notifications. The installer emits exactly one
// notification on successful installation; everything else goes to the console.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/gen2brain/beeep"
)

// Notifier sends a desktop notification with a title and message.
type Notifier interface {
	Notify(title, message string) error
}

type (
	// Desktop sends notifications through the platform notification center.
	Desktop struct{}

	// Nop discards notifications. Used in tests and dry runs.
	Nop struct{}
)

// NewDesktop creates a Desktop notifier.
func NewDesktop() *Desktop {
	return &Desktop{}
}

// Notify sends a desktop notification. On macOS, a failing beeep call falls
// back to osascript so the notification still shows on stock systems.
func (d *Desktop) Notify(title, message string) error {
	err := beeep.Notify(title, message, "")
	if err == nil {
		return nil
	}

	if runtime.GOOS == "darwin" {
		script := fmt.Sprintf("display notification %q with title %q", message, title)
		if execErr := exec.Command("osascript", "-e", script).Run(); execErr == nil {
			return nil
		}
	}

	return fmt.Errorf("failed to send notification: %w", err)
}

// Notify discards the notification.
func (Nop) Notify(string, string) error { return nil }
