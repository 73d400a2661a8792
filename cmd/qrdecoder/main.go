// SPDX-License-Identifier: MPL-2.0

// Command qrdecoder installs the offline QR decoder as a macOS Quick Action.
//
// It provisions a Python virtual environment for the decoder script, stages
// an Automator workflow bundle from the packaged template, bakes the
// machine-specific command text into the bundle's document, and installs the
// result into the per-user Services directory.
package main

func main() {
	Execute()
}
