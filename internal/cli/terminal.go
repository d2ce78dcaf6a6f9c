// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// ErrNotTerminal is returned when onyx is started without a terminal.
var ErrNotTerminal = errors.New("onyx must be run in an interactive terminal")

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RequireTerminal returns ErrNotTerminal unless stdin and stdout are both
// terminals.
func RequireTerminal() error {
	if !IsTTY() || !IsStdoutTTY() {
		return ErrNotTerminal
	}
	return nil
}
