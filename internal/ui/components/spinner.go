// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/jeranaias/onyx-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER
// =============================================================================

// Spinner is the processing indicator. It borrows the frames of a bubbles
// spinner but is advanced explicitly by the owner's tick rather than by its
// own timer.
type Spinner struct {
	frames []string
	frame  int
	theme  *styles.Theme
}

// NewSpinner creates a spinner with the MiniDot frames.
func NewSpinner(theme *styles.Theme) *Spinner {
	return &Spinner{frames: spinner.MiniDot.Frames, theme: theme}
}

// Advance moves to the next frame.
func (s *Spinner) Advance() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// Frame returns the current frame glyph.
func (s *Spinner) Frame() string {
	return s.frames[s.frame]
}

// View renders the frame with the processing label.
func (s *Spinner) View() string {
	return " " + s.theme.Spinner.Render(s.Frame()) + s.theme.HelpText.Render(" Processing... ")
}
