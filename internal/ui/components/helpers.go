// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/onyx-tui/internal/util"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// plainLines wraps unstyled text to width.
func plainLines(s string, width int) []string {
	return util.WrapWidth(s, width)
}

// stripANSI removes escape sequences from s.
func stripANSI(s string) string {
	return ansi.Strip(s)
}

// visibleWidth returns the display width of a styled string.
func visibleWidth(s string) int {
	return ansi.StringWidth(s)
}

// fitWidth truncates or pads a styled string to exactly width columns.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := visibleWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return ansi.Truncate(s, width, "")
}

// horizontalRule returns n copies of glyph.
func horizontalRule(glyph string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(glyph, n)
}

// =============================================================================
// OVERLAY
// =============================================================================

// Overlay draws the lines of fg over bg with its top-left corner at (x, y).
// Cells of bg outside fg are kept; bg is not modified.
func Overlay(bg []string, fg string, x, y int) []string {
	out := make([]string, len(bg))
	copy(out, bg)
	if x < 0 {
		x = 0
	}

	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(out) {
			continue
		}
		base := out[row]
		w := visibleWidth(line)

		left := ansi.Truncate(base, x, "")
		if pad := x - visibleWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if visibleWidth(base) > x+w {
			right = ansi.TruncateLeft(base, x+w, "")
		}
		out[row] = left + "\x1b[0m" + line + "\x1b[0m" + right
	}
	return out
}

// Center returns the offset that centers size within total.
func Center(total, size int) int {
	if size >= total {
		return 0
	}
	return (total - size) / 2
}
