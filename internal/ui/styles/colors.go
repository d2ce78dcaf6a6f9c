// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Lavender - Focused borders, active input, selections
var Lavender = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}

// Sky - User messages
var Sky = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#8AB4F8"}

// Green - Assistant messages, success, key hints
var Green = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"}

// Teal - Titles and section headers
var Teal = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"}

// Yellow - Thinking text
var Yellow = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}

// Red - Errors
var Red = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// Border - Unfocused borders and separators
var Border = lipgloss.AdaptiveColor{Light: "#ACB0BE", Dark: "#585B70"}

// Surface - Overlay backgrounds
var Surface = lipgloss.AdaptiveColor{Light: "#EFF1F5", Dark: "#1E1E2E"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#CDD6F4"}

// TextMuted - Hints, timestamps, inactive input
var TextMuted = lipgloss.AdaptiveColor{Light: "#8C8FA1", Dark: "#7F849C"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#EFF1F5", Dark: "#1E1E2E"}

// SelectionBg - Selected input text
var SelectionBg = lipgloss.AdaptiveColor{Light: "#BCC0CC", Dark: "#45475A"}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet contains the glyphs shown next to status messages.
type StatusIndicatorSet struct {
	Success string
	Error   string
}

// StatusIndicators are shown alongside the status colors.
var StatusIndicators = StatusIndicatorSet{
	Success: "✓",
	Error:   "✗",
}

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().
		Foreground(Green).
		Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().
		Foreground(Red).
		Bold(true).
		Render(StatusIndicators.Error + " " + message)
}
