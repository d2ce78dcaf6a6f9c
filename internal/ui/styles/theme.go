// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// FRAME STYLES
	// ==========================================================================

	Border        lipgloss.Style
	BorderFocused lipgloss.Style
	Title         lipgloss.Style
	HelpText      lipgloss.Style
	KeyHint       lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	Timestamp        lipgloss.Style
	ThinkingLabel    lipgloss.Style
	ThinkingText     lipgloss.Style
	Scrollbar        lipgloss.Style

	// ==========================================================================
	// INPUT STYLES
	// ==========================================================================

	InputActive   lipgloss.Style
	InputInactive lipgloss.Style
	Selection     lipgloss.Style
	Cursor        lipgloss.Style
	Spinner       lipgloss.Style

	// ==========================================================================
	// COMMAND PALETTE STYLES
	// ==========================================================================

	PaletteBox          lipgloss.Style
	PaletteItem         lipgloss.Style
	PaletteItemSelected lipgloss.Style
	PaletteDesc         lipgloss.Style

	// ==========================================================================
	// CONFIG EDITOR STYLES
	// ==========================================================================

	DialogBox     lipgloss.Style
	SectionHeader lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldSelected lipgloss.Style
	FieldValue    lipgloss.Style
	FieldEditing  lipgloss.Style
	FieldHint     lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	Success lipgloss.Style
	Error   lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	return NewThemeFor(termenv.ColorProfile(), termenv.HasDarkBackground())
}

// NewThemeFor creates a theme for an explicit color profile and background.
func NewThemeFor(profile termenv.Profile, dark bool) *Theme {
	t := &Theme{
		IsDark:       dark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Frame
	t.Border = lipgloss.NewStyle().Foreground(Border)
	t.BorderFocused = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	t.Title = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	t.HelpText = lipgloss.NewStyle().Foreground(TextMuted)
	t.KeyHint = lipgloss.NewStyle().Foreground(Green)

	// Transcript
	t.UserMessage = lipgloss.NewStyle().Foreground(Sky)
	t.AssistantMessage = lipgloss.NewStyle().Foreground(Green)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.ThinkingLabel = lipgloss.NewStyle().Foreground(Yellow).Italic(true)
	t.ThinkingText = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.Scrollbar = lipgloss.NewStyle().Foreground(Border)

	// Input
	t.InputActive = lipgloss.NewStyle().Foreground(Lavender)
	t.InputInactive = lipgloss.NewStyle().Foreground(TextMuted)
	t.Selection = lipgloss.NewStyle().Background(SelectionBg).Foreground(TextPrimary)
	t.Cursor = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	t.Spinner = lipgloss.NewStyle().Foreground(Green).Bold(true)

	// Command palette
	t.PaletteBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Lavender).
		Padding(0, 1)

	t.PaletteItem = lipgloss.NewStyle().Foreground(TextPrimary)

	t.PaletteItemSelected = lipgloss.NewStyle().
		Background(Lavender).
		Foreground(TextInverse).
		Bold(true)

	t.PaletteDesc = lipgloss.NewStyle().Foreground(TextMuted)

	// Config editor
	t.DialogBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Lavender).
		Padding(0, 1)

	t.SectionHeader = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	t.FieldLabel = lipgloss.NewStyle().Foreground(TextMuted)
	t.FieldSelected = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	t.FieldValue = lipgloss.NewStyle().Foreground(TextPrimary)
	t.FieldEditing = lipgloss.NewStyle().Foreground(Lavender)
	t.FieldHint = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	// Status
	t.Success = lipgloss.NewStyle().Foreground(Green).Bold(true)
	t.Error = lipgloss.NewStyle().Foreground(Red).Bold(true)
}

// RoleStyle returns the style for a message author.
func (t *Theme) RoleStyle(user bool) lipgloss.Style {
	if user {
		return t.UserMessage
	}
	return t.AssistantMessage
}
