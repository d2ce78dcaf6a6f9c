// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/onyx-tui/internal/config"
	"github.com/jeranaias/onyx-tui/internal/ui/components"
)

// =============================================================================
// LAYOUT
// =============================================================================

const (
	chatTitle   = " Onyx Chat "
	scrollTitle = " Onyx Chat [scrolled, End to follow] "
	editorTitle = " Configuration Editor "

	// Smallest window the layout can draw into.
	minWidth  = 20
	minHeight = components.InputHeight + 4
)

// chatHeight is the height of the bordered transcript area.
func (m Model) chatHeight() int {
	return m.height - components.InputHeight
}

// chatInnerWidth is the transcript text width inside the border.
func (m Model) chatInnerWidth() int {
	return m.width - 4
}

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the chat screen: the transcript box, the input box and any
// overlays (command palette, config editor, notification).
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return "Terminal too small"
	}

	screen := strings.Split(m.renderChatArea(), "\n")
	screen = append(screen, strings.Split(m.renderInput(), "\n")...)

	if !m.EditorOpen() && m.PaletteVisible() {
		screen = m.overlayPalette(screen)
	}
	if m.EditorOpen() {
		screen = m.overlayEditor(screen)
	}
	if m.notification != "" {
		box := components.Notification(m.theme, m.notification)
		screen = overlayCentered(screen, box, m.width, m.height)
	}
	return strings.Join(screen, "\n")
}

// renderChatArea draws the visible window of the transcript.
func (m Model) renderChatArea() string {
	rows := m.chatHeight() - 2
	lines := m.transcript.Lines(m.conversation.Messages, m.showWelcome)

	m.scroll.Update(len(lines), rows)
	start, end := m.scroll.Window(len(lines), rows)
	title := chatTitle
	if !m.scroll.AutoFollow() && len(lines) > rows {
		title = scrollTitle
	}
	return components.Dialog(m.theme, title, lines[start:end], m.width, m.chatHeight())
}

func (m Model) renderInput() string {
	m.input.Width = m.width
	m.input.Focused = !m.EditorOpen()
	m.input.Processing = m.mode == ModeAwaitingReply
	return m.input.View(m.buffer, m.cursor, m.spinner)
}

// =============================================================================
// OVERLAYS
// =============================================================================

// overlayPalette draws the palette just above the input box.
func (m Model) overlayPalette(screen []string) []string {
	matches := m.palette.Matches()
	_, height := m.paletteView.Size(len(matches), m.width)
	box := m.paletteView.View(matches, m.palette.Selected(), m.width)
	y := max(0, m.chatHeight()-height)
	return components.Overlay(screen, box, 2, y)
}

// overlayEditor draws the config editor centered on the screen.
func (m Model) overlayEditor(screen []string) []string {
	e := m.editor
	width, height := m.editorSize()
	viewport := max(1, height-editorChromeRows)

	lines, _ := e.lines(&m)
	e.scroll.Update(len(lines), viewport)
	start, end := e.scroll.Window(len(lines), viewport)

	body := make([]string, 0, viewport+2)
	body = append(body, lines[start:end]...)
	for len(body) < viewport {
		body = append(body, "")
	}
	hints := components.EditorHintsBrowse
	if e.editing {
		hints = components.EditorHintsEdit
	}
	body = append(body, "", components.CenterLine(m.theme.HelpText.Render(hints), width-4))

	dialog := components.Dialog(m.theme, editorTitle, body, width, height)
	screen = overlayCentered(screen, dialog, m.width, m.height)

	if e.editing && e.field().Type == config.FieldEnum {
		f := e.field()
		menu := components.EnumMenu(m.theme, f.Label, f.EnumValues, e.enumIndex)
		screen = overlayCentered(screen, menu, m.width, m.height)
	}
	return screen
}

// overlayCentered places box in the middle of a width x height screen.
func overlayCentered(screen []string, box string, width, height int) []string {
	x := components.Center(width, lipgloss.Width(box))
	y := components.Center(height, lipgloss.Height(box))
	return components.Overlay(screen, box, x, y)
}
