// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/onyx-tui/internal/textedit"
)

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey applies one key event in chat mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Clear):
		m.clearChat()
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		m.buffer.SelectAll()

	case key.Matches(msg, m.keys.Undo):
		m.undoEdit()

	case key.Matches(msg, m.keys.EOF):
		if m.buffer.IsEmpty() {
			return m.quit()
		}
		m.edit(true, m.buffer.Clear)

	case key.Matches(msg, m.keys.Up):
		if m.palette.Visible() {
			m.palette.Up()
		} else {
			m.scroll.LineUp(1)
		}

	case key.Matches(msg, m.keys.Down):
		if m.palette.Visible() {
			m.palette.Down()
		} else {
			m.scroll.LineDown(1)
		}

	case key.Matches(msg, m.keys.PageUp):
		m.scroll.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.scroll.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.scroll.Home()
	case key.Matches(msg, m.keys.End):
		m.scroll.End()

	case key.Matches(msg, m.keys.Backspace):
		m.edit(true, m.buffer.DeleteBefore)
	case key.Matches(msg, m.keys.Delete):
		m.edit(true, m.buffer.DeleteAfter)

	case key.Matches(msg, m.keys.SelectLeft):
		m.buffer.MoveLeft(true)
		m.recomputePalette()
	case key.Matches(msg, m.keys.SelectRight):
		m.buffer.MoveRight(true)
		m.recomputePalette()
	case key.Matches(msg, m.keys.Left):
		m.buffer.MoveLeft(false)
		m.recomputePalette()
	case key.Matches(msg, m.keys.Right):
		m.buffer.MoveRight(false)
		m.recomputePalette()

	case key.Matches(msg, m.keys.Accept):
		if m.palette.Visible() {
			m.undo.Save(m.buffer.Snapshot(), true)
			m.palette.Accept(m.buffer)
		}

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case msg.Paste:
		m.paste(string(msg.Runes))

	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		runes := msg.Runes
		if msg.Type == tea.KeySpace && len(runes) == 0 {
			runes = []rune{' '}
		}
		// Several runes in one event come from a terminal without
		// bracketed paste.
		if len(runes) > 1 {
			m.paste(string(runes))
			break
		}
		for _, r := range runes {
			m.typeRune(r)
		}
	}
	return m, nil
}

// =============================================================================
// BUFFER EDITS
// =============================================================================

// edit records an undo point, applies fn and refreshes the palette.
func (m *Model) edit(force bool, fn func()) {
	m.undo.Save(m.buffer.Snapshot(), force)
	fn()
	m.recomputePalette()
}

// typeRune inserts one typed character. Word boundaries start a new undo
// group, and replacing a selection is always its own undo step.
func (m *Model) typeRune(r rune) {
	m.showWelcome = false
	force := textedit.IsWordBoundary(r) || m.buffer.HasSelection()
	m.edit(force, func() { m.buffer.Insert(r) })
}

// paste inserts NFC-normalized text as a single undo step.
func (m *Model) paste(text string) {
	m.showWelcome = false
	text = norm.NFC.String(text)
	m.edit(true, func() { m.buffer.InsertString(text) })
}

// undoEdit restores the previous snapshot. The current state is saved first
// so an edit made within the grouping interval can still be undone.
func (m *Model) undoEdit() {
	m.undo.Save(m.buffer.Snapshot(), true)
	if snap, ok := m.undo.Undo(); ok {
		m.buffer.Restore(snap)
		m.recomputePalette()
	}
}

func (m *Model) recomputePalette() {
	m.palette.Recompute(m.buffer.BeforeCursor())
}

// resetInput empties the buffer, the undo history and the palette.
func (m *Model) resetInput() string {
	text := m.buffer.Take()
	m.undo.Clear()
	m.palette.Hide()
	return text
}
