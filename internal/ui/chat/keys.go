// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the chat screen.
type KeyMap struct {
	Quit      key.Binding
	Clear     key.Binding
	SelectAll key.Binding
	Undo      key.Binding
	EOF       key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Backspace   key.Binding
	Delete      key.Binding
	Left        key.Binding
	Right       key.Binding
	SelectLeft  key.Binding
	SelectRight key.Binding

	Accept key.Binding
	Submit key.Binding
}

// DefaultKeyMap returns the default chat bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "clear chat"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("Ctrl+A", "select all"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("Ctrl+Z", "undo"),
		),
		EOF: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+D", "clear input / quit when empty"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "jump to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("End", "jump to bottom"),
		),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
		Delete:    key.NewBinding(key.WithKeys("delete")),
		Left:      key.NewBinding(key.WithKeys("left")),
		Right:     key.NewBinding(key.WithKeys("right")),
		SelectLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("Shift+←", "extend selection"),
		),
		SelectRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("Shift+→", "extend selection"),
		),
		Accept: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete command"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
	}
}

// =============================================================================
// CONFIG EDITOR KEY MAP
// =============================================================================

// EditorKeyMap defines the bindings of the configuration editor.
type EditorKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Edit       key.Binding
	Save       key.Binding
	Close      key.Binding
}

// DefaultEditorKeyMap returns the default config editor bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous field")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next field")),
		ScrollUp:   key.NewBinding(key.WithKeys("ctrl+up")),
		ScrollDown: key.NewBinding(key.WithKeys("ctrl+down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "scroll up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "scroll down")),
		Top:        key.NewBinding(key.WithKeys("home"), key.WithHelp("Home", "top")),
		Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "edit / save field")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("Ctrl+S", "save")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "cancel / close")),
	}
}
