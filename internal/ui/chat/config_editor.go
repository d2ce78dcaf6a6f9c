// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/onyx-tui/internal/config"
	"github.com/jeranaias/onyx-tui/internal/textedit"
	"github.com/jeranaias/onyx-tui/internal/ui/components"
	"github.com/jeranaias/onyx-tui/internal/ui/scroll"
)

// =============================================================================
// CONFIG EDITOR STATE
// =============================================================================

// Config editor dialog bounds.
const (
	editorMaxWidth  = 90
	editorMaxHeight = 30

	// rows used by the dialog border and the footer
	editorChromeRows = 4
)

// configEditor edits a draft copy of the configuration. The draft only
// replaces the live config on Ctrl+S.
type configEditor struct {
	draft    *config.Config
	fields   []config.Field
	selected int

	editing   bool
	buffer    *textedit.Buffer
	enumIndex int
	errText   string

	scroll *scroll.Manager
}

func newConfigEditor(cfg *config.Config) *configEditor {
	e := &configEditor{
		draft:  cfg.Clone(),
		fields: config.Fields(),
		scroll: scroll.New(),
	}
	e.scroll.Home()
	return e
}

func (e *configEditor) field() config.Field {
	return e.fields[e.selected]
}

// beginEdit opens the selected field for editing.
func (e *configEditor) beginEdit() {
	f := e.field()
	value, _ := e.draft.GetField(f.ID)
	e.editing = true
	e.errText = ""
	if f.Type == config.FieldEnum {
		e.enumIndex = 0
		for i, v := range f.EnumValues {
			if v == value {
				e.enumIndex = i
			}
		}
		return
	}
	e.buffer = textedit.NewBufferFrom(value)
}

// commit stores the edited value in the draft. An invalid value keeps the
// field open with the validation message.
func (e *configEditor) commit() error {
	f := e.field()
	value := ""
	if f.Type == config.FieldEnum {
		value = f.EnumValues[e.enumIndex]
	} else {
		value = e.buffer.Text()
	}
	if f.ID == "code_theme" && !components.KnownCodeTheme(value) {
		err := fmt.Errorf("unknown code theme %q", value)
		e.errText = err.Error()
		return err
	}
	if err := e.draft.SetField(f.ID, value); err != nil {
		e.errText = err.Error()
		return err
	}
	e.cancelEdit()
	return nil
}

func (e *configEditor) cancelEdit() {
	e.editing = false
	e.buffer = nil
	e.errText = ""
}

// lines renders the field list and returns the line of the selected field.
func (e *configEditor) lines(m *Model) ([]string, int) {
	var out []string
	selectedLine := 0
	section := ""
	for i, f := range e.fields {
		if f.Section != section {
			if section != "" {
				out = append(out, "")
			}
			section = f.Section
			out = append(out, components.SectionHeader(m.theme, section))
		}

		selected := i == e.selected
		editing := selected && e.editing
		value := e.draft.DisplayField(f.ID)
		if editing && f.Type != config.FieldEnum {
			value = components.EditingValue(e.buffer)
		}
		if selected {
			selectedLine = len(out)
		}
		out = append(out, components.FieldRow(m.theme, f.Label, value, selected, editing))

		if selected {
			hint := f.Hint
			if e.errText != "" {
				hint = e.errText
			}
			out = append(out, components.FieldHint(m.theme, hint))
		}
	}
	return out, selectedLine
}

// =============================================================================
// MODEL INTEGRATION
// =============================================================================

func (m *Model) openEditor() {
	m.editor = newConfigEditor(m.cfg)
	m.palette.Hide()
	m.logger.Debug("config editor opened")
}

func (m *Model) closeEditor() {
	m.editor = nil
}

// editorSize returns the dialog size for the current window.
func (m Model) editorSize() (width, height int) {
	return min(editorMaxWidth, m.width), min(editorMaxHeight, m.height)
}

// handleEditorKey applies one key event while the editor is open.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.editor
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	if e.editing {
		m.handleFieldEditKey(msg)
		return m, nil
	}

	_, height := m.editorSize()
	viewport := max(1, height-editorChromeRows)

	switch {
	case key.Matches(msg, m.editorKeys.Close):
		m.closeEditor()
	case key.Matches(msg, m.editorKeys.Up):
		if e.selected > 0 {
			e.selected--
		}
		m.revealSelection(viewport)
	case key.Matches(msg, m.editorKeys.Down):
		if e.selected < len(e.fields)-1 {
			e.selected++
		}
		m.revealSelection(viewport)
	case key.Matches(msg, m.editorKeys.PageUp):
		e.scroll.PageUp()
	case key.Matches(msg, m.editorKeys.PageDown):
		e.scroll.PageDown()
	case key.Matches(msg, m.editorKeys.ScrollUp):
		e.scroll.LineUp(1)
	case key.Matches(msg, m.editorKeys.ScrollDown):
		e.scroll.LineDown(1)
	case key.Matches(msg, m.editorKeys.Top):
		e.selected = 0
		e.scroll.Home()
	case key.Matches(msg, m.editorKeys.Edit):
		e.beginEdit()
	case key.Matches(msg, m.editorKeys.Save):
		return m.saveEditor()
	}
	return m, nil
}

// handleFieldEditKey edits the selected field.
func (m *Model) handleFieldEditKey(msg tea.KeyMsg) {
	e := m.editor
	enum := e.field().Type == config.FieldEnum

	switch {
	case key.Matches(msg, m.editorKeys.Edit):
		if err := e.commit(); err != nil {
			m.logger.Debug("field rejected", "field", e.field().ID, "err", err)
		}
	case key.Matches(msg, m.editorKeys.Close):
		e.cancelEdit()
	case enum && key.Matches(msg, m.editorKeys.Up):
		if e.enumIndex > 0 {
			e.enumIndex--
		}
	case enum && key.Matches(msg, m.editorKeys.Down):
		if e.enumIndex < len(e.field().EnumValues)-1 {
			e.enumIndex++
		}
	case enum:
	case key.Matches(msg, m.keys.Left):
		e.buffer.MoveLeft(false)
	case key.Matches(msg, m.keys.Right):
		e.buffer.MoveRight(false)
	case key.Matches(msg, m.keys.Backspace):
		e.buffer.DeleteBefore()
	case key.Matches(msg, m.keys.Delete):
		e.buffer.DeleteAfter()
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		runes := msg.Runes
		if len(runes) == 0 {
			runes = []rune{' '}
		}
		e.buffer.InsertString(string(runes))
	}
}

// revealSelection scrolls the field list so the selected row is visible.
func (m *Model) revealSelection(viewport int) {
	lines, line := m.editor.lines(m)
	// Keep the hint under the selected row in view too.
	m.editor.scroll.EnsureVisible(line+1, viewport, len(lines))
	m.editor.scroll.EnsureVisible(line, viewport, len(lines))
}

// saveEditor writes the draft to disk and makes it the live config.
func (m Model) saveEditor() (tea.Model, tea.Cmd) {
	draft := m.editor.draft
	if err := validateDraft(draft); err != nil {
		m.editor.errText = err.Error()
		return m, nil
	}
	if err := m.saveConfig(draft); err != nil {
		m.logger.Error("save config", "err", err)
		m.editor.errText = "Save failed: " + err.Error()
		return m, nil
	}
	m.logger.Info("config saved", "provider", draft.ActiveProvider)

	m.applyConfig(draft.Clone())
	m.notification = "Configuration saved!"
	m.notificationID++
	return m, notificationCmd(m.notificationID)
}

// validateDraft checks the draft. A missing API key does not block saving.
func validateDraft(c *config.Config) error {
	err := c.Validate()
	var errs config.ValidateErrors
	if !errors.As(err, &errs) {
		return err
	}
	var rest config.ValidateErrors
	for _, e := range errs {
		if !strings.HasSuffix(e.Field, ".api_key") {
			rest = append(rest, e)
		}
	}
	if len(rest) == 0 {
		return nil
	}
	return rest
}
