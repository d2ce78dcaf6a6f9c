// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/onyx-tui/internal/textedit"
	"github.com/jeranaias/onyx-tui/internal/ui/styles"
	"github.com/jeranaias/onyx-tui/internal/util"
)

// FieldLabelWidth is the column width of config field labels.
const FieldLabelWidth = 22

// Footer hints of the config editor.
const (
	EditorHintsBrowse = "[↑/↓] Navigate  [PgUp/PgDn] Scroll  [Home] Top  [Enter] Edit  [Ctrl+S] Save  [Esc] Close"
	EditorHintsEdit   = "[Enter] Save  [Esc] Cancel  [←/→] Move cursor"
)

// =============================================================================
// DIALOG FRAME
// =============================================================================

// Dialog renders a bordered box with a centered title. body is padded or
// clipped to height-2 rows of width-4 columns.
func Dialog(t *styles.Theme, title string, body []string, width, height int) string {
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	rows := height - 2
	if rows < 0 {
		rows = 0
	}

	styledTitle := t.Title.Render(title)
	left := Center(width-2, visibleWidth(styledTitle))
	top := t.BorderFocused.Render("┌"+horizontalRule("─", left)) + styledTitle
	top += t.BorderFocused.Render(horizontalRule("─", width-2-left-visibleWidth(styledTitle)) + "┐")

	lines := []string{top}
	side := t.BorderFocused.Render("│")
	for i := 0; i < rows; i++ {
		row := ""
		if i < len(body) {
			row = body[i]
		}
		lines = append(lines, side+" "+fitWidth(row, inner)+" "+side)
	}
	lines = append(lines, t.BorderFocused.Render("└"+horizontalRule("─", width-2)+"┘"))
	return strings.Join(lines, "\n")
}

// CenterLine pads s on the left so it is centered in width.
func CenterLine(s string, width int) string {
	return strings.Repeat(" ", Center(width, visibleWidth(s))) + s
}

// =============================================================================
// CONFIG FORM PIECES
// =============================================================================

// SectionHeader renders "═══ name ═══".
func SectionHeader(t *styles.Theme, name string) string {
	return t.SectionHeader.Render("═══ " + name + " ═══")
}

// FieldRow renders one config field: a marker for the selected row, the
// padded label and the value.
func FieldRow(t *styles.Theme, label, value string, selected, editing bool) string {
	prefix := "  "
	labelStyle := t.FieldLabel
	valueStyle := t.FieldValue
	if selected {
		prefix = "▶ "
		labelStyle = t.FieldSelected
		valueStyle = t.BorderFocused
	}
	if editing {
		valueStyle = t.FieldEditing
	}
	return labelStyle.Render(prefix+util.PadRight(label, FieldLabelWidth)) + " : " + valueStyle.Render(value)
}

// FieldHint renders the indented hint under the selected field.
func FieldHint(t *styles.Theme, hint string) string {
	return t.FieldHint.Render("    " + hint)
}

// EditingValue renders the text of buf with a block cursor at its position.
func EditingValue(buf *textedit.Buffer) string {
	runes := []rune(buf.Text())
	pos := buf.Cursor()
	return string(runes[:pos]) + "█" + string(runes[pos:])
}

// EnumMenu renders the picker for an enum field.
func EnumMenu(t *styles.Theme, label string, values []string, selected int) string {
	width := 30
	for _, v := range values {
		width = max(width, util.StringWidth(v)+6)
	}
	width = max(width, util.StringWidth(label)+12)

	lines := []string{BorderTop(t.BorderFocused, t.Title.Render(" Select "+label+" "), width)}
	side := t.BorderFocused.Render("│")
	for i, v := range values {
		row := "  " + v
		style := t.FieldValue
		if i == selected {
			row = "▶ " + v
			style = t.FieldSelected
		}
		lines = append(lines, side+style.Render(util.PadRight(row, width-2))+side)
	}
	lines = append(lines, t.BorderFocused.Render("└"+horizontalRule("─", width-2)+"┘"))
	return strings.Join(lines, "\n")
}

// Notification renders the small success box shown after saving.
func Notification(t *styles.Theme, message string) string {
	const width = 40
	body := CenterLine(styles.RenderSuccess(message), width-2)
	lines := []string{
		BorderTop(t.Success, t.Success.Render(" Success "), width),
		t.Success.Render("│") + fitWidth("", width-2) + t.Success.Render("│"),
		t.Success.Render("│") + fitWidth(body, width-2) + t.Success.Render("│"),
		t.Success.Render("│") + fitWidth("", width-2) + t.Success.Render("│"),
		t.Success.Render("└" + horizontalRule("─", width-2) + "┘"),
	}
	return strings.Join(lines, "\n")
}
