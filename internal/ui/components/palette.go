// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/onyx-tui/internal/commands"
	"github.com/jeranaias/onyx-tui/internal/ui/styles"
	"github.com/jeranaias/onyx-tui/internal/util"
)

// PaletteMaxRows is the number of commands visible at once.
const PaletteMaxRows = 5

// PaletteMaxWidth caps the palette box width.
const PaletteMaxWidth = 50

// =============================================================================
// COMMAND PALETTE VIEW
// =============================================================================

// PaletteView renders the slash-command menu shown above the input.
type PaletteView struct {
	theme *styles.Theme
}

// NewPaletteView creates a palette view.
func NewPaletteView(theme *styles.Theme) *PaletteView {
	return &PaletteView{theme: theme}
}

// Size returns the box dimensions for n matches within a pane of paneWidth.
func (v *PaletteView) Size(n, paneWidth int) (width, height int) {
	width = PaletteMaxWidth
	if paneWidth-4 < width {
		width = paneWidth - 4
	}
	if width < 10 {
		width = 10
	}
	return width, min(n, PaletteMaxRows) + 2
}

// View renders matches with selected highlighted. The visible rows scroll to
// keep the selection in view. It returns "" when there are no matches.
func (v *PaletteView) View(matches []commands.Command, selected, paneWidth int) string {
	if len(matches) == 0 {
		return ""
	}
	t := v.theme
	width, height := v.Size(len(matches), paneWidth)
	inner := width - 2
	rows := height - 2

	first := 0
	if selected >= rows {
		first = selected - rows + 1
	}

	nameWidth := 0
	for _, c := range matches {
		nameWidth = max(nameWidth, util.StringWidth(c.Name))
	}

	lines := []string{BorderTop(t.BorderFocused, t.Title.Render(" Commands "), width)}
	for i := first; i < first+rows && i < len(matches); i++ {
		c := matches[i]
		prefix := "  "
		if i == selected {
			prefix = "▶ "
		}
		row := prefix + util.PadRight(c.Name, nameWidth) + "  " + c.Description
		row = util.PadRight(util.TruncateWidth(row, inner), inner)

		if i == selected {
			row = t.PaletteItemSelected.Render(row)
		} else {
			row = t.PaletteItem.Render(row)
		}
		lines = append(lines, t.BorderFocused.Render("│")+row+t.BorderFocused.Render("│"))
	}
	lines = append(lines, t.BorderFocused.Render("└"+strings.Repeat("─", inner)+"┘"))
	return strings.Join(lines, "\n")
}
