// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"unicode"

	"github.com/jeranaias/onyx-tui/internal/textedit"
)

// =============================================================================
// PALETTE
// =============================================================================

// Palette is the command menu state derived from the word under the cursor.
//
// The selection index is clamped to the match list on every Recompute, so it
// is always a valid index while the palette is visible.
type Palette struct {
	table     *Table
	matches   []Command
	wordStart int
	visible   bool
	selected  int
}

// NewPalette creates a hidden palette over t.
func NewPalette(t *Table) *Palette {
	return &Palette{table: t}
}

// Recompute derives the palette from the text before the cursor.
// Call it after every buffer mutation.
func (p *Palette) Recompute(beforeCursor string) {
	runes := []rune(beforeCursor)
	start := len(runes)
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	word := string(runes[start:])

	wasVisible := p.visible
	p.wordStart = start
	p.matches = nil
	if len(runes) > start && runes[start] == Sigil {
		p.matches = p.table.Filter(word)
	}
	p.visible = len(p.matches) > 0

	switch {
	case !p.visible:
		p.selected = 0
	case !wasVisible:
		p.selected = 0
	case p.selected >= len(p.matches):
		p.selected = len(p.matches) - 1
	}
}

// Visible reports whether the menu should be shown.
func (p *Palette) Visible() bool {
	return p.visible
}

// Matches returns the filtered commands in table order.
func (p *Palette) Matches() []Command {
	return p.matches
}

// Selected returns the index of the highlighted match.
func (p *Palette) Selected() int {
	return p.selected
}

// Up moves the selection up, stopping at the first match.
func (p *Palette) Up() {
	if p.selected > 0 {
		p.selected--
	}
}

// Down moves the selection down, stopping at the last match.
func (p *Palette) Down() {
	if p.selected < len(p.matches)-1 {
		p.selected++
	}
}

// Accept replaces the word before the cursor with the selected command and
// hides the palette. It reports false when the palette is hidden.
func (p *Palette) Accept(buf *textedit.Buffer) bool {
	if !p.visible {
		return false
	}
	cmd := p.matches[p.selected]
	buf.ReplaceRange(p.wordStart, buf.Cursor(), cmd.Name)
	p.Hide()
	return true
}

// Hide closes the palette until the next Recompute.
func (p *Palette) Hide() {
	p.visible = false
	p.matches = nil
	p.selected = 0
}
