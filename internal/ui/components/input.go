// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/onyx-tui/internal/textedit"
	"github.com/jeranaias/onyx-tui/internal/ui/cursor"
	"github.com/jeranaias/onyx-tui/internal/ui/styles"
)

// InputHeight is the number of rows the input box occupies.
const InputHeight = 3

// Placeholder is shown in an empty, unfocused input.
const Placeholder = "Type your message here..."

// =============================================================================
// INPUT BOX COMPONENT
// =============================================================================

// InputBox renders the single-line chat input inside a titled border.
type InputBox struct {
	Width int

	// Focused selects the active colors and shows the cursor
	Focused bool

	// Processing replaces the key hints with the spinner
	Processing bool

	theme *styles.Theme
}

// NewInputBox creates an input box.
func NewInputBox(theme *styles.Theme) *InputBox {
	return &InputBox{Width: 80, Focused: true, theme: theme}
}

// InnerWidth returns the columns available for text.
func (b *InputBox) InnerWidth() int {
	if w := b.Width - 4; w > 1 {
		return w
	}
	return 1
}

// View renders the box for buf. cur and spin may be nil.
func (b *InputBox) View(buf *textedit.Buffer, cur *cursor.TerminalCursor, spin *Spinner) string {
	t := b.theme
	border := t.Border
	if b.Focused {
		border = t.BorderFocused
	}

	top := BorderTop(border, t.Title.Render(" Input "), b.Width)

	var bottomTitle string
	if b.Processing && spin != nil {
		bottomTitle = spin.View()
	} else {
		bottomTitle = b.hints()
	}
	bottom := BorderBottom(border, bottomTitle, b.Width)

	content := fitWidth(b.content(buf, cur), b.InnerWidth())
	middle := border.Render("│") + " " + content + " " + border.Render("│")

	return strings.Join([]string{top, middle, bottom}, "\n")
}

func (b *InputBox) hints() string {
	t := b.theme
	sep := t.Border.Render("• ")
	return t.KeyHint.Render(" [Enter] ") + t.HelpText.Render("send ") + sep +
		t.KeyHint.Render("[Ctrl+L] ") + t.HelpText.Render("clear ") + sep +
		t.KeyHint.Render("[Ctrl+C] ") + t.HelpText.Render("quit ") +
		t.Border.Render(" │ ") + t.HelpText.Italic(true).Render("Tip: ") +
		t.KeyHint.Bold(true).Render("/") + t.HelpText.Italic(true).Render(" for commands ")
}

// content renders the visible part of the text with the selection and cursor.
func (b *InputBox) content(buf *textedit.Buffer, cur *cursor.TerminalCursor) string {
	t := b.theme
	text := buf.Text()
	if text == "" && !b.Focused {
		return t.HelpText.Render(Placeholder)
	}

	textStyle := t.InputInactive
	if b.Focused {
		textStyle = t.InputActive
	}

	runes := []rune(text)
	pos := buf.Cursor()
	selStart, selEnd, hasSel := buf.Selection()
	start := windowStart(runes, pos, b.InnerWidth()-1)

	style := cursor.StyleLineBlinking
	if cur != nil {
		style = cur.Style()
	}
	showCursor := b.Focused && cur != nil
	block := style == cursor.StyleBlock || style == cursor.StyleBlockBlinking

	var sb strings.Builder
	for i := start; i <= len(runes); i++ {
		atCursor := showCursor && i == pos
		if atCursor && !block {
			sb.WriteString(t.Cursor.Render(cur.Glyph()))
		}
		if i == len(runes) {
			if atCursor && block {
				sb.WriteString(t.Cursor.Render(cur.Glyph()))
			}
			break
		}

		ch := string(runes[i])
		var s lipgloss.Style
		switch {
		case atCursor && block && cur.Visible():
			s = textStyle.Reverse(true)
		case hasSel && i >= selStart && i < selEnd:
			s = t.Selection
		default:
			s = textStyle
		}
		sb.WriteString(s.Render(ch))
	}
	return sb.String()
}

// windowStart returns the first rune to draw so the cursor column stays
// within width.
func windowStart(runes []rune, pos, width int) int {
	if width < 1 {
		width = 1
	}
	start := pos
	used := 0
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}
	if cursor.Position(0, string(runes), pos) < width {
		return 0
	}
	return start
}

// =============================================================================
// BORDERS WITH TITLES
// =============================================================================

// BorderTop renders "┌" + title + "─…─" + "┐" at width columns.
func BorderTop(border lipgloss.Style, title string, width int) string {
	return titledRule(border, "┌", title, "┐", width)
}

// BorderBottom renders "└" + title + "─…─" + "┘" at width columns.
func BorderBottom(border lipgloss.Style, title string, width int) string {
	return titledRule(border, "└", title, "┘", width)
}

func titledRule(border lipgloss.Style, left, title, right string, width int) string {
	if width < 2 {
		width = 2
	}
	avail := width - 2
	if visibleWidth(title) > avail {
		title = fitWidth(title, avail)
	}
	fill := avail - visibleWidth(title)
	return border.Render(left) + title + border.Render(horizontalRule("─", fill)+right)
}
