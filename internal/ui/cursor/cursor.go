// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cursor tracks the input cursor's style, blink state and screen
// column.
package cursor

import (
	"time"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// STYLE
// =============================================================================

// Style is the cursor appearance.
type Style int

const (
	StyleBlock Style = iota
	StyleBlockBlinking
	StyleLine
	StyleLineBlinking
)

// ParseStyle maps a config value to a Style. Unknown values give
// StyleLineBlinking.
func ParseStyle(s string) Style {
	switch s {
	case "block":
		return StyleBlock
	case "block_blinking":
		return StyleBlockBlinking
	case "line":
		return StyleLine
	default:
		return StyleLineBlinking
	}
}

// Blinking reports whether the style blinks.
func (s Style) Blinking() bool {
	return s == StyleBlockBlinking || s == StyleLineBlinking
}

// Glyph returns the character drawn for the style.
func (s Style) Glyph() string {
	if s == StyleBlock || s == StyleBlockBlinking {
		return "█"
	}
	return "│"
}

// =============================================================================
// TERMINAL CURSOR
// =============================================================================

// DefaultBlinkInterval is used when no positive interval is configured.
const DefaultBlinkInterval = 500 * time.Millisecond

// TerminalCursor holds the blink state of the input cursor.
//
// A blinking cursor toggles visibility every interval, but stays solid for
// one interval after the last activity so it never vanishes while typing.
type TerminalCursor struct {
	style         Style
	blinkInterval time.Duration
	visible       bool
	lastBlink     time.Time
	lastActivity  time.Time
}

// New creates a visible cursor. now seeds the blink clock.
func New(style Style, interval time.Duration, now time.Time) *TerminalCursor {
	if interval <= 0 {
		interval = DefaultBlinkInterval
	}
	return &TerminalCursor{
		style:         style,
		blinkInterval: interval,
		visible:       true,
		lastBlink:     now,
		lastActivity:  now,
	}
}

// Style returns the cursor style.
func (c *TerminalCursor) Style() Style {
	return c.style
}

// SetStyle changes the style and interval, e.g. after a config reload.
func (c *TerminalCursor) SetStyle(style Style, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultBlinkInterval
	}
	c.style = style
	c.blinkInterval = interval
	c.visible = true
}

// Visible reports whether the cursor should be drawn.
func (c *TerminalCursor) Visible() bool {
	return c.visible
}

// Glyph returns the character to draw, or a space while blinked off.
func (c *TerminalCursor) Glyph() string {
	if !c.visible {
		return " "
	}
	return c.style.Glyph()
}

// OnActivity records input and shows the cursor.
func (c *TerminalCursor) OnActivity(now time.Time) {
	c.lastActivity = now
	c.visible = true
}

// Update advances the blink state to now. It reports whether visibility
// changed.
func (c *TerminalCursor) Update(now time.Time) bool {
	before := c.visible

	switch {
	case !c.style.Blinking():
		c.visible = true
	case now.Sub(c.lastActivity) < c.blinkInterval:
		c.visible = true
		c.lastBlink = now
	case now.Sub(c.lastBlink) >= c.blinkInterval:
		c.visible = !c.visible
		c.lastBlink = now
	}
	return c.visible != before
}

// =============================================================================
// POSITION
// =============================================================================

// Position returns the display column of the cursor: prefixWidth plus the
// width of the first cursor runes of text. cursor is a rune index and is
// clamped to the text.
func Position(prefixWidth int, text string, cursor int) int {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	return prefixWidth + runewidth.StringWidth(string(runes[:cursor]))
}
