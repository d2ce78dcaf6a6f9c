// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/jeranaias/onyx-tui/internal/config"
	"github.com/jeranaias/onyx-tui/internal/model"
	"github.com/jeranaias/onyx-tui/internal/ui/styles"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript turns the message list into the lines of the chat pane.
// Finished messages are cached; streaming ones are re-rendered every frame.
type Transcript struct {
	theme      *styles.Theme
	body       BodyRenderer
	formatTime func(time.Time) string
	width      int

	cache map[string]cachedMessage
}

type cachedMessage struct {
	content  string
	thinking string
	width    int
	lines    []string
}

// NewTranscript creates a transcript renderer using display settings.
func NewTranscript(theme *styles.Theme, display config.DisplayConfig) *Transcript {
	t := &Transcript{theme: theme, width: 80}
	t.Configure(display)
	return t
}

// Configure applies display settings and drops the cache.
func (t *Transcript) Configure(display config.DisplayConfig) {
	if display.Markdown {
		t.body = NewMarkdown(display.CodeTheme, t.theme.ColorProfile, t.theme.IsDark)
	} else {
		t.body = CodeRenderer{Theme: display.CodeTheme, Profile: t.theme.ColorProfile}
	}

	layout := display.TimestampFormat
	if layout == "" {
		layout = config.Default().Display.TimestampFormat
	}
	t.formatTime = func(ts time.Time) string { return ts.Local().Format(layout) }
	t.cache = make(map[string]cachedMessage)
}

// SetWidth sets the pane width.
func (t *Transcript) SetWidth(width int) {
	if width < 4 {
		width = 4
	}
	t.width = width
}

// Width returns the pane width.
func (t *Transcript) Width() int {
	return t.width
}

// Lines renders the welcome block (if shown) followed by every message and a
// blank separator line after each.
func (t *Transcript) Lines(msgs []*model.Message, welcome bool) []string {
	var lines []string
	if welcome {
		lines = append(lines, WelcomeLines(t.theme)...)
	}

	live := make(map[string]bool, len(msgs))
	for _, msg := range msgs {
		live[msg.ID] = true
		lines = append(lines, t.message(msg)...)
		lines = append(lines, "")
	}

	for id := range t.cache {
		if !live[id] {
			delete(t.cache, id)
		}
	}
	return lines
}

func (t *Transcript) message(msg *model.Message) []string {
	if c, ok := t.cache[msg.ID]; ok && !msg.IsStreaming &&
		c.width == t.width && c.content == msg.Content && c.thinking == msg.Thinking {
		return c.lines
	}

	box := NewMessageBox(msg, t.theme)
	box.Width = t.width
	box.FormatTime = t.formatTime
	box.Body = t.body
	lines := box.Lines()

	if !msg.IsStreaming {
		t.cache[msg.ID] = cachedMessage{
			content:  msg.Content,
			thinking: msg.Thinking,
			width:    t.width,
			lines:    lines,
		}
	}
	return lines
}
