// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/jeranaias/onyx-tui/internal/model"
	"github.com/jeranaias/onyx-tui/internal/ui/styles"
)

// Box glyphs of a message.
const (
	boxTop    = "┌─ "
	boxSide   = "│ "
	boxBottom = "└─"
)

// =============================================================================
// MESSAGE BOX
// =============================================================================

// BodyRenderer turns message content into lines no wider than width.
type BodyRenderer interface {
	Render(content string, width int) []string
}

// MessageBox renders one transcript message:
//
//	┌─ You ─ 2025-01-02 15:04:05
//	│ content
//	└─
type MessageBox struct {
	Message    *model.Message
	Width      int
	FormatTime func(time.Time) string

	// Body renders finished assistant content. Nil wraps plain text.
	Body BodyRenderer

	theme *styles.Theme
}

// NewMessageBox creates a box for msg.
func NewMessageBox(msg *model.Message, theme *styles.Theme) *MessageBox {
	return &MessageBox{Message: msg, Width: 80, theme: theme}
}

// Lines renders the box.
func (b *MessageBox) Lines() []string {
	msg := b.Message
	t := b.theme
	role := t.RoleStyle(msg.Role == model.RoleUser)
	inner := b.Width - len([]rune(boxSide))
	if inner < 1 {
		inner = 1
	}

	header := t.Border.Render(boxTop) + role.Bold(true).Render(msg.Role.DisplayName()) + t.Border.Render(" ─")
	if b.FormatTime != nil && !msg.Timestamp.IsZero() {
		header += " " + t.Timestamp.Render(b.FormatTime(msg.Timestamp))
	}
	lines := []string{header}

	side := t.Border.Render(boxSide)

	if msg.HasThinking() {
		lines = append(lines, side+t.ThinkingLabel.Render("thinking"))
		for _, l := range plainLines(msg.Thinking, inner) {
			lines = append(lines, side+t.ThinkingText.Render(l))
		}
		if msg.Content != "" || msg.IsStreaming {
			lines = append(lines, side)
		}
	}

	body := msg.Content
	failure := ""
	if msg.Err != "" {
		failure = "Error: " + msg.Err
		body = strings.TrimRight(strings.TrimSuffix(body, failure), "\n")
	}

	switch {
	case msg.Content == "" && msg.IsStreaming:
		lines = append(lines, side+t.HelpText.Render("…"))
	case body == "" && failure != "":
	case msg.Role == model.RoleAssistant && !msg.IsStreaming && b.Body != nil:
		for _, l := range b.Body.Render(body, inner) {
			lines = append(lines, side+l)
		}
	default:
		for _, l := range plainLines(body, inner) {
			lines = append(lines, side+role.Render(l))
		}
	}

	if failure != "" {
		if body != "" {
			lines = append(lines, side)
		}
		for i, l := range plainLines(failure, max(inner-2, 1)) {
			if i == 0 {
				lines = append(lines, side+styles.RenderError(l))
			} else {
				lines = append(lines, side+t.Error.Render("  "+l))
			}
		}
	}

	return append(lines, t.Border.Render(boxBottom))
}
