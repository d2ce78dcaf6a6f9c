// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"

	"github.com/jeranaias/onyx-tui/internal/logging"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// Markdown renders assistant replies through glamour. Renderers are built
// lazily per wrap width.
type Markdown struct {
	codeTheme string
	profile   termenv.Profile
	dark      bool

	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a renderer that highlights fenced code with the chroma
// style codeTheme.
func NewMarkdown(codeTheme string, profile termenv.Profile, dark bool) *Markdown {
	return &Markdown{codeTheme: codeTheme, profile: profile, dark: dark}
}

// Render returns content as styled lines no wider than width. If glamour
// fails the content is wrapped as plain text.
func (m *Markdown) Render(content string, width int) []string {
	r := m.rendererFor(width)
	if r == nil {
		return plainLines(content, width)
	}
	out, err := r.Render(content)
	if err != nil {
		logging.For("render").Debug("markdown render failed", "err", err)
		return plainLines(content, width)
	}
	return trimBlankLines(strings.Split(out, "\n"))
}

func (m *Markdown) rendererFor(width int) *glamour.TermRenderer {
	if width < 1 {
		width = 1
	}
	if m.renderer != nil && m.width == width {
		return m.renderer
	}

	cfg := glamourstyles.LightStyleConfig
	if m.dark {
		cfg = glamourstyles.DarkStyleConfig
	}
	// Document margins are handled by the message box.
	var zero uint
	cfg.Document.Margin = &zero
	if m.codeTheme != "" {
		cfg.CodeBlock.Chroma = nil
		cfg.CodeBlock.Theme = m.codeTheme
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(cfg),
		glamour.WithColorProfile(m.profile),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.For("render").Warn("markdown renderer unavailable", "err", err)
		return nil
	}
	m.renderer = r
	m.width = width
	return r
}

// trimBlankLines drops leading and trailing lines that are empty once
// trailing spaces are removed.
func trimBlankLines(lines []string) []string {
	isBlank := func(s string) bool {
		return strings.TrimSpace(stripANSI(s)) == ""
	}
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}
