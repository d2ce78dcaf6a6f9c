// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// fence opens and closes a code block.
const fence = "```"

// =============================================================================
// PLAIN RENDERER
// =============================================================================

// CodeRenderer renders text without markdown: prose is word wrapped and fenced
// code blocks are syntax highlighted with chroma.
type CodeRenderer struct {
	Theme   string
	Profile termenv.Profile
}

// Render returns content as lines no wider than width.
func (c CodeRenderer) Render(content string, width int) []string {
	var (
		out      []string
		prose    []string
		code     []string
		language string
		inCode   bool
	)

	flushProse := func() {
		if len(prose) > 0 {
			out = append(out, plainLines(strings.Join(prose, "\n"), width)...)
			prose = nil
		}
	}
	flushCode := func() {
		out = append(out, c.highlight(strings.Join(code, "\n"), language, width)...)
		code = nil
		language = ""
	}

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(strings.TrimSpace(line), fence) && inCode:
			flushCode()
			inCode = false
		case strings.HasPrefix(strings.TrimSpace(line), fence):
			flushProse()
			language = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fence))
			inCode = true
		case inCode:
			code = append(code, line)
		default:
			prose = append(prose, line)
		}
	}

	// An unclosed block is still shown as code.
	if inCode && len(code) > 0 {
		flushCode()
	}
	flushProse()
	return out
}

// highlight renders code line by line, truncating lines wider than width.
func (c CodeRenderer) highlight(code, language string, width int) []string {
	text := code
	if c.Profile != termenv.Ascii {
		text = highlightCode(code, language, c.Theme, formatterFor(c.Profile))
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return lines
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightCode applies syntax highlighting using chroma. The original code
// is returned if highlighting fails.
func highlightCode(code, language, theme, formatter string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(theme)
	if style == nil {
		style = chromaStyles.Fallback
	}

	f := formatters.Get(formatter)
	if f == nil {
		f = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := f.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// formatterFor picks the chroma terminal formatter for a color profile.
func formatterFor(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "terminal256"
	}
}

// KnownCodeTheme reports whether name is a registered chroma style.
func KnownCodeTheme(name string) bool {
	_, ok := chromaStyles.Registry[strings.ToLower(name)]
	return ok
}
