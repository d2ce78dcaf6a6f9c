// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/onyx-tui/internal/commands"
	"github.com/jeranaias/onyx-tui/internal/config"
	"github.com/jeranaias/onyx-tui/internal/model"
	"github.com/jeranaias/onyx-tui/internal/textedit"
	"github.com/jeranaias/onyx-tui/internal/ui/cursor"
	"github.com/jeranaias/onyx-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewThemeFor(termenv.Ascii, true)
}

func plain(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = stripANSI(l)
	}
	return out
}

// =============================================================================
// MESSAGE BOX TESTS
// =============================================================================

func TestMessageBoxLayout(t *testing.T) {
	msg := model.NewUserMessage("hello world")
	msg.Timestamp = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

	box := NewMessageBox(msg, testTheme())
	box.Width = 40
	box.FormatTime = func(ts time.Time) string { return ts.Format("15:04") }

	lines := plain(box.Lines())
	require.Len(t, lines, 3)
	assert.Equal(t, "┌─ You ─ 15:04", lines[0])
	assert.Equal(t, "│ hello world", lines[1])
	assert.Equal(t, "└─", lines[2])
}

func TestMessageBoxWraps(t *testing.T) {
	msg := model.NewUserMessage("one two three four five")
	box := NewMessageBox(msg, testTheme())
	box.Width = 12

	lines := plain(box.Lines())
	for _, l := range lines[1 : len(lines)-1] {
		assert.LessOrEqual(t, visibleWidth(l), 12)
		assert.True(t, strings.HasPrefix(l, "│ "))
	}
	assert.Greater(t, len(lines), 3)
}

func TestMessageBoxThinkingAndStreaming(t *testing.T) {
	msg := model.NewStreamingMessage()
	msg.AppendThinking("pondering")

	lines := plain(NewMessageBox(msg, testTheme()).Lines())
	joined := strings.Join(lines, "\n")
	assert.Contains(t, lines[0], "Onyx")
	assert.Contains(t, joined, "thinking")
	assert.Contains(t, joined, "pondering")
	assert.Contains(t, joined, "…")
}

func TestMessageBoxFailure(t *testing.T) {
	msg := model.NewStreamingMessage()
	msg.AppendContent("partial answer")
	msg.Fail("connection refused")

	lines := plain(NewMessageBox(msg, testTheme()).Lines())
	require.Len(t, lines, 5)
	assert.Equal(t, "│ partial answer", strings.TrimRight(lines[1], " "))
	assert.Equal(t, "│", strings.TrimRight(lines[2], " "))
	assert.Equal(t, "│ ✗ Error: connection refused", strings.TrimRight(lines[3], " "))

	only := model.NewStreamingMessage()
	only.Fail("timeout")
	lines = plain(NewMessageBox(only, testTheme()).Lines())
	require.Len(t, lines, 3)
	assert.Equal(t, "│ ✗ Error: timeout", strings.TrimRight(lines[1], " "))
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscriptWelcomeAndSeparators(t *testing.T) {
	display := config.Default().Display
	display.Markdown = false
	tr := NewTranscript(testTheme(), display)
	tr.SetWidth(60)

	msgs := []*model.Message{model.NewUserMessage("hi"), model.NewAssistantMessage("hello")}
	lines := plain(tr.Lines(msgs, true))

	assert.Equal(t, "Welcome to Onyx!", strings.TrimSpace(lines[0]))
	assert.Equal(t, "", lines[len(lines)-1])

	without := tr.Lines(msgs, false)
	assert.Equal(t, len(lines)-len(WelcomeLines(testTheme())), len(without))
}

func TestTranscriptCacheTracksContent(t *testing.T) {
	display := config.Default().Display
	display.Markdown = false
	tr := NewTranscript(testTheme(), display)

	msg := model.NewAssistantMessage("first")
	first := strings.Join(plain(tr.Lines([]*model.Message{msg}, false)), "\n")
	assert.Contains(t, first, "first")

	msg.Content = "second"
	second := strings.Join(plain(tr.Lines([]*model.Message{msg}, false)), "\n")
	assert.Contains(t, second, "second")
	assert.NotContains(t, second, "first")

	tr.Lines(nil, false)
	assert.Empty(t, tr.cache)
}

func TestTranscriptMarkdown(t *testing.T) {
	tr := NewTranscript(testTheme(), config.Default().Display)
	tr.SetWidth(60)

	msg := model.NewAssistantMessage("# Title\n\nSome **bold** text.")
	joined := strings.Join(plain(tr.Lines([]*model.Message{msg}, false)), "\n")
	assert.Contains(t, joined, "Title")
	assert.Contains(t, joined, "bold")
	assert.NotContains(t, joined, "**")
}

// =============================================================================
// CODE RENDERER TESTS
// =============================================================================

func TestCodeRendererFences(t *testing.T) {
	r := CodeRenderer{Theme: "monokai", Profile: termenv.Ascii}
	lines := r.Render("intro\n```go\nfunc main() {}\n```\noutro", 40)
	assert.Equal(t, []string{"intro", "func main() {}", "outro"}, lines)
}

func TestCodeRendererUnclosedFence(t *testing.T) {
	r := CodeRenderer{Theme: "monokai", Profile: termenv.Ascii}
	lines := r.Render("```\nx := 1", 40)
	assert.Equal(t, []string{"x := 1"}, lines)
}

func TestCodeRendererHighlights(t *testing.T) {
	r := CodeRenderer{Theme: "monokai", Profile: termenv.TrueColor}
	lines := r.Render("```go\npackage main\n```", 40)
	require.Len(t, lines, 1)
	assert.Equal(t, "package main", stripANSI(lines[0]))
	assert.NotEqual(t, "package main", lines[0])
}

func TestKnownCodeTheme(t *testing.T) {
	assert.True(t, KnownCodeTheme("monokai"))
	assert.True(t, KnownCodeTheme("Dracula"))
	assert.False(t, KnownCodeTheme("no-such-theme"))
}

// =============================================================================
// INPUT BOX TESTS
// =============================================================================

func TestInputBoxLayout(t *testing.T) {
	box := NewInputBox(testTheme())
	box.Width = 40
	buf := textedit.NewBufferFrom("hello")
	cur := cursor.New(cursor.StyleLine, 0, time.Now())

	lines := strings.Split(stripANSI(box.View(buf, cur, nil)), "\n")
	require.Len(t, lines, InputHeight)
	assert.True(t, strings.HasPrefix(lines[0], "┌ Input "))
	assert.True(t, strings.HasPrefix(lines[1], "│ hello│"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], " │"), lines[1])
	for _, l := range lines {
		assert.Equal(t, 40, visibleWidth(l))
	}
	assert.Contains(t, lines[2], "[Enter]")
}

func TestInputBoxProcessing(t *testing.T) {
	box := NewInputBox(testTheme())
	box.Processing = true
	out := stripANSI(box.View(textedit.NewBuffer(), nil, NewSpinner(testTheme())))
	assert.Contains(t, out, "Processing...")
	assert.NotContains(t, out, "[Enter]")
}

func TestInputBoxPlaceholder(t *testing.T) {
	box := NewInputBox(testTheme())
	box.Focused = false
	out := stripANSI(box.View(textedit.NewBuffer(), nil, nil))
	assert.Contains(t, out, Placeholder)
}

func TestInputBoxScrollsToCursor(t *testing.T) {
	box := NewInputBox(testTheme())
	box.Width = 14
	buf := textedit.NewBufferFrom(strings.Repeat("a", 30) + "XYZ")
	cur := cursor.New(cursor.StyleBlock, 0, time.Now())

	lines := strings.Split(stripANSI(box.View(buf, cur, nil)), "\n")
	assert.Contains(t, lines[1], "XYZ")
	assert.Equal(t, 14, visibleWidth(lines[1]))
}

func TestWindowStart(t *testing.T) {
	runes := []rune("abcdefghij")
	assert.Equal(t, 0, windowStart(runes, 3, 5))
	assert.Equal(t, 5, windowStart(runes, 10, 5))
}

// =============================================================================
// PALETTE VIEW TESTS
// =============================================================================

func TestPaletteView(t *testing.T) {
	v := NewPaletteView(testTheme())
	matches := commands.DefaultTable().All()

	lines := strings.Split(stripANSI(v.View(matches, 1, 80)), "\n")
	require.Len(t, lines, len(matches)+2)
	assert.Contains(t, lines[0], "Commands")
	assert.Contains(t, lines[2], "▶ /config")
	assert.Contains(t, lines[2], "Open configuration editor")
	assert.Equal(t, "", v.View(nil, 0, 80))
}

func TestPaletteViewCapsRows(t *testing.T) {
	v := NewPaletteView(testTheme())
	var matches []commands.Command
	for _, name := range []string{"/a", "/b", "/c", "/d", "/e", "/f", "/g"} {
		matches = append(matches, commands.Command{Name: name, Description: name})
	}

	lines := strings.Split(stripANSI(v.View(matches, 6, 80)), "\n")
	require.Len(t, lines, PaletteMaxRows+2)
	assert.Contains(t, lines[PaletteMaxRows], "▶ /g")
}

// =============================================================================
// DIALOG TESTS
// =============================================================================

func TestFieldRow(t *testing.T) {
	th := testTheme()
	row := stripANSI(FieldRow(th, "Model", "gpt-4o", true, false))
	assert.Equal(t, "▶ Model"+strings.Repeat(" ", FieldLabelWidth-len("Model"))+" : gpt-4o", row)

	row = stripANSI(FieldRow(th, "Model", "x", false, false))
	assert.True(t, strings.HasPrefix(row, "  Model"))
	assert.Equal(t, "═══ General ═══", stripANSI(SectionHeader(th, "General")))
}

func TestEditingValue(t *testing.T) {
	buf := textedit.NewBufferFrom("héllo")
	buf.MoveLeft(false)
	assert.Equal(t, "héll█o", EditingValue(buf))
}

func TestDialogAndMenus(t *testing.T) {
	th := testTheme()
	out := strings.Split(stripANSI(Dialog(th, " Configuration Editor ", []string{"a", "b"}, 50, 6)), "\n")
	require.Len(t, out, 6)
	assert.Contains(t, out[0], "Configuration Editor")
	for _, l := range out {
		assert.Equal(t, 50, visibleWidth(l))
	}

	menu := stripANSI(EnumMenu(th, "Provider", []string{"openai", "anthropic"}, 1))
	assert.Contains(t, menu, " Select Provider ")
	assert.Contains(t, menu, "▶ anthropic")

	note := stripANSI(Notification(th, "Configuration saved!"))
	assert.Contains(t, note, "✓ Configuration saved!")
}
