// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/onyx-tui/internal/stream"
)

func waitForText(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(text))
	}, teatest.WithCheckInterval(20*time.Millisecond), teatest.WithDuration(3*time.Second))
}

func TestE2ESecondSubmitRejected(t *testing.T) {
	src := &scriptedSource{gate: make(chan struct{})}
	tm := teatest.NewTestModel(t, newTestModel(t, src), teatest.WithInitialTermSize(100, 30))

	tm.Type("first question")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForText(t, tm, "Processing")

	tm.Type("again")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	fm, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, ok)
	assert.Equal(t, ModeAwaitingReply, fm.Mode())
	assert.Equal(t, "again", fm.InputText())
	assert.Equal(t, 2, fm.Conversation().Len())
	assert.Equal(t, []string{"first question"}, src.Prompts())
}

func TestE2EReplyAndHelp(t *testing.T) {
	src := &scriptedSource{
		gate: make(chan struct{}),
		events: []stream.Event{
			stream.ContentChunk("forty-"),
			stream.ContentChunk("two"),
			stream.Done(),
		},
	}
	tm := teatest.NewTestModel(t, newTestModel(t, src), teatest.WithInitialTermSize(100, 30))

	tm.Type("meaning of life")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForText(t, tm, "Processing")

	tm.Type("/help")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForText(t, tm, "Commands:")

	close(src.gate)
	waitForText(t, tm, "forty-two")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	fm, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, ok)
	assert.Equal(t, ModeIdle, fm.Mode())
	require.Equal(t, 3, fm.Conversation().Len())
	assert.Equal(t, "forty-two", fm.Conversation().Messages[1].Content)
	assert.Contains(t, fm.Conversation().Messages[2].Content, "Commands:")
}
