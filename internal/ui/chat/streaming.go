// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/onyx-tui/internal/commands"
	"github.com/jeranaias/onyx-tui/internal/model"
	"github.com/jeranaias/onyx-tui/internal/stream"
)

// =============================================================================
// SUBMISSION
// =============================================================================

// submit routes the input line: commands run locally in any mode, prompts
// start a reply when the session is idle.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.InputText()
	if text == "" {
		return m, nil
	}
	expanded := commands.ExpandNow(text, m.now(), m.nowLayout())

	if commands.IsCommand(expanded) {
		m.resetInput()
		m.showWelcome = false
		return m.runCommand(expanded)
	}

	if m.mode == ModeAwaitingReply {
		m.logger.Debug("submit rejected while awaiting reply")
		return m, nil
	}

	m.resetInput()
	m.showWelcome = false
	m.startReply(expanded)
	return m, nil
}

// startReply appends the prompt and begins streaming the answer.
func (m *Model) startReply(prompt string) {
	m.conversation.Add(model.NewUserMessage(prompt))
	m.scroll.End()

	if m.source == nil {
		m.conversation.Add(model.NewAssistantMessage(NoBackendReply))
		return
	}

	m.conversation.Add(model.NewStreamingMessage())
	ctx, queue := m.cancel.begin()
	m.mode = ModeAwaitingReply
	m.logger.Info("reply started", "provider", m.cfg.ActiveProvider, "prompt_runes", len([]rune(prompt)))
	stream.Start(ctx, m.source, prompt, queue)
}

func (m Model) nowLayout() string {
	if m.cfg.Display.TimestampFormat != "" {
		return m.cfg.Display.TimestampFormat
	}
	return commands.DefaultNowLayout
}

// =============================================================================
// DRAIN LOOP
// =============================================================================

// handleTick drains pending events, animates and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.applyEvents(m.cancel.drain())

	if m.mode == ModeAwaitingReply {
		m.spinner.Advance()
	}
	m.cursor.Update(m.now())

	interval := IdleTickInterval
	if m.mode == ModeAwaitingReply {
		interval = BusyTickInterval
	}
	return m, tickCmd(interval)
}

// applyEvents applies events in order to the streaming assistant message.
func (m *Model) applyEvents(events []stream.Event) {
	for _, ev := range events {
		msg := m.conversation.Streaming()
		if msg == nil {
			m.logger.Debug("event without streaming message", "kind", ev.Kind)
			continue
		}

		switch ev.Kind {
		case stream.EventThinkingStart, stream.EventThinkingEnd:
			// Boundaries only; the text arrives in chunks.
		case stream.EventThinkingChunk:
			msg.AppendThinking(ev.Text)
		case stream.EventContentChunk:
			msg.AppendContent(ev.Text)
		case stream.EventDone:
			msg.Finish()
			m.endReply()
		case stream.EventError:
			msg.Fail(ev.Text)
			m.logger.Warn("reply failed", "err", ev.Text)
			m.endReply()
		}
	}
}

// endReply returns the session to Idle after a terminal event.
func (m *Model) endReply() {
	m.cancel.finish()
	m.mode = ModeIdle
}

// =============================================================================
// CANCELLATION
// =============================================================================

// abortReply cancels the outstanding reply and freezes its message.
func (m *Model) abortReply() {
	if m.mode != ModeAwaitingReply {
		return
	}
	m.cancel.cancel()
	if msg := m.conversation.Streaming(); msg != nil {
		msg.Finish()
	}
	m.mode = ModeIdle
	m.logger.Debug("reply cancelled")
}

// clearChat empties the transcript and cancels any outstanding reply.
func (m *Model) clearChat() {
	m.abortReply()
	m.conversation.Clear()
	m.scroll.Reset()
}
