// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/onyx-tui/internal/commands"
	"github.com/jeranaias/onyx-tui/internal/model"
	"github.com/jeranaias/onyx-tui/internal/storage"
)

// =============================================================================
// COMMAND ROUTING
// =============================================================================

// runCommand executes a slash command. Replies are appended as assistant
// messages; the backend is never called.
func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	result := commands.Parse(m.table, input)
	m.logger.Debug("command", "name", result.CommandName, "known", result.Known)

	if !result.Known {
		m.reply("Unknown command: " + result.CommandName)
		return m, nil
	}

	switch result.Command.Name {
	case commands.CmdHelp:
		m.reply(m.helpText())
	case commands.CmdConfig:
		m.openEditor()
	case commands.CmdSave:
		m.reply(m.saveConversation(result.Args))
	default:
		m.reply("Unknown command: " + result.CommandName)
	}
	return m, nil
}

// reply appends a finished assistant message and follows it.
func (m *Model) reply(text string) {
	m.conversation.Add(model.NewAssistantMessage(text))
	m.scroll.End()
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func (m Model) helpText() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, cmd := range m.table.All() {
		fmt.Fprintf(&b, "  %s - %s\n", cmd.Name, cmd.Description)
	}
	b.WriteString("\nNavigation:\n")
	b.WriteString("  ↑/↓ - Scroll up/down\n")
	b.WriteString("  PgUp/PgDn - Scroll page up/down\n")
	b.WriteString("  Home/End - Jump to top/bottom\n")
	b.WriteString("\nActions:\n")
	b.WriteString("  Ctrl+L - Clear chat\n")
	b.WriteString("  Ctrl+C - Quit")
	return b.String()
}

// saveConversation writes the log and returns the message to show. A
// directory argument overrides the configured save directory.
func (m Model) saveConversation(args []string) string {
	dir := m.cfg.SaveDir
	if len(args) > 0 {
		dir = args[0]
	}
	w := &storage.LogWriter{
		Dir:    dir,
		Format: m.cfg.FormatTimestamp,
		Now:    m.now,
	}
	path, err := w.Save(m.conversation.Messages)
	if err != nil {
		m.logger.Error("save conversation", "err", err)
		return "Failed to save conversation: " + err.Error()
	}
	m.logger.Info("conversation saved", "path", path, "messages", m.conversation.Len())
	return "Conversation saved to: " + path
}
