// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "strings"

// Sigil marks the start of a slash command.
const Sigil = '/'

// Command names.
const (
	CmdHelp   = "/help"
	CmdConfig = "/config"
	CmdNow    = "/now"
	CmdSave   = "/save"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command is one entry of the command table.
type Command struct {
	// Name is the full keyword including the sigil (e.g., "/help")
	Name string

	// Description is shown in the palette and in /help
	Description string
}

// =============================================================================
// TABLE
// =============================================================================

// Table is an ordered command list. Declaration order is display and match order.
type Table struct {
	commands []Command
}

// NewTable creates a table from cmds, keeping their order.
func NewTable(cmds ...Command) *Table {
	t := &Table{commands: make([]Command, len(cmds))}
	copy(t.commands, cmds)
	return t
}

// DefaultTable returns the built-in commands.
func DefaultTable() *Table {
	return NewTable(
		Command{Name: CmdHelp, Description: "Show help information"},
		Command{Name: CmdConfig, Description: "Open configuration editor"},
		Command{Name: CmdNow, Description: "Insert current date and time"},
		Command{Name: CmdSave, Description: "Save conversation to log file (optional: /save <dir>)"},
	)
}

// All returns a copy of the commands in table order.
func (t *Table) All() []Command {
	out := make([]Command, len(t.commands))
	copy(out, t.commands)
	return out
}

// Len returns the number of commands.
func (t *Table) Len() int {
	return len(t.commands)
}

// Get returns the command named name.
func (t *Table) Get(name string) (Command, bool) {
	for _, cmd := range t.commands {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return Command{}, false
}

// Filter returns the commands whose name starts with prefix, in table order.
func (t *Table) Filter(prefix string) []Command {
	var out []Command
	for _, cmd := range t.commands {
		if strings.HasPrefix(cmd.Name, prefix) {
			out = append(out, cmd)
		}
	}
	return out
}
