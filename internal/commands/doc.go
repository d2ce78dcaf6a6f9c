// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
//
// This package holds the static command table, the palette that filters it
// against the word under the cursor, and the helpers that parse and expand
// submitted command lines.
//
// # Key Types
//
//   - Table: Ordered, immutable list of commands
//   - Palette: Visibility, filtered matches and selection for the command menu
//   - ParseResult: Parsed command with name and arguments
//
// # Built-in Commands
//
//   - /help: Show help information
//   - /config: Open the configuration editor
//   - /now: Insert the current date and time
//   - /save: Save the conversation to a log file
//
// # Usage
//
// Recompute the palette after every edit:
//
//	palette.Recompute(buf.BeforeCursor())
//	if palette.Visible() {
//	    palette.Accept(buf) // on Tab
//	}
//
// Route a submitted line:
//
//	result := commands.Parse(table, line)
//	if result.IsCommand {
//	    // dispatch on result.CommandName
//	}
package commands
