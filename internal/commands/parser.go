// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"time"
	"unicode"
)

// DefaultNowLayout formats the /now expansion.
const DefaultNowLayout = "2006-01-02 15:04:05"

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing a submitted line.
type ParseResult struct {
	// IsCommand is true if the input starts with the sigil
	IsCommand bool

	// Known is true if CommandName is in the table
	Known bool

	// Command is the matched table entry (zero unless Known)
	Command Command

	// CommandName is the raw command name (e.g., "/help")
	CommandName string

	// Args are the parsed arguments
	Args []string

	// RawInput is the trimmed input
	RawInput string
}

// Parse splits input into a command name and arguments and looks the name up in t.
func Parse(t *Table, input string) ParseResult {
	input = strings.TrimSpace(input)
	result := ParseResult{RawInput: input}
	if !IsCommand(input) {
		return result
	}

	result.IsCommand = true
	result.CommandName = ExtractCommandName(input)
	result.Args = ParseArgs(strings.TrimSpace(input[len(result.CommandName):]))
	if cmd, ok := t.Get(result.CommandName); ok {
		result.Known = true
		result.Command = cmd
	}
	return result
}

// ParseArgs splits an argument string into tokens, respecting quotes.
func ParseArgs(input string) []string {
	return splitCommandLine(input)
}

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// splitCommandLine splits a command line into tokens.
// Single and double quotes group words; a backslash escapes a quote inside quotes.
func splitCommandLine(input string) []string {
	var tokens []string
	var current strings.Builder
	var inSingleQuote, inDoubleQuote bool

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		char := runes[i]

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote

		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote

		case char == '\\' && i+1 < len(runes) && (inDoubleQuote || inSingleQuote):
			next := runes[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				current.WriteRune(next)
				i++
			} else {
				current.WriteRune(char)
			}

		case unicode.IsSpace(char) && !inSingleQuote && !inDoubleQuote:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// IsCommand returns true if the input appears to be a command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), string(Sigil))
}

// ExtractCommandName extracts just the command name from input.
// e.g., "/save notes" -> "/save"
func ExtractCommandName(input string) string {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, string(Sigil)) {
		return ""
	}

	end := strings.IndexFunc(input, unicode.IsSpace)
	if end == -1 {
		return input
	}
	return input[:end]
}

// ExpandNow replaces every literal /now token in input with now formatted
// using layout. An empty layout uses DefaultNowLayout.
func ExpandNow(input string, now time.Time, layout string) string {
	if layout == "" {
		layout = DefaultNowLayout
	}
	if !strings.Contains(input, CmdNow) {
		return input
	}
	return strings.ReplaceAll(input, CmdNow, now.Format(layout))
}
