// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/onyx-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME BLOCK
// =============================================================================

// WelcomeLines returns the help block shown at the top of a fresh transcript.
func WelcomeLines(t *styles.Theme) []string {
	label := t.HelpText.Bold(true)
	text := t.HelpText
	key := t.KeyHint

	return []string{
		t.Title.Render("Welcome to Onyx! "),
		"",
		label.Render("Quick start: ") + text.Render("Type your message and press ") +
			key.Render("[Enter]") + text.Render(" to send"),
		label.Render("Commands: ") + key.Render("/config") + text.Render(" • ") + key.Render("/help"),
		label.Render("Navigation: ") + key.Render("↑↓") + text.Render(" scroll • ") +
			key.Render("PgUp/PgDn") + text.Render(" page • ") +
			key.Render("Home/End") + text.Render(" jump"),
		"",
	}
}

// MissingKeyNotice is the first assistant message when the active provider
// has no API key.
const MissingKeyNotice = "Welcome to Onyx!\n\n" +
	"No API key found for the active provider.\n" +
	"Type /config to open the configuration editor and set up your API keys.\n\n" +
	"You can still use commands like /help and /config."

// UnreachableNotice is the first assistant message when the Ollama server
// does not answer at startup.
func UnreachableNotice(url string) string {
	return "Welcome to Onyx!\n\n" +
		"Could not reach Ollama at " + url + ".\n" +
		"Start it with `ollama serve`, or type /config to switch providers."
}
