// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the onyx TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Colors (colors.go)

  - Lavender - focused borders, active input, selections
  - Sky - user messages
  - Green - assistant messages, success, key hints
  - Teal - titles and section headers
  - Yellow - thinking text
  - Red - errors

# Theme (theme.go)

Theme groups the lipgloss styles used by the components. NewTheme detects the
color profile and background through termenv; NewThemeFor takes them
explicitly, which tests use to get stable output:

	theme := styles.NewThemeFor(termenv.Ascii, true)
	header := theme.Title.Render(" Onyx Chat ")
*/
package styles
