// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components renders the pieces of the onyx screen as plain strings
// and line lists: message boxes and the transcript, the input box, the
// command palette, the spinner and the config editor dialog.
//
// Components hold no session state; the chat model passes in what they draw.
// Layout decisions such as scroll offsets are made by the caller, which
// slices the lines returned by Transcript.Lines.
package components
