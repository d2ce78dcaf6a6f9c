// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat screen of the onyx TUI.

The Model is a Bubble Tea model that owns all session state: the input
buffer and its undo history, the command palette, the transcript scroll
position, the conversation and the outstanding reply.

# Modes

The session is either Idle or AwaitingReply. Submitting a prompt while Idle
appends a user message and an empty streaming assistant message, starts the
backend in the background and enters AwaitingReply. While a reply is
outstanding, further prompts are rejected; the input stays editable.

Slash commands (/help, /config, /save, /now) are handled locally in both
modes and never reach the backend.

# Event Flow

The background task writes stream.Events into a per-submission Queue. A
DrainTickMsg fires every 16ms while awaiting and every 100ms while idle;
each tick drains the queue, applies the events to the streaming message,
advances the spinner and updates the cursor blink:

	ThinkingChunk -> Message.AppendThinking
	ContentChunk  -> Message.AppendContent
	Done          -> Message.Finish, back to Idle
	Error         -> Message.Fail, back to Idle

Quit, Ctrl+C and Ctrl+L cancel the submission context and close the queue,
so a late event from the background task is discarded.

# Files

  - model.go: Model, Options, Init, Update
  - input.go: key handling for the input buffer
  - streaming.go: submission and event draining
  - commands.go: slash-command routing
  - config_editor.go: the /config overlay
  - view.go: layout and rendering
*/
package chat
