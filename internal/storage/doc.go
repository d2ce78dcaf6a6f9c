// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage writes conversation logs for the /save command.
//
// A log is plain text, one block per message, written atomically to
// onyx-conversation-<unix>.log:
//
//	Onyx Conversation Log
//	Generated: 2025-01-02 15:04:05
//	================================================================================
//
//	[USER] USER at 2025-01-02 15:04:01
//	--------------------------------------------------------------------------------
//	hello
//
//	================================================================================
package storage
