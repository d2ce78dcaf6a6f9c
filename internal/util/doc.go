// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the application.
//
// String helpers measure in terminal columns (via go-runewidth), never in
// bytes, so wide and multi-byte characters are never split:
//
//	display := util.TruncateWidth(title, 40)
//	lines := util.WrapWidth(body, width)
//
// AtomicWriteFile is the crash-safe write used for the config file and
// saved conversation logs.
package util
