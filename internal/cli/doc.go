// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the command line of onyx.
//
// The root command takes no arguments and starts the TUI:
//
//	onyx [--config path] [--provider openai|anthropic|ollama] [--debug]
//
// Flag parsing uses cobra; the command runs the RunFunc passed to
// NewRootCommand so main owns program startup.
package cli
