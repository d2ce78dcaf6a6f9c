// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama is a small HTTP client for a local Ollama server.
//
// Only the chat endpoint is covered, in both its complete and streaming
// forms. Streaming replies arrive as newline-delimited JSON objects and are
// handed to a callback one chunk at a time:
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{BaseURL: url, Model: "llama3.2"})
//	err := client.ChatStream(ctx, "", msgs, func(c ollama.StreamChunk) error {
//	    fmt.Print(c.Content)
//	    return nil
//	})
package ollama
