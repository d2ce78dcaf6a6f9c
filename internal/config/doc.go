// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for onyx.
//
// The configuration lives in a TOML file, by default ~/.onyx/config.toml.
// A missing file is created with defaults; a file that cannot be decoded is
// moved aside to config.toml.backup.<unix> and replaced with defaults.
//
// # Key Types
//
//   - Config: provider settings and display options
//   - Field: one entry of the ordered registry behind the /config editor
//   - Watcher: reloads the file when it changes on disk
//
// # Configuration Precedence
//
//   - Environment variables (ONYX_PROVIDER, OPENAI_API_KEY, ANTHROPIC_API_KEY,
//     ONYX_OLLAMA_URL, ONYX_MODEL)
//   - The config file
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.LoadOrCreate(path)
//	if err != nil {
//	    var corrupt *config.CorruptError
//	    if !errors.As(err, &corrupt) {
//	        return err
//	    }
//	}
//	cfg.ApplyEnvOverrides()
//
// Fields are read and written by registry ID:
//
//	_ = cfg.SetField("openai_model", "gpt-4o")
//	shown := cfg.DisplayField("openai_api_key") // "sk-a...wxyz"
package config
