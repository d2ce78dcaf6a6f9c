// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ONYX_PROVIDER", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "ONYX_OLLAMA_URL", "ONYX_MODEL"} {
		t.Setenv(k, "")
	}
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ProviderOpenAI, cfg.ActiveProvider)
	assert.Equal(t, "gpt-5-nano", cfg.OpenAI.Model)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Anthropic.Model)
	assert.Equal(t, "llama3.2", cfg.Ollama.Model)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL)
	assert.Equal(t, CursorLineBlinking, cfg.Display.CursorStyle)
	assert.Equal(t, 500, cfg.Display.CursorBlinkMS)
	assert.True(t, cfg.Display.Markdown)
	assert.Equal(t, "monokai", cfg.Display.CodeTheme)
	assert.True(t, cfg.MissingAPIKey())
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onyx", "config.toml")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, Default().OpenAI, cfg.OpenAI)
	assert.Equal(t, path, cfg.Path())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `active_provider = "openai"`)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
active_provider = "anthropic"

[anthropic]
api_key = "sk-ant-123456789"

[display]
markdown = false
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.ActiveProvider)
	assert.Equal(t, "sk-ant-123456789", cfg.Active().APIKey)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Anthropic.Model)
	assert.False(t, cfg.Display.Markdown)
	assert.Equal(t, 500, cfg.Display.CursorBlinkMS)
	assert.False(t, cfg.MissingAPIKey())
}

func TestLoadOrCreateBacksUpCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0600))

	cfg, err := LoadOrCreate(path)
	require.NotNil(t, cfg)

	var corrupt *CorruptError
	require.True(t, errors.As(err, &corrupt))
	assert.True(t, strings.HasPrefix(filepath.Base(corrupt.BackupPath), "config.toml.backup."))

	backup, readErr := os.ReadFile(corrupt.BackupPath)
	require.NoError(t, readErr)
	assert.Equal(t, "this is = = not toml", string(backup))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Display, reloaded.Display)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.ActiveProvider = ProviderOllama
	cfg.Ollama.Model = "mistral"
	cfg.Display.CursorStyle = CursorBlock

	require.NoError(t, Save(cfg, path))
	loaded, err := Load(path)
	require.NoError(t, err)

	cfg.path, loaded.path = "", ""
	assert.Equal(t, cfg, loaded)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"ollama defaults are valid", func(c *Config) { c.ActiveProvider = ProviderOllama }, nil},
		{"openai with key is valid", func(c *Config) { c.OpenAI.APIKey = "sk-x" }, nil},
		{"missing key", func(c *Config) {}, []string{"openai.api_key"}},
		{"unknown provider", func(c *Config) { c.ActiveProvider = "x" }, []string{"active_provider"}},
		{"bad url", func(c *Config) {
			c.ActiveProvider = ProviderOllama
			c.Ollama.URL = "localhost:11434"
		}, []string{"ollama.url"}},
		{"bad cursor", func(c *Config) {
			c.ActiveProvider = ProviderOllama
			c.Display.CursorStyle = "underline"
			c.Display.CursorBlinkMS = 0
		}, []string{"display.cursor_style", "display.cursor_blink_ms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var errs ValidateErrors
			require.True(t, errors.As(err, &errs))
			var got []string
			for _, e := range errs {
				got = append(got, e.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ONYX_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env")
	t.Setenv("OPENAI_API_KEY", "sk-openai-env")
	t.Setenv("ONYX_MODEL", "claude-test")
	t.Setenv("ONYX_OLLAMA_URL", "http://gpu-box:11434")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, ProviderAnthropic, cfg.ActiveProvider)
	assert.Equal(t, "sk-ant-env", cfg.Anthropic.APIKey)
	assert.Equal(t, "sk-openai-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "claude-test", cfg.Anthropic.Model)
	assert.Equal(t, "gpt-5-nano", cfg.OpenAI.Model)
	assert.Equal(t, "http://gpu-box:11434", cfg.Ollama.URL)
}

func TestApplyEnvOverridesIgnoresUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("ONYX_PROVIDER", "gemini")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, ProviderOpenAI, cfg.ActiveProvider)
}

// =============================================================================
// GET/SET AND FIELD REGISTRY
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("openai.model")
	require.NoError(t, err)
	assert.Equal(t, "gpt-5-nano", v)

	require.NoError(t, cfg.Set("display.cursor_blink_ms", "750"))
	assert.Equal(t, 750, cfg.Display.CursorBlinkMS)

	require.NoError(t, cfg.Set("display.markdown", "false"))
	assert.False(t, cfg.Display.Markdown)

	_, err = cfg.Get("openai.nope")
	assert.ErrorContains(t, err, "unknown field: openai.nope")
	assert.Error(t, cfg.Set("openai.model.x", "y"))
	assert.Error(t, cfg.Set("display.cursor_blink_ms", "soon"))
}

func TestFieldRegistry(t *testing.T) {
	cfg := Default()
	for _, f := range Fields() {
		_, err := cfg.GetField(f.ID)
		assert.NoError(t, err, "field %s", f.ID)
	}

	var sections []string
	for _, f := range Fields() {
		if len(sections) == 0 || sections[len(sections)-1] != f.Section {
			sections = append(sections, f.Section)
		}
	}
	assert.Equal(t, []string{"General", "OpenAI", "Anthropic", "Ollama", "Display"}, sections)
}

func TestSetField(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.SetField("active_provider", "Ollama"))
	assert.Equal(t, ProviderOllama, cfg.ActiveProvider)

	require.NoError(t, cfg.SetField("cursor_blink_ms", " 250 "))
	assert.Equal(t, 250, cfg.Display.CursorBlinkMS)

	require.NoError(t, cfg.SetField("openai_url", ""))
	assert.Equal(t, "", cfg.OpenAI.URL)

	var verr ValidationError
	assert.True(t, errors.As(cfg.SetField("openai_model", "  "), &verr))
	assert.Equal(t, "openai.model", verr.Field)
	assert.Error(t, cfg.SetField("cursor_style", "underline"))
	assert.Error(t, cfg.SetField("cursor_blink_ms", "-1"))
	assert.Error(t, cfg.SetField("no_such_field", "x"))

	assert.Equal(t, "gpt-5-nano", cfg.OpenAI.Model)
}

func TestDisplayField(t *testing.T) {
	cfg := Default()
	cfg.OpenAI.APIKey = "sk-abcdefghijklmnop"
	cfg.Anthropic.APIKey = "short"

	assert.Equal(t, "sk-a...mnop", cfg.DisplayField("openai_api_key"))
	assert.Equal(t, "*****", cfg.DisplayField("anthropic_api_key"))
	assert.Equal(t, "(empty)", cfg.DisplayField("ollama_api_key"))
	assert.Equal(t, "llama3.2", cfg.DisplayField("ollama_model"))
}

func TestStringMasksKeys(t *testing.T) {
	cfg := Default()
	cfg.OpenAI.APIKey = "sk-secret-secret-secret"
	s := cfg.String()
	assert.NotContains(t, s, "sk-secret-secret-secret")
	assert.Contains(t, s, "sk-s...cret")
	assert.Equal(t, "sk-secret-secret-secret", cfg.OpenAI.APIKey)
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatcherReloads(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(Default(), path))

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { reloaded <- c })
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	w.Start(context.Background())
	t.Cleanup(func() { _ = w.Close() })

	cfg := Default()
	cfg.ActiveProvider = ProviderOllama
	cfg.Ollama.Model = "qwen"
	require.NoError(t, Save(cfg, path))

	select {
	case got := <-reloaded:
		assert.Equal(t, ProviderOllama, got.ActiveProvider)
		assert.Equal(t, "qwen", got.Ollama.Model)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload")
	}
}

func TestWatcherSuppress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(Default(), path))

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { reloaded <- c })
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	w.Start(context.Background())
	t.Cleanup(func() { _ = w.Close() })

	w.Suppress(time.Second)
	require.NoError(t, Save(Default(), path))

	select {
	case <-reloaded:
		t.Fatal("suppressed change was reloaded")
	case <-time.After(200 * time.Millisecond):
	}
}
