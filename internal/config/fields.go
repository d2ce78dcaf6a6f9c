// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/onyx-tui/internal/util"
)

// =============================================================================
// FIELD REGISTRY
// =============================================================================

// FieldType describes how a field is edited and validated.
type FieldType int

const (
	// FieldString must not be empty.
	FieldString FieldType = iota
	// FieldOptionalString may be empty.
	FieldOptionalString
	// FieldEnum must be one of Field.EnumValues.
	FieldEnum
	// FieldUint is a non-negative integer.
	FieldUint
)

// Field is one user-editable setting.
type Field struct {
	ID         string // stable identifier, e.g. "openai_api_key"
	Key        string // dot path for Get/Set, e.g. "openai.api_key"
	Label      string
	Hint       string
	Section    string
	Type       FieldType
	EnumValues []string
	Secret     bool
}

var fields = []Field{
	{ID: "active_provider", Key: "active_provider", Label: "Active Provider", Hint: "Select which AI provider to use",
		Section: "General", Type: FieldEnum, EnumValues: []string{"openai", "anthropic", "ollama"}},

	{ID: "openai_api_key", Key: "openai.api_key", Label: "API Key", Hint: "Required",
		Section: "OpenAI", Type: FieldOptionalString, Secret: true},
	{ID: "openai_model", Key: "openai.model", Label: "Model", Hint: "e.g., gpt-4o, gpt-5-nano",
		Section: "OpenAI", Type: FieldString},
	{ID: "openai_url", Key: "openai.url", Label: "URL", Hint: "Optional (leave empty for default)",
		Section: "OpenAI", Type: FieldOptionalString},

	{ID: "anthropic_api_key", Key: "anthropic.api_key", Label: "API Key", Hint: "Required",
		Section: "Anthropic", Type: FieldOptionalString, Secret: true},
	{ID: "anthropic_model", Key: "anthropic.model", Label: "Model", Hint: "e.g., claude-3-5-sonnet-20241022",
		Section: "Anthropic", Type: FieldString},
	{ID: "anthropic_url", Key: "anthropic.url", Label: "URL", Hint: "Optional (leave empty for default)",
		Section: "Anthropic", Type: FieldOptionalString},

	{ID: "ollama_api_key", Key: "ollama.api_key", Label: "API Key", Hint: "Not required for Ollama",
		Section: "Ollama", Type: FieldOptionalString, Secret: true},
	{ID: "ollama_model", Key: "ollama.model", Label: "Model", Hint: "e.g., llama3.2, mistral",
		Section: "Ollama", Type: FieldString},
	{ID: "ollama_url", Key: "ollama.url", Label: "URL", Hint: "Optional (leave empty for default)",
		Section: "Ollama", Type: FieldOptionalString},

	{ID: "timestamp_format", Key: "display.timestamp_format", Label: "Timestamp Format",
		Hint: "Go time layout (e.g., 2006-01-02 15:04:05)", Section: "Display", Type: FieldString},
	{ID: "cursor_style", Key: "display.cursor_style", Label: "Cursor Style", Hint: "Choose cursor appearance",
		Section: "Display", Type: FieldEnum, EnumValues: CursorStyles()},
	{ID: "cursor_blink_ms", Key: "display.cursor_blink_ms", Label: "Cursor Blink Interval",
		Hint: "Blink interval in milliseconds (e.g., 500)", Section: "Display", Type: FieldUint},
	{ID: "markdown", Key: "display.markdown", Label: "Render Markdown", Hint: "Render replies as markdown",
		Section: "Display", Type: FieldEnum, EnumValues: []string{"true", "false"}},
	{ID: "code_theme", Key: "display.code_theme", Label: "Code Theme", Hint: "Syntax theme (e.g., monokai, dracula)",
		Section: "Display", Type: FieldString},
	{ID: "save_dir", Key: "save_dir", Label: "Save Directory", Hint: "Where /save writes logs (empty: current dir)",
		Section: "Display", Type: FieldOptionalString},
}

// Fields returns the editable fields in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldByID returns the field with the given ID.
func FieldByID(id string) (Field, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// GetField returns the value of a field as text.
func (c *Config) GetField(id string) (string, error) {
	f, ok := FieldByID(id)
	if !ok {
		return "", fmt.Errorf("unknown field %q", id)
	}
	v, err := c.Get(f.Key)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

// SetField parses value according to the field type and stores it.
func (c *Config) SetField(id, value string) error {
	f, ok := FieldByID(id)
	if !ok {
		return fmt.Errorf("unknown field %q", id)
	}

	value = strings.TrimSpace(value)
	switch f.Type {
	case FieldString:
		if value == "" {
			return ValidationError{Field: f.Key, Message: "must not be empty"}
		}
	case FieldEnum:
		canonical, ok := matchEnum(f.EnumValues, value)
		if !ok {
			return ValidationError{
				Field:   f.Key,
				Message: fmt.Sprintf("must be one of %s", strings.Join(f.EnumValues, ", ")),
			}
		}
		value = canonical
	case FieldUint:
		if _, err := strconv.ParseUint(value, 10, 32); err != nil {
			return ValidationError{Field: f.Key, Message: "must be a non-negative whole number"}
		}
	}

	if err := c.Set(f.Key, value); err != nil {
		return ValidationError{Field: f.Key, Message: err.Error()}
	}
	return nil
}

// DisplayField returns a field's value as shown in the editor: secrets
// masked and empty values as "(empty)".
func (c *Config) DisplayField(id string) string {
	v, err := c.GetField(id)
	if err != nil {
		return "(unknown)"
	}
	if v == "" {
		return "(empty)"
	}
	if f, _ := FieldByID(id); f.Secret {
		return util.MaskSecret(v)
	}
	return v
}

func matchEnum(values []string, v string) (string, bool) {
	for _, e := range values {
		if strings.EqualFold(e, v) {
			return e, true
		}
	}
	return "", false
}
