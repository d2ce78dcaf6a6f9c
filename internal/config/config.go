// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/onyx-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Provider names a language-model provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
)

// Providers returns every supported provider in display order.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderAnthropic, ProviderOllama}
}

// ParseProvider parses a provider name, ignoring case.
func ParseProvider(s string) (Provider, error) {
	for _, p := range Providers() {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown provider %q (want openai, anthropic or ollama)", s)
}

// DisplayName returns the provider name as shown to the user.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderOllama:
		return "Ollama"
	default:
		return string(p)
	}
}

// NeedsAPIKey reports whether the provider requires an API key.
func (p Provider) NeedsAPIKey() bool {
	return p != ProviderOllama
}

// ProviderConfig holds the settings for one provider. Empty URL means the
// provider's default endpoint.
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
	URL    string `toml:"url"`
}

// DisplayConfig holds the rendering settings.
type DisplayConfig struct {
	// TimestampFormat is a Go time layout.
	TimestampFormat string `toml:"timestamp_format"`

	// CursorStyle is one of block, block_blinking, line, line_blinking.
	CursorStyle string `toml:"cursor_style"`

	CursorBlinkMS int  `toml:"cursor_blink_ms"`
	Markdown      bool `toml:"markdown"`

	// CodeTheme is a chroma style name.
	CodeTheme string `toml:"code_theme"`
}

// Config is the complete onyx configuration.
type Config struct {
	ActiveProvider Provider       `toml:"active_provider"`
	OpenAI         ProviderConfig `toml:"openai"`
	Anthropic      ProviderConfig `toml:"anthropic"`
	Ollama         ProviderConfig `toml:"ollama"`
	Display        DisplayConfig  `toml:"display"`

	// SaveDir is where /save writes conversation logs. Empty means the
	// working directory.
	SaveDir string `toml:"save_dir"`

	path string
}

// Cursor styles.
const (
	CursorBlock         = "block"
	CursorBlockBlinking = "block_blinking"
	CursorLine          = "line"
	CursorLineBlinking  = "line_blinking"
)

// CursorStyles returns the accepted cursor_style values.
func CursorStyles() []string {
	return []string{CursorBlock, CursorBlockBlinking, CursorLine, CursorLineBlinking}
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ActiveProvider: ProviderOpenAI,
		OpenAI:         ProviderConfig{Model: "gpt-5-nano"},
		Anthropic:      ProviderConfig{Model: "claude-3-5-sonnet-20241022"},
		Ollama:         ProviderConfig{Model: "llama3.2", URL: "http://localhost:11434"},
		Display: DisplayConfig{
			TimestampFormat: "2006-01-02 15:04:05",
			CursorStyle:     CursorLineBlinking,
			CursorBlinkMS:   500,
			Markdown:        true,
			CodeTheme:       "monokai",
		},
	}
}

// Active returns the settings of the active provider.
func (c *Config) Active() ProviderConfig {
	if pc := c.provider(c.ActiveProvider); pc != nil {
		return *pc
	}
	return ProviderConfig{}
}

func (c *Config) provider(p Provider) *ProviderConfig {
	switch p {
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOllama:
		return &c.Ollama
	default:
		return nil
	}
}

// MissingAPIKey reports whether the active provider needs a key it lacks.
func (c *Config) MissingAPIKey() bool {
	return c.ActiveProvider.NeedsAPIKey() && c.Active().APIKey == ""
}

// Path returns the file the config was loaded from or last saved to.
func (c *Config) Path() string {
	return c.path
}

// FormatTimestamp formats t with the configured layout.
func (c *Config) FormatTimestamp(t time.Time) string {
	layout := c.Display.TimestampFormat
	if layout == "" {
		layout = Default().Display.TimestampFormat
	}
	return t.Format(layout)
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the onyx configuration directory (~/.onyx).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".onyx"), nil
}

// DefaultPath returns ~/.onyx/config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ensureSecurePermissions tightens a config file to 0600, since it holds
// API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// CorruptError reports a config file that could not be decoded. The file
// was moved to BackupPath and defaults were written in its place.
type CorruptError struct {
	Path       string
	BackupPath string
	Cause      error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("config %s is invalid (moved to %s): %v", e.Path, e.BackupPath, e.Cause)
}

func (e *CorruptError) Unwrap() error {
	return e.Cause
}

// Load reads the TOML file at path. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	if err := ensureSecurePermissions(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger().Warn("could not secure config permissions", "path", path, "err", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	cfg.path = path
	return cfg, nil
}

// LoadOrCreate loads path, writing defaults there first if it does not
// exist. A file that fails to decode is renamed to
// "<path>.backup.<unix>" and replaced with defaults; the defaults are
// returned together with a *CorruptError.
func LoadOrCreate(path string) (*Config, error) {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := Save(cfg, path); err != nil {
			return nil, err
		}
		logger().Info("created default config", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	cfg, loadErr := Load(path)
	if loadErr == nil {
		logger().Debug("config loaded", "path", path, "provider", cfg.ActiveProvider)
		return cfg, nil
	}

	backup := fmt.Sprintf("%s.backup.%d", path, time.Now().Unix())
	if err := os.Rename(path, backup); err != nil {
		return nil, fmt.Errorf("failed to back up invalid config: %w", err)
	}
	cfg = Default()
	if err := Save(cfg, path); err != nil {
		return nil, err
	}
	logger().Warn("invalid config replaced with defaults", "path", path, "backup", backup, "err", loadErr)
	return cfg, &CorruptError{Path: path, BackupPath: backup, Cause: loadErr}
}

// fillDefaults fills empty values that have no meaning when blank.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.ActiveProvider == "" {
		cfg.ActiveProvider = defaults.ActiveProvider
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = defaults.OpenAI.Model
	}
	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = defaults.Anthropic.Model
	}
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = defaults.Ollama.Model
	}
	if cfg.Display.TimestampFormat == "" {
		cfg.Display.TimestampFormat = defaults.Display.TimestampFormat
	}
	if cfg.Display.CursorStyle == "" {
		cfg.Display.CursorStyle = defaults.Display.CursorStyle
	}
	if cfg.Display.CursorBlinkMS <= 0 {
		cfg.Display.CursorBlinkMS = defaults.Display.CursorBlinkMS
	}
	if cfg.Display.CodeTheme == "" {
		cfg.Display.CodeTheme = defaults.Display.CodeTheme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to path as TOML, atomically and with mode 0600.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# onyx configuration file\n")
	buf.WriteString("# Edit with care, or use /config inside onyx.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg.path = path
	logger().Debug("config saved", "path", path)
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration. A missing API key for the active
// provider is reported like any other problem; callers decide whether it
// is fatal.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if _, err := ParseProvider(string(c.ActiveProvider)); err != nil {
		errs = append(errs, ValidationError{Field: "active_provider", Message: err.Error()})
	} else if c.MissingAPIKey() {
		errs = append(errs, ValidationError{
			Field:   string(c.ActiveProvider) + ".api_key",
			Message: "API key required for " + c.ActiveProvider.DisplayName(),
		})
	}

	for _, p := range Providers() {
		if u := c.provider(p).URL; u != "" {
			if err := validateURL(u); err != nil {
				errs = append(errs, ValidationError{Field: string(p) + ".url", Message: err.Error()})
			}
		}
		if strings.TrimSpace(c.provider(p).Model) == "" {
			errs = append(errs, ValidationError{Field: string(p) + ".model", Message: "must not be empty"})
		}
	}

	if !contains(CursorStyles(), c.Display.CursorStyle) {
		errs = append(errs, ValidationError{
			Field:   "display.cursor_style",
			Message: fmt.Sprintf("must be one of %s", strings.Join(CursorStyles(), ", ")),
		})
	}
	if c.Display.CursorBlinkMS <= 0 {
		errs = append(errs, ValidationError{Field: "display.cursor_blink_ms", Message: "must be positive"})
	}
	if c.Display.TimestampFormat == "" {
		errs = append(errs, ValidationError{Field: "display.timestamp_format", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: %q", raw)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - ONYX_PROVIDER: overrides active_provider
//   - OPENAI_API_KEY: overrides openai.api_key
//   - ANTHROPIC_API_KEY: overrides anthropic.api_key
//   - ONYX_OLLAMA_URL: overrides ollama.url
//   - ONYX_MODEL: overrides the model of the active provider
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ONYX_PROVIDER"); v != "" {
		if p, err := ParseProvider(v); err == nil {
			c.ActiveProvider = p
		} else {
			logger().Warn("ignoring ONYX_PROVIDER", "err", err)
		}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.OpenAI.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		c.Anthropic.APIKey = key
	}
	if u := os.Getenv("ONYX_OLLAMA_URL"); u != "" {
		c.Ollama.URL = u
	}
	if model := os.Getenv("ONYX_MODEL"); model != "" {
		if pc := c.provider(c.ActiveProvider); pc != nil {
			pc.Model = model
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "openai.model").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks the exported struct fields named by a dot-separated key.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() || !field.CanInterface() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strings.TrimSpace(strVal), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strings.TrimSpace(strVal))
			if err != nil {
				return fmt.Errorf("invalid boolean value: %w", err)
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && field.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as TOML with API keys masked.
func (c *Config) String() string {
	safe := c.Clone()
	for _, p := range Providers() {
		pc := safe.provider(p)
		if pc.APIKey != "" {
			pc.APIKey = util.MaskSecret(pc.APIKey)
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(safe); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}
