// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the application-wide structured logger.
//
// The TUI owns the terminal, so log output goes to a rotated file under the
// config directory and is discarded until Configure is called.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "ONYX_LOG_LEVEL"

// =============================================================================
// GLOBAL LOGGER
// =============================================================================

var (
	mu      sync.RWMutex
	logger  = newLogger(io.Discard, log.InfoLevel)
	rotator *lumberjack.Logger
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05.000",
		Level:           level,
	})
	return l
}

// Options controls where and how much the logger writes.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// File is the log file path. Empty discards output.
	File string

	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept.
	MaxBackups int

	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int
}

// DefaultOptions returns rotation settings for a log file at path.
func DefaultOptions(path string) Options {
	return Options{
		Level:      "info",
		File:       path,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// Configure replaces the global logger. The ONYX_LOG_LEVEL environment
// variable takes precedence over opts.Level.
func Configure(opts Options) error {
	level := opts.Level
	if env := strings.ToLower(os.Getenv(EnvLogLevel)); env != "" {
		level = env
	}

	var out io.Writer = io.Discard
	var rot *lumberjack.Logger
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return err
		}
		rot = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		out = rot
	}

	mu.Lock()
	defer mu.Unlock()
	if rotator != nil {
		rotator.Close()
	}
	rotator = rot
	logger = newLogger(out, ParseLevel(level))
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	logger = newLogger(io.Discard, logger.GetLevel())
	return err
}

// ParseLevel converts a level name to a log level. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Logger returns the current global logger.
func Logger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// For returns a logger prefixed with a component name.
func For(component string) *log.Logger {
	return Logger().WithPrefix(component)
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger().Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger().Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger().Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger().Error(msg, keyvals...)
}
