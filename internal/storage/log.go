// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/onyx-tui/internal/model"
	"github.com/jeranaias/onyx-tui/internal/util"
)

const ruleWidth = 80

var (
	doubleRule = strings.Repeat("=", ruleWidth)
	singleRule = strings.Repeat("-", ruleWidth)
)

// DefaultTimestampLayout is used when no formatter is given.
const DefaultTimestampLayout = "2006-01-02 15:04:05"

// =============================================================================
// LOG FORMAT
// =============================================================================

// FormatLog renders messages as a conversation log. format renders
// timestamps; nil uses DefaultTimestampLayout.
func FormatLog(messages []*model.Message, generated time.Time, format func(time.Time) string) string {
	if format == nil {
		format = func(t time.Time) string { return t.Format(DefaultTimestampLayout) }
	}

	var b strings.Builder
	b.WriteString("Onyx Conversation Log\n")
	fmt.Fprintf(&b, "Generated: %s\n", format(generated))
	b.WriteString(doubleRule + "\n\n")

	for _, msg := range messages {
		role := strings.ToUpper(msg.Role.String())
		fmt.Fprintf(&b, "[%s] %s at %s\n", role, role, format(msg.Timestamp))
		b.WriteString(singleRule + "\n")
		if msg.HasThinking() {
			b.WriteString("(thinking)\n")
			b.WriteString(msg.Thinking)
			b.WriteString("\n(end thinking)\n\n")
		}
		b.WriteString(msg.Content)
		b.WriteString("\n\n" + doubleRule + "\n\n")
	}
	return b.String()
}

// =============================================================================
// LOG WRITER
// =============================================================================

// LogWriter saves conversation logs into a directory.
type LogWriter struct {
	// Dir is the output directory. Empty means the working directory.
	Dir string

	// Format renders timestamps. Nil uses DefaultTimestampLayout.
	Format func(time.Time) string

	// Now returns the current time. Nil uses time.Now.
	Now func() time.Time
}

// FileName returns the log file name for a save at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("onyx-conversation-%d.log", t.Unix())
}

// Save writes the log and returns the path written.
func (w *LogWriter) Save(messages []*model.Message) (string, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	t := now()

	path := FileName(t)
	if w.Dir != "" {
		path = filepath.Join(w.Dir, path)
	}

	content := FormatLog(messages, t, w.Format)
	if err := util.AtomicWriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("save conversation log: %w", err)
	}
	return path, nil
}
