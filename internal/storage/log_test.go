// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/onyx-tui/internal/model"
)

func fixedMessages(ts time.Time) []*model.Message {
	user := model.NewUserMessage("what is 2+2?")
	user.Timestamp = ts

	reply := model.NewAssistantMessage("4")
	reply.Thinking = "add them"
	reply.Timestamp = ts.Add(time.Second)
	return []*model.Message{user, reply}
}

func TestFormatLog(t *testing.T) {
	ts := time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC)
	got := FormatLog(fixedMessages(ts), ts.Add(time.Minute), nil)

	want := strings.Join([]string{
		"Onyx Conversation Log",
		"Generated: 2025-03-04 10:21:30",
		strings.Repeat("=", 80),
		"",
		"[USER] USER at 2025-03-04 10:20:30",
		strings.Repeat("-", 80),
		"what is 2+2?",
		"",
		strings.Repeat("=", 80),
		"",
		"[ASSISTANT] ASSISTANT at 2025-03-04 10:20:31",
		strings.Repeat("-", 80),
		"(thinking)",
		"add them",
		"(end thinking)",
		"",
		"4",
		"",
		strings.Repeat("=", 80),
		"",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatLogEmptyAndCustomFormat(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got := FormatLog(nil, ts, func(t time.Time) string { return t.Format(time.RFC3339) })
	assert.Equal(t, "Onyx Conversation Log\nGenerated: 2025-01-01T00:00:00Z\n"+strings.Repeat("=", 80)+"\n\n", got)
}

func TestLogWriterSave(t *testing.T) {
	dir := t.TempDir()
	ts := time.Unix(1735689600, 0)
	w := &LogWriter{Dir: filepath.Join(dir, "logs"), Now: func() time.Time { return ts }}

	path, err := w.Save(fixedMessages(ts))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs", "onyx-conversation-1735689600.log"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Onyx Conversation Log\n"))
	assert.Contains(t, string(data), "what is 2+2?")
}

func TestLogWriterSaveError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0600))

	_, err := (&LogWriter{Dir: file}).Save(nil)
	assert.ErrorContains(t, err, "save conversation log")
}
