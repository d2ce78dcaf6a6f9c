// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"
)

// maxLineSize bounds a single streamed JSON line.
const maxLineSize = 1 << 20

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader parses a newline-delimited JSON chat stream.
type StreamReader struct {
	scanner *bufio.Scanner
	model   string
}

// NewStreamReader creates a new stream reader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &StreamReader{scanner: sc}
}

// Process reads the stream and calls callback for each chunk. It stops after
// the chunk marked Done, at end of input, on a callback error, or when ctx is
// cancelled.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for s.scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		chunk, err := s.parse(line)
		if err != nil {
			return err
		}
		if err := callback(chunk); err != nil {
			return err
		}
		if chunk.Done {
			return nil
		}
	}

	if err := s.scanner.Err(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &ClientError{Type: ErrTypeConnection, Message: "stream interrupted", Cause: err}
	}
	return ctx.Err()
}

// parse decodes one line. A line carrying an "error" field ends the stream
// with that error.
func (s *StreamReader) parse(line []byte) (StreamChunk, error) {
	var response struct {
		ChatResponse
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(line, &response); err != nil {
		return StreamChunk{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "malformed stream line", Cause: err}
	}
	if response.Error != "" {
		return StreamChunk{}, &ClientError{Type: ErrTypeInvalidResponse, Message: response.Error}
	}

	if response.Model != "" {
		s.model = response.Model
	}

	chunk := StreamChunk{
		Content:  response.Message.Content,
		Thinking: response.Message.Thinking,
		Done:     response.Done,
		Model:    s.model,
	}
	if response.Done {
		chunk.DoneReason = response.DoneReason
		chunk.TotalDuration = time.Duration(response.TotalDuration)
		chunk.CompletionTokens = response.EvalCount
	}
	return chunk, nil
}

