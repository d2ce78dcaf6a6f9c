// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import (
	"context"
	"errors"
	"time"

	"github.com/jeranaias/onyx-tui/internal/logging"
)

// =============================================================================
// SOURCES
// =============================================================================

// Source produces the events for one prompt into sink. Implementations end
// with exactly one Done or Error unless ctx is cancelled or the sink closes.
// A backend that streams natively implements Source directly.
type Source interface {
	Stream(ctx context.Context, prompt string, sink Sink)
}

// Completer returns a complete reply for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SimulatedSource adapts a non-streaming Completer: it waits for the full
// reply and then paces it through a Decoder.
type SimulatedSource struct {
	Completer Completer
	Decoder   *Decoder
}

// NewSimulatedSource wraps c with a default Decoder.
func NewSimulatedSource(c Completer) *SimulatedSource {
	return &SimulatedSource{Completer: c, Decoder: NewDecoder()}
}

// Stream implements Source. A failed backend call produces a single Error event.
func (s *SimulatedSource) Stream(ctx context.Context, prompt string, sink Sink) {
	logger := logging.For("stream")
	start := time.Now()

	reply, err := s.Completer.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			logger.Debug("backend call cancelled", "err", err)
			return
		}
		logger.Error("backend call failed", "err", err, "elapsed", time.Since(start))
		sink.Send(Error(err.Error()))
		return
	}

	dec := s.Decoder
	if dec == nil {
		dec = NewDecoder()
	}
	sent, err := dec.Decode(ctx, reply, sink)
	switch {
	case err == nil:
		logger.Debug("reply decoded", "runes", len([]rune(reply)), "events", sent, "elapsed", time.Since(start))
	case errors.Is(err, ErrSinkClosed):
		logger.Debug("sink closed mid-reply", "events", sent)
	default:
		logger.Debug("decode stopped", "err", err, "events", sent)
	}
}

// Start runs src in a new goroutine.
func Start(ctx context.Context, src Source, prompt string, sink Sink) {
	go src.Stream(ctx, prompt, sink)
}
