// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// DECODER CONSTANTS
// =============================================================================

const (
	// OpenMarker starts a thinking section.
	OpenMarker = "<thinking>"

	// CloseMarker ends a thinking section.
	CloseMarker = "</thinking>"

	// DefaultFlushSize is the number of runes emitted per chunk.
	DefaultFlushSize = 5

	// DefaultPace is the delay after each size-triggered flush.
	DefaultPace = 10 * time.Millisecond
)

// ErrSinkClosed is returned when the sink stops accepting events mid-run.
var ErrSinkClosed = errors.New("stream: sink closed")

var (
	openRunes  = []rune(OpenMarker)
	closeRunes = []rune(CloseMarker)
)

// =============================================================================
// DECODER
// =============================================================================

// Decoder splits a reply into paced thinking and content chunks.
//
// Text between OpenMarker and CloseMarker is thinking; everything else is
// content. A trailing partial marker is held back from a chunk until it either
// completes or stops matching, so markers are never split across chunks.
type Decoder struct {
	// FlushSize is the chunk size in runes (default 5)
	FlushSize int

	// Pace is the delay after each size-triggered flush (default 10ms).
	// Zero disables pacing.
	Pace time.Duration
}

// NewDecoder creates a decoder with the default flush size and pace.
func NewDecoder() *Decoder {
	return &Decoder{FlushSize: DefaultFlushSize, Pace: DefaultPace}
}

// Decode emits the events for a complete reply into sink, ending with Done.
// It stops early with ErrSinkClosed if the sink disconnects, or with the
// context error if ctx is cancelled; in both cases no terminal event is sent.
// It returns the number of events delivered.
func (d *Decoder) Decode(ctx context.Context, reply string, sink Sink) (int, error) {
	sp := d.NewSplitter(ctx, sink)
	if err := sp.Write(reply); err != nil {
		return sp.Sent(), err
	}
	err := sp.Finish()
	return sp.Sent(), err
}

// =============================================================================
// SPLITTER
// =============================================================================

// Splitter is the incremental form of Decode. Text may arrive through Write
// in pieces of any size; the events are the same as for the joined reply.
type Splitter struct {
	ctx       context.Context
	sink      Sink
	limiter   *rate.Limiter
	flushSize int

	buf      []rune
	thinking bool
	sent     int
	finished bool
}

// NewSplitter starts an incremental decode run into sink.
func (d *Decoder) NewSplitter(ctx context.Context, sink Sink) *Splitter {
	flushSize := d.FlushSize
	if flushSize <= 0 {
		flushSize = DefaultFlushSize
	}
	sp := &Splitter{ctx: ctx, sink: sink, flushSize: flushSize}
	if d.Pace > 0 {
		sp.limiter = rate.NewLimiter(rate.Every(d.Pace), 1)
		sp.limiter.Allow()
	}
	return sp
}

// Sent returns the number of events delivered so far.
func (sp *Splitter) Sent() int {
	return sp.sent
}

// Write feeds text into the run.
func (sp *Splitter) Write(text string) error {
	for _, c := range text {
		if err := sp.ctx.Err(); err != nil {
			return err
		}
		sp.buf = append(sp.buf, c)

		switch {
		case hasSuffix(sp.buf, openRunes):
			// Reopening while already thinking is allowed.
			if err := sp.emitText(len(sp.buf) - len(openRunes)); err != nil {
				return err
			}
			sp.buf = sp.buf[:0]
			sp.thinking = true
			if err := sp.send(ThinkingStart()); err != nil {
				return err
			}

		case sp.thinking && hasSuffix(sp.buf, closeRunes):
			if err := sp.emitText(len(sp.buf) - len(closeRunes)); err != nil {
				return err
			}
			sp.buf = sp.buf[:0]
			sp.thinking = false
			if err := sp.send(ThinkingEnd()); err != nil {
				return err
			}

		default:
			// A partial marker that stops matching can release more than
			// one chunk at once.
			for len(sp.buf)-sp.heldBack() >= sp.flushSize {
				if err := sp.emitText(sp.flushSize); err != nil {
					return err
				}
				sp.buf = append(sp.buf[:0], sp.buf[sp.flushSize:]...)
				if err := sp.pace(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Finish flushes the remaining text, closes an open thinking section and
// sends Done. Calling it again is a no-op.
func (sp *Splitter) Finish() error {
	if sp.finished {
		return nil
	}
	sp.finished = true
	if err := sp.ctx.Err(); err != nil {
		return err
	}
	if err := sp.emitText(len(sp.buf)); err != nil {
		return err
	}
	sp.buf = sp.buf[:0]
	if sp.thinking {
		sp.thinking = false
		if err := sp.send(ThinkingEnd()); err != nil {
			return err
		}
	}
	return sp.send(Done())
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// emitText sends buf[:n] as chunks of at most flushSize runes of the current
// kind. Empty text is skipped.
func (sp *Splitter) emitText(n int) error {
	for start := 0; start < n; start += sp.flushSize {
		end := min(start+sp.flushSize, n)
		text := string(sp.buf[start:end])
		e := ContentChunk(text)
		if sp.thinking {
			e = ThinkingChunk(text)
		}
		if err := sp.send(e); err != nil {
			return err
		}
	}
	return nil
}

func (sp *Splitter) send(e Event) error {
	if !sp.sink.Send(e) {
		return ErrSinkClosed
	}
	sp.sent++
	return nil
}

func (sp *Splitter) pace() error {
	if sp.limiter == nil {
		return nil
	}
	return sp.limiter.Wait(sp.ctx)
}

// heldBack returns how many trailing runes could still become a marker.
func (sp *Splitter) heldBack() int {
	held := partialSuffix(sp.buf, openRunes)
	if sp.thinking {
		if n := partialSuffix(sp.buf, closeRunes); n > held {
			held = n
		}
	}
	return held
}

// partialSuffix returns the length of the longest proper prefix of marker
// that is a suffix of buf.
func partialSuffix(buf, marker []rune) int {
	for k := len(marker) - 1; k > 0; k-- {
		if hasSuffix(buf, marker[:k]) {
			return k
		}
	}
	return 0
}

func hasSuffix(buf, suffix []rune) bool {
	if len(suffix) > len(buf) {
		return false
	}
	off := len(buf) - len(suffix)
	for i, r := range suffix {
		if buf[off+i] != r {
			return false
		}
	}
	return true
}
