// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream turns a backend reply into an ordered sequence of session
// events and carries them to the UI loop.
//
// A Source produces events into a Sink. The Queue is the Sink the TUI drains
// once per tick; the Decoder paces a complete reply string into chunked
// thinking and content events.
package stream

import (
	"fmt"
	"sync"
)

// =============================================================================
// EVENTS
// =============================================================================

// EventKind identifies a session event.
type EventKind int

const (
	EventThinkingStart EventKind = iota
	EventThinkingChunk
	EventThinkingEnd
	EventContentChunk
	EventDone
	EventError
)

// String returns the name of the kind.
func (k EventKind) String() string {
	switch k {
	case EventThinkingStart:
		return "ThinkingStart"
	case EventThinkingChunk:
		return "ThinkingChunk"
	case EventThinkingEnd:
		return "ThinkingEnd"
	case EventContentChunk:
		return "ContentChunk"
	case EventDone:
		return "Done"
	case EventError:
		return "Error"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one session event. Text is set for chunks and errors.
type Event struct {
	Kind EventKind
	Text string
}

// IsTerminal reports whether e ends a decode run.
func (e Event) IsTerminal() bool {
	return e.Kind == EventDone || e.Kind == EventError
}

// Constructors for the event variants.
func ThinkingStart() Event { return Event{Kind: EventThinkingStart} }
func ThinkingChunk(s string) Event { return Event{Kind: EventThinkingChunk, Text: s} }
func ThinkingEnd() Event { return Event{Kind: EventThinkingEnd} }
func ContentChunk(s string) Event { return Event{Kind: EventContentChunk, Text: s} }
func Done() Event { return Event{Kind: EventDone} }
func Error(msg string) Event { return Event{Kind: EventError, Text: msg} }

// =============================================================================
// SINK AND QUEUE
// =============================================================================

// Sink receives events. Send reports false once the receiver has gone away,
// after which producers should stop.
type Sink interface {
	Send(e Event) bool
}

// Queue is an unbounded FIFO Sink. Send never blocks; Drain returns every
// queued event in order without blocking. After Close, sends are dropped.
//
// Queue must be used as a pointer.
type Queue struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

// NewQueue creates an open, empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Send appends e. It returns false if the queue is closed.
func (q *Queue) Send(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.events = append(q.events, e)
	return true
}

// Drain removes and returns all queued events.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Close disconnects the queue. Pending events are discarded.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.events = nil
}
