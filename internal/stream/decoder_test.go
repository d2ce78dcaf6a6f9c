// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func decodeAll(t *testing.T, reply string) []Event {
	t.Helper()
	q := NewQueue()
	dec := &Decoder{FlushSize: DefaultFlushSize}
	_, err := dec.Decode(context.Background(), reply, q)
	require.NoError(t, err)
	return q.Drain()
}

func split(events []Event) (content, thinking string) {
	var c, th strings.Builder
	for _, e := range events {
		switch e.Kind {
		case EventContentChunk:
			c.WriteString(e.Text)
		case EventThinkingChunk:
			th.WriteString(e.Text)
		}
	}
	return c.String(), th.String()
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, e := range events {
		if len(out) > 0 && out[len(out)-1] == e.Kind &&
			(e.Kind == EventContentChunk || e.Kind == EventThinkingChunk) {
			continue
		}
		out = append(out, e.Kind)
	}
	return out
}

// limitedSink accepts n events and then reports disconnection.
type limitedSink struct {
	n   int
	got []Event
}

func (s *limitedSink) Send(e Event) bool {
	if len(s.got) >= s.n {
		return false
	}
	s.got = append(s.got, e)
	return true
}

// =============================================================================
// DECODER TESTS
// =============================================================================

func TestDecodeThinkingSplit(t *testing.T) {
	events := decodeAll(t, "hello <thinking>planning</thinking> world")

	assert.Equal(t, []EventKind{
		EventContentChunk,
		EventThinkingStart,
		EventThinkingChunk,
		EventThinkingEnd,
		EventContentChunk,
		EventDone,
	}, kinds(events))

	// Content before the marker.
	var before strings.Builder
	for _, e := range events {
		if e.Kind == EventThinkingStart {
			break
		}
		before.WriteString(e.Text)
	}
	assert.Equal(t, "hello ", before.String())

	content, thinking := split(events)
	assert.Equal(t, "hello  world", content)
	assert.Equal(t, "planning", thinking)
}

func TestDecodeChunkSize(t *testing.T) {
	events := decodeAll(t, "abcdefghijkl")
	require.Len(t, events, 4)
	assert.Equal(t, "abcde", events[0].Text)
	assert.Equal(t, "fghij", events[1].Text)
	assert.Equal(t, "kl", events[2].Text)
	assert.Equal(t, EventDone, events[3].Kind)
}

func TestDecodeMultiByteChunks(t *testing.T) {
	events := decodeAll(t, "日本語のテキストです")
	for _, e := range events[:len(events)-1] {
		assert.LessOrEqual(t, len([]rune(e.Text)), DefaultFlushSize)
	}
	content, _ := split(events)
	assert.Equal(t, "日本語のテキストです", content)
}

func TestDecodeChunksNeverExceedFlushSize(t *testing.T) {
	tests := []struct {
		reply    string
		content  string
		thinking string
	}{
		{">i</thinking> </thinking>gn", ">i</thinking> </thinking>gn", ""},
		{"abcd<thinkinX and more", "abcd<thinkinX and more", ""},
		{"abcd</thinki", "abcd</thinki", ""},
		{"<thinking>xy</thinkin</thinking>done", "done", "xy</thinkin"},
	}
	for _, tt := range tests {
		events := decodeAll(t, tt.reply)
		for _, e := range events {
			assert.LessOrEqual(t, len([]rune(e.Text)), DefaultFlushSize, "chunk %q of %q", e.Text, tt.reply)
		}
		content, thinking := split(events)
		assert.Equal(t, tt.content, content, tt.reply)
		assert.Equal(t, tt.thinking, thinking, tt.reply)
	}
}

func TestDecodeUnterminatedThinking(t *testing.T) {
	events := decodeAll(t, "<thinking>still going")
	assert.Equal(t, []EventKind{
		EventThinkingStart,
		EventThinkingChunk,
		EventThinkingEnd,
		EventDone,
	}, kinds(events))
	_, thinking := split(events)
	assert.Equal(t, "still going", thinking)
}

func TestDecodeCloseWithoutOpenIsContent(t *testing.T) {
	events := decodeAll(t, "a</thinking>b")
	content, thinking := split(events)
	assert.Equal(t, "a</thinking>b", content)
	assert.Empty(t, thinking)
}

func TestDecodeReopen(t *testing.T) {
	events := decodeAll(t, "<thinking>one<thinking>two</thinking>")
	assert.Equal(t, []EventKind{
		EventThinkingStart,
		EventThinkingChunk,
		EventThinkingStart,
		EventThinkingChunk,
		EventThinkingEnd,
		EventDone,
	}, kinds(events))
}

func TestDecodeEmptyReply(t *testing.T) {
	events := decodeAll(t, "")
	require.Len(t, events, 1)
	assert.Equal(t, EventDone, events[0].Kind)
}

func TestDecodeTerminalEventOnce(t *testing.T) {
	replies := []string{
		"",
		"plain",
		"<thinking></thinking>",
		"x <thinking>y</thinking> z <thinking>w",
		"<thin",
		strings.Repeat("<", 40),
	}
	for _, reply := range replies {
		events := decodeAll(t, reply)
		terminal := 0
		for _, e := range events {
			if e.IsTerminal() {
				terminal++
			}
		}
		assert.Equal(t, 1, terminal, "reply %q", reply)
		assert.True(t, events[len(events)-1].IsTerminal())

		content, thinking := split(events)
		assert.Equal(t, len([]rune(reply)), len([]rune(content+thinking))+
			strings.Count(reply, OpenMarker)*len(openRunes)+
			countClosed(reply)*len(closeRunes), "reply %q", reply)
	}
}

// countClosed counts close markers that follow an open marker.
func countClosed(reply string) int {
	n := 0
	open := false
	for i := 0; i < len(reply); i++ {
		switch {
		case strings.HasPrefix(reply[i:], OpenMarker):
			open = true
		case open && strings.HasPrefix(reply[i:], CloseMarker):
			n++
			open = false
		}
	}
	return n
}

func TestDecodeStopsWhenSinkCloses(t *testing.T) {
	sink := &limitedSink{n: 2}
	dec := &Decoder{FlushSize: 5}
	sent, err := dec.Decode(context.Background(), strings.Repeat("x", 100), sink)

	assert.ErrorIs(t, err, ErrSinkClosed)
	assert.Equal(t, 2, sent)
	for _, e := range sink.got {
		assert.False(t, e.IsTerminal())
	}
}

func TestDecodeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewQueue()
	dec := &Decoder{FlushSize: 5, Pace: time.Hour}

	done := make(chan error, 1)
	go func() {
		_, err := dec.Decode(ctx, strings.Repeat("y", 50), q)
		done <- err
	}()

	require.Eventually(t, func() bool { return q.Len() > 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("decode did not stop after cancel")
	}
	for _, e := range q.Drain() {
		assert.False(t, e.IsTerminal())
	}
}

func TestDecodePacing(t *testing.T) {
	q := NewQueue()
	dec := &Decoder{FlushSize: 5, Pace: 5 * time.Millisecond}

	start := time.Now()
	_, err := dec.Decode(context.Background(), strings.Repeat("z", 20), q)
	require.NoError(t, err)

	// Four size-triggered flushes, each followed by a pause.
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestSplitterPiecesMatchWholeReply(t *testing.T) {
	reply := "intro <thinking>step one, step two</thinking> the answer is 42"
	want := decodeAll(t, reply)

	for _, size := range []int{1, 2, 3, 7, 11} {
		q := NewQueue()
		dec := &Decoder{FlushSize: DefaultFlushSize}
		sp := dec.NewSplitter(context.Background(), q)

		runes := []rune(reply)
		for i := 0; i < len(runes); i += size {
			end := min(i+size, len(runes))
			require.NoError(t, sp.Write(string(runes[i:end])))
		}
		require.NoError(t, sp.Finish())
		require.NoError(t, sp.Finish())

		assert.Equal(t, want, q.Drain(), "piece size %d", size)
		assert.Equal(t, len(want), sp.Sent())
	}
}

func TestSplitterMarkerAcrossWrites(t *testing.T) {
	q := NewQueue()
	sp := (&Decoder{FlushSize: 1}).NewSplitter(context.Background(), q)

	require.NoError(t, sp.Write("a<thin"))
	require.NoError(t, sp.Write("king>b</th"))
	require.NoError(t, sp.Write("inking>c"))
	require.NoError(t, sp.Finish())

	events := q.Drain()
	for _, e := range events {
		assert.NotContains(t, e.Text, "<")
	}
	content, thinking := split(events)
	assert.Equal(t, "ac", content)
	assert.Equal(t, "b", thinking)
}

// =============================================================================
// QUEUE TESTS
// =============================================================================

func TestQueueFIFOAndClose(t *testing.T) {
	q := NewQueue()
	assert.Nil(t, q.Drain())

	assert.True(t, q.Send(ContentChunk("a")))
	assert.True(t, q.Send(ContentChunk("b")))
	assert.True(t, q.Send(Done()))

	got := q.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)
	assert.Equal(t, EventDone, got[2].Kind)
	assert.Equal(t, 0, q.Len())

	q.Close()
	assert.False(t, q.Send(Done()))
	assert.Nil(t, q.Drain())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "ThinkingStart", EventThinkingStart.String())
	assert.Equal(t, "Error", EventError.String())
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
}
