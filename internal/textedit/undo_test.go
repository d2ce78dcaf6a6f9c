// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textedit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestUndo() (*UndoManager, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	return NewUndoManagerWithClock(clock.Now), clock
}

// =============================================================================
// UNDO MANAGER TESTS
// =============================================================================

func TestUndoInitialState(t *testing.T) {
	u, _ := newTestUndo()
	assert.Equal(t, 1, u.Len())
	assert.Equal(t, 0, u.Position())

	_, ok := u.Undo()
	assert.False(t, ok, "undo at the oldest entry is a no-op")
}

func TestUndoGroupingInterval(t *testing.T) {
	u, clock := newTestUndo()

	assert.False(t, u.Save(Snapshot{Text: "a", Cursor: 1}, false), "within the interval")

	clock.Advance(DefaultGroupInterval)
	assert.False(t, u.Save(Snapshot{Text: "ab", Cursor: 2}, false), "elapsed must exceed the interval")

	clock.Advance(DefaultGroupInterval + time.Millisecond)
	assert.True(t, u.Save(Snapshot{Text: "abc", Cursor: 3}, false))
	assert.Equal(t, 2, u.Len())
}

func TestUndoSkipsDuplicates(t *testing.T) {
	u, _ := newTestUndo()
	s := Snapshot{Text: "x", Cursor: 1}
	assert.True(t, u.Save(s, true))
	assert.False(t, u.Save(s, true))
	assert.Equal(t, 2, u.Len())

	// Only consecutive duplicates are skipped.
	assert.True(t, u.Save(Snapshot{}, true))
	assert.Equal(t, 3, u.Len())
}

func TestUndoTruncatesRedoTail(t *testing.T) {
	u, _ := newTestUndo()
	u.Save(Snapshot{Text: "a", Cursor: 1}, true)
	u.Save(Snapshot{Text: "ab", Cursor: 2}, true)
	u.Save(Snapshot{Text: "abc", Cursor: 3}, true)

	s, ok := u.Undo()
	require.True(t, ok)
	assert.Equal(t, "ab", s.Text)

	u.Save(Snapshot{Text: "abX", Cursor: 3}, true)
	assert.Equal(t, 4, u.Len())
	assert.Equal(t, 3, u.Position())

	s, _ = u.Undo()
	assert.Equal(t, "ab", s.Text)
}

func TestUndoStrictInverseWalk(t *testing.T) {
	for _, n := range []int{1, 5, DefaultCapacity - 1} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			u, _ := newTestUndo()
			for i := 1; i <= n; i++ {
				u.Save(Snapshot{Text: fmt.Sprint(i), Cursor: 1}, true)
			}
			var last Snapshot
			for i := 0; i < n; i++ {
				s, ok := u.Undo()
				require.True(t, ok)
				last = s
			}
			assert.Equal(t, Snapshot{}, last)
			_, ok := u.Undo()
			assert.False(t, ok)
		})
	}
}

func TestUndoCapacityEviction(t *testing.T) {
	u, _ := newTestUndo()
	for i := 0; i < DefaultCapacity*2; i++ {
		u.Save(Snapshot{Text: fmt.Sprint(i), Cursor: i}, true)
		require.LessOrEqual(t, u.Len(), DefaultCapacity)
		require.Less(t, u.Position(), u.Len())
	}
	assert.Equal(t, DefaultCapacity, u.Len())
	assert.Equal(t, DefaultCapacity-1, u.Position())
}

func TestUndoClear(t *testing.T) {
	u, _ := newTestUndo()
	u.Save(Snapshot{Text: "a", Cursor: 1}, true)
	u.Clear()
	assert.Equal(t, 1, u.Len())
	assert.Equal(t, 0, u.Position())
}

func TestIsWordBoundary(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{' ', true},
		{'\t', true},
		{'.', true},
		{'$', true},
		{'~', true},
		{'a', false},
		{'中', false},
		{'。', false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWordBoundary(tt.r), "rune %q", tt.r)
	}
}
