// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textedit

import (
	"time"
	"unicode"
)

// =============================================================================
// UNDO CONSTANTS
// =============================================================================

const (
	// DefaultGroupInterval is how long edits are grouped into one snapshot
	// when the caller does not force a save.
	DefaultGroupInterval = 500 * time.Millisecond

	// DefaultCapacity is the maximum number of snapshots kept.
	DefaultCapacity = 100
)

// =============================================================================
// UNDO MANAGER
// =============================================================================

// UndoManager keeps a bounded, time-grouped history of buffer snapshots.
// The history always holds at least one entry and position always indexes it.
type UndoManager struct {
	history  []Snapshot
	position int
	lastSave time.Time

	interval time.Duration
	capacity int
	now      func() time.Time
}

// NewUndoManagerWithClock creates a history holding one empty snapshot that
// reads time from now.
func NewUndoManagerWithClock(now func() time.Time) *UndoManager {
	u := &UndoManager{
		interval: DefaultGroupInterval,
		capacity: DefaultCapacity,
		now:      now,
	}
	u.Clear()
	return u
}

// Save records s when force is set or the grouping interval has elapsed since
// the last save attempt. Any redo tail beyond the current position is dropped,
// and a snapshot equal to the last entry is not pushed again. It reports
// whether a new entry was added.
func (u *UndoManager) Save(s Snapshot, force bool) bool {
	now := u.now()
	if !force && now.Sub(u.lastSave) <= u.interval {
		return false
	}
	u.lastSave = now

	u.history = u.history[:u.position+1]
	if u.history[len(u.history)-1] == s {
		return false
	}

	u.history = append(u.history, s)
	u.position = len(u.history) - 1

	if len(u.history) > u.capacity {
		u.history = append(u.history[:0], u.history[1:]...)
		if u.position > 0 {
			u.position--
		}
	}
	return true
}

// Undo steps back one entry and returns it. At the oldest entry it returns false.
func (u *UndoManager) Undo() (Snapshot, bool) {
	if u.position == 0 {
		return Snapshot{}, false
	}
	u.position--
	return u.history[u.position], true
}

// Clear resets the history to a single empty snapshot.
func (u *UndoManager) Clear() {
	u.history = []Snapshot{{}}
	u.position = 0
	u.lastSave = u.now()
}

// Len returns the number of stored snapshots.
func (u *UndoManager) Len() int {
	return len(u.history)
}

// Position returns the index of the current snapshot.
func (u *UndoManager) Position() int {
	return u.position
}

// IsWordBoundary reports whether typing r should force a new undo group.
func IsWordBoundary(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	return r <= unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r))
}
