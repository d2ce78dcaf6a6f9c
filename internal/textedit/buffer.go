// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textedit provides the single-line editing buffer used by the chat
// input and the configuration editor, together with its undo history.
//
// All offsets are rune indices. The buffer stores its text as a rune slice so
// the cursor can never land inside a multi-byte sequence.
package textedit

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot captures the text and cursor of a buffer.
type Snapshot struct {
	Text   string
	Cursor int
}

// =============================================================================
// BUFFER
// =============================================================================

// Buffer is an editable line of text with a cursor and an optional
// selection anchor. The zero value is an empty buffer ready for use.
type Buffer struct {
	text      []rune
	cursor    int
	anchor    int
	anchorSet bool
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFrom creates a buffer holding s with the cursor at the end.
func NewBufferFrom(s string) *Buffer {
	b := &Buffer{}
	b.SetText(s)
	return b
}

// Text returns the buffer contents.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the length of the buffer in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsEmpty reports whether the buffer has no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// Cursor returns the cursor offset in runes.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// BeforeCursor returns the text between the start of the buffer and the cursor.
func (b *Buffer) BeforeCursor() string {
	return string(b.text[:b.cursor])
}

// Selection returns the half-open selected range. ok is false when there is
// no anchor or the anchor sits on the cursor.
func (b *Buffer) Selection() (start, end int, ok bool) {
	if !b.anchorSet || b.anchor == b.cursor {
		return 0, 0, false
	}
	if b.anchor < b.cursor {
		return b.anchor, b.cursor, true
	}
	return b.cursor, b.anchor, true
}

// HasSelection reports whether a non-empty selection exists.
func (b *Buffer) HasSelection() bool {
	_, _, ok := b.Selection()
	return ok
}

// =============================================================================
// EDITING
// =============================================================================

// Insert replaces the selection, if any, with r and advances the cursor by one rune.
func (b *Buffer) Insert(r rune) {
	b.deleteSelection()
	b.text = append(b.text, 0)
	copy(b.text[b.cursor+1:], b.text[b.cursor:])
	b.text[b.cursor] = r
	b.cursor++
}

// InsertString inserts s at the cursor, replacing the selection if any.
func (b *Buffer) InsertString(s string) {
	if s == "" {
		b.deleteSelection()
		return
	}
	b.deleteSelection()
	b.splice(b.cursor, b.cursor, []rune(s))
}

// DeleteBefore removes the selection, or the rune before the cursor.
// It is a no-op at the start of the buffer.
func (b *Buffer) DeleteBefore() {
	if b.deleteSelection() {
		return
	}
	if b.cursor == 0 {
		return
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
}

// DeleteAfter removes the selection, or the rune under the cursor.
// It is a no-op at the end of the buffer.
func (b *Buffer) DeleteAfter() {
	if b.deleteSelection() {
		return
	}
	if b.cursor >= len(b.text) {
		return
	}
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
}

// ReplaceRange replaces the runes in [start, end) with s and leaves the cursor
// just after the inserted text. Offsets are clamped to the buffer.
func (b *Buffer) ReplaceRange(start, end int, s string) {
	start = b.clamp(start)
	end = b.clamp(end)
	if start > end {
		start, end = end, start
	}
	b.splice(start, end, []rune(s))
}

// SetText replaces the whole buffer and moves the cursor to the end.
func (b *Buffer) SetText(s string) {
	b.text = []rune(s)
	b.cursor = len(b.text)
	b.anchorSet = false
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.text = b.text[:0]
	b.cursor = 0
	b.anchorSet = false
}

// Take returns the text and resets the buffer.
func (b *Buffer) Take() string {
	s := string(b.text)
	b.text = nil
	b.cursor = 0
	b.anchorSet = false
	return s
}

// =============================================================================
// MOVEMENT AND SELECTION
// =============================================================================

// MoveLeft moves the cursor one rune left. With extend, the selection grows
// from an anchor set on the first extending move. Without extend, an existing
// selection collapses to its left edge instead of moving.
func (b *Buffer) MoveLeft(extend bool) {
	if extend {
		if !b.anchorSet {
			b.anchor = b.cursor
			b.anchorSet = true
		}
		if b.cursor > 0 {
			b.cursor--
		}
		return
	}
	if start, _, ok := b.Selection(); ok {
		b.cursor = start
		b.anchorSet = false
		return
	}
	b.anchorSet = false
	if b.cursor > 0 {
		b.cursor--
	}
}

// MoveRight is the mirror of MoveLeft.
func (b *Buffer) MoveRight(extend bool) {
	if extend {
		if !b.anchorSet {
			b.anchor = b.cursor
			b.anchorSet = true
		}
		if b.cursor < len(b.text) {
			b.cursor++
		}
		return
	}
	if _, end, ok := b.Selection(); ok {
		b.cursor = end
		b.anchorSet = false
		return
	}
	b.anchorSet = false
	if b.cursor < len(b.text) {
		b.cursor++
	}
}

// SelectAll anchors at the start and places the cursor at the end.
func (b *Buffer) SelectAll() {
	b.anchor = 0
	b.anchorSet = true
	b.cursor = len(b.text)
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

// Snapshot returns the current text and cursor.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{Text: string(b.text), Cursor: b.cursor}
}

// Restore replaces the buffer with s. The cursor is clamped and the
// selection cleared.
func (b *Buffer) Restore(s Snapshot) {
	b.text = []rune(s.Text)
	b.cursor = b.clamp(s.Cursor)
	b.anchorSet = false
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

func (b *Buffer) deleteSelection() bool {
	start, end, ok := b.Selection()
	b.anchorSet = false
	if !ok {
		return false
	}
	b.splice(start, end, nil)
	return true
}

// splice replaces text[start:end] with repl and puts the cursor after repl.
func (b *Buffer) splice(start, end int, repl []rune) {
	out := make([]rune, 0, len(b.text)-(end-start)+len(repl))
	out = append(out, b.text[:start]...)
	out = append(out, repl...)
	out = append(out, b.text[end:]...)
	b.text = out
	b.cursor = start + len(repl)
	b.anchorSet = false
}

func (b *Buffer) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(b.text) {
		return len(b.text)
	}
	return i
}
