// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scroll tracks the vertical offset of a line-based pane.
//
// The manager never sees the lines themselves. Callers pass the content
// length and viewport height on every render, and the manager reconciles its
// stored offset against them.
package scroll

// PageAmount is the number of lines moved by PageUp and PageDown.
const PageAmount = 10

// Manager owns a scroll offset and an auto-follow flag.
// Auto-follow pins the view to the last line until the user scrolls manually.
type Manager struct {
	position   int
	autoFollow bool
}

// New creates a manager that follows new content.
func New() *Manager {
	return &Manager{autoFollow: true}
}

// Position returns the index of the first visible line.
func (m *Manager) Position() int {
	return m.position
}

// AutoFollow reports whether the view is pinned to the bottom.
func (m *Manager) AutoFollow() bool {
	return m.autoFollow
}

// =============================================================================
// MANUAL SCROLLING
// =============================================================================

// LineUp scrolls up by n lines and stops following.
func (m *Manager) LineUp(n int) {
	m.autoFollow = false
	m.position -= n
	if m.position < 0 {
		m.position = 0
	}
}

// LineDown scrolls down by n lines and stops following. The offset is
// clamped on the next Update.
func (m *Manager) LineDown(n int) {
	m.autoFollow = false
	m.position += n
}

// PageUp scrolls up by PageAmount lines.
func (m *Manager) PageUp() {
	m.LineUp(PageAmount)
}

// PageDown scrolls down by PageAmount lines.
func (m *Manager) PageDown() {
	m.LineDown(PageAmount)
}

// Home jumps to the first line and stops following.
func (m *Manager) Home() {
	m.autoFollow = false
	m.position = 0
}

// End resumes following. The offset moves to the bottom on the next Update.
func (m *Manager) End() {
	m.autoFollow = true
}

// Reset returns to the initial following state.
func (m *Manager) Reset() {
	m.position = 0
	m.autoFollow = true
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// Update reconciles the offset with the current content. When following, the
// view is pinned to the bottom; otherwise the offset is clamped so a shrinking
// transcript never leaves the view past its end.
func (m *Manager) Update(contentLength, viewportHeight int) {
	if m.autoFollow {
		m.position = maxOffset(contentLength, viewportHeight)
		return
	}
	m.clamp(contentLength, viewportHeight)
}

// EnsureVisible moves the window the least amount needed to show line,
// then clamps to the content.
func (m *Manager) EnsureVisible(line, viewportHeight, contentLength int) {
	if line < m.position {
		m.position = line
	} else if viewportHeight > 0 && line >= m.position+viewportHeight {
		m.position = line - (viewportHeight - 1)
	}
	m.clamp(contentLength, viewportHeight)
}

// Window returns the [start, end) range of visible lines.
func (m *Manager) Window(contentLength, viewportHeight int) (start, end int) {
	start = m.position
	if start > contentLength {
		start = contentLength
	}
	end = start + viewportHeight
	if end > contentLength {
		end = contentLength
	}
	return start, end
}

func (m *Manager) clamp(contentLength, viewportHeight int) {
	if limit := maxOffset(contentLength, viewportHeight); m.position > limit {
		m.position = limit
	}
	if m.position < 0 {
		m.position = 0
	}
}

func maxOffset(contentLength, viewportHeight int) int {
	if contentLength <= viewportHeight {
		return 0
	}
	return contentLength - viewportHeight
}
