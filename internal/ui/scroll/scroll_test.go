// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFollows(t *testing.T) {
	m := New()
	assert.True(t, m.AutoFollow())
	m.Update(50, 10)
	assert.Equal(t, 40, m.Position())

	m.Update(5, 10)
	assert.Equal(t, 0, m.Position(), "short content pins to zero")
}

func TestManualScrollClearsFollow(t *testing.T) {
	tests := []struct {
		name string
		act  func(*Manager)
		want int
	}{
		{"line up", func(m *Manager) { m.LineUp(1) }, 39},
		{"line down", func(m *Manager) { m.LineDown(1) }, 40},
		{"page up", (*Manager).PageUp, 30},
		{"page down", (*Manager).PageDown, 40},
		{"home", (*Manager).Home, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.Update(50, 10)
			tt.act(m)
			assert.False(t, m.AutoFollow())
			m.Update(50, 10)
			assert.Equal(t, tt.want, m.Position())
		})
	}
}

func TestEndRestoresFollow(t *testing.T) {
	m := New()
	m.Update(50, 10)
	m.Home()
	m.End()
	assert.True(t, m.AutoFollow())
	m.Update(80, 10)
	assert.Equal(t, 70, m.Position())
}

func TestUpdateClampsOnShrink(t *testing.T) {
	m := New()
	m.Update(100, 10)
	m.LineUp(5)
	assert.Equal(t, 85, m.Position())

	m.Update(20, 10)
	assert.Equal(t, 10, m.Position())

	m.Update(0, 10)
	assert.Equal(t, 0, m.Position())
}

func TestLineUpSaturates(t *testing.T) {
	m := New()
	m.LineUp(3)
	assert.Equal(t, 0, m.Position())
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		line   int
		height int
		length int
		want   int
	}{
		{"above window", 20, 5, 10, 100, 5},
		{"below window", 0, 25, 10, 100, 16},
		{"inside window", 10, 12, 10, 100, 10},
		{"clamped to content", 0, 99, 10, 50, 40},
		{"short content", 3, 2, 10, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manager{position: tt.start}
			m.EnsureVisible(tt.line, tt.height, tt.length)
			assert.Equal(t, tt.want, m.Position())
		})
	}
}

func TestEnsureVisibleProperty(t *testing.T) {
	for n := 0; n < 40; n++ {
		for h := 1; h < 12; h++ {
			for line := 0; line < n; line++ {
				for start := 0; start < n; start += 3 {
					m := &Manager{position: start}
					m.EnsureVisible(line, h, n)
					limit := maxOffset(n, h)
					assert.LessOrEqual(t, m.Position(), limit)
					assert.GreaterOrEqual(t, m.Position(), 0)
					if n >= h {
						assert.True(t, line >= m.Position() && line < m.Position()+h,
							"n=%d h=%d line=%d start=%d pos=%d", n, h, line, start, m.Position())
					}
				}
			}
		}
	}
}

func TestWindow(t *testing.T) {
	m := New()
	m.Update(25, 10)
	start, end := m.Window(25, 10)
	assert.Equal(t, 15, start)
	assert.Equal(t, 25, end)

	m.Reset()
	start, end = m.Window(3, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}
