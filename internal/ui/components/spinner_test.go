// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
)

func TestSpinnerCycles(t *testing.T) {
	s := NewSpinner(testTheme())
	frames := spinner.MiniDot.Frames

	assert.Equal(t, frames[0], s.Frame())
	for i := 1; i <= len(frames); i++ {
		s.Advance()
		assert.Equal(t, frames[i%len(frames)], s.Frame())
	}
	assert.Contains(t, stripANSI(s.View()), "Processing...")
}
