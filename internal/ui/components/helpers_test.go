// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitWidth(t *testing.T) {
	assert.Equal(t, "ab   ", fitWidth("ab", 5))
	assert.Equal(t, "abc", fitWidth("abcdef", 3))
	assert.Equal(t, "", fitWidth("abc", 0))
	assert.Equal(t, 4, visibleWidth(fitWidth("\x1b[1mab\x1b[0m", 4)))
}

func TestOverlay(t *testing.T) {
	bg := []string{"..........", "..........", ".........."}
	out := Overlay(bg, "AB\nCD", 3, 1)

	require.Len(t, out, 3)
	assert.Equal(t, "..........", out[0])
	assert.Equal(t, "...AB.....", stripANSI(out[1]))
	assert.Equal(t, "...CD.....", stripANSI(out[2]))
	assert.Equal(t, "..........", bg[1], "background must not change")
}

func TestOverlayClipsAndPads(t *testing.T) {
	out := Overlay([]string{"ab"}, "XY\nZZ", 4, 0)
	require.Len(t, out, 1)
	assert.Equal(t, "ab  XY", stripANSI(out[0]))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, 5, Center(20, 10))
	assert.Equal(t, 0, Center(10, 20))
}
