// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestAdaptiveColorsDefined(t *testing.T) {
	colors := []struct {
		name  string
		color lipgloss.AdaptiveColor
	}{
		{"Lavender", Lavender},
		{"Sky", Sky},
		{"Green", Green},
		{"Teal", Teal},
		{"Yellow", Yellow},
		{"Red", Red},
		{"Border", Border},
		{"Surface", Surface},
		{"TextPrimary", TextPrimary},
		{"TextMuted", TextMuted},
		{"TextInverse", TextInverse},
		{"SelectionBg", SelectionBg},
	}

	for _, c := range colors {
		if c.color.Light == "" || c.color.Dark == "" {
			t.Errorf("%s should define both light and dark values", c.name)
		}
		if !strings.HasPrefix(c.color.Light, "#") || !strings.HasPrefix(c.color.Dark, "#") {
			t.Errorf("%s should use hex colors", c.name)
		}
	}
}

func TestRenderStatus(t *testing.T) {
	if got := RenderSuccess("Configuration saved!"); !strings.Contains(got, "✓ Configuration saved!") {
		t.Errorf("RenderSuccess() = %q", got)
	}
	if got := RenderError("boom"); !strings.Contains(got, "✗ boom") {
		t.Errorf("RenderError() = %q", got)
	}
}
