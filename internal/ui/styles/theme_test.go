// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}
	if theme.Title.Render("test") == "" {
		t.Error("NewTheme() should initialize Title style")
	}
}

func TestNewThemeFor(t *testing.T) {
	theme := NewThemeFor(termenv.TrueColor, true)
	if !theme.IsDark {
		t.Error("IsDark should be true")
	}
	if !theme.HasTrueColor {
		t.Error("HasTrueColor should be true for TrueColor profile")
	}

	ascii := NewThemeFor(termenv.Ascii, false)
	if ascii.HasTrueColor {
		t.Error("HasTrueColor should be false for Ascii profile")
	}
	if ascii.ColorProfile != termenv.Ascii {
		t.Errorf("ColorProfile = %v, want Ascii", ascii.ColorProfile)
	}
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewThemeFor(termenv.Ascii, true)

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Border", theme.Border},
		{"Title", theme.Title},
		{"UserMessage", theme.UserMessage},
		{"AssistantMessage", theme.AssistantMessage},
		{"ThinkingText", theme.ThinkingText},
		{"InputActive", theme.InputActive},
		{"PaletteBox", theme.PaletteBox},
		{"DialogBox", theme.DialogBox},
		{"SectionHeader", theme.SectionHeader},
		{"Success", theme.Success},
		{"Error", theme.Error},
	}

	for _, s := range styles {
		if rendered := s.style.Render("test"); rendered == "" {
			t.Errorf("%s style should render", s.name)
		}
	}
}

func TestRoleStyle(t *testing.T) {
	theme := NewThemeFor(termenv.Ascii, true)
	if theme.RoleStyle(true).GetForeground() != theme.UserMessage.GetForeground() {
		t.Error("RoleStyle(true) should be the user style")
	}
	if theme.RoleStyle(false).GetForeground() != theme.AssistantMessage.GetForeground() {
		t.Error("RoleStyle(false) should be the assistant style")
	}
}
