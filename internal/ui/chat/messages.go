// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/onyx-tui/internal/config"
)

// =============================================================================
// TICK MESSAGES
// =============================================================================

// Tick intervals of the drain loop.
const (
	BusyTickInterval = 16 * time.Millisecond
	IdleTickInterval = 100 * time.Millisecond
)

// DrainTickMsg triggers one pass of the drain loop.
type DrainTickMsg struct {
	Time time.Time
}

// tickCmd schedules the next drain tick.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return DrainTickMsg{Time: t}
	})
}

// =============================================================================
// CONFIGURATION MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a configuration re-read from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// notificationTimeoutMsg hides the "Configuration saved!" box.
type notificationTimeoutMsg struct {
	id int
}

// NotificationDuration is how long the save notification stays visible.
const NotificationDuration = 2 * time.Second

func notificationCmd(id int) tea.Cmd {
	return tea.Tick(NotificationDuration, func(time.Time) tea.Msg {
		return notificationTimeoutMsg{id: id}
	})
}
