// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns the name shown above a message in the transcript.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Onyx"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one entry of the transcript. A streaming assistant message is
// created empty and grows in place until Finish or Fail freezes it.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	Content  string `json:"content"`
	Thinking string `json:"thinking,omitempty"`

	// Err is the failure reason of a reply that ended in an error. The
	// content also carries it as a final "Error: ..." paragraph.
	Err string `json:"error,omitempty"`

	IsStreaming bool `json:"-"`
}

// NewMessage creates a complete message with a fresh ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a complete assistant message.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// NewStreamingMessage creates an empty assistant message awaiting events.
func NewStreamingMessage() *Message {
	msg := NewMessage(RoleAssistant, "")
	msg.IsStreaming = true
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// AppendContent appends reply text. Frozen messages are left unchanged.
func (m *Message) AppendContent(s string) {
	if m.IsStreaming {
		m.Content += s
	}
}

// AppendThinking appends reasoning text. Frozen messages are left unchanged.
func (m *Message) AppendThinking(s string) {
	if m.IsStreaming {
		m.Thinking += s
	}
}

// Finish freezes the message.
func (m *Message) Finish() {
	m.IsStreaming = false
}

// Fail records a backend error as message text and freezes the message.
// Text already received is kept above the error line.
func (m *Message) Fail(reason string) {
	if !m.IsStreaming {
		return
	}
	if m.Content != "" {
		m.Content += "\n\n"
	}
	m.Content += "Error: " + reason
	m.Err = reason
	m.IsStreaming = false
}

// HasThinking reports whether the message carries reasoning text.
func (m *Message) HasThinking() bool {
	return m.Thinking != ""
}

// IsEmpty reports whether the message has neither content nor thinking.
func (m *Message) IsEmpty() bool {
	return m.Content == "" && m.Thinking == ""
}
