// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessages bounds the transcript. When exceeded, the oldest messages
// are dropped.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the append-only transcript of a session.
type Conversation struct {
	ID        string
	CreatedAt time.Time
	Messages  []*Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
}

// Add appends msg.
func (c *Conversation) Add(msg *Message) {
	c.Messages = append(c.Messages, msg)
	if over := len(c.Messages) - MaxMessages; over > 0 {
		// Keep the backing array from growing without bound.
		c.Messages = append(c.Messages[:0:0], c.Messages[over:]...)
	}
}

// Streaming returns the newest message that is still streaming. Command
// replies appended while a reply is outstanding do not hide it.
func (c *Conversation) Streaming() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].IsStreaming {
			return c.Messages[i]
		}
	}
	return nil
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// IsEmpty reports whether the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clear removes every message.
func (c *Conversation) Clear() {
	c.Messages = nil
}
