// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"

	"github.com/jeranaias/onyx-tui/internal/stream"
)

// =============================================================================
// SUBMISSION LIFETIME (THREAD-SAFE)
// =============================================================================

// cancelManager owns the context and event queue of the outstanding
// submission. Each submission derives its context from the session root, so
// closing the session cancels everything still running.
//
// It must be used as a pointer so Bubble Tea's model copies share it.
type cancelManager struct {
	mu         sync.Mutex
	root       context.Context
	stopRoot   context.CancelFunc
	cancelFunc context.CancelFunc
	queue      *stream.Queue
}

// newCancelManager creates a manager whose root context derives from parent.
func newCancelManager(parent context.Context) *cancelManager {
	root, stop := context.WithCancel(parent)
	return &cancelManager{root: root, stopRoot: stop}
}

// begin cancels any previous submission and returns the context and queue
// for a new one.
func (cm *cancelManager) begin() (context.Context, *stream.Queue) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.releaseLocked()

	ctx, cancel := context.WithCancel(cm.root)
	cm.cancelFunc = cancel
	cm.queue = stream.NewQueue()
	return ctx, cm.queue
}

// drain returns the queued events of the current submission.
func (cm *cancelManager) drain() []stream.Event {
	cm.mu.Lock()
	q := cm.queue
	cm.mu.Unlock()
	if q == nil {
		return nil
	}
	return q.Drain()
}

// cancel stops the current submission and disconnects its queue. Safe to
// call multiple times or with nothing outstanding.
func (cm *cancelManager) cancel() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.releaseLocked()
}

// finish releases a submission that ended normally.
func (cm *cancelManager) finish() {
	cm.cancel()
}

// close cancels the current submission and the session root.
func (cm *cancelManager) close() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.releaseLocked()
	cm.stopRoot()
}

func (cm *cancelManager) releaseLocked() {
	if cm.cancelFunc != nil {
		cm.cancelFunc()
		cm.cancelFunc = nil
	}
	if cm.queue != nil {
		cm.queue.Close()
		cm.queue = nil
	}
}
