// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/onyx-tui/internal/logging"
)

func logger() *log.Logger {
	return logging.For("config")
}

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// DefaultDebounce is how long the watcher waits after the last change
// before reloading.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a config file when it changes on disk and hands the new
// config to a callback. Editors often replace files by rename, so the
// parent directory is watched rather than the file itself.
type Watcher struct {
	path     string
	debounce time.Duration
	onReload func(*Config)

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}

	mu       sync.Mutex
	suppress time.Time
}

// NewWatcher creates a watcher for path. onReload is called from the
// watcher goroutine with each successfully reloaded config, with
// environment overrides applied.
func NewWatcher(path string, onReload func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		onReload: onReload,
		watcher:  fw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins processing events until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	go w.run(ctx)
}

// Suppress ignores changes for d, so the app's own saves do not trigger a
// reload.
func (w *Watcher) Suppress(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suppress = time.Now().Add(d)
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger().Warn("config watcher error", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	suppressed := time.Now().Before(w.suppress)
	w.mu.Unlock()
	if suppressed {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		logger().Warn("config reload failed", "path", w.path, "err", err)
		return
	}
	cfg.ApplyEnvOverrides()
	logger().Info("config reloaded", "path", w.path, "provider", cfg.ActiveProvider)
	w.onReload(cfg)
}
