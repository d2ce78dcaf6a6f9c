// onyx - A terminal chat client for OpenAI, Anthropic and Ollama.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/onyx-tui/internal/backend"
	"github.com/jeranaias/onyx-tui/internal/cli"
	"github.com/jeranaias/onyx-tui/internal/config"
	"github.com/jeranaias/onyx-tui/internal/logging"
	"github.com/jeranaias/onyx-tui/internal/ui/chat"
	"github.com/jeranaias/onyx-tui/internal/ui/components"
	"github.com/jeranaias/onyx-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// saveSuppressWindow hides our own config writes from the file watcher.
const saveSuppressWindow = time.Second

// pingTimeout bounds the startup reachability check of a local server.
const pingTimeout = 2 * time.Second

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	root := cli.NewRootCommand(runTUI)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI starts the TUI interface.
func runTUI(ctx context.Context, flags cli.Flags) error {
	if err := cli.RequireTerminal(); err != nil {
		return err
	}

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	logOpts := logging.DefaultOptions(filepath.Join(dir, "logs", "onyx.log"))
	logOpts.Level = flags.LogLevel()
	if err := logging.Configure(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.Close()

	cfg, path, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logging.Info("starting", "version", Version, "config", path, "provider", cfg.ActiveProvider)

	b, err := backend.New(cfg)
	if err != nil {
		logging.Info("backend unavailable", "provider", cfg.ActiveProvider, "err", err)
		b = nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The program is created before the watcher starts, so the reload
	// callback always sees it.
	var program *tea.Program
	watcher, err := config.NewWatcher(path, func(c *config.Config) {
		applyProviderFlag(c, flags)
		program.Send(chat.ConfigReloadedMsg{Config: c})
	})
	if err != nil {
		logging.Warn("config watcher disabled", "err", err)
		watcher = nil
	}

	saveConfig := func(c *config.Config) error {
		if watcher != nil {
			watcher.Suppress(saveSuppressWindow)
		}
		return config.Save(c, path)
	}

	m := chat.New(chat.Options{
		Config:     cfg,
		Backend:    b,
		SaveConfig: saveConfig,
		Theme:      styles.NewTheme(),
		Context:    ctx,
		Notice:     startupNotice(ctx, b),
	})
	program = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if watcher != nil {
		watcher.Start(ctx)
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logging.Error("program exited", "err", err)
		return err
	}
	logging.Info("exiting")
	return nil
}

// startupNotice checks that a local Ollama server answers and returns the
// notice to show when it does not.
func startupNotice(ctx context.Context, b backend.Backend) string {
	o, ok := b.(*backend.Ollama)
	if !ok {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := o.Ping(ctx); err != nil {
		logging.Warn("ollama not reachable", "url", o.URL(), "err", err)
		return components.UnreachableNotice(o.URL())
	}
	return ""
}

// loadConfig reads the config file, creating it on first run, and applies
// environment and flag overrides. A corrupt file is reported and replaced.
func loadConfig(flags cli.Flags) (*config.Config, string, error) {
	path := flags.ConfigPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		var corrupt *config.CorruptError
		if !errors.As(err, &corrupt) {
			return nil, "", fmt.Errorf("load config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logging.Warn("config replaced with defaults", "err", err)
	}

	cfg.ApplyEnvOverrides()
	applyProviderFlag(cfg, flags)
	if err := cfg.Validate(); err != nil {
		logging.Info("config incomplete", "err", err)
	}
	return cfg, path, nil
}

func applyProviderFlag(cfg *config.Config, flags cli.Flags) {
	if p, ok, _ := flags.ProviderOverride(); ok {
		cfg.ActiveProvider = p
	}
}
