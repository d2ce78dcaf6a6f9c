// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jeranaias/onyx-tui/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// VersionString returns the version line printed by --version.
func VersionString() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s/%s)",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// =============================================================================
// FLAGS
// =============================================================================

// Flags holds the parsed command-line options.
type Flags struct {
	// ConfigPath overrides ~/.onyx/config.toml
	ConfigPath string

	// Provider overrides the configured active provider
	Provider string

	// Debug lowers the log level to debug
	Debug bool
}

// LogLevel returns the log level selected by the flags.
func (f Flags) LogLevel() string {
	if f.Debug {
		return "debug"
	}
	return "info"
}

// ProviderOverride parses --provider. ok is false when the flag is unset.
func (f Flags) ProviderOverride() (p config.Provider, ok bool, err error) {
	if f.Provider == "" {
		return "", false, nil
	}
	p, err = config.ParseProvider(f.Provider)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// RunFunc starts the application with the parsed flags.
type RunFunc func(ctx context.Context, flags Flags) error

// NewRootCommand builds the onyx command. run is called after the flags
// have been validated.
func NewRootCommand(run RunFunc) *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "onyx",
		Short: "Terminal chat client for OpenAI, Anthropic and Ollama",
		Long: `Onyx is a terminal chat client.

Replies stream into a scrolling transcript. Type / to open the command
palette; /config edits providers and API keys, /save writes the
conversation to a log file and /help lists the key bindings.`,
		Version:       VersionString(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(*cobra.Command, []string) error {
			_, _, err := flags.ProviderOverride()
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "",
		"config file (default ~/.onyx/config.toml)")
	cmd.Flags().StringVarP(&flags.Provider, "provider", "p", "",
		"provider for this session: openai, anthropic or ollama")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false,
		"write debug output to the log file")
	return cmd
}
