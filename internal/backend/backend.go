// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend connects the chat session to a language-model provider.
//
// A Backend turns one prompt into one complete reply. Providers that can
// stream natively also implement stream.Source; SourceFor picks the native
// stream when available and otherwise wraps the Backend in the paced
// simulated stream.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/onyx-tui/internal/config"
	"github.com/jeranaias/onyx-tui/internal/stream"
)

// =============================================================================
// INTERFACE
// =============================================================================

// Backend is a language-model provider.
type Backend interface {
	// Name returns the provider name used in logs and errors.
	Name() string

	// Complete returns the full reply for prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Func adapts a plain function to Backend. It is mostly useful in tests.
type Func func(ctx context.Context, prompt string) (string, error)

// Name implements Backend.
func (f Func) Name() string { return "func" }

// Complete implements Backend.
func (f Func) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrMissingAPIKey is returned when the active provider needs a key and
	// none is configured.
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrNoChoices is returned when a completion carries no choices at all.
	ErrNoChoices = errors.New("no choices in response")
)

// Kind categorizes backend errors.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindRequest
	KindResponse
)

// Error is a failed backend call.
type Error struct {
	Provider string
	Kind     Kind
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	msg := e.Message
	switch {
	case msg == "" && e.Cause != nil:
		msg = e.Cause.Error()
	case e.Cause != nil:
		msg += ": " + e.Cause.Error()
	}
	return e.Provider + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func requestError(provider string, err error) error {
	return &Error{Provider: provider, Kind: KindRequest, Message: "request failed", Cause: err}
}

func noChoices(provider string) error {
	return &Error{Provider: provider, Kind: KindResponse, Cause: ErrNoChoices}
}

// =============================================================================
// FACTORY
// =============================================================================

// New builds the backend for the active provider in cfg. It returns an
// error wrapping ErrMissingAPIKey when the provider needs a key it lacks.
func New(cfg *config.Config) (Backend, error) {
	pc := cfg.Active()
	provider := cfg.ActiveProvider

	if provider.NeedsAPIKey() && pc.APIKey == "" {
		return nil, &Error{Provider: string(provider), Kind: KindConfig, Cause: ErrMissingAPIKey}
	}

	switch provider {
	case config.ProviderOpenAI:
		return NewOpenAI(pc), nil
	case config.ProviderAnthropic:
		return NewAnthropic(pc), nil
	case config.ProviderOllama:
		return NewOllama(pc), nil
	default:
		return nil, &Error{
			Provider: string(provider),
			Kind:     KindConfig,
			Message:  fmt.Sprintf("unknown provider %q", provider),
		}
	}
}

// SourceFor returns the event source for b: b itself when it streams
// natively, otherwise a simulated stream over its complete replies.
func SourceFor(b Backend) stream.Source {
	if src, ok := b.(stream.Source); ok {
		return src
	}
	return stream.NewSimulatedSource(b)
}
