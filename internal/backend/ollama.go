// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"errors"
	"time"

	"github.com/jeranaias/onyx-tui/internal/config"
	"github.com/jeranaias/onyx-tui/internal/logging"
	"github.com/jeranaias/onyx-tui/internal/ollama"
	"github.com/jeranaias/onyx-tui/internal/stream"
)

// Ollama talks to a local Ollama server. It streams natively: reply deltas
// go through the same Splitter the simulated stream uses, so thinking
// markers and chunk pacing behave identically.
type Ollama struct {
	client  *ollama.Client
	Decoder *stream.Decoder
}

// NewOllama creates an Ollama backend. An empty URL uses the local default.
func NewOllama(pc config.ProviderConfig) *Ollama {
	return &Ollama{
		client:  ollama.NewClientWithConfig(&ollama.ClientConfig{BaseURL: pc.URL, Model: pc.Model}),
		Decoder: stream.NewDecoder(),
	}
}

// Name implements Backend.
func (o *Ollama) Name() string { return string(config.ProviderOllama) }

// URL returns the server base URL.
func (o *Ollama) URL() string { return o.client.Config().BaseURL }

// Ping reports whether the server answers.
func (o *Ollama) Ping(ctx context.Context) error {
	if err := o.client.CheckRunning(ctx); err != nil {
		return o.wrap(ctx, err)
	}
	return nil
}

// Complete implements Backend. Reasoning reported separately by the model
// is folded back in between thinking markers.
func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat(ctx, "", []ollama.Message{ollama.NewUserMessage(prompt)})
	if err != nil {
		return "", o.wrap(ctx, err)
	}

	logging.For("ollama").Debug("response received",
		"content_len", len(resp.Message.Content), "tokens_per_sec", resp.TokensPerSecond())

	reply := resp.Message.Content
	if resp.Message.Thinking != "" {
		reply = stream.OpenMarker + resp.Message.Thinking + stream.CloseMarker + reply
	}
	return reply, nil
}

// Stream implements stream.Source.
func (o *Ollama) Stream(ctx context.Context, prompt string, sink stream.Sink) {
	logger := logging.For("ollama")
	start := time.Now()

	dec := o.Decoder
	if dec == nil {
		dec = stream.NewDecoder()
	}
	sp := dec.NewSplitter(ctx, sink)

	thinking := false
	err := o.client.ChatStream(ctx, "", []ollama.Message{ollama.NewUserMessage(prompt)}, func(c ollama.StreamChunk) error {
		if c.Thinking != "" {
			if !thinking {
				thinking = true
				if err := sp.Write(stream.OpenMarker); err != nil {
					return err
				}
			}
			if err := sp.Write(c.Thinking); err != nil {
				return err
			}
		}
		if c.Content != "" {
			if thinking {
				thinking = false
				if err := sp.Write(stream.CloseMarker); err != nil {
					return err
				}
			}
			return sp.Write(c.Content)
		}
		return nil
	})
	if err == nil {
		err = sp.Finish()
	}

	switch {
	case err == nil:
		logger.Debug("stream finished", "events", sp.Sent(), "elapsed", time.Since(start))
	case ctx.Err() != nil:
		logger.Debug("stream cancelled", "events", sp.Sent())
	case errors.Is(err, stream.ErrSinkClosed):
		logger.Debug("sink closed mid-reply", "events", sp.Sent())
	default:
		err = o.wrap(ctx, err)
		logger.Error("stream failed", "err", err, "events", sp.Sent())
		sink.Send(stream.Error(err.Error()))
	}
}

func (o *Ollama) wrap(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return err
	}
	msg := "request failed"
	switch {
	case ollama.IsNotRunning(err):
		msg = "server not reachable (is Ollama running?)"
	case ollama.IsModelNotFound(err):
		msg = "model not available"
	case ollama.IsTimeout(err):
		msg = ""
	}
	return &Error{Provider: o.Name(), Kind: KindRequest, Message: msg, Cause: err}
}
