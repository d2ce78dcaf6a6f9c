// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jeranaias/onyx-tui/internal/config"
	"github.com/jeranaias/onyx-tui/internal/logging"
)

// AnthropicMaxTokens caps the length of a reply.
const AnthropicMaxTokens = 4096

// Anthropic talks to the Anthropic messages API.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic backend. An empty URL uses the SDK default.
func NewAnthropic(pc config.ProviderConfig, opts ...option.RequestOption) *Anthropic {
	options := []option.RequestOption{option.WithAPIKey(pc.APIKey)}
	if pc.URL != "" {
		options = append(options, option.WithBaseURL(pc.URL))
	}
	options = append(options, opts...)

	client := anthropic.NewClient(options...)
	return &Anthropic{client: &client, model: pc.Model}
}

// Name implements Backend.
func (a *Anthropic) Name() string { return string(config.ProviderAnthropic) }

// Complete implements Backend. Text blocks are concatenated in order.
func (a *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	logger := logging.For("anthropic")
	logger.Debug("sending request", "model", a.model, "prompt_len", len(prompt))

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: AnthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", requestError(a.Name(), err)
	}

	var content strings.Builder
	for _, block := range message.Content {
		content.WriteString(block.Text)
	}
	logger.Debug("response received", "content_len", content.Len())
	return content.String(), nil
}
