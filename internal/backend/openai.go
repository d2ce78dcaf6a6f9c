// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/jeranaias/onyx-tui/internal/config"
	"github.com/jeranaias/onyx-tui/internal/logging"
)

// OpenAI talks to the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI backend. An empty URL uses the SDK default.
// Extra options are appended after the ones derived from pc.
func NewOpenAI(pc config.ProviderConfig, opts ...option.RequestOption) *OpenAI {
	options := []option.RequestOption{option.WithAPIKey(pc.APIKey)}
	if pc.URL != "" {
		options = append(options, option.WithBaseURL(pc.URL))
	}
	options = append(options, opts...)

	client := openai.NewClient(options...)
	return &OpenAI{client: &client, model: pc.Model}
}

// Name implements Backend.
func (o *OpenAI) Name() string { return string(config.ProviderOpenAI) }

// Complete implements Backend.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	logger := logging.For("openai")
	logger.Debug("sending request", "model", o.model, "prompt_len", len(prompt))

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	})
	if err != nil {
		return "", requestError(o.Name(), err)
	}

	if len(completion.Choices) == 0 {
		return "", noChoices(o.Name())
	}

	content := completion.Choices[0].Message.Content
	logger.Debug("response received", "content_len", len(content))
	return content, nil
}
