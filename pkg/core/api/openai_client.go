// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// OpenAIClient implements TextGenerator using the official OpenAI Go SDK.
// Supports OpenAI, Ollama, vLLM, Gemini's OpenAI endpoint and other
// OpenAI-compatible backends.
type OpenAIClient struct {
	client    openai.Client
	model     string
	maxTokens int
}

// ClientOptions configures an OpenAIClient.
type ClientOptions struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int
	MaxRetries *int
}

// NewOpenAIClient creates a new OpenAI-compatible client.
// The BaseURL allows connecting to OpenAI-compatible backends like Ollama and vLLM.
func NewOpenAIClient(o ClientOptions) *OpenAIClient {
	opts := []option.RequestOption{}

	if o.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.BaseURL))
	}

	// Local backends like Ollama accept any key
	if o.APIKey != "" {
		opts = append(opts, option.WithAPIKey(o.APIKey))
	} else {
		opts = append(opts, option.WithAPIKey("dummy"))
	}

	if o.MaxRetries != nil {
		opts = append(opts, option.WithMaxRetries(*o.MaxRetries))
	}

	model := o.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIClient{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: o.MaxTokens,
	}
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Generate sends prompt as a single user message and returns the first choice.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
