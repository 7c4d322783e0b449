// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultLiteLLMModel = "gemini-3-pro-preview"

	// litellmMaxRetries bounds the 429 backoff loop. The first attempt
	// plus four retries matches the proxy's published rate-limit guidance.
	litellmMaxRetries = 4
)

// LiteLLMClient talks to a LiteLLM proxy (or any OpenAI-compatible
// endpoint) through the go-openai SDK.
//
// Rate-limit responses (429) are retried with exponential backoff; every
// other API error is surfaced immediately.
//
// Thread Safety: safe for concurrent use.
type LiteLLMClient struct {
	client *openai.Client
	model  string
}

// NewLiteLLMClient builds a client from LITELLM_BASE_URL, LITELLM_API_KEY
// (or the litellm_api_key secret) and LITELLM_MODEL.
func NewLiteLLMClient() (*LiteLLMClient, error) {
	apiKey := readSecret("LITELLM_API_KEY", "/run/secrets/litellm_api_key")
	if apiKey == "" {
		slog.Error("LITELLM_API_KEY environment variable not set and secret not found")
		return nil, errors.New("LITELLM_API_KEY environment variable not set")
	}

	baseURL := os.Getenv("LITELLM_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:4000"
		slog.Warn("LITELLM_BASE_URL not set, defaulting to local proxy", "url", baseURL)
	}

	model := os.Getenv("LITELLM_MODEL")
	if model == "" {
		model = defaultLiteLLMModel
		slog.Warn("LITELLM_MODEL not set, defaulting", "model", model)
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	slog.Info("initializing LiteLLM client", "base_url", baseURL, "model", model)
	return &LiteLLMClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Name implements Client.
func (c *LiteLLMClient) Name() string { return "litellm" }

// Generate implements Client.
func (c *LiteLLMClient) Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	if opts.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
	}
	if opts.MaxTokens != nil {
		req.MaxCompletionTokens = *opts.MaxTokens
	}

	var content string
	operation := func() error {
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			var apiErr *openai.APIError
			if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
				slog.Warn("rate limited by LLM endpoint, backing off", "model", c.model)
				return err
			}
			return backoff.Permanent(fmt.Errorf("litellm call failed: %w", err))
		}
		if len(resp.Choices) == 0 {
			return backoff.Permanent(errors.New("litellm returned no choices"))
		}
		content = resp.Choices[0].Message.Content
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, litellmMaxRetries), ctx)
	start := time.Now()
	err := backoff.Retry(operation, policy)
	observeGenerate(c.Name(), start, err)
	if err != nil {
		return "", err
	}
	return content, nil
}
