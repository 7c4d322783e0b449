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
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 2048

// AnthropicClient implements Client on the official Anthropic SDK.
//
// Thread Safety: safe for concurrent use.
type AnthropicClient struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropicClient builds a client from ANTHROPIC_API_KEY (or the
// anthropic_api_key secret) and CLAUDE_MODEL.
func NewAnthropicClient() (*AnthropicClient, error) {
	apiKey := readSecret("ANTHROPIC_API_KEY", "/run/secrets/anthropic_api_key")
	if apiKey == "" {
		slog.Error("ANTHROPIC_API_KEY environment variable not set and secret not found")
		return nil, errors.New("ANTHROPIC_API_KEY environment variable not set")
	}

	model := os.Getenv("CLAUDE_MODEL")
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
		slog.Warn("CLAUDE_MODEL not set, defaulting", "model", model)
	}

	slog.Info("initializing Anthropic client", "model", model)
	return &AnthropicClient{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     anthropic.Model(model),
		maxTokens: defaultAnthropicMaxTokens,
	}, nil
}

// Name implements Client.
func (c *AnthropicClient) Name() string { return "anthropic" }

// Generate implements Client.
//
// The Anthropic API has no JSON response mode, so JSONMode is enforced by
// strengthening the system prompt instead.
func (c *AnthropicClient) Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error) {
	var system []anthropic.TextBlockParam
	msgs := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if opts.JSONMode {
		system = append(system, anthropic.TextBlockParam{
			Text: "Respond with ONLY a valid JSON object. No prose, no markdown, no backticks.",
		})
	}

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  msgs,
	}
	if opts.MaxTokens != nil {
		params.MaxTokens = int64(*opts.MaxTokens)
	}
	if len(system) > 0 {
		params.System = system
	}

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, params)
	observeGenerate(c.Name(), start, err)
	if err != nil {
		return "", fmt.Errorf("anthropic call failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(variant.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("anthropic returned no text content")
	}
	return sb.String(), nil
}
