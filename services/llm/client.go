// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package llm provides the language-model collaborator interface and its
// provider backends. The rest of the system consumes only the Client
// contract: an ordered message sequence in, completion text out, with an
// optional JSON-only mode.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Message roles, mirroring the chat-completion wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateOptions tunes a single completion call.
type GenerateOptions struct {
	// JSONMode asks the provider for a JSON-object response where the API
	// supports it; other providers enforce it via instruction.
	JSONMode bool

	Temperature *float32
	MaxTokens   *int
}

// Client is the collaborator contract. Implementations must be safe for
// concurrent use and honor ctx cancellation; network-level retry with
// exponential backoff is the implementation's concern, not the caller's.
type Client interface {
	Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error)

	// Name returns the provider name (e.g. "litellm", "anthropic").
	Name() string
}

// NewClientFromEnv selects a provider from LLM_PROVIDER.
//
// Supported values: "litellm" (default, any OpenAI-compatible endpoint)
// and "anthropic".
func NewClientFromEnv() (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	switch provider {
	case "", "litellm", "openai":
		return NewLiteLLMClient()
	case "anthropic":
		return NewAnthropicClient()
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}
}

// readSecret resolves a credential from the environment with a secrets-file
// fallback, so the same binary works under podman secrets and plain env.
func readSecret(envVar, secretPath string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if content, err := os.ReadFile(secretPath); err == nil {
		slog.Info("read API key from secrets file", slog.String("path", secretPath))
		return strings.TrimSpace(string(content))
	}
	return ""
}
