// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plan

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/crawlsight/crawlsight/services/llm"
)

// scriptedClient replays canned responses and records every call.
type scriptedClient struct {
	responses []string
	err       error
	calls     [][]llm.Message
}

func (c *scriptedClient) Name() string { return "scripted" }

func (c *scriptedClient) Generate(ctx context.Context, messages []llm.Message, opts llm.GenerateOptions) (string, error) {
	c.calls = append(c.calls, messages)
	if c.err != nil {
		return "", c.err
	}
	if len(c.responses) == 0 {
		return "", nil
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func TestSynthesizeParsesFirstResponse(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"operation": "filter", "conditions": [{"field": "https", "op": "=", "value": false}], "logic": "and"}`,
	}}
	s := NewSynthesizer(client)

	draft, err := s.Synthesize(context.Background(), "pages without https")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if draft.Operation == nil || *draft.Operation != "filter" {
		t.Errorf("operation = %v, want filter", draft.Operation)
	}
	if draft.Conditions == nil || len(*draft.Conditions) != 1 {
		t.Fatalf("conditions = %v, want one", draft.Conditions)
	}
	if (*draft.Conditions)[0].Field != FieldHTTPS {
		t.Errorf("condition field = %q", (*draft.Conditions)[0].Field)
	}
	if len(client.calls) != 1 {
		t.Errorf("made %d calls, want 1", len(client.calls))
	}
}

func TestSynthesizeAcceptsFencedResponse(t *testing.T) {
	client := &scriptedClient{responses: []string{
		"```json\n{\"operation\": \"metric\", \"field\": \"https\"}\n```",
	}}
	s := NewSynthesizer(client)

	draft, err := s.Synthesize(context.Background(), "what percent of pages use https")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if draft.Field == nil || *draft.Field != FieldHTTPS {
		t.Errorf("field = %v, want https", draft.Field)
	}
}

func TestSynthesizeReissuesWithCorrectionPrompt(t *testing.T) {
	client := &scriptedClient{responses: []string{
		"I think the best plan here would be a filter.",
		`{"operation": "groupby", "field": "status_code"}`,
	}}
	s := NewSynthesizer(client)

	draft, err := s.Synthesize(context.Background(), "group pages by status code")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if draft.Field == nil || *draft.Field != FieldStatusCode {
		t.Errorf("field = %v, want status_code", draft.Field)
	}

	if len(client.calls) != 2 {
		t.Fatalf("made %d calls, want 2", len(client.calls))
	}
	second := client.calls[1]
	user := second[len(second)-1]
	if user.Role != llm.RoleUser {
		t.Fatalf("last message role = %q, want user", user.Role)
	}
	if !strings.Contains(user.Content, "was not valid JSON") {
		t.Errorf("correction prompt missing, got %q", user.Content)
	}
	if !strings.Contains(user.Content, "group pages by status code") {
		t.Errorf("correction prompt should restate the question, got %q", user.Content)
	}
}

func TestSynthesizeExhaustsAttemptBudget(t *testing.T) {
	client := &scriptedClient{responses: []string{
		"nope", "still nope", "never json",
	}}
	s := NewSynthesizer(client)

	_, err := s.Synthesize(context.Background(), "anything")
	if !errors.Is(err, ErrSynthesisFailed) {
		t.Fatalf("error = %v, want ErrSynthesisFailed", err)
	}
	if len(client.calls) != synthesisAttempts {
		t.Errorf("made %d calls, want %d", len(client.calls), synthesisAttempts)
	}
}

func TestSynthesizeTransportErrorIsNotRetried(t *testing.T) {
	transportErr := errors.New("connection refused")
	client := &scriptedClient{err: transportErr}
	s := NewSynthesizer(client)

	_, err := s.Synthesize(context.Background(), "anything")
	if !errors.Is(err, transportErr) {
		t.Fatalf("error = %v, want wrapped transport error", err)
	}
	if len(client.calls) != 1 {
		t.Errorf("made %d calls, want 1", len(client.calls))
	}
}
