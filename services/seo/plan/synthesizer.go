// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/crawlsight/crawlsight/services/llm"
)

const (
	// synthesisAttempts bounds the parse/correct loop. Retries here are
	// for unparseable output only; a parseable-but-wrong plan is the
	// Validator's job.
	synthesisAttempts = 3

	// synthesisTimeout caps a single collaborator call. The original
	// pipeline had no timeout at all and a hung call blocked the whole
	// query; this is the deliberate fix.
	synthesisTimeout = 30 * time.Second
)

const plannerSystemPrompt = `You are an SEO query planner.

Convert the user question into a structured JSON analysis plan.

Allowed operations:
- filter
- top_n
- groupby
- metric

Allowed fields:
- https
- indexability
- title_length
- meta_description_length
- status_code

Rules:
- Return ONLY valid JSON
- Do NOT explain
- Do NOT include markdown
- Do NOT include backticks`

// Synthesizer produces a draft Plan from free-text input via the
// collaborator. It owns the parse/repair loop; semantic validation happens
// later in the Validator.
//
// Thread Safety: safe for concurrent use.
type Synthesizer struct {
	client llm.Client
}

// NewSynthesizer creates a Synthesizer on the given collaborator client.
func NewSynthesizer(client llm.Client) *Synthesizer {
	return &Synthesizer{client: client}
}

// Synthesize asks the collaborator for a plan draft.
//
// Description:
//
//	Sends the fixed planner instruction plus the question, in JSON mode.
//	On a non-parseable response the request is reissued with an explicit
//	correction prompt for the same question, up to the attempt budget.
//	Collaborator transport errors are returned as-is; exhausting the
//	budget returns ErrSynthesisFailed.
//
// Thread Safety: safe for concurrent use.
func (s *Synthesizer) Synthesize(ctx context.Context, question string) (*Draft, error) {
	ctx, span := otel.Tracer("planner").Start(ctx, "plan.Synthesizer.Synthesize",
		trace.WithAttributes(attribute.Int("question_length", len(question))),
	)
	defer span.End()

	userPrompt := "Question: " + question

	for attempt := 1; attempt <= synthesisAttempts; attempt++ {
		recordSynthesisAttempt(s.client.Name())

		callCtx, cancel := context.WithTimeout(ctx, synthesisTimeout)
		text, err := s.client.Generate(callCtx, []llm.Message{
			{Role: llm.RoleSystem, Content: plannerSystemPrompt},
			{Role: llm.RoleUser, Content: userPrompt},
		}, llm.GenerateOptions{JSONMode: true})
		cancel()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "collaborator call failed")
			return nil, fmt.Errorf("plan synthesis call: %w", err)
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		payload, err := ExtractJSON(text)
		if err == nil {
			var draft Draft
			if jsonErr := json.Unmarshal([]byte(payload), &draft); jsonErr == nil {
				span.SetAttributes(attribute.Int("attempts", attempt))
				return &draft, nil
			}
		}

		slog.Debug("draft plan was not valid JSON, reissuing",
			slog.Int("attempt", attempt),
			slog.Int("response_length", len(text)),
		)
		userPrompt = fmt.Sprintf(
			"The previous response was not valid JSON.\n\nReturn ONLY corrected JSON for this question:\n%s",
			question,
		)
	}

	recordSynthesisFailure(s.client.Name())
	span.SetStatus(codes.Error, "attempt budget exhausted")
	return nil, fmt.Errorf("%w after %d attempts", ErrSynthesisFailed, synthesisAttempts)
}
