// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package seo is the crawl-audit analytics agent: it plans a query from a
// natural-language question, executes it against the dataset snapshot,
// and phrases aggregate answers through the collaborator.
package seo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/crawlsight/crawlsight/services/llm"
	"github.com/crawlsight/crawlsight/services/seo/dataset"
	"github.com/crawlsight/crawlsight/services/seo/engine"
	"github.com/crawlsight/crawlsight/services/seo/plan"
)

// User-facing degraded-state messages. Kept stable: downstream consumers
// match on them.
const (
	msgNoData    = "SEO data could not be loaded."
	msgNoMatches = "No URLs matched the specified conditions."
)

// maxRenderedRows caps row-set answers so a broad filter doesn't flood
// the chat surface.
const maxRenderedRows = 50

// Agent answers analytical questions over the crawl-audit dataset.
//
// Each request is planned and executed independently against the current
// snapshot; the agent holds no conversation state.
//
// Thread Safety: safe for concurrent use.
type Agent struct {
	llm   llm.Client
	store *dataset.Store
	synth *plan.Synthesizer
}

// NewAgent wires an Agent from its two collaborators.
func NewAgent(client llm.Client, store *dataset.Store) *Agent {
	return &Agent{
		llm:   client,
		store: store,
		synth: plan.NewSynthesizer(client),
	}
}

// ProcessRequest answers one question.
//
// Description:
//
//	Pipeline: snapshot -> synthesize draft -> validate/repair -> execute.
//	Row-set results are rendered directly as text; aggregate results
//	(group counts, percentages) go through the collaborator for a
//	narrative explanation with the health label as context.
//
// Outputs:
//
//	string - the answer text. Degraded states (empty dataset, empty
//	match) come back as stable messages, not errors.
//	error - synthesis or validation failures, with a typed cause.
//
// Thread Safety: safe for concurrent use.
func (a *Agent) ProcessRequest(ctx context.Context, question string) (string, error) {
	question = strings.Join(strings.Fields(question), " ")

	ctx, span := otel.Tracer("seo").Start(ctx, "seo.Agent.ProcessRequest")
	defer span.End()

	ds := a.store.Current(ctx)
	if ds.Empty() {
		span.SetAttributes(attribute.Bool("dataset_empty", true))
		return msgNoData, nil
	}

	draft, err := a.synth.Synthesize(ctx, question)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "synthesis failed")
		return "", err
	}

	validated, err := plan.ValidateAndRepair(draft, question)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return "", err
	}
	span.SetAttributes(attribute.String("operation", string(validated.Operation())))

	result := engine.Execute(ds, validated)

	switch r := result.(type) {
	case engine.URLList:
		if r.Empty() {
			return msgNoMatches, nil
		}
		return renderURLList(r, maxRenderedRows), nil
	case engine.Ranking:
		if r.Empty() {
			return msgNoMatches, nil
		}
		return renderRanking(r, maxRenderedRows), nil
	default:
		answer, err := a.explain(ctx, question, result)
		if err != nil {
			// The numeric result is already computed; a failed phrasing
			// call degrades to the raw rendering rather than losing it.
			slog.Warn("explanation call failed, returning raw result",
				slog.String("error", err.Error()),
			)
			return renderRaw(result), nil
		}
		return answer, nil
	}
}

// Reload forces a dataset rebuild, for startup warmup and admin use.
func (a *Agent) Reload(ctx context.Context) int {
	return a.store.Reload(ctx).Len()
}

// String renders any result for logs and fallbacks.
func renderRaw(result engine.Result) string {
	switch r := result.(type) {
	case engine.GroupCounts:
		return fmt.Sprintf("%v", r.Counts)
	case engine.Percentage:
		return fmt.Sprintf("{\"percentage\": %.2f}", r.Value)
	default:
		return fmt.Sprintf("%v", r)
	}
}
