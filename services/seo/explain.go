// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package seo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crawlsight/crawlsight/services/llm"
	"github.com/crawlsight/crawlsight/services/seo/engine"
)

const explainTimeout = 60 * time.Second

const explainSystemPrompt = `You are a senior SEO analyst.

Explain the result clearly.
If percentages are provided, assess technical SEO health.
Mention risks and practical implications.
Be concise and professional.`

// explain asks the collaborator to phrase an aggregate result. The health
// label accompanies percentage results as auxiliary context; it never
// changes the number itself.
func (a *Agent) explain(ctx context.Context, question string, result engine.Result) (string, error) {
	health := "None"
	var payload any
	switch r := result.(type) {
	case engine.Percentage:
		health = engine.HealthLabel(r.Value)
		payload = map[string]float64{"percentage": r.Value}
	case engine.GroupCounts:
		payload = r.Counts
	default:
		payload = r
	}

	resultJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	userPrompt := fmt.Sprintf(
		"User Question:\n%s\n\nComputed Result:\n%s\n\nSEO Health (if applicable):\n%s",
		question, resultJSON, health,
	)

	callCtx, cancel := context.WithTimeout(ctx, explainTimeout)
	defer cancel()

	answer, err := a.llm.Generate(callCtx, []llm.Message{
		{Role: llm.RoleSystem, Content: explainSystemPrompt},
		{Role: llm.RoleUser, Content: userPrompt},
	}, llm.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("explanation call: %w", err)
	}
	return answer, nil
}
