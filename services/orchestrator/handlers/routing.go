// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/crawlsight/crawlsight/services/llm"
)

// Intents the router can resolve a question to.
const (
	IntentSEO  = "SEO"
	IntentGA4  = "GA4"
	IntentBoth = "BOTH"
)

const routingTimeout = 15 * time.Second

const routingSystemPrompt = `Classify the user question into:
1. 'GA4' - Traffic, users, sessions, views, time-trends.
2. 'SEO' - Status codes, https, meta tags, word count, crawl depth.
3. 'BOTH' - If the user asks to correlate traffic/views with SEO metrics (e.g., "Top pages by views and their title tags").

Return ONLY one word: 'GA4', 'SEO', or 'BOTH'.`

// routeIntent decides which agent a question belongs to. Routing errors
// degrade to the SEO intent rather than failing the request: the audit
// agent is always available and answers conservatively.
func routeIntent(ctx context.Context, client llm.Client, question string) string {
	callCtx, cancel := context.WithTimeout(ctx, routingTimeout)
	defer cancel()

	text, err := client.Generate(callCtx, []llm.Message{
		{Role: llm.RoleSystem, Content: routingSystemPrompt},
		{Role: llm.RoleUser, Content: question},
	}, llm.GenerateOptions{})
	if err != nil {
		slog.Warn("intent routing failed, defaulting to SEO",
			slog.String("error", err.Error()),
		)
		return IntentSEO
	}

	intent := strings.ToUpper(strings.TrimSpace(text))
	switch {
	case strings.Contains(intent, IntentBoth), strings.Contains(intent, "HYBRID"):
		return IntentBoth
	case strings.Contains(intent, IntentGA4):
		return IntentGA4
	default:
		return IntentSEO
	}
}
