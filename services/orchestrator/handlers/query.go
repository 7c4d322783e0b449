// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers implements the orchestrator's HTTP handlers.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"

	"github.com/crawlsight/crawlsight/services/llm"
	"github.com/crawlsight/crawlsight/services/orchestrator/datatypes"
	"github.com/crawlsight/crawlsight/services/orchestrator/middleware"
	"github.com/crawlsight/crawlsight/services/orchestrator/observability"
)

// Answer texts for intents this deployment cannot serve. The traffic
// reporting agent is a separate deployment; the orchestrator only routes.
const (
	msgGA4Unavailable = "Traffic analytics questions are handled by the analytics agent, " +
		"which is not connected in this deployment."
	msgHybridUnavailable = "Correlating traffic with audit data needs the analytics agent, " +
		"which is not connected in this deployment. The SEO part of your question can be asked on its own."
)

// QueryAgent is the audit agent contract the handler depends on.
type QueryAgent interface {
	ProcessRequest(ctx context.Context, question string) (string, error)
}

// NewAnswerCache builds the TTL cache for repeated questions.
func NewAnswerCache(ttl time.Duration) *ttlcache.Cache[string, string] {
	cache := ttlcache.New[string, string](
		ttlcache.WithTTL[string, string](ttl),
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
	go cache.Start()
	return cache
}

// HandleQuery answers POST /query.
//
// Description:
//
//	Routes the question by intent (when a property ID signals possible
//	traffic scope), then delegates SEO questions to the audit agent.
//	Pipeline failures come back as in-band "System Error" answers with
//	HTTP 200, keeping the response shape stable for chat frontends.
func HandleQuery(agent QueryAgent, client llm.Client, cache *ttlcache.Cache[string, string]) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req datatypes.QueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			observability.RecordQuery("query", "bad_request", time.Since(start))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}
		if err := req.Validate(); err != nil {
			observability.RecordQuery("query", "bad_request", time.Since(start))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		intent := IntentSEO
		if req.PropertyID != "" {
			intent = routeIntent(c.Request.Context(), client, req.Query)
		}
		observability.RecordIntent(intent)
		slog.Info("query routed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("intent", intent),
			slog.Int("query_length", len(req.Query)),
		)

		switch intent {
		case IntentGA4:
			observability.RecordQuery("query", "unsupported_intent", time.Since(start))
			c.JSON(http.StatusOK, datatypes.QueryResponse{Answer: msgGA4Unavailable})
			return
		case IntentBoth:
			observability.RecordQuery("query", "unsupported_intent", time.Since(start))
			c.JSON(http.StatusOK, datatypes.QueryResponse{Answer: msgHybridUnavailable})
			return
		}

		cacheKey := strings.ToLower(strings.Join(strings.Fields(req.Query), " "))
		if item := cache.Get(cacheKey); item != nil {
			observability.RecordCacheHit()
			observability.RecordQuery("query", "cache_hit", time.Since(start))
			c.JSON(http.StatusOK, datatypes.QueryResponse{Answer: item.Value()})
			return
		}

		answer, err := agent.ProcessRequest(c.Request.Context(), req.Query)
		if err != nil {
			slog.Error("query failed",
				slog.String("request_id", middleware.GetRequestID(c)),
				slog.String("error", err.Error()),
			)
			observability.RecordQuery("query", "error", time.Since(start))
			c.JSON(http.StatusOK, datatypes.QueryResponse{
				Answer: fmt.Sprintf("System Error: %v", err),
			})
			return
		}

		cache.Set(cacheKey, answer, ttlcache.DefaultTTL)
		observability.RecordQuery("query", "ok", time.Since(start))
		c.JSON(http.StatusOK, datatypes.QueryResponse{Answer: answer})
	}
}
