// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crawlsight/crawlsight/services/llm"
	"github.com/crawlsight/crawlsight/services/orchestrator/handlers"
	"github.com/crawlsight/crawlsight/services/orchestrator/middleware"
)

// SetupRoutes registers the orchestrator's endpoints.
//
// POST /query stays at the root for compatibility with existing clients;
// /v1/query is the versioned alias new integrations should use.
func SetupRoutes(router *gin.Engine, agent handlers.QueryAgent, client llm.Client,
	cache *ttlcache.Cache[string, string]) {

	router.Use(middleware.RequestID())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	query := handlers.HandleQuery(agent, client, cache)
	router.POST("/query", query)

	v1 := router.Group("/v1")
	{
		v1.POST("/query", query)
	}
}
