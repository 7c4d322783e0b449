// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the orchestrator.
// Metrics are exposed on /metrics; use with Prometheus + Grafana for
// dashboards and alerting.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "crawlsight"
	querySubsystem   = "query"
)

var (
	// queriesTotal counts handled queries by route and outcome.
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: querySubsystem,
		Name:      "requests_total",
		Help:      "Total queries handled, by route and status",
	}, []string{"route", "status"})

	// queryDuration records end-to-end query latency.
	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: querySubsystem,
		Name:      "duration_seconds",
		Help:      "End-to-end query handling latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"route"})

	// intentRouted counts intent-routing decisions.
	intentRouted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: querySubsystem,
		Name:      "intent_total",
		Help:      "Intent routing decisions by resolved intent",
	}, []string{"intent"})

	// answerCacheHits counts answers served from the TTL cache.
	answerCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: querySubsystem,
		Name:      "cache_hits_total",
		Help:      "Answers served from the TTL cache",
	})
)

// RecordQuery records one handled query.
func RecordQuery(route, status string, elapsed time.Duration) {
	queriesTotal.WithLabelValues(route, status).Inc()
	queryDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RecordIntent records one routing decision.
func RecordIntent(intent string) {
	intentRouted.WithLabelValues(intent).Inc()
}

// RecordCacheHit records an answer served from cache.
func RecordCacheHit() {
	answerCacheHits.Inc()
}
