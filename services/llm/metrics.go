// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package llm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// generateDuration tracks completion-call latency per provider and outcome.
var generateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "crawlsight",
	Subsystem: "llm",
	Name:      "generate_duration_seconds",
	Help:      "LLM completion call latency in seconds",
	Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
}, []string{"provider", "outcome"})

func observeGenerate(provider string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	generateDuration.WithLabelValues(provider, outcome).Observe(time.Since(start).Seconds())
}
