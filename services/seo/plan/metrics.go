// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// synthesisAttemptsTotal counts collaborator calls made by the
	// Synthesizer, including correction reissues.
	synthesisAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crawlsight",
		Subsystem: "planner",
		Name:      "synthesis_attempts_total",
		Help:      "Total plan synthesis attempts against the LLM collaborator",
	}, []string{"provider"})

	// synthesisFailuresTotal counts exhausted attempt budgets.
	synthesisFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crawlsight",
		Subsystem: "planner",
		Name:      "synthesis_failures_total",
		Help:      "Total plan synthesis failures after exhausting the attempt budget",
	}, []string{"provider"})

	// validationOutcomes counts validator results by operation and outcome.
	validationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crawlsight",
		Subsystem: "planner",
		Name:      "validation_outcomes_total",
		Help:      "Validator outcomes by operation and result",
	}, []string{"operation", "outcome"})
)

func recordSynthesisAttempt(provider string) {
	synthesisAttemptsTotal.WithLabelValues(provider).Inc()
}

func recordSynthesisFailure(provider string) {
	synthesisFailuresTotal.WithLabelValues(provider).Inc()
}

func recordValidation(op Operation, outcome string) {
	validationOutcomes.WithLabelValues(string(op), outcome).Inc()
}
