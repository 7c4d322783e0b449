// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package plan turns a natural-language question into a validated query
// plan: the Synthesizer asks the language-model collaborator for a draft,
// and the Validator repairs or rejects it. The execution engine only ever
// sees one of the four typed plan variants produced here.
package plan

// Operation is the closed set of plan operations.
type Operation string

const (
	OpFilter  Operation = "filter"
	OpTopN    Operation = "top_n"
	OpGroupBy Operation = "groupby"
	OpMetric  Operation = "metric"
)

// Logic combines filter conditions.
type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

// Condition is one filter predicate. Op is "=", ">" or "<"; Value is a
// JSON scalar (string, float64, or bool).
type Condition struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value any    `json:"value"`
}

// Draft is the loosely-shaped candidate plan as produced by the
// collaborator. Pointer fields distinguish "absent" from "zero" so the
// Validator's inference rules see the same presence information the wire
// JSON carried.
type Draft struct {
	Operation  *string      `json:"operation"`
	Conditions *[]Condition `json:"conditions"`
	Logic      string       `json:"logic"`
	Field      *string      `json:"field"`
	N          *int         `json:"n"`
}

// Plan is a validated query plan: exactly one of the four variants below.
// A value of this type has passed the Validator and carries every field
// its operation requires, so the engine never re-checks presence.
type Plan interface {
	Operation() Operation
}

// FilterPlan selects rows matching Conditions combined with Logic.
type FilterPlan struct {
	Conditions []Condition
	Logic      Logic
}

func (FilterPlan) Operation() Operation { return OpFilter }

// TopNPlan ranks rows by Field descending and keeps the first N.
type TopNPlan struct {
	Field string
	N     int
}

func (TopNPlan) Operation() Operation { return OpTopN }

// GroupByPlan counts rows per distinct value of Field.
type GroupByPlan struct {
	Field string
}

func (GroupByPlan) Operation() Operation { return OpGroupBy }

// MetricPlan computes the mean of Field as a percentage.
type MetricPlan struct {
	Field string
}

func (MetricPlan) Operation() Operation { return OpMetric }
