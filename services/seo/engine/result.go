// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine deterministically evaluates a validated plan against the
// dataset. It never calls the language-model collaborator and has no
// mutable state of its own: the same plan over the same dataset always
// produces an identical result.
package engine

// Result is a typed execution outcome: exactly one of the variants below.
type Result interface {
	// Empty reports the operation's natural empty result.
	Empty() bool
}

// URLList is a filter result: the identity-column projection of matching
// rows, in dataset order.
type URLList struct {
	Addresses []string
}

func (r URLList) Empty() bool { return len(r.Addresses) == 0 }

// RankedRow is one row of a Ranking.
type RankedRow struct {
	Address string
	Value   float64
}

// Ranking is a top_n result: identity column plus the ranking column for
// the first N rows after a stable descending sort.
type Ranking struct {
	Field string
	Rows  []RankedRow
}

func (r Ranking) Empty() bool { return len(r.Rows) == 0 }

// GroupCounts is a groupby result: distinct value to row count. Iteration
// order is not semantically significant.
type GroupCounts struct {
	Field  string
	Counts map[string]int
}

func (r GroupCounts) Empty() bool { return len(r.Counts) == 0 }

// Percentage is a metric result: the column mean scaled to a percentage
// and rounded to two decimal places.
type Percentage struct {
	Field string
	Value float64
}

// Empty is always false for Percentage: 0.0 is a meaningful answer.
func (r Percentage) Empty() bool { return false }
