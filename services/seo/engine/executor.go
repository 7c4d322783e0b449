// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"math"
	"sort"

	"github.com/crawlsight/crawlsight/services/seo/dataset"
	"github.com/crawlsight/crawlsight/services/seo/plan"
)

// Execute evaluates a validated plan against the dataset.
//
// Description:
//
//	Pure dispatch over the plan variants. Column-resolution failures
//	degrade per operation (skipped condition, empty ranking, empty map,
//	zero percentage) instead of aborting; an empty dataset yields each
//	operation's natural empty result. The plan is applied fully or not
//	at all, never partially.
//
// Thread Safety: safe for concurrent use; the dataset is read-only here.
func Execute(d *dataset.Dataset, p plan.Plan) Result {
	switch v := p.(type) {
	case plan.FilterPlan:
		return executeFilter(d, v)
	case plan.TopNPlan:
		return executeTopN(d, v)
	case plan.GroupByPlan:
		return executeGroupBy(d, v)
	case plan.MetricPlan:
		return executeMetric(d, v)
	default:
		return URLList{}
	}
}

// resolve maps a semantic field to a column actually present in the
// dataset. The second return is false for both catalog misses and schema
// misses: the caller treats them identically.
func resolve(d *dataset.Dataset, field string) (string, bool) {
	col, ok := plan.ResolveColumn(field)
	if !ok || !d.HasColumn(col) {
		return "", false
	}
	return col, true
}

func executeFilter(d *dataset.Dataset, p plan.FilterPlan) Result {
	type predicate func(dataset.Record) bool

	var preds []predicate
	for _, cond := range p.Conditions {
		col, ok := resolve(d, cond.Field)
		if !ok {
			// Unknown column: the condition contributes no mask.
			continue
		}
		want := cond.Value
		switch cond.Op {
		case "=":
			preds = append(preds, func(rec dataset.Record) bool {
				return dataset.EqualValue(rec[col], want)
			})
		case ">":
			preds = append(preds, func(rec dataset.Record) bool {
				return dataset.NumberValue(rec[col]) > dataset.NumberValue(want)
			})
		case "<":
			preds = append(preds, func(rec dataset.Record) bool {
				return dataset.NumberValue(rec[col]) < dataset.NumberValue(want)
			})
		}
	}

	records := d.Records()
	out := URLList{}

	// No usable mask: identity result over all rows.
	if len(preds) == 0 {
		for _, rec := range records {
			out.Addresses = append(out.Addresses, dataset.StringValue(rec[dataset.ColumnAddress]))
		}
		return out
	}

	for _, rec := range records {
		match := p.Logic != plan.LogicOr
		for _, pred := range preds {
			if p.Logic == plan.LogicOr {
				if pred(rec) {
					match = true
					break
				}
			} else if !pred(rec) {
				match = false
				break
			}
		}
		if match {
			out.Addresses = append(out.Addresses, dataset.StringValue(rec[dataset.ColumnAddress]))
		}
	}
	return out
}

func executeTopN(d *dataset.Dataset, p plan.TopNPlan) Result {
	col, ok := resolve(d, p.Field)
	if !ok {
		return Ranking{Field: p.Field}
	}

	records := d.Records()
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	// Stable sort: ties keep original dataset order.
	sort.SliceStable(idx, func(a, b int) bool {
		return dataset.NumberValue(records[idx[a]][col]) > dataset.NumberValue(records[idx[b]][col])
	})

	n := p.N
	if n < 0 {
		n = 0
	}
	if n > len(idx) {
		n = len(idx)
	}

	out := Ranking{Field: p.Field}
	for _, i := range idx[:n] {
		out.Rows = append(out.Rows, RankedRow{
			Address: dataset.StringValue(records[i][dataset.ColumnAddress]),
			Value:   dataset.NumberValue(records[i][col]),
		})
	}
	return out
}

func executeGroupBy(d *dataset.Dataset, p plan.GroupByPlan) Result {
	out := GroupCounts{Field: p.Field, Counts: map[string]int{}}
	col, ok := resolve(d, p.Field)
	if !ok {
		return out
	}
	for _, rec := range d.Records() {
		out.Counts[dataset.StringValue(rec[col])]++
	}
	return out
}

func executeMetric(d *dataset.Dataset, p plan.MetricPlan) Result {
	col, ok := resolve(d, p.Field)
	if !ok || d.Empty() {
		return Percentage{Field: p.Field}
	}

	var sum float64
	for _, rec := range d.Records() {
		sum += dataset.NumberValue(rec[col])
	}
	mean := sum / float64(d.Len())
	return Percentage{
		Field: p.Field,
		Value: math.Round(mean*100*100) / 100,
	}
}
