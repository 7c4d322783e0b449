// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plan

import (
	"fmt"
	"strings"
)

// defaultTopN is the row limit when a top_n draft omits n.
const defaultTopN = 10

// Recovered holds the output of lexical condition recovery.
type Recovered struct {
	Conditions []Condition
	Logic      Logic
}

// ValidateAndRepair converts a loose draft into a validated Plan.
//
// Description:
//
//	Total function from draft to one of the four typed plan variants or a
//	typed failure. Missing pieces are inferred where a rule exists:
//	the operation from draft shape or question cues, filter conditions
//	and the top_n ranking field from lexical recovery. Recovery never
//	overrides anything the draft stated explicitly.
//
// Outputs:
//
//	Plan - one of FilterPlan, TopNPlan, GroupByPlan, MetricPlan.
//	error - wraps ErrUnrecoverablePlan or ErrMissingField on rejection.
//
// Thread Safety: safe for concurrent use.
func ValidateAndRepair(draft *Draft, question string) (Plan, error) {
	if draft == nil {
		draft = &Draft{}
	}

	op, err := inferOperation(draft, question)
	if err != nil {
		return nil, err
	}

	switch op {
	case OpFilter:
		return repairFilter(draft, question)
	case OpTopN:
		return repairTopN(draft, question)
	case OpGroupBy:
		if draft.Field == nil || *draft.Field == "" {
			recordValidation(op, "missing_field")
			return nil, fmt.Errorf("%w: groupby requires 'field'", ErrMissingField)
		}
		recordValidation(op, "ok")
		return GroupByPlan{Field: *draft.Field}, nil
	case OpMetric:
		if draft.Field == nil || *draft.Field == "" {
			recordValidation(op, "missing_field")
			return nil, fmt.Errorf("%w: metric requires 'field'", ErrMissingField)
		}
		recordValidation(op, "ok")
		return MetricPlan{Field: *draft.Field}, nil
	default:
		recordValidation(op, "unsupported")
		return nil, fmt.Errorf("%w: unsupported operation %q", ErrUnrecoverablePlan, op)
	}
}

// inferOperation resolves the plan operation, applying the shape rules
// only when the draft omitted it. Priority: conditions imply filter,
// field+n imply top_n, field alone implies metric; then question cues;
// filter is the final fallback.
func inferOperation(draft *Draft, question string) (Operation, error) {
	if draft.Operation != nil && *draft.Operation != "" {
		op := Operation(strings.ToLower(strings.TrimSpace(*draft.Operation)))
		switch op {
		case OpFilter, OpTopN, OpGroupBy, OpMetric:
			return op, nil
		default:
			return op, fmt.Errorf("%w: unknown operation %q", ErrUnrecoverablePlan, *draft.Operation)
		}
	}

	switch {
	case draft.Conditions != nil:
		return OpFilter, nil
	case draft.Field != nil && draft.N != nil:
		return OpTopN, nil
	case draft.Field != nil:
		return OpMetric, nil
	}

	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "top"):
		return OpTopN, nil
	case strings.Contains(q, "group"):
		return OpGroupBy, nil
	default:
		return OpFilter, nil
	}
}

func repairFilter(draft *Draft, question string) (Plan, error) {
	var conditions []Condition
	logic := Logic(strings.ToLower(draft.Logic))

	if draft.Conditions != nil && len(*draft.Conditions) > 0 {
		conditions = *draft.Conditions
	} else {
		recovered := RecoverConditions(question)
		conditions = recovered.Conditions
		logic = recovered.Logic
	}

	if logic == "" {
		logic = LogicAnd
	}

	if len(conditions) == 0 {
		recordValidation(OpFilter, "unrecoverable")
		return nil, fmt.Errorf("%w: filter inferred but no conditions found", ErrUnrecoverablePlan)
	}

	recordValidation(OpFilter, "ok")
	return FilterPlan{Conditions: conditions, Logic: logic}, nil
}

func repairTopN(draft *Draft, question string) (Plan, error) {
	var field string
	if draft.Field != nil && *draft.Field != "" {
		field = *draft.Field
	} else {
		field = RecoverTopNField(question)
		if field == "" {
			recordValidation(OpTopN, "unrecoverable")
			return nil, fmt.Errorf(
				"%w: top_n requires a ranking field and none could be inferred", ErrUnrecoverablePlan)
		}
	}

	n := defaultTopN
	if draft.N != nil {
		n = *draft.N
	}

	recordValidation(OpTopN, "ok")
	return TopNPlan{Field: field, N: n}, nil
}

// RecoverConditions scans the question for the known condition phrasings.
//
// The patterns are deliberately narrow, tuned to specific phrasings
// observed in real audit questions. Do not generalize them: downstream
// behavior depends on exactly these triggers.
func RecoverConditions(question string) Recovered {
	q := strings.ToLower(question)

	logic := LogicAnd
	if strings.Contains(q, " or ") {
		logic = LogicOr
	}

	var conditions []Condition

	if strings.Contains(q, "https") && containsAny(q, "do not", "not use", "without", "missing") {
		conditions = append(conditions, Condition{Field: FieldHTTPS, Op: "=", Value: false})
	}

	if strings.Contains(q, "title") && strings.Contains(q, "60") {
		conditions = append(conditions, Condition{Field: FieldTitleLength, Op: ">", Value: float64(60)})
	}

	if strings.Contains(q, "meta") && containsAny(q, "missing", "0") {
		conditions = append(conditions, Condition{Field: FieldMetaLength, Op: "=", Value: float64(0)})
	}

	if containsAny(q, "non-indexable", "not indexable") {
		conditions = append(conditions, Condition{Field: FieldIndexability, Op: "=", Value: false})
	}

	return Recovered{Conditions: conditions, Logic: logic}
}

// RecoverTopNField infers the ranking field from question cues. Returns ""
// when no cue matches.
func RecoverTopNField(question string) string {
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, "title"):
		return FieldTitleLength
	case strings.Contains(q, "meta"):
		return FieldMetaLength
	case strings.Contains(q, "status"), strings.Contains(q, "error"):
		return FieldStatusCode
	default:
		return ""
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
