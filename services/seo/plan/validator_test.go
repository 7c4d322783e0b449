// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plan

import (
	"errors"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func condsPtr(c ...Condition) *[]Condition {
	return &c
}

func TestValidateAndRepair(t *testing.T) {
	tests := []struct {
		name     string
		draft    *Draft
		question string
		want     Plan
		wantErr  error
	}{
		{
			name: "explicit filter passes through",
			draft: &Draft{
				Operation:  strPtr("filter"),
				Conditions: condsPtr(Condition{Field: FieldHTTPS, Op: "=", Value: false}),
				Logic:      "and",
			},
			want: FilterPlan{
				Conditions: []Condition{{Field: FieldHTTPS, Op: "=", Value: false}},
				Logic:      LogicAnd,
			},
		},
		{
			name:  "operation case and whitespace normalized",
			draft: &Draft{Operation: strPtr("  Top_N  "), Field: strPtr(FieldTitleLength), N: intPtr(5)},
			want:  TopNPlan{Field: FieldTitleLength, N: 5},
		},
		{
			name:    "unknown explicit operation rejected",
			draft:   &Draft{Operation: strPtr("delete_rows")},
			wantErr: ErrUnrecoverablePlan,
		},
		{
			name:  "conditions imply filter",
			draft: &Draft{Conditions: condsPtr(Condition{Field: FieldStatusCode, Op: ">", Value: float64(399)})},
			want: FilterPlan{
				Conditions: []Condition{{Field: FieldStatusCode, Op: ">", Value: float64(399)}},
				Logic:      LogicAnd,
			},
		},
		{
			name:  "field plus n implies top_n",
			draft: &Draft{Field: strPtr(FieldMetaLength), N: intPtr(3)},
			want:  TopNPlan{Field: FieldMetaLength, N: 3},
		},
		{
			name:  "field alone implies metric",
			draft: &Draft{Field: strPtr(FieldHTTPS)},
			want:  MetricPlan{Field: FieldHTTPS},
		},
		{
			name:     "top cue in question implies top_n",
			draft:    &Draft{},
			question: "show the top pages by title length",
			want:     TopNPlan{Field: FieldTitleLength, N: defaultTopN},
		},
		{
			name:     "group cue implies groupby but field is required",
			draft:    &Draft{},
			question: "group the pages by status",
			wantErr:  ErrMissingField,
		},
		{
			name:    "groupby without field rejected",
			draft:   &Draft{Operation: strPtr("groupby")},
			wantErr: ErrMissingField,
		},
		{
			name:    "metric without field rejected",
			draft:   &Draft{Operation: strPtr("metric")},
			wantErr: ErrMissingField,
		},
		{
			name:  "top_n without n defaults",
			draft: &Draft{Operation: strPtr("top_n"), Field: strPtr(FieldStatusCode)},
			want:  TopNPlan{Field: FieldStatusCode, N: defaultTopN},
		},
		{
			name:     "top_n field recovered from question",
			draft:    &Draft{Operation: strPtr("top_n"), N: intPtr(5)},
			question: "top 5 pages by meta description length",
			want:     TopNPlan{Field: FieldMetaLength, N: 5},
		},
		{
			name:     "top_n with no field cue rejected",
			draft:    &Draft{Operation: strPtr("top_n")},
			question: "top pages overall",
			wantErr:  ErrUnrecoverablePlan,
		},
		{
			name:     "filter conditions recovered from question",
			draft:    &Draft{Operation: strPtr("filter")},
			question: "show me pages that do not use https",
			want: FilterPlan{
				Conditions: []Condition{{Field: FieldHTTPS, Op: "=", Value: false}},
				Logic:      LogicAnd,
			},
		},
		{
			name:     "multi-condition recovery keeps conjunction",
			draft:    &Draft{},
			question: "show me pages with title over 60 and https missing",
			want: FilterPlan{
				Conditions: []Condition{
					{Field: FieldHTTPS, Op: "=", Value: false},
					{Field: FieldTitleLength, Op: ">", Value: float64(60)},
				},
				Logic: LogicAnd,
			},
		},
		{
			name:     "or phrasing recovers disjunction",
			draft:    &Draft{Operation: strPtr("filter")},
			question: "pages without https or that are non-indexable",
			want: FilterPlan{
				Conditions: []Condition{
					{Field: FieldHTTPS, Op: "=", Value: false},
					{Field: FieldIndexability, Op: "=", Value: false},
				},
				Logic: LogicOr,
			},
		},
		{
			name:     "draft conditions beat recovery",
			draft:    &Draft{Conditions: condsPtr(Condition{Field: FieldStatusCode, Op: "=", Value: float64(404)})},
			question: "pages that do not use https",
			want: FilterPlan{
				Conditions: []Condition{{Field: FieldStatusCode, Op: "=", Value: float64(404)}},
				Logic:      LogicAnd,
			},
		},
		{
			name:     "filter with nothing to recover rejected",
			draft:    &Draft{Operation: strPtr("filter")},
			question: "tell me about my website",
			wantErr:  ErrUnrecoverablePlan,
		},
		{
			name:     "nil draft falls back to question cues",
			draft:    nil,
			question: "which pages have a missing meta description",
			want: FilterPlan{
				Conditions: []Condition{{Field: FieldMetaLength, Op: "=", Value: float64(0)}},
				Logic:      LogicAnd,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAndRepair(tt.draft, tt.question)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("want error %v, got plan %#v", tt.wantErr, got)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateAndRepair: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("plan = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRecoverConditionsLogic(t *testing.T) {
	r := RecoverConditions("pages that do not use https or have title over 60")
	if r.Logic != LogicOr {
		t.Errorf("logic = %q, want or", r.Logic)
	}
	if len(r.Conditions) != 2 {
		t.Fatalf("got %d conditions, want 2", len(r.Conditions))
	}
}

func TestRecoverTopNField(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"top pages by title length", FieldTitleLength},
		{"longest meta descriptions", FieldMetaLength},
		{"worst status codes", FieldStatusCode},
		{"pages with the most errors", FieldStatusCode},
		{"biggest pages", ""},
	}
	for _, tt := range tests {
		if got := RecoverTopNField(tt.question); got != tt.want {
			t.Errorf("RecoverTopNField(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestResolveColumn(t *testing.T) {
	if col, ok := ResolveColumn(FieldStatusCode); !ok || col != "Status_Code" {
		t.Errorf("ResolveColumn(status_code) = %q, %v", col, ok)
	}
	if _, ok := ResolveColumn("page_rank"); ok {
		t.Error("unknown field should not resolve")
	}
}
