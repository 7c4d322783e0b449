// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package dataset holds the in-memory crawl-audit table: one Record per
// audited URL, normalized columns, and derived SEO feature flags.
//
// The Dataset is built once from raw ingested rows and is immutable
// afterwards. Readers share it freely; replacement happens wholesale
// through the Store.
package dataset

import (
	"strconv"
	"strings"
)

// ColumnAddress is the identity column. Every projection the execution
// engine produces includes it.
const ColumnAddress = "Address"

// RawRow is one ingested row before normalization: raw header -> raw cell.
type RawRow map[string]string

// Record is one normalized row. Values are string, float64, or bool.
type Record map[string]any

// Dataset is an ordered, schema-stable sequence of Records.
//
// Invariant: every Record carries a total value for each derived feature
// column (see features.go). Row order is the ingestion order and is
// preserved by all read paths.
//
// Thread Safety: immutable after construction; safe for concurrent reads.
type Dataset struct {
	columns map[string]bool
	records []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Empty reports whether the dataset holds no records.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// HasColumn reports whether the named column exists in the schema.
// An unknown column is a degraded-but-valid state for the engine, never
// an error.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	return d.columns[name]
}

// Records returns the underlying rows. Callers must not mutate them.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Columns returns the schema column names in no particular order.
func (d *Dataset) Columns() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.columns))
	for c := range d.columns {
		out = append(out, c)
	}
	return out
}

// NumberValue coerces a cell to float64 for ordering and averaging.
// Booleans count as 0/1 so a boolean column's mean is its true-fraction.
// Strings are parsed best-effort; anything else is 0.
func NumberValue(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// StringValue renders a cell for projections and group keys. Numeric cells
// print without a trailing ".0" so status codes group as "404", not "404.0".
func StringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}

// EqualValue compares a cell against a plan condition value. Bool cells
// compare as booleans, numeric cells numerically, everything else as
// strings. Mixed bool/number pairs follow the numeric view (true == 1).
func EqualValue(cell, want any) bool {
	cb, cellIsBool := cell.(bool)
	wb, wantIsBool := want.(bool)
	if cellIsBool && wantIsBool {
		return cb == wb
	}
	if cellIsBool || wantIsBool {
		return NumberValue(cell) == NumberValue(want)
	}
	if _, ok := cell.(float64); ok {
		return NumberValue(cell) == NumberValue(want)
	}
	if _, ok := want.(float64); ok {
		return NumberValue(cell) == NumberValue(want)
	}
	return StringValue(cell) == StringValue(want)
}
