// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"strconv"
	"strings"
)

// numericColumns are coerced to float64 during normalization. Values keep
// crawl-export formatting quirks (thousands separators); unparsable or
// missing cells become 0 rather than failing the load.
var numericColumns = []string{
	"Title_1_Length",
	"Meta_Description_1_Length",
	"Word_Count",
	"Status_Code",
	"Size_Bytes",
}

// NormalizeColumn rewrites a raw header into a stable identifier:
// surrounding whitespace trimmed, spaces and hyphens become underscores,
// parentheses are dropped.
//
// "Meta Description 1 (Length)" -> "Meta_Description_1_Length"
func NormalizeColumn(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "(", "")
	name = strings.ReplaceAll(name, ")", "")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// Normalize builds a Dataset from raw ingested rows.
//
// Description:
//
//	Applies the full normalization pipeline: header cleanup, numeric
//	coercion for the expected crawl-metric columns, and derivation of the
//	boolean SEO feature columns. Every step degrades instead of failing:
//	an empty input produces an empty (valid) Dataset and a missing source
//	column leaves its features at their safe defaults.
//
// Outputs:
//
//	*Dataset - never nil; Empty() when rows is empty.
//
// Thread Safety: safe for concurrent use; the input rows are not retained.
func Normalize(rows []RawRow) *Dataset {
	d := &Dataset{columns: make(map[string]bool)}
	if len(rows) == 0 {
		// Feature columns are still part of the schema so downstream
		// lookups behave the same on an empty dataset.
		for _, f := range featureColumns {
			d.columns[f] = true
		}
		return d
	}

	d.records = make([]Record, 0, len(rows))
	for _, raw := range rows {
		rec := make(Record, len(raw)+len(featureColumns))
		for rawName, cell := range raw {
			name := NormalizeColumn(rawName)
			d.columns[name] = true
			rec[name] = cell
		}
		coerceNumerics(rec)
		enrichFeatures(rec)
		d.records = append(d.records, rec)
	}
	for _, f := range featureColumns {
		d.columns[f] = true
	}
	return d
}

// coerceNumerics parses the expected numeric columns in place. Only columns
// present in the row are touched; absence is handled at feature-derivation
// and execution time, not here.
func coerceNumerics(rec Record) {
	for _, col := range numericColumns {
		cell, ok := rec[col]
		if !ok {
			continue
		}
		s := strings.ReplaceAll(strings.TrimSpace(StringValue(cell)), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			f = 0
		}
		rec[col] = f
	}
}
