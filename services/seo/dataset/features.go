// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import "strings"

// Derived feature columns. Each is total: defaulted to false before any
// source-column check so a missing source column degrades to the default
// instead of leaving a hole.
const (
	FeatureUsesHTTPS    = "uses_https"
	FeatureIsIndexable  = "is_indexable"
	FeatureTitleTooLong = "title_too_long"
	FeatureTitleMissing = "title_missing"
	FeatureMetaMissing  = "meta_missing"
	FeatureMetaTooLong  = "meta_too_long"
	FeatureIsError      = "is_error"
)

// SEO thresholds for the derived flags.
const (
	titleMaxLength = 60
	metaMaxLength  = 160
	errorMinStatus = 400
)

var featureColumns = []string{
	FeatureUsesHTTPS,
	FeatureIsIndexable,
	FeatureTitleTooLong,
	FeatureTitleMissing,
	FeatureMetaMissing,
	FeatureMetaTooLong,
	FeatureIsError,
}

// FeatureColumns returns the names of all derived boolean columns.
func FeatureColumns() []string {
	out := make([]string, len(featureColumns))
	copy(out, featureColumns)
	return out
}

// enrichFeatures derives the boolean feature columns on a single record.
// Runs after numeric coercion so the length/status comparisons see float64
// cells.
func enrichFeatures(rec Record) {
	for _, f := range featureColumns {
		rec[f] = false
	}

	if addr, ok := rec[ColumnAddress]; ok {
		rec[FeatureUsesHTTPS] = strings.HasPrefix(StringValue(addr), "https")
	}

	if idx, ok := rec["Indexability"]; ok {
		rec[FeatureIsIndexable] = strings.Contains(
			strings.ToLower(StringValue(idx)), "indexable")
	}

	if title, ok := rec["Title_1_Length"]; ok {
		length := NumberValue(title)
		rec[FeatureTitleTooLong] = length > titleMaxLength
		rec[FeatureTitleMissing] = length == 0
	}

	if meta, ok := rec["Meta_Description_1_Length"]; ok {
		length := NumberValue(meta)
		rec[FeatureMetaMissing] = length == 0
		rec[FeatureMetaTooLong] = length > metaMaxLength
	}

	if status, ok := rec["Status_Code"]; ok {
		rec[FeatureIsError] = NumberValue(status) >= errorMinStatus
	}
}
