// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plan

import (
	"sort"

	"github.com/crawlsight/crawlsight/services/seo/dataset"
)

// Semantic field keys: the only vocabulary the planner and executor may
// reference. The catalog is fixed and closed; a key outside it resolves to
// "column absent" downstream, never to an error.
const (
	FieldHTTPS        = "https"
	FieldIndexability = "indexability"
	FieldTitleLength  = "title_length"
	FieldMetaLength   = "meta_description_length"
	FieldStatusCode   = "status_code"
)

// fieldColumns maps semantic field keys to concrete dataset columns.
var fieldColumns = map[string]string{
	FieldHTTPS:        dataset.FeatureUsesHTTPS,
	FieldIndexability: dataset.FeatureIsIndexable,
	FieldTitleLength:  "Title_1_Length",
	FieldMetaLength:   "Meta_Description_1_Length",
	FieldStatusCode:   "Status_Code",
}

// ResolveColumn maps a semantic field key to its dataset column.
// ok is false for keys outside the catalog.
func ResolveColumn(field string) (column string, ok bool) {
	column, ok = fieldColumns[field]
	return column, ok
}

// Fields returns the catalog's semantic keys in sorted order, for prompt
// construction and validation messages.
func Fields() []string {
	out := make([]string, 0, len(fieldColumns))
	for k := range fieldColumns {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
