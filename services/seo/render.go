// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package seo

import (
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/crawlsight/crawlsight/services/seo/engine"
)

// renderURLList prints a filter result as a plain one-column table capped
// at limit rows, dataset order preserved.
func renderURLList(r engine.URLList, limit int) string {
	var sb strings.Builder
	sb.WriteString("Address\n")
	for i, addr := range r.Addresses {
		if i >= limit {
			break
		}
		sb.WriteString(addr)
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderRanking prints a top_n result as a two-column table capped at
// limit rows.
func renderRanking(r engine.Ranking, limit int) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	_, _ = w.Write([]byte("Address\t" + r.Field + "\n"))
	for i, row := range r.Rows {
		if i >= limit {
			break
		}
		_, _ = w.Write([]byte(row.Address + "\t" + formatNumber(row.Value) + "\n"))
	}
	_ = w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

// formatNumber drops the fractional part for whole numbers so lengths and
// status codes read as integers.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
