// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

// Health labels for metric percentages.
const (
	HealthGood    = "good"
	HealthAverage = "average"
	HealthPoor    = "poor"
)

// HealthLabel maps a percentage to a coarse qualitative bucket. It feeds
// the narrative explanation as auxiliary context and never alters the
// numeric result.
func HealthLabel(percentage float64) string {
	switch {
	case percentage >= 90:
		return HealthGood
	case percentage >= 70:
		return HealthAverage
	default:
		return HealthPoor
	}
}
