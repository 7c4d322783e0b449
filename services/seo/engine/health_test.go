// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "testing"

func TestHealthLabel(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, HealthGood},
		{90, HealthGood},
		{89.99, HealthAverage},
		{70, HealthAverage},
		{69.99, HealthPoor},
		{0, HealthPoor},
	}
	for _, tt := range tests {
		if got := HealthLabel(tt.pct); got != tt.want {
			t.Errorf("HealthLabel(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
