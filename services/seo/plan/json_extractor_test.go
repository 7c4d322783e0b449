// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plan

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "bare object",
			in:   `{"operation": "filter"}`,
			want: `{"operation": "filter"}`,
		},
		{
			name: "markdown fenced",
			in:   "```json\n{\"operation\": \"metric\"}\n```",
			want: `{"operation": "metric"}`,
		},
		{
			name: "preamble and postamble prose",
			in:   "Sure, here is the plan:\n{\"field\": \"https\"}\nHope that helps!",
			want: `{"field": "https"}`,
		},
		{
			name: "nested object",
			in:   `{"a": {"b": 1}, "c": 2}`,
			want: `{"a": {"b": 1}, "c": 2}`,
		},
		{
			name: "braces inside string literal",
			in:   `{"note": "use {curly} syntax", "n": 3}`,
			want: `{"note": "use {curly} syntax", "n": 3}`,
		},
		{
			name: "escaped quote inside string",
			in:   `{"note": "she said \"hi\"", "n": 1}`,
			want: `{"note": "she said \"hi\"", "n": 1}`,
		},
		{
			name:    "no object at all",
			in:      "I cannot answer that.",
			wantErr: true,
		},
		{
			name:    "unbalanced",
			in:      `{"operation": "filter"`,
			wantErr: true,
		},
		{
			name:    "empty after stripping fences",
			in:      "```json\n```",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error, got %q", got)
				}
				if !errors.Is(err, ErrNoJSON) {
					t.Errorf("error = %v, want ErrNoJSON", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
