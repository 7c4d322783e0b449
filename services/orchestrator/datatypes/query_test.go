// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     QueryRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  QueryRequest{Query: "show pages without https"},
		},
		{
			name: "valid with property id",
			req:  QueryRequest{PropertyID: "123456", Query: "sessions last week"},
		},
		{
			name:    "empty query rejected",
			req:     QueryRequest{PropertyID: "123456"},
			wantErr: true,
		},
		{
			name: "query at the byte limit",
			req:  QueryRequest{Query: strings.Repeat("a", MaxQueryBytes)},
		},
		{
			name:    "oversized query rejected",
			req:     QueryRequest{Query: strings.Repeat("a", MaxQueryBytes+1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
