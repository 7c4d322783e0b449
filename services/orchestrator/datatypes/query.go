// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides request and response types for the
// orchestrator service.
package datatypes

import (
	"github.com/go-playground/validator/v10"
)

// MaxQueryBytes limits a single question. Checked in bytes, not runes,
// to bound memory on hostile payloads.
const MaxQueryBytes = 8 * 1024

// queryValidate is the shared validator instance for query datatypes.
var queryValidate *validator.Validate

func init() {
	queryValidate = validator.New()
	_ = queryValidate.RegisterValidation("maxbytes", validateMaxBytes)
}

func validateMaxBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxQueryBytes
}

// QueryRequest is one analytical question. PropertyID is only meaningful
// for traffic-analytics routing and may be empty.
type QueryRequest struct {
	PropertyID string `json:"propertyId"`
	Query      string `json:"query" binding:"required" validate:"required,maxbytes"`
}

// Validate applies the full validation rules beyond gin's binding tags.
func (r *QueryRequest) Validate() error {
	return queryValidate.Struct(r)
}

// QueryResponse carries the answer text. Failures are reported in-band as
// answer text so chat surfaces always have something to show.
type QueryResponse struct {
	Answer string `json:"answer"`
}
