// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plan

import "errors"

// Sentinel errors for the planning stage. All of them are fatal to the
// query that raised them; none touches the dataset.
var (
	// ErrSynthesisFailed indicates the collaborator never returned
	// parseable JSON within the attempt budget.
	ErrSynthesisFailed = errors.New("failed to generate a valid query plan")

	// ErrUnrecoverablePlan indicates the validator could not complete a
	// structurally required part of the plan, even after lexical recovery.
	ErrUnrecoverablePlan = errors.New("plan is unrecoverable")

	// ErrMissingField indicates an operation that mandates a field arrived
	// without one and no recovery rule applies.
	ErrMissingField = errors.New("plan is missing a required field")

	// ErrNoJSON indicates no JSON object could be located in a response.
	ErrNoJSON = errors.New("no JSON object found in response")
)
