// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plan

import (
	"fmt"
	"strings"
)

// ExtractJSON locates the first JSON object in LLM response text.
//
// Description:
//
//	Models asked for "JSON only" still wrap output in markdown fences or
//	add preamble/postamble prose. This strips ``` fences and scans for a
//	balanced top-level object, respecting string literals and escapes, so
//	nested braces inside reasoning strings don't truncate the match.
//
// Outputs:
//
//	string - the candidate JSON object text.
//	error - ErrNoJSON when no balanced object is present.
//
// Thread Safety: safe for concurrent use.
func ExtractJSON(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", fmt.Errorf("empty response: %w", ErrNoJSON)
	}

	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		c := cleaned[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return cleaned[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("unbalanced braces: %w", ErrNoJSON)
}
