// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import (
	"strings"
	"time"
)

// Fallback layouts accepted in addition to RFC 3339. Callers feed timestamps
// from hand-edited JSON, so the engine is deliberately lenient here.
var fallbackLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// parseTimestamp parses an ISO-8601-like timestamp string. A trailing "Z" is
// normalized to an explicit UTC offset first. Returns false when no accepted
// layout matches; the caller skips the record.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	norm := s
	if strings.HasSuffix(norm, "Z") {
		norm = strings.TrimSuffix(norm, "Z") + "+00:00"
	}
	if t, err := time.Parse(time.RFC3339, norm); err == nil {
		return t, true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, norm); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
