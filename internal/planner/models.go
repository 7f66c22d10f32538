// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import "encoding/json"

// Book is the reading progress snapshot handed in by the caller.
// The engine only reads it.
type Book struct {
	TotalPages  int `json:"total_pages" yaml:"total_pages"`
	CurrentPage int `json:"current_page" yaml:"current_page"`
}

// RemainingPages returns the pages left to read, never negative.
func (b Book) RemainingPages() int {
	remaining := b.TotalPages - b.CurrentPage
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TimeSlot is a candidate interval for allocation. Start and End are
// ISO-8601-like timestamp strings supplied by the caller; QualityScore is a
// [0,1] heuristic ranking desirability and defaults to 0.5 when absent.
type TimeSlot struct {
	Start           string  `json:"start" yaml:"start"`
	End             string  `json:"end" yaml:"end"`
	DurationMinutes int     `json:"duration_minutes" yaml:"duration_minutes"`
	QualityScore    float64 `json:"quality_score" yaml:"quality_score"`
}

// UnmarshalJSON applies the 0.5 quality default when the field is missing.
func (t *TimeSlot) UnmarshalJSON(data []byte) error {
	type alias TimeSlot
	aux := alias{QualityScore: DefaultQualityScore}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = TimeSlot(aux)
	return nil
}

// Allocation is the portion of a slot committed to reading pages or a review
// session. Pages is zero (and omitted) for review allocations. Immutable once
// returned.
type Allocation struct {
	Start           string  `json:"start" yaml:"start"`
	End             string  `json:"end" yaml:"end"`
	DurationMinutes int     `json:"duration_minutes" yaml:"duration_minutes"`
	Pages           int     `json:"pages,omitempty" yaml:"pages,omitempty"`
	QualityScore    float64 `json:"quality_score" yaml:"quality_score"`
}

// ReviewSession is one entry of a spaced-repetition plan.
type ReviewSession struct {
	BookID       string `json:"book_id" yaml:"book_id"`
	Session      int    `json:"session" yaml:"session"`
	Start        string `json:"start" yaml:"start"`
	End          string `json:"end" yaml:"end"`
	Goal         string `json:"goal" yaml:"goal"`
	IntervalDays int    `json:"interval_days" yaml:"interval_days"`
}

// HistoryEntry is one record of the append-only learning history. Exactly one
// of Keys, Score, or DifficultyDelta is normally present; pointer fields keep
// "absent" distinct from zero.
type HistoryEntry struct {
	Timestamp       string   `json:"timestamp" yaml:"timestamp"`
	Type            string   `json:"type,omitempty" yaml:"type,omitempty"`
	Keys            []string `json:"keys,omitempty" yaml:"keys,omitempty"`
	Score           *float64 `json:"score,omitempty" yaml:"score,omitempty"`
	DifficultyDelta *float64 `json:"difficulty_delta,omitempty" yaml:"difficulty_delta,omitempty"`
}

// Preferences is the open preferences document. The engine reads and writes
// learning_style.difficulty_multiplier; everything else belongs to callers.
type Preferences map[string]any

// HourPattern is the learned productivity profile for one hour of day.
type HourPattern struct {
	Hour     int     `json:"hour" yaml:"hour"`
	AvgScore float64 `json:"avg_score" yaml:"avg_score"`
	Samples  int     `json:"samples" yaml:"samples"`
}

// PatternReport is the result of pattern detection. An empty Patterns list
// with a non-empty Message is a legitimate "insufficient history" state, not
// an error.
type PatternReport struct {
	Patterns    []HourPattern `json:"patterns" yaml:"patterns"`
	SampleCount int           `json:"sample_count" yaml:"sample_count"`
	Message     string        `json:"message,omitempty" yaml:"message,omitempty"`
}

// ScheduleEvent is an externally supplied schedule entry. Only Start is
// interpreted; the rest of the payload rides along untouched so arbitrary
// caller events survive a reorder round-trip.
type ScheduleEvent struct {
	Start  string         `json:"start" yaml:"start"`
	Fields map[string]any `json:"-" yaml:"-"`
}

// UnmarshalJSON keeps the full payload in Fields while lifting out Start.
func (e *ScheduleEvent) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Fields = raw
	if s, ok := raw["start"].(string); ok {
		e.Start = s
	}
	return nil
}

// MarshalJSON writes the original payload back out, Start included.
func (e ScheduleEvent) MarshalJSON() ([]byte, error) {
	if e.Fields == nil {
		return json.Marshal(map[string]any{"start": e.Start})
	}
	return json.Marshal(e.Fields)
}

// MultiplierResult reports a difficulty-multiplier adjustment.
type MultiplierResult struct {
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
	Samples    int     `json:"samples" yaml:"samples"`
}

// Tunable defaults shared across the engine.
const (
	DefaultQualityScore      = 0.5
	DefaultReadingSpeed      = 10.0 // pages per hour
	DefaultTargetPages       = 20   // pages per session
	DefaultRetentionScore    = 0.65
	MinSlotMinutes           = 25 // reading slots shorter than this are skipped
	MinReviewDurationMinutes = 15
	MinPagesPerAllocation    = 5
	MaxHistoryEntries        = 500
	MultiplierSampleWindow   = 200
	MinDifficultyMultiplier  = 0.7
	MaxDifficultyMultiplier  = 1.4
	TopProductiveHours       = 8
)
