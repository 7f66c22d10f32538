// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import (
	"fmt"
	"testing"
)

func scored(hour int, score float64) HistoryEntry {
	return HistoryEntry{
		Timestamp: fmt.Sprintf("2026-03-02T%02d:15:00Z", hour),
		Score:     &score,
	}
}

func TestDetectPatternsEmptyHistory(t *testing.T) {
	report := detectPatterns(nil)
	if len(report.Patterns) != 0 {
		t.Fatalf("empty history produced %d patterns", len(report.Patterns))
	}
	if report.Message == "" {
		t.Fatal("empty history should carry an explanatory message")
	}
}

func TestDetectPatternsSkipsUnusableEntries(t *testing.T) {
	score := 0.8
	history := []HistoryEntry{
		{Timestamp: "2026-03-02T09:00:00Z"},               // no score
		{Timestamp: "when the mood strikes", Score: &score}, // bad timestamp
		{Type: "manual_update", Keys: []string{"k"}},        // unrelated entry
		scored(9, 0.6),
	}

	report := detectPatterns(history)
	if report.SampleCount != 1 {
		t.Fatalf("SampleCount = %d, want 1 (three entries unusable)", report.SampleCount)
	}
	if len(report.Patterns) != 1 || report.Patterns[0].Hour != 9 {
		t.Fatalf("patterns = %+v, want single hour-9 pattern", report.Patterns)
	}
}

func TestDetectPatternsMeansAndRanking(t *testing.T) {
	history := []HistoryEntry{
		scored(9, 0.9), scored(9, 0.7),
		scored(14, 0.4),
		scored(21, 0.95),
	}

	report := detectPatterns(history)
	if report.SampleCount != 4 {
		t.Fatalf("SampleCount = %d, want 4", report.SampleCount)
	}
	if len(report.Patterns) != 3 {
		t.Fatalf("got %d patterns, want 3", len(report.Patterns))
	}
	if report.Patterns[0].Hour != 21 {
		t.Fatalf("best hour = %d, want 21", report.Patterns[0].Hour)
	}
	if report.Patterns[1].Hour != 9 || report.Patterns[1].AvgScore != 0.8 {
		t.Fatalf("second pattern = %+v, want hour 9 with mean 0.8", report.Patterns[1])
	}
	if report.Patterns[1].Samples != 2 {
		t.Fatalf("hour 9 samples = %d, want 2", report.Patterns[1].Samples)
	}
}

func TestDetectPatternsTopEight(t *testing.T) {
	var history []HistoryEntry
	for hour := 0; hour < 12; hour++ {
		history = append(history, scored(hour, float64(hour)/24.0))
	}

	report := detectPatterns(history)
	if len(report.Patterns) != TopProductiveHours {
		t.Fatalf("got %d patterns, want top %d", len(report.Patterns), TopProductiveHours)
	}
	if report.SampleCount != 12 {
		t.Fatalf("SampleCount = %d, want 12", report.SampleCount)
	}
	// Best mean first.
	if report.Patterns[0].Hour != 11 {
		t.Fatalf("best hour = %d, want 11", report.Patterns[0].Hour)
	}
}

func TestOptimizeScheduleNoPatterns(t *testing.T) {
	s := newTestStore(t)
	schedule := []ScheduleEvent{
		{Start: "2026-03-02T08:00:00Z"},
		{Start: "2026-03-02T21:00:00Z"},
	}

	got := s.OptimizeSchedule(schedule)
	if len(got) != len(schedule) {
		t.Fatalf("got %d events, want %d", len(got), len(schedule))
	}
	for i := range schedule {
		if got[i].Start != schedule[i].Start {
			t.Fatalf("event %d moved without any patterns", i)
		}
	}
}

func TestOptimizeScheduleReordersByHourWeight(t *testing.T) {
	s := newTestStore(t)
	for _, e := range []HistoryEntry{
		scored(21, 0.9), scored(21, 0.95),
		scored(8, 0.3),
	} {
		if err := s.AppendHistory(e); err != nil {
			t.Fatalf("AppendHistory: %v", err)
		}
	}

	schedule := []ScheduleEvent{
		{Start: "2026-03-05T08:30:00Z"},
		{Start: "not a time"},
		{Start: "2026-03-05T21:10:00Z"},
	}

	got := s.OptimizeSchedule(schedule)
	if got[0].Start != "2026-03-05T21:10:00Z" {
		t.Fatalf("first event starts %q, want the 21:00-hour event", got[0].Start)
	}
	if got[1].Start != "2026-03-05T08:30:00Z" {
		t.Fatalf("second event starts %q, want the 08:00-hour event", got[1].Start)
	}
	// Unparsable start weighs 0.0 and sinks to the end.
	if got[2].Start != "not a time" {
		t.Fatalf("last event starts %q, want the unparsable one", got[2].Start)
	}
}

func TestOptimizeScheduleStableForEqualWeights(t *testing.T) {
	s := newTestStore(t)
	if err := s.AppendHistory(scored(10, 0.8)); err != nil {
		t.Fatalf("AppendHistory: %v", err)
	}

	// Both events fall outside the learned hour, so both weigh 0.0 and must
	// keep their relative order.
	schedule := []ScheduleEvent{
		{Start: "2026-03-05T13:00:00Z"},
		{Start: "2026-03-05T06:00:00Z"},
	}
	got := s.OptimizeSchedule(schedule)
	if got[0].Start != schedule[0].Start || got[1].Start != schedule[1].Start {
		t.Fatalf("equal-weight events reordered: %+v", got)
	}
}
