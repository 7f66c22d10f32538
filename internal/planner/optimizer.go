// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import "sort"

// OptimizeSchedule reorders an externally supplied schedule so that events
// landing in historically productive hours come first. With no detected
// patterns the input is returned unchanged. Events whose start is missing or
// unparsable weigh 0.0; the sort is stable, so equal weights keep their
// relative input order.
func (s *PreferenceStore) OptimizeSchedule(schedule []ScheduleEvent) []ScheduleEvent {
	report := s.DetectPatterns()
	if len(report.Patterns) == 0 {
		return schedule
	}

	weights := make(map[int]float64, len(report.Patterns))
	for _, p := range report.Patterns {
		weights[p.Hour] = p.AvgScore
	}

	weightOf := func(e ScheduleEvent) float64 {
		ts, ok := parseTimestamp(e.Start)
		if !ok {
			return 0.0
		}
		return weights[ts.Hour()]
	}

	out := make([]ScheduleEvent, len(schedule))
	copy(out, schedule)
	sort.SliceStable(out, func(i, j int) bool {
		return weightOf(out[i]) > weightOf(out[j])
	})
	return out
}
