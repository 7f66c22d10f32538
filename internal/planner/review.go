// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import (
	"strings"
	"time"
)

// Interval ladders in days, picked by retention score. Weak retention reviews
// sooner and more densely; strong retention stretches out.
var (
	intervalsWeak    = []int{1, 2, 4, 7, 14}
	intervalsDefault = []int{1, 3, 7, 14, 30}
	intervalsStrong  = []int{2, 5, 10, 21, 45}
)

// Goal markers that indicate deep study or exam preparation and warrant the
// longer 45-minute sessions. Portuguese forms kept alongside English ones.
var deepStudyMarkers = []string{
	"prova", "exam", "test", "concurso", "deep", "profund", "aprofund",
}

const (
	reviewSessionMinutes     = 30
	deepReviewSessionMinutes = 45
	reviewStartHour          = 9
)

// GenerateReviewSchedule builds a five-session spaced-repetition plan for a
// book. Session N starts N-ladder days from now, normalized to 09:00 local
// time. IntervalDays mirrors the ladder and is strictly increasing.
func GenerateReviewSchedule(bookID string, retentionData map[string]any, goal string) []ReviewSession {
	return generateReviewScheduleAt(bookID, retentionData, goal, time.Now())
}

// generateReviewScheduleAt is the clock-injected form used by tests.
func generateReviewScheduleAt(bookID string, retentionData map[string]any, goal string, now time.Time) []ReviewSession {
	retention := floatPref(retentionData, "retention_score", DefaultRetentionScore)

	intervals := intervalsDefault
	switch {
	case retention < 0.5:
		intervals = intervalsWeak
	case retention > 0.8:
		intervals = intervalsStrong
	}

	minutes := reviewSessionMinutes
	if isDeepStudyGoal(goal) {
		minutes = deepReviewSessionMinutes
	}

	sessions := make([]ReviewSession, 0, len(intervals))
	for i, days := range intervals {
		day := now.AddDate(0, 0, days)
		start := time.Date(day.Year(), day.Month(), day.Day(), reviewStartHour, 0, 0, 0, day.Location())
		end := start.Add(time.Duration(minutes) * time.Minute)
		sessions = append(sessions, ReviewSession{
			BookID:       bookID,
			Session:      i + 1,
			Start:        start.Format(time.RFC3339),
			End:          end.Format(time.RFC3339),
			Goal:         goal,
			IntervalDays: days,
		})
	}
	return sessions
}

func isDeepStudyGoal(goal string) bool {
	lower := strings.ToLower(goal)
	for _, marker := range deepStudyMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
