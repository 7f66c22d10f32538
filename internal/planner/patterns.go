// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import (
	"math"
	"sort"
)

const insufficientHistoryMsg = "insufficient history to detect productivity patterns"

// DetectPatterns derives per-hour productivity weights from the scored
// entries in the learning history. Entries without a score or with an
// unparsable timestamp are skipped. The report carries the top
// TopProductiveHours hours by mean score; with no usable samples it carries
// an empty pattern list and an explanatory message instead.
func (s *PreferenceStore) DetectPatterns() PatternReport {
	return detectPatterns(s.History())
}

func detectPatterns(history []HistoryEntry) PatternReport {
	type bucket struct {
		sum   float64
		count int
	}
	hours := make(map[int]*bucket)
	total := 0

	for _, entry := range history {
		if entry.Score == nil {
			continue
		}
		ts, ok := parseTimestamp(entry.Timestamp)
		if !ok {
			continue
		}
		h := ts.Hour()
		b := hours[h]
		if b == nil {
			b = &bucket{}
			hours[h] = b
		}
		b.sum += *entry.Score
		b.count++
		total++
	}

	if total == 0 {
		return PatternReport{Message: insufficientHistoryMsg}
	}

	patterns := make([]HourPattern, 0, len(hours))
	for h, b := range hours {
		patterns = append(patterns, HourPattern{
			Hour:     h,
			AvgScore: round3(b.sum / float64(b.count)),
			Samples:  b.count,
		})
	}
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].AvgScore != patterns[j].AvgScore {
			return patterns[i].AvgScore > patterns[j].AvgScore
		}
		return patterns[i].Hour < patterns[j].Hour
	})
	if len(patterns) > TopProductiveHours {
		patterns = patterns[:TopProductiveHours]
	}

	return PatternReport{Patterns: patterns, SampleCount: total}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
