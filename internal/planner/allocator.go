// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Allocator ranks candidate time slots and commits pages or review sessions
// into them. It is stateless; the logger is only used to surface rejected
// candidates at debug level.
type Allocator struct {
	log *zap.Logger
}

// NewAllocator creates an allocator. A nil logger disables diagnostics.
func NewAllocator(log *zap.Logger) *Allocator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Allocator{log: log}
}

// AllocateTime distributes the book's remaining pages across the available
// slots, best quality first. Slots shorter than MinSlotMinutes are skipped
// outright. Each usable slot receives at least MinPagesPerAllocation pages,
// capped by the remaining pages, the slot's capacity at the reader's speed,
// and the per-session target. A slot is never split across two allocations.
//
// An empty result is a legitimate outcome: either nothing is left to read or
// no slot meets the duration floor.
func (a *Allocator) AllocateTime(book Book, slots []TimeSlot, prefs Preferences) []Allocation {
	remaining := book.RemainingPages()
	if remaining == 0 {
		return nil
	}

	speed := floatPref(prefs, "reading_speed_pages_hour", DefaultReadingSpeed)
	target := intPref(prefs, "target_pages_per_session", DefaultTargetPages)

	pagesPerMinute := speed / 60.0
	if pagesPerMinute < 0.05 {
		pagesPerMinute = 0.05
	}

	ranked := make([]TimeSlot, len(slots))
	copy(ranked, slots)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].QualityScore > ranked[j].QualityScore
	})

	var allocations []Allocation
	for _, slot := range ranked {
		if remaining <= 0 {
			break
		}
		if slot.DurationMinutes < MinSlotMinutes {
			a.log.Debug("slot below duration floor, skipped",
				zap.String("start", slot.Start),
				zap.Int("duration_minutes", slot.DurationMinutes))
			continue
		}

		pages := int(math.Floor(float64(slot.DurationMinutes) * pagesPerMinute))
		if pages > target {
			pages = target
		}
		if pages < MinPagesPerAllocation {
			pages = MinPagesPerAllocation
		}
		// The remaining-pages cap wins over the per-slot minimum so that a
		// plan never schedules more pages than the book has left.
		if pages > remaining {
			pages = remaining
		}

		allocations = append(allocations, Allocation{
			Start:           slot.Start,
			End:             slot.End,
			DurationMinutes: slot.DurationMinutes,
			Pages:           pages,
			QualityScore:    slot.QualityScore,
		})
		remaining -= pages
	}

	return allocations
}

// selectedRange is a review slot truncated to the target duration.
type selectedRange struct {
	slot  TimeSlot
	start time.Time
	end   time.Time
}

// SelectReviewSlots picks up to sessionsPerDay non-overlapping review windows
// from the candidates, each truncated to exactly the target duration from its
// own start. Candidates are ranked by quality score, with the raw start
// string as a deterministic tie-break; the final result is re-sorted by
// ascending start for presentation. Slots with missing or unparsable
// timestamps, or shorter than the target duration, are rejected.
func (a *Allocator) SelectReviewSlots(slots []TimeSlot, sessionsPerDay, sessionDurationMinutes int) []Allocation {
	targetSessions := sessionsPerDay
	if targetSessions < 1 {
		targetSessions = 1
	}
	targetDuration := sessionDurationMinutes
	if targetDuration < MinReviewDurationMinutes {
		targetDuration = MinReviewDurationMinutes
	}

	ranked := make([]TimeSlot, len(slots))
	copy(ranked, slots)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].QualityScore != ranked[j].QualityScore {
			return ranked[i].QualityScore > ranked[j].QualityScore
		}
		return ranked[i].Start > ranked[j].Start
	})

	window := time.Duration(targetDuration) * time.Minute
	var selected []selectedRange
	for _, slot := range ranked {
		if len(selected) >= targetSessions {
			break
		}
		start, ok := parseTimestamp(slot.Start)
		if !ok {
			a.log.Debug("review slot rejected: bad start", zap.String("start", slot.Start))
			continue
		}
		end, ok := parseTimestamp(slot.End)
		if !ok {
			a.log.Debug("review slot rejected: bad end", zap.String("end", slot.End))
			continue
		}
		if end.Sub(start) < window {
			a.log.Debug("review slot rejected: too short",
				zap.String("start", slot.Start),
				zap.Duration("length", end.Sub(start)))
			continue
		}

		truncEnd := start.Add(window)
		if overlapsAny(start, truncEnd, selected) {
			continue
		}
		selected = append(selected, selectedRange{slot: slot, start: start, end: truncEnd})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].start.Before(selected[j].start)
	})

	allocations := make([]Allocation, 0, len(selected))
	for _, sel := range selected {
		allocations = append(allocations, Allocation{
			Start:           sel.start.Format(time.RFC3339),
			End:             sel.end.Format(time.RFC3339),
			DurationMinutes: targetDuration,
			QualityScore:    sel.slot.QualityScore,
		})
	}
	return allocations
}

// overlapsAny applies the half-open interval test against every selected
// range: [start, end) conflicts when start < other.end && end > other.start.
func overlapsAny(start, end time.Time, selected []selectedRange) bool {
	for _, other := range selected {
		if start.Before(other.end) && end.After(other.start) {
			return true
		}
	}
	return false
}

// floatPref reads a numeric preference, tolerating the numeric types JSON
// decoding produces.
func floatPref(prefs Preferences, key string, fallback float64) float64 {
	if prefs == nil {
		return fallback
	}
	switch v := prefs[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return fallback
}

// intPref reads an integer preference with the same tolerance as floatPref.
func intPref(prefs Preferences, key string, fallback int) int {
	if prefs == nil {
		return fallback
	}
	switch v := prefs[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	}
	return fallback
}
