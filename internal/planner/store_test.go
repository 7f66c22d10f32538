// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *PreferenceStore {
	t.Helper()
	return NewPreferenceStore(t.TempDir(), nil)
}

func TestPreferenceStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.Update(Preferences{"k": "v"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := s.GetAll()["k"]; got != "v" {
		t.Fatalf("GetAll()[k] = %v, want v", got)
	}

	// A fresh store against the same vault must see the persisted value.
	s2 := NewPreferenceStore(s.vaultPath, nil)
	if got := s2.GetAll()["k"]; got != "v" {
		t.Fatalf("reloaded GetAll()[k] = %v, want v", got)
	}
}

func TestPreferenceStoreMissingFiles(t *testing.T) {
	s := newTestStore(t)
	if got := s.GetAll(); len(got) != 0 {
		t.Fatalf("GetAll on empty vault = %v, want empty map", got)
	}
	if got := s.History(); len(got) != 0 {
		t.Fatalf("History on empty vault has %d entries, want 0", len(got))
	}
}

func TestPreferenceStoreMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	resources := filepath.Join(dir, ResourceDir)
	if err := os.MkdirAll(resources, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(resources, "preferences.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(resources, "preferences_learning_history.json"), []byte("also not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewPreferenceStore(dir, nil)
	if got := s.GetAll(); len(got) != 0 {
		t.Fatalf("malformed preferences gave %v, want empty map", got)
	}
	if got := s.History(); len(got) != 0 {
		t.Fatalf("malformed history gave %d entries, want 0", len(got))
	}
}

func TestUpdateRecordsChangedKeys(t *testing.T) {
	s := newTestStore(t)
	if err := s.Update(Preferences{"zeta": 1, "alpha": 2}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	history := s.History()
	if len(history) != 1 {
		t.Fatalf("history has %d entries, want 1", len(history))
	}
	entry := history[0]
	if entry.Type != "manual_update" {
		t.Fatalf("entry type = %q, want manual_update", entry.Type)
	}
	if len(entry.Keys) != 2 || entry.Keys[0] != "alpha" || entry.Keys[1] != "zeta" {
		t.Fatalf("entry keys = %v, want sorted [alpha zeta]", entry.Keys)
	}
	if _, ok := parseTimestamp(entry.Timestamp); !ok {
		t.Fatalf("entry timestamp %q does not parse", entry.Timestamp)
	}
}

func TestHistoryCap(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < MaxHistoryEntries+25; i++ {
		score := float64(i)
		entry := HistoryEntry{
			Timestamp: time.Now().Format(time.RFC3339),
			Score:     &score,
		}
		if err := s.AppendHistory(entry); err != nil {
			t.Fatalf("AppendHistory %d: %v", i, err)
		}
	}

	if got := len(s.History()); got != MaxHistoryEntries {
		t.Fatalf("in-memory history has %d entries, want %d", got, MaxHistoryEntries)
	}

	// Oldest entries are dropped first.
	first := s.History()[0]
	if first.Score == nil || *first.Score != 25 {
		t.Fatalf("oldest surviving score = %v, want 25", first.Score)
	}

	// On-disk copy is capped too.
	data, err := os.ReadFile(s.historyPath())
	if err != nil {
		t.Fatalf("read history file: %v", err)
	}
	var onDisk []HistoryEntry
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("unmarshal history file: %v", err)
	}
	if len(onDisk) != MaxHistoryEntries {
		t.Fatalf("on-disk history has %d entries, want %d", len(onDisk), MaxHistoryEntries)
	}
}

func TestAdjustDifficultyEstimatesNoFeedback(t *testing.T) {
	s := newTestStore(t)
	res, err := s.AdjustDifficultyEstimates()
	if err != nil {
		t.Fatalf("AdjustDifficultyEstimates: %v", err)
	}
	if res.Multiplier != 1.0 || res.Samples != 0 {
		t.Fatalf("got %+v, want multiplier 1.0 with 0 samples", res)
	}
	// No feedback means no write: the preferences file must not exist yet.
	if _, err := os.Stat(s.preferencesPath()); !os.IsNotExist(err) {
		t.Fatalf("preferences file written without feedback (stat err %v)", err)
	}
}

func TestAdjustDifficultyEstimatesClampAndPersist(t *testing.T) {
	cases := []struct {
		name  string
		delta float64
		want  float64
	}{
		{"raise", 0.2, 1.2},
		{"clamp-high", 2.0, MaxDifficultyMultiplier},
		{"clamp-low", -0.9, MinDifficultyMultiplier},
	}
	for _, tc := range cases {
		s := newTestStore(t)
		for i := 0; i < 10; i++ {
			delta := tc.delta
			entry := HistoryEntry{
				Timestamp:       time.Now().Format(time.RFC3339),
				DifficultyDelta: &delta,
			}
			if err := s.AppendHistory(entry); err != nil {
				t.Fatalf("%s: AppendHistory: %v", tc.name, err)
			}
		}

		res, err := s.AdjustDifficultyEstimates()
		if err != nil {
			t.Fatalf("%s: AdjustDifficultyEstimates: %v", tc.name, err)
		}
		if res.Multiplier != tc.want {
			t.Fatalf("%s: multiplier = %v, want %v", tc.name, res.Multiplier, tc.want)
		}
		if res.Samples != 10 {
			t.Fatalf("%s: samples = %d, want 10", tc.name, res.Samples)
		}
		if res.Multiplier < MinDifficultyMultiplier || res.Multiplier > MaxDifficultyMultiplier {
			t.Fatalf("%s: multiplier %v escaped clamp", tc.name, res.Multiplier)
		}

		// The learned value must land in the nested document and survive reload.
		s2 := NewPreferenceStore(s.vaultPath, nil)
		if got := s2.DifficultyMultiplier(); got != tc.want {
			t.Fatalf("%s: reloaded multiplier = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAdjustDifficultyEstimatesWindow(t *testing.T) {
	s := newTestStore(t)
	s.load()
	// Older entries beyond the 200-sample window carry a large delta that
	// must not influence the result.
	for i := 0; i < 50; i++ {
		delta := 5.0
		s.history = append(s.history, HistoryEntry{
			Timestamp:       time.Now().Format(time.RFC3339),
			DifficultyDelta: &delta,
		})
	}
	for i := 0; i < MultiplierSampleWindow; i++ {
		delta := 0.1
		s.history = append(s.history, HistoryEntry{
			Timestamp:       fmt.Sprintf("2026-03-%02dT10:00:00Z", i%28+1),
			DifficultyDelta: &delta,
		})
	}

	res, err := s.AdjustDifficultyEstimates()
	if err != nil {
		t.Fatalf("AdjustDifficultyEstimates: %v", err)
	}
	if res.Multiplier != 1.1 {
		t.Fatalf("multiplier = %v, want 1.1 from the recent window only", res.Multiplier)
	}
	if res.Samples != MultiplierSampleWindow {
		t.Fatalf("samples = %d, want %d", res.Samples, MultiplierSampleWindow)
	}
}
