// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Vault resource layout shared with the bootstrapper.
const (
	ResourceDir     = "06-RECURSOS"
	preferencesFile = "preferences.json"
	historyFile     = "preferences_learning_history.json"
)

// PreferenceStore persists the open preferences document and the bounded
// learning-history log as two JSON files under the vault's resource
// directory. It assumes a single writer; concurrent processes race with
// last-write-wins semantics.
//
// Malformed or missing files degrade to empty defaults on read. Only write
// failures surface as errors.
type PreferenceStore struct {
	vaultPath string
	log       *zap.Logger

	prefs   Preferences
	history []HistoryEntry
	loaded  bool
}

// NewPreferenceStore creates a store rooted at the given vault path. Nothing
// is read from disk until first access.
func NewPreferenceStore(vaultPath string, log *zap.Logger) *PreferenceStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &PreferenceStore{vaultPath: vaultPath, log: log}
}

func (s *PreferenceStore) preferencesPath() string {
	return filepath.Join(s.vaultPath, ResourceDir, preferencesFile)
}

func (s *PreferenceStore) historyPath() string {
	return filepath.Join(s.vaultPath, ResourceDir, historyFile)
}

// load lazily reads both documents. Invalid JSON is treated as an empty
// document, never an error.
func (s *PreferenceStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	s.prefs = Preferences{}
	if data, err := os.ReadFile(s.preferencesPath()); err == nil {
		var doc Preferences
		if jsonErr := json.Unmarshal(data, &doc); jsonErr == nil && doc != nil {
			s.prefs = doc
		} else {
			s.log.Debug("malformed preferences document, using empty defaults",
				zap.String("path", s.preferencesPath()))
		}
	}

	s.history = nil
	if data, err := os.ReadFile(s.historyPath()); err == nil {
		var entries []HistoryEntry
		if jsonErr := json.Unmarshal(data, &entries); jsonErr == nil {
			s.history = entries
		} else {
			s.log.Debug("malformed history log, starting empty",
				zap.String("path", s.historyPath()))
		}
	}
}

// GetAll returns the full preferences document. A missing or malformed file
// yields an empty map.
func (s *PreferenceStore) GetAll() Preferences {
	s.load()
	out := make(Preferences, len(s.prefs))
	for k, v := range s.prefs {
		out[k] = v
	}
	return out
}

// Update merges the given keys shallowly into the document (updates win),
// persists it, and appends a manual_update history entry recording the
// sorted set of changed top-level keys.
func (s *PreferenceStore) Update(updates Preferences) error {
	s.load()
	if len(updates) == 0 {
		return nil
	}

	keys := make([]string, 0, len(updates))
	for k, v := range updates {
		s.prefs[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if err := s.savePreferences(); err != nil {
		return err
	}

	entry := HistoryEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Type:      "manual_update",
		Keys:      keys,
	}
	return s.AppendHistory(entry)
}

// History returns the in-memory copy of the learning history log.
func (s *PreferenceStore) History() []HistoryEntry {
	s.load()
	return s.history
}

// AppendHistory adds one entry to the log and persists it, truncated to the
// most recent MaxHistoryEntries. Truncation happens on the in-memory copy
// before the write, so the on-disk log never grows past the cap.
func (s *PreferenceStore) AppendHistory(entry HistoryEntry) error {
	s.load()
	s.history = append(s.history, entry)
	if len(s.history) > MaxHistoryEntries {
		s.history = s.history[len(s.history)-MaxHistoryEntries:]
	}
	return s.saveHistory()
}

// AdjustDifficultyEstimates averages the difficulty_delta feedback over the
// most recent MultiplierSampleWindow entries that carry one and folds it into
// learning_style.difficulty_multiplier, clamped to
// [MinDifficultyMultiplier, MaxDifficultyMultiplier]. With no feedback the
// multiplier stays 1.0 and nothing is persisted.
func (s *PreferenceStore) AdjustDifficultyEstimates() (MultiplierResult, error) {
	s.load()

	window := s.history
	if len(window) > MultiplierSampleWindow {
		window = window[len(window)-MultiplierSampleWindow:]
	}

	var sum float64
	var samples int
	for _, entry := range window {
		if entry.DifficultyDelta == nil {
			continue
		}
		sum += *entry.DifficultyDelta
		samples++
	}
	if samples == 0 {
		return MultiplierResult{Multiplier: 1.0, Samples: 0}, nil
	}

	multiplier := 1.0 + sum/float64(samples)
	if multiplier < MinDifficultyMultiplier {
		multiplier = MinDifficultyMultiplier
	}
	if multiplier > MaxDifficultyMultiplier {
		multiplier = MaxDifficultyMultiplier
	}
	multiplier = round3(multiplier)

	style, ok := s.prefs["learning_style"].(map[string]any)
	if !ok {
		style = map[string]any{}
	}
	style["difficulty_multiplier"] = multiplier
	s.prefs["learning_style"] = style

	if err := s.savePreferences(); err != nil {
		return MultiplierResult{}, err
	}
	return MultiplierResult{Multiplier: multiplier, Samples: samples}, nil
}

// DifficultyMultiplier reads the learned multiplier, defaulting to 1.0.
func (s *PreferenceStore) DifficultyMultiplier() float64 {
	s.load()
	if style, ok := s.prefs["learning_style"].(map[string]any); ok {
		return floatPref(style, "difficulty_multiplier", 1.0)
	}
	return 1.0
}

func (s *PreferenceStore) savePreferences() error {
	return s.writeJSON(s.preferencesPath(), s.prefs)
}

func (s *PreferenceStore) saveHistory() error {
	entries := s.history
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return s.writeJSON(s.historyPath(), entries)
}

func (s *PreferenceStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure resource dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
