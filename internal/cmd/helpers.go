// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mtreilly/arc-planner/internal/planner"
)

// readJSONFile decodes a JSON document from path into v. "-" reads stdin.
func readJSONFile(path string, v any) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// mergedPreferences overlays the stored preferences document on top of the
// config-level defaults; stored keys win.
func mergedPreferences(deps *Deps) planner.Preferences {
	prefs := planner.Preferences(deps.Config.Preferences())
	for k, v := range deps.Store.GetAll() {
		prefs[k] = v
	}
	return prefs
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
