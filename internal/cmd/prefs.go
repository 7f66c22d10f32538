// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-planner/internal/events"
	"github.com/mtreilly/arc-planner/internal/output"
	"github.com/mtreilly/arc-planner/internal/planner"
)

func newPrefsCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read and update the preferences document",
	}
	cmd.AddCommand(newPrefsGetCmd(deps))
	cmd.AddCommand(newPrefsSetCmd(deps))
	return cmd
}

func newPrefsGetCmd(deps *Deps) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Show the preferences document, or a single top-level key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			prefs := deps.Store.GetAll()
			if len(args) == 1 {
				value, ok := prefs[args[0]]
				if !ok {
					return fmt.Errorf("preference not set: %s", args[0])
				}
				return output.JSON(value)
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(prefs)
			}

			if len(prefs) == 0 {
				fmt.Println("No preferences set.")
				return nil
			}
			keys := make([]string, 0, len(prefs))
			for k := range prefs {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			table := output.NewTable("Key", "Value")
			for _, k := range keys {
				data, err := json.Marshal(prefs[k])
				if err != nil {
					continue
				}
				table.AddRow(k, truncate(string(data), 60))
			}
			table.Render()
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

func newPrefsSetCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key=value> [key=value ...]",
		Short: "Merge key/value pairs into the preferences document",
		Long: `Each value is parsed as JSON when possible (numbers, booleans, objects)
and stored as a string otherwise. Changed keys are recorded in the
learning history.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates := planner.Preferences{}
			for _, arg := range args {
				key, raw, found := strings.Cut(arg, "=")
				if !found || key == "" {
					return fmt.Errorf("expected key=value, got %q", arg)
				}
				var value any
				if err := json.Unmarshal([]byte(raw), &value); err != nil {
					value = raw
				}
				updates[key] = value
			}

			if err := deps.Store.Update(updates); err != nil {
				return fmt.Errorf("update preferences: %w", err)
			}

			keys := make([]string, 0, len(updates))
			for k := range updates {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			deps.Bus.Publish(events.Event{
				Type: events.EventPreferencesUpdated,
				Data: map[string]any{"keys": keys},
			})

			output.Success("Updated %d preference(s): %s", len(updates), strings.Join(keys, ", "))
			return nil
		},
	}
}
