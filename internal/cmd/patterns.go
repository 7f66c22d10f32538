// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-planner/internal/events"
	"github.com/mtreilly/arc-planner/internal/output"
	"github.com/mtreilly/arc-planner/internal/planner"
)

func newPatternsCmd(deps *Deps) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Show productivity patterns learned from your history",
		Long: `Group recorded session scores by hour of day and rank the hours by mean
score. "Insufficient history" is a normal state, not an error: record
scores with allocate --score and try again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			report := deps.Store.DetectPatterns()

			deps.Bus.Publish(events.Event{
				Type: events.EventPatternsDetected,
				Data: map[string]any{"hours": len(report.Patterns), "samples": report.SampleCount},
			})

			if out.Is(output.OutputJSON) {
				return output.JSON(report)
			}

			if len(report.Patterns) == 0 {
				fmt.Println(report.Message)
				return nil
			}

			table := output.NewTable("Hour", "Mean score", "Samples")
			for _, p := range report.Patterns {
				table.AddRow(
					fmt.Sprintf("%02d:00", p.Hour),
					fmt.Sprintf("%.3f", p.AvgScore),
					fmt.Sprintf("%d", p.Samples))
			}
			table.Render()
			fmt.Printf("\nTotal: %d scored sample(s)\n", report.SampleCount)
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

func newOptimizeCmd(deps *Deps) *cobra.Command {
	var (
		scheduleFile string
		out          output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Reorder a schedule around your productive hours",
		Long: `Sort the events of a schedule file by the learned weight of their start
hour, best hours first. Without detected patterns the schedule is
returned unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			var schedule []planner.ScheduleEvent
			if err := readJSONFile(scheduleFile, &schedule); err != nil {
				return err
			}

			optimized := deps.Store.OptimizeSchedule(schedule)

			if out.Is(output.OutputJSON) {
				return output.JSON(optimized)
			}

			table := output.NewTable("#", "Start")
			for i, e := range optimized {
				table.AddRow(fmt.Sprintf("%d", i+1), e.Start)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&scheduleFile, "schedule", "s", "-", "JSON file with schedule events (- for stdin)")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

func newCalibrateCmd(deps *Deps) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Fold difficulty feedback into the learned multiplier",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			result, err := deps.Store.AdjustDifficultyEstimates()
			if err != nil {
				return fmt.Errorf("adjust difficulty estimates: %w", err)
			}

			deps.Bus.Publish(events.Event{
				Type: events.EventMultiplierAdjusted,
				Data: map[string]any{"multiplier": result.Multiplier, "samples": result.Samples},
			})

			if out.Is(output.OutputJSON) {
				return output.JSON(result)
			}

			if result.Samples == 0 {
				fmt.Println("No difficulty feedback recorded yet; multiplier stays at 1.0.")
				return nil
			}
			fmt.Printf("Difficulty multiplier: %.3f (from %d feedback sample(s))\n",
				result.Multiplier, result.Samples)
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
