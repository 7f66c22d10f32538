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

func newReviewCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Plan spaced-repetition reviews",
	}
	cmd.AddCommand(newReviewPlanCmd(deps))
	cmd.AddCommand(newReviewSlotsCmd(deps))
	return cmd
}

func newReviewPlanCmd(deps *Deps) *cobra.Command {
	var (
		retention float64
		goal      string
		out       output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "plan <book-id>",
		Short: "Generate a spaced-repetition review plan for a book",
		Long: `Build a five-session review ladder from the retention score. Weak
retention reviews sooner and more densely; exam or deep-study goals get
45-minute sessions instead of 30.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			retentionData := map[string]any{}
			if cmd.Flags().Changed("retention") {
				retentionData["retention_score"] = retention
			}

			sessions := planner.GenerateReviewSchedule(args[0], retentionData, goal)

			deps.Bus.Publish(events.Event{
				Type: events.EventReviewScheduled,
				Data: map[string]any{"book_id": args[0], "sessions": len(sessions)},
			})

			if out.Is(output.OutputJSON) {
				return output.JSON(sessions)
			}

			table := output.NewTable("Session", "Start", "End", "Interval (days)")
			for _, s := range sessions {
				table.AddRow(fmt.Sprintf("%d", s.Session), s.Start, s.End, fmt.Sprintf("%d", s.IntervalDays))
			}
			table.Render()
			if goal != "" {
				fmt.Printf("\nGoal: %s\n", truncate(goal, 60))
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&retention, "retention", "r", planner.DefaultRetentionScore, "Estimated retention score (0-1)")
	cmd.Flags().StringVarP(&goal, "goal", "g", "", "Study goal (exam/deep-study goals lengthen sessions)")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

func newReviewSlotsCmd(deps *Deps) *cobra.Command {
	var (
		slotsFile string
		sessions  int
		duration  int
		out       output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Select non-overlapping review windows from candidate slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			var slots []planner.TimeSlot
			if err := readJSONFile(slotsFile, &slots); err != nil {
				return err
			}

			allocs := deps.Alloc.SelectReviewSlots(slots, sessions, duration)

			deps.Bus.Publish(events.Event{
				Type: events.EventReviewSlotsSelected,
				Data: map[string]any{"selected": len(allocs)},
			})

			if out.Is(output.OutputJSON) {
				return output.JSON(allocs)
			}

			if len(allocs) == 0 {
				fmt.Println("No review slots selected: no candidate fits the duration.")
				return nil
			}

			table := output.NewTable("Start", "End", "Minutes", "Quality")
			for _, a := range allocs {
				table.AddRow(a.Start, a.End,
					fmt.Sprintf("%d", a.DurationMinutes),
					fmt.Sprintf("%.2f", a.QualityScore))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&slotsFile, "slots", "s", "-", "JSON file with candidate slots (- for stdin)")
	cmd.Flags().IntVarP(&sessions, "sessions", "n", 1, "Review sessions per day")
	cmd.Flags().IntVarP(&duration, "duration", "d", 30, "Session duration in minutes")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
