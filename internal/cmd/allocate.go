// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-planner/internal/events"
	"github.com/mtreilly/arc-planner/internal/output"
	"github.com/mtreilly/arc-planner/internal/planner"
)

func newAllocateCmd(deps *Deps) *cobra.Command {
	var (
		totalPages  int
		currentPage int
		slotsFile   string
		score       float64
		out         output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Allocate a book's remaining pages across available time slots",
		Long: `Rank the candidate slots by quality and commit pages into them at your
reading speed. Slots shorter than 25 minutes are skipped. An empty result
means either nothing is left to read or no slot fits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			var slots []planner.TimeSlot
			if err := readJSONFile(slotsFile, &slots); err != nil {
				return err
			}

			book := planner.Book{TotalPages: totalPages, CurrentPage: currentPage}
			allocs := deps.Alloc.AllocateTime(book, slots, mergedPreferences(deps))

			if cmd.Flags().Changed("score") {
				entry := planner.HistoryEntry{
					Timestamp: time.Now().Format(time.RFC3339),
					Score:     &score,
				}
				if err := deps.Store.AppendHistory(entry); err != nil {
					return fmt.Errorf("record session score: %w", err)
				}
			}

			totalAllocated := 0
			for _, a := range allocs {
				totalAllocated += a.Pages
			}
			deps.Bus.Publish(events.Event{
				Type: events.EventAllocationCompleted,
				Data: map[string]any{"slots": len(allocs), "pages": totalAllocated},
			})

			if out.Is(output.OutputJSON) {
				return output.JSON(allocs)
			}

			if len(allocs) == 0 {
				fmt.Println("No allocations: nothing left to read or no slot fits.")
				return nil
			}

			table := output.NewTable("Start", "End", "Minutes", "Pages", "Quality")
			for _, a := range allocs {
				table.AddRow(a.Start, a.End,
					fmt.Sprintf("%d", a.DurationMinutes),
					fmt.Sprintf("%d", a.Pages),
					fmt.Sprintf("%.2f", a.QualityScore))
			}
			table.Render()
			fmt.Printf("\nTotal: %d page(s) across %d slot(s)\n", totalAllocated, len(allocs))
			return nil
		},
	}

	cmd.Flags().IntVar(&totalPages, "total-pages", 0, "Total pages in the book")
	cmd.Flags().IntVar(&currentPage, "current-page", 0, "Current page position")
	cmd.Flags().StringVarP(&slotsFile, "slots", "s", "-", "JSON file with candidate slots (- for stdin)")
	cmd.Flags().Float64Var(&score, "score", 0, "Record a productivity score for this session")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
