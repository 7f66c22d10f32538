// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-planner/internal/output"
	"github.com/mtreilly/arc-planner/internal/planner"
)

func newDifficultyCmd(deps *Deps) *cobra.Command {
	var (
		file  string
		delta float64
		out   output.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "difficulty",
		Short: "Estimate the lexical difficulty of a text chunk",
		Long: `Score a chunk of text in [0,1] from word length, vocabulary variety and
sentence length, scaled by the multiplier learned from your feedback.
Use --delta to report how far off the last estimate felt; the calibrate
command folds those deltas back into the multiplier.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			var data []byte
			var err error
			if file == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("read text: %w", err)
			}

			history := map[string]any{
				"difficulty_multiplier": deps.Store.DifficultyMultiplier(),
			}
			score := planner.EstimateDifficulty(string(data), history)

			if cmd.Flags().Changed("delta") {
				entry := planner.HistoryEntry{
					Timestamp:       time.Now().Format(time.RFC3339),
					DifficultyDelta: &delta,
				}
				if err := deps.Store.AppendHistory(entry); err != nil {
					return fmt.Errorf("record difficulty feedback: %w", err)
				}
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(map[string]any{"difficulty": score})
			}
			fmt.Printf("Difficulty: %.4f\n", score)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Text file to score (- for stdin)")
	cmd.Flags().Float64Var(&delta, "delta", 0, "Feedback: how far off the estimate felt (-1 to 1)")
	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}
