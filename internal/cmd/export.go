// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mtreilly/arc-planner/internal/planner"
)

// exportDocument is the on-disk shape of an exported review plan.
type exportDocument struct {
	BookID      string                  `json:"book_id" yaml:"book_id"`
	Goal        string                  `json:"goal,omitempty" yaml:"goal,omitempty"`
	GeneratedAt string                  `json:"generated_at" yaml:"generated_at"`
	Sessions    []planner.ReviewSession `json:"sessions" yaml:"sessions"`
}

func newExportCmd(deps *Deps) *cobra.Command {
	var (
		format    string // "yaml", "json", "markdown"
		outFile   string
		retention float64
		goal      string
	)

	cmd := &cobra.Command{
		Use:   "export <book-id>",
		Short: "Export a review plan for use in other tools",
		Long:  "Generate a spaced-repetition plan and write it as YAML, JSON, or Markdown.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			retentionData := map[string]any{}
			if cmd.Flags().Changed("retention") {
				retentionData["retention_score"] = retention
			}
			sessions := planner.GenerateReviewSchedule(args[0], retentionData, goal)

			doc := exportDocument{
				BookID:      args[0],
				Goal:        goal,
				GeneratedAt: time.Now().Format(time.RFC3339),
				Sessions:    sessions,
			}

			var outBytes []byte
			var err error
			switch format {
			case "yaml":
				outBytes, err = yaml.Marshal(doc)
			case "json":
				outBytes, err = json.MarshalIndent(doc, "", "  ")
			case "markdown":
				outBytes = exportMarkdown(doc)
			default:
				return fmt.Errorf("unsupported format: %s (choose yaml, json, markdown)", format)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}

			if outFile == "-" || outFile == "" {
				fmt.Println(string(outBytes))
				return nil
			}
			if err := os.WriteFile(outFile, outBytes, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}
			fmt.Printf("Exported review plan to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Export format (yaml, json, markdown)")
	cmd.Flags().StringVarP(&outFile, "file", "F", "-", "Output file (- for stdout)")
	cmd.Flags().Float64VarP(&retention, "retention", "r", planner.DefaultRetentionScore, "Estimated retention score (0-1)")
	cmd.Flags().StringVarP(&goal, "goal", "g", "", "Study goal")
	return cmd
}

func exportMarkdown(doc exportDocument) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# Review plan: %s\n\n", doc.BookID)
	if doc.Goal != "" {
		fmt.Fprintf(&b, "Goal: %s\n\n", doc.Goal)
	}
	for _, s := range doc.Sessions {
		fmt.Fprintf(&b, "- [ ] Session %d: %s (interval %d days)\n", s.Session, s.Start, s.IntervalDays)
	}
	return []byte(b.String())
}
