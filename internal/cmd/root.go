// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mtreilly/arc-planner/internal/config"
	"github.com/mtreilly/arc-planner/internal/events"
	"github.com/mtreilly/arc-planner/internal/planner"
)

// Deps bundles the collaborators the commands share.
type Deps struct {
	Config *config.Config
	Store  *planner.PreferenceStore
	Alloc  *planner.Allocator
	Bus    *events.Bus
	Log    *zap.Logger
}

// NewRootCmd creates the root command for arc-planner.
func NewRootCmd(deps *Deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "arc-planner",
		Short: "Plan reading and review time around your productive hours",
		Long: `Allocate reading pages and spaced-repetition reviews into candidate
time slots, and learn per-hour productivity weights from your history.

arc-planner provides tools to:
- Allocate a book's remaining pages across available time slots
- Select non-overlapping review windows and build review plans
- Estimate text difficulty, calibrated by your feedback
- Detect productive hours and reorder schedules around them
- Bootstrap and maintain the vault's JSON resources`,
	}

	root.AddCommand(newVaultCmd(deps))
	root.AddCommand(newAllocateCmd(deps))
	root.AddCommand(newReviewCmd(deps))
	root.AddCommand(newDifficultyCmd(deps))
	root.AddCommand(newPrefsCmd(deps))
	root.AddCommand(newPatternsCmd(deps))
	root.AddCommand(newOptimizeCmd(deps))
	root.AddCommand(newCalibrateCmd(deps))
	root.AddCommand(newExportCmd(deps))

	return root
}
