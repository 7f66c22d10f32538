// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-planner/internal/events"
	"github.com/mtreilly/arc-planner/internal/vault"
)

func newVaultCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage the planner vault",
	}
	cmd.AddCommand(newVaultInitCmd(deps))
	return cmd
}

func newVaultInitCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create the vault structure and default resource files",
		Long: `Ensure the vault directory tree, per-folder readmes, Obsidian config,
and the default JSON resources exist. Existing files are never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := deps.Config.Vault
			if len(args) == 1 {
				path = args[0]
			}

			resolved, err := vault.Bootstrap(path)
			if err != nil {
				return fmt.Errorf("bootstrap vault: %w", err)
			}

			deps.Bus.Publish(events.Event{
				Type: events.EventVaultBootstrapped,
				Data: map[string]any{"path": resolved},
			})

			fmt.Printf("Vault ready: %s\n", resolved)
			return nil
		},
	}
}
