/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/app"
)

// NewCleanupCmd creates the cleanup command with explicit dependencies.
func NewCleanupCmd(open opener[app.CleanupClient]) *cobra.Command {
	if open == nil {
		panic("NewCleanupCmd: client dependency cannot be nil")
	}

	var verbose bool
	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired alerts and old notifications",
		Long: `Run one janitor sweep: remove alerts past their expiry and records
older than retention_hours.

USAGE:
    alertdeck cleanup [--verbose]`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			app.NewCleanupUseCase(client).Execute(c.OutOrStdout(), verbose)
			return nil
		},
	}
	cleanupCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every removed id")
	return cleanupCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewCleanupCmd(using[app.CleanupClient](session)))
}
