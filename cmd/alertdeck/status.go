/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/app"
	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/cristianoliveira/alertdeck/internal/ports"
)

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(open opener[ports.NotificationReader]) *cobra.Command {
	if open == nil {
		panic("NewStatusCmd: client dependency cannot be nil")
	}

	var formatFlag string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show notification counts",
		Long: `Show notification counts.

USAGE:
    alertdeck status [--format summary|priorities|sources|json]

The format can also come from ALERTDECK_STATUS_OUTPUT.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			f := app.DetermineStatusFormat(formatFlag, os.Getenv(config.EnvPrefix+"STATUS_OUTPUT"), c.Flags().Changed("format"))
			if err := app.ValidateStatusFormat(f); err != nil {
				return err
			}
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			return app.NewStatusUseCase(client).Execute(f, c.OutOrStdout())
		},
	}
	statusCmd.Flags().StringVar(&formatFlag, "format", "summary", "Output format: summary, priorities, sources, json")
	return statusCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewStatusCmd(using[ports.NotificationReader](session)))
}
