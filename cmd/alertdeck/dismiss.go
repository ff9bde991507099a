/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/app"
	"github.com/cristianoliveira/alertdeck/internal/colors"
)

// NewDismissCmd creates the dismiss command with explicit dependencies.
func NewDismissCmd(open opener[app.DismissClient]) *cobra.Command {
	if open == nil {
		panic("NewDismissCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "dismiss <id>...",
		Short: "Dismiss notifications",
		Long: `Dismiss notifications by ID. Dismissed records are marked read and
stay listed until removed or cleared.

USAGE:
    alertdeck dismiss <id>...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			if err := app.NewDismissUseCase(client).Execute(args...); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Notification %s dismissed", strings.Join(args, ", ")))
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewDismissCmd(using[app.DismissClient](session)))
}
