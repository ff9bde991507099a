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

// NewMarkReadCmd creates the mark-read command with explicit dependencies.
func NewMarkReadCmd(open opener[app.MarkReadClient]) *cobra.Command {
	if open == nil {
		panic("NewMarkReadCmd: client dependency cannot be nil")
	}

	var all bool
	markReadCmd := &cobra.Command{
		Use:   "mark-read <id>...",
		Short: "Mark notifications as read",
		Long: `Mark notifications as read by ID.

USAGE:
    alertdeck mark-read <id>...
    alertdeck mark-read --all

OPTIONS:
    --all                Mark every notification as read
    -h, --help           Show this help`,
		Args: func(c *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("mark-read: --all takes no ids")
			}
			if !all && len(args) == 0 {
				return fmt.Errorf("mark-read: requires at least one id or --all")
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			uc := app.NewMarkReadUseCase(client)
			if all {
				colors.Success(fmt.Sprintf("%d notifications marked as read", uc.All()))
				return nil
			}
			if err := uc.Execute(args...); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Notification %s marked as read", strings.Join(args, ", ")))
			return nil
		},
	}
	markReadCmd.Flags().BoolVar(&all, "all", false, "Mark every notification as read")
	return markReadCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewMarkReadCmd(using[app.MarkReadClient](session)))
}
