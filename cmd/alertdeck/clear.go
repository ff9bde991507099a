/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/app"
	"github.com/cristianoliveira/alertdeck/internal/colors"
)

// NewRemoveCmd creates the remove command with explicit dependencies.
func NewRemoveCmd(open opener[app.ClearClient]) *cobra.Command {
	if open == nil {
		panic("NewRemoveCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "remove <id>...",
		Short: "Delete notifications",
		Long: `Delete notifications by ID.

USAGE:
    alertdeck remove <id>...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			if err := app.NewClearUseCase(client).Remove(args...); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Notification %s removed", strings.Join(args, ", ")))
			return nil
		},
	}
}

// NewClearCmd creates the clear command with explicit dependencies.
func NewClearCmd(open opener[app.ClearClient]) *cobra.Command {
	if open == nil {
		panic("NewClearCmd: client dependency cannot be nil")
	}

	var force bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every notification",
		Long: `Delete every notification.

USAGE:
    alertdeck clear [--force]

OPTIONS:
    -f, --force          Skip the confirmation prompt
    -h, --help           Show this help`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			n, ok := app.NewClearUseCase(client).All(app.ClearInput{
				Force: force,
				ConfirmFn: func() bool {
					return confirm(c.InOrStdin(), c.OutOrStdout(), "Delete every notification?")
				},
			})
			if !ok {
				colors.Info("Operation cancelled")
				return nil
			}
			colors.Success(fmt.Sprintf("%d notifications cleared", n))
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return clearCmd
}

// confirm asks a yes/no question; anything but y or yes declines.
func confirm(in io.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	cmd.RootCmd.AddCommand(
		NewRemoveCmd(using[app.ClearClient](session)),
		NewClearCmd(using[app.ClearClient](session)),
	)
}
