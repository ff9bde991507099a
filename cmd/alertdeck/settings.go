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
	"github.com/cristianoliveira/alertdeck/internal/ports"
)

// NewSettingsCmd creates the settings command with explicit dependencies.
func NewSettingsCmd(open opener[ports.SettingsStore]) *cobra.Command {
	if open == nil {
		panic("NewSettingsCmd: client dependency cannot be nil")
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change notification settings",
		Long: fmt.Sprintf(`Show or change notification settings.

USAGE:
    alertdeck settings show [--format json|toml]
    alertdeck settings set <key>=<value>...
    alertdeck settings reset [--force]

KEYS:
    %s`, strings.Join(app.SettingsKeys(), ", ")),
	}

	var showFormat string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			return app.NewSettingsUseCase(client).Show(c.OutOrStdout(), showFormat)
		},
	}
	showCmd.Flags().StringVar(&showFormat, "format", "json", "Output format: json, toml")

	setCmd := &cobra.Command{
		Use:   "set <key>=<value>...",
		Short: "Change settings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			if _, err := app.NewSettingsUseCase(client).Set(args); err != nil {
				return fmt.Errorf("settings: %w", err)
			}
			colors.Success("Settings updated")
			return nil
		},
	}

	var force bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if !force && !confirm(c.InOrStdin(), c.OutOrStdout(), "Restore the default settings?") {
				colors.Info("Operation cancelled")
				return nil
			}
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			if _, err := app.NewSettingsUseCase(client).Reset(); err != nil {
				return fmt.Errorf("failed to reset settings: %w", err)
			}
			colors.Success("Settings reset to defaults")
			return nil
		},
	}
	resetCmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	settingsCmd.AddCommand(showCmd, setCmd, resetCmd)
	return settingsCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewSettingsCmd(using[ports.SettingsStore](session)))
}
