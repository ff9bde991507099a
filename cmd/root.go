/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/alertdeck/internal/colors"
	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/cristianoliveira/alertdeck/internal/logging"
	"github.com/cristianoliveira/alertdeck/internal/version"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "alertdeck",
	Short:         "A notification deck for disaster alerts and everyday events.",
	Long:          `A notification deck for disaster alerts and everyday events.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.ShutdownGlobal()
	},
}

// Execute runs the root command. Errors are returned for main to report.
func Execute() error {
	return RootCmd.Execute()
}

// Setup loads configuration and starts the global logger.
func Setup() error {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	log, err := logging.InitGlobal()
	if err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
		return nil
	}
	colors.SetLogger(log)
	return nil
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.SetVersionTemplate(version.Banner() + "\n")

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cmd.Long)
			return
		}
		printHelpText(cmd)
	})
}

// commandOrder is the order commands appear in the root help.
var commandOrder = []string{
	"add",
	"alert",
	"list",
	"mark-read",
	"dismiss",
	"remove",
	"clear",
	"cleanup",
	"settings",
	"status",
	"status-panel",
	"follow",
	"replay",
	"watch",
	"serve",
	"help",
	"version",
}

func printHelpText(cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	helpText := fmt.Sprintf(`%s

A notification deck for disaster alerts and everyday events.

USAGE:
    alertdeck [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
    -v, --version   Show version
`, version.Banner(), strings.Join(cmdLines, "\n"))
	_, _ = fmt.Fprint(cmd.OutOrStdout(), helpText)
}
