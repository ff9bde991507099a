/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/alertdeck/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var asJSON bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show version information.

USAGE:
    alertdeck version [--json]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.Marshal(version.Current())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			_, err := fmt.Fprintln(out, version.Banner())
			return err
		},
	}
	versionCmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")
	return versionCmd
}

func init() {
	RootCmd.AddCommand(NewVersionCmd())
}
