/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/app"
	"github.com/cristianoliveira/alertdeck/internal/dedup"
	"github.com/cristianoliveira/alertdeck/internal/format"
	"github.com/cristianoliveira/alertdeck/internal/ports"
)

const listCommandLong = `List notifications with filters and formats.

USAGE:
    alertdeck list [OPTIONS]

OPTIONS:
    --type <a,b>          Filter by type: info, success, warning, error
    --priority <a,b>      Filter by priority: low, normal, high, critical
    --filter <status>     Filter by read status: read, unread
    --source <name>       Filter by producer
    --alerts              Only risk-driven alerts
    --hide-dismissed      Leave dismissed records out
    --older-than <d>      Only records older than d, e.g. 2h
    --newer-than <d>      Only records newer than d
    --search <query>      Free-text search
    --sort <field>        timestamp (default), priority, risk, title
    --order <order>       desc (default) or asc
    --limit <n>           At most n records
    --group               Collapse duplicates into groups
    --group-count         Show only group counts (requires --group)
    --dedup <criteria>    Grouping key: title, title_type, title_source, exact
    --format=<format>     Output format: %s
    -h, --help            Show this help

ORDERING:
    Newest first unless --sort or --order is given.`

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(open opener[ports.NotificationReader]) *cobra.Command {
	if open == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var opts app.ListOptions
	var olderThan, newerThan time.Duration
	var dedupCriteria string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications with filters and formats",
		Long:  fmt.Sprintf(listCommandLong, formatNames()),
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts.Filter.OlderThan = olderThan
			opts.Filter.NewerThan = newerThan
			opts.Dedup = dedup.FromConfig()
			if dedupCriteria != "" {
				opts.Dedup.Criteria = dedup.ParseCriteria(dedupCriteria)
			}
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			if err := app.NewListUseCase(client).Execute(opts, c.OutOrStdout()); err != nil {
				return fmt.Errorf("list: %w", err)
			}
			return nil
		},
	}

	f := listCmd.Flags()
	f.StringVar(&opts.Filter.Types, "type", "", "Filter by type: info, success, warning, error")
	f.StringVar(&opts.Filter.Priorities, "priority", "", "Filter by priority: low, normal, high, critical")
	f.StringVar(&opts.Filter.ReadFilter, "filter", "", "Filter by read status: read, unread")
	f.StringVar(&opts.Filter.Source, "source", "", "Filter by producer")
	f.BoolVar(&opts.Filter.AlertsOnly, "alerts", false, "Only risk-driven alerts")
	f.BoolVar(&opts.Filter.HideDismissed, "hide-dismissed", false, "Leave dismissed records out")
	f.DurationVar(&olderThan, "older-than", 0, "Only records older than this age")
	f.DurationVar(&newerThan, "newer-than", 0, "Only records newer than this age")
	f.StringVar(&opts.Search, "search", "", "Free-text search")
	f.StringVar(&opts.SortBy, "sort", "", "Sort field: timestamp, priority, risk, title")
	f.StringVar(&opts.Order, "order", "", "Sort order: asc, desc")
	f.IntVar(&opts.Limit, "limit", 0, "At most n records")
	f.BoolVar(&opts.Group, "group", false, "Collapse duplicates into groups")
	f.BoolVar(&opts.GroupCount, "group-count", false, "Show only group counts (requires --group)")
	f.StringVar(&dedupCriteria, "dedup", "", "Grouping key: title, title_type, title_source, exact")
	f.StringVar(&opts.Format, "format", string(format.FormatterTypeSimple), "Output format: "+formatNames())

	return listCmd
}

func formatNames() string {
	names := make([]string, 0, len(format.Types()))
	for _, t := range format.Types() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func init() {
	cmd.RootCmd.AddCommand(NewListCmd(using[ports.NotificationReader](session)))
}
