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
	"github.com/cristianoliveira/alertdeck/internal/colors"
	"github.com/cristianoliveira/alertdeck/internal/ports"
)

type addFlags struct {
	message    string
	typ        string
	priority   string
	source     string
	duration   time.Duration
	persistent bool
	noDismiss  bool
	actions    []string
	risk       float64
	location   string
	areas      string
	expiresIn  time.Duration
}

func (f *addFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.message, "message", "m", "", "Notification body")
	c.Flags().StringVar(&f.typ, "type", "", "Type: info, success, warning, error")
	c.Flags().StringVar(&f.priority, "priority", "", "Priority: low, normal, high, critical")
	c.Flags().StringVar(&f.source, "source", "", "Producer name")
	c.Flags().DurationVar(&f.duration, "duration", 0, "Toast duration (e.g. 8s); default from config")
	c.Flags().BoolVar(&f.persistent, "persistent", false, "Keep the toast until dismissed")
	c.Flags().BoolVar(&f.noDismiss, "no-dismiss", false, "Hide the toast close button")
	c.Flags().StringArrayVar(&f.actions, "action", nil, "Action label or label=intent (repeatable)")
	c.Flags().Float64Var(&f.risk, "risk", 0, "Risk level 0-10; makes the record an alert")
	c.Flags().StringVar(&f.location, "location", "", "Alert location")
	c.Flags().StringVar(&f.areas, "areas", "", "Comma separated affected areas")
	c.Flags().DurationVar(&f.expiresIn, "expires-in", 0, "Alert lifetime (e.g. 2h)")
}

func (f *addFlags) input(c *cobra.Command, args []string) app.AddInput {
	in := app.AddInput{
		Title:         strings.Join(args, " "),
		Message:       f.message,
		Type:          f.typ,
		Priority:      f.priority,
		Source:        f.source,
		Duration:      f.duration,
		Persistent:    f.persistent,
		Actions:       f.actions,
		Location:      f.location,
		AffectedAreas: app.ParseAreas(f.areas),
		ExpiresIn:     f.expiresIn,
	}
	if f.noDismiss {
		no := false
		in.Dismissible = &no
	}
	if c.Flags().Changed("risk") {
		risk := f.risk
		in.RiskLevel = &risk
	}
	return in
}

func requireTitle(name string) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			_, _ = fmt.Fprintf(c.ErrOrStderr(), "%s requires a title\n", name)
			return fmt.Errorf("%s requires a title", name)
		}
		return nil
	}
}

const addCommandLong = `Add a notification.

USAGE:
    alertdeck add [OPTIONS] <title>

OPTIONS:
    -m, --message <text>     Notification body
    --type <type>            info (default), success, warning, error
    --priority <priority>    low, normal (default), high, critical
    --source <name>          Producer name
    --duration <d>           Toast duration, e.g. 8s
    --persistent             Keep the toast until dismissed
    --no-dismiss             Hide the toast close button
    --action <label[=intent]> Attach an action (repeatable)
    --risk <0-10>            Risk level; admits the record as an alert
    --location <text>        Alert location
    --areas <a,b>            Affected areas
    --expires-in <d>         Alert lifetime, e.g. 2h
    -h, --help               Show this help`

// NewAddCmd creates the add command with explicit dependencies.
func NewAddCmd(open opener[ports.NotificationWriter]) *cobra.Command {
	if open == nil {
		panic("NewAddCmd: client dependency cannot be nil")
	}
	var flags addFlags
	addCmd := &cobra.Command{
		Use:   "add [OPTIONS] <title>",
		Short: "Add a notification",
		Long:  addCommandLong,
		Args:  requireTitle("add"),
		RunE: func(c *cobra.Command, args []string) error {
			return runAdd(c, open, flags.input(c, args))
		},
	}
	flags.register(addCmd)
	return addCmd
}

const alertCommandLong = `Raise a risk-driven disaster alert.

The risk level decides the priority: 9 and above is critical and may
interrupt, 7 and above is high, 4 and above is normal.

USAGE:
    alertdeck alert --risk <0-10> [OPTIONS] <title>

OPTIONS:
    --risk <0-10>            Risk level (required)
    --location <text>        Where the hazard is
    --areas <a,b>            Affected areas
    --expires-in <d>         Alert lifetime, e.g. 2h
    -m, --message <text>     Alert body
    --action <label[=intent]> Attach an action (repeatable)
    -h, --help               Show this help`

// NewAlertCmd creates the alert command with explicit dependencies.
func NewAlertCmd(open opener[ports.NotificationWriter]) *cobra.Command {
	if open == nil {
		panic("NewAlertCmd: client dependency cannot be nil")
	}
	var flags addFlags
	alertCmd := &cobra.Command{
		Use:   "alert [OPTIONS] <title>",
		Short: "Raise a risk-driven alert",
		Long:  alertCommandLong,
		Args:  requireTitle("alert"),
		RunE: func(c *cobra.Command, args []string) error {
			return runAdd(c, open, flags.input(c, args))
		},
	}
	flags.register(alertCmd)
	_ = alertCmd.MarkFlagRequired("risk")
	return alertCmd
}

func runAdd(c *cobra.Command, open opener[ports.NotificationWriter], in app.AddInput) error {
	client, err := open(c.Context())
	if err != nil {
		return err
	}
	id, err := app.NewAddUseCase(client).Execute(c.Context(), in)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	colors.Success(app.FormatAdded(id, in.RiskLevel != nil))
	return nil
}

func init() {
	cmd.RootCmd.AddCommand(
		NewAddCmd(using[ports.NotificationWriter](session)),
		NewAlertCmd(using[ports.NotificationWriter](session)),
	)
}
