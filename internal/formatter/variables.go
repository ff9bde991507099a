package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/format"
)

// VariableContext contains all data needed for template variable resolution.
type VariableContext struct {
	// Count-related variables
	UnreadCount    int
	TotalCount     int
	ReadCount      int
	DismissedCount int
	AlertCount     int

	// Priority counts over unread records
	CriticalCount int
	HighCount     int
	NormalCount   int
	LowCount      int

	// Content variables
	LatestTitle   string
	LatestMessage string
	MaxRisk       float64
	SourceList    string

	// State variables
	HasUnread       bool
	CriticalShowing bool
	QuietHours      bool
	BacklogCount    int
	ToastCount      int

	HighestPriority domain.Priority
}

// NewVariableContext fills the list-derived fields of a context from items,
// which are expected most recent first.
func NewVariableContext(items []domain.Notification) VariableContext {
	c := format.CountNotifications(items)
	ctx := VariableContext{
		UnreadCount:     c.Active,
		TotalCount:      c.Total - c.Dismissed,
		ReadCount:       c.Read,
		DismissedCount:  c.Dismissed,
		AlertCount:      c.Alerts,
		CriticalCount:   c.ByPriority[domain.PriorityCritical],
		HighCount:       c.ByPriority[domain.PriorityHigh],
		NormalCount:     c.ByPriority[domain.PriorityNormal],
		LowCount:        c.ByPriority[domain.PriorityLow],
		HasUnread:       c.Active > 0,
		HighestPriority: c.Highest(),
	}

	sources := make([]string, 0, len(c.BySource))
	for _, n := range items {
		if n.Dismissed {
			continue
		}
		if ctx.LatestTitle == "" && !n.Read {
			ctx.LatestTitle = n.Title
			ctx.LatestMessage = n.Message
		}
		if !n.Read && n.RiskLevel() > ctx.MaxRisk {
			ctx.MaxRisk = n.RiskLevel()
		}
		if !n.Read && n.Source != "" && !contains(sources, n.Source) {
			sources = append(sources, n.Source)
		}
	}
	ctx.SourceList = strings.Join(sources, ",")
	return ctx
}

// VariableResolver resolves template variables to their values.
type VariableResolver interface {
	// Resolve returns the string value for a given variable name and context.
	Resolve(varName string, ctx VariableContext) (string, error)
}

// variableResolver implements VariableResolver interface.
type variableResolver struct{}

// NewVariableResolver creates a new variable resolver instance.
func NewVariableResolver() VariableResolver {
	return &variableResolver{}
}

var variableNames = []string{
	"unread-count", "total-count", "read-count", "dismissed-count", "alert-count",
	"critical-count", "high-count", "normal-count", "low-count",
	"latest-title", "latest-message", "max-risk", "source-list",
	"has-unread", "critical-showing", "quiet-hours", "backlog-count", "toast-count",
	"highest-priority", "highest-priority-name",
}

// Variables returns the names of all supported variables.
func Variables() []string {
	return append([]string(nil), variableNames...)
}

// IsKnownVariable reports whether name is a supported variable.
func IsKnownVariable(name string) bool {
	return contains(variableNames, name)
}

// Resolve returns the string value for a variable from the context.
func (vr *variableResolver) Resolve(varName string, ctx VariableContext) (string, error) {
	switch varName {
	case "unread-count":
		return strconv.Itoa(ctx.UnreadCount), nil
	case "total-count":
		return strconv.Itoa(ctx.TotalCount), nil
	case "read-count":
		return strconv.Itoa(ctx.ReadCount), nil
	case "dismissed-count":
		return strconv.Itoa(ctx.DismissedCount), nil
	case "alert-count":
		return strconv.Itoa(ctx.AlertCount), nil

	case "critical-count":
		return strconv.Itoa(ctx.CriticalCount), nil
	case "high-count":
		return strconv.Itoa(ctx.HighCount), nil
	case "normal-count":
		return strconv.Itoa(ctx.NormalCount), nil
	case "low-count":
		return strconv.Itoa(ctx.LowCount), nil

	case "latest-title":
		return ctx.LatestTitle, nil
	case "latest-message":
		return ctx.LatestMessage, nil
	case "max-risk":
		return strconv.FormatFloat(ctx.MaxRisk, 'f', 1, 64), nil
	case "source-list":
		return ctx.SourceList, nil

	case "has-unread":
		return boolToString(ctx.HasUnread), nil
	case "critical-showing":
		return boolToString(ctx.CriticalShowing), nil
	case "quiet-hours":
		return boolToString(ctx.QuietHours), nil
	case "backlog-count":
		return strconv.Itoa(ctx.BacklogCount), nil
	case "toast-count":
		return strconv.Itoa(ctx.ToastCount), nil

	// Ordinal: lower numbers are more severe, 0 when nothing is unread.
	case "highest-priority":
		return priorityToOrdinal(ctx.HighestPriority), nil
	case "highest-priority-name":
		if ctx.HighestPriority == "" {
			return "none", nil
		}
		return ctx.HighestPriority.String(), nil

	default:
		return "", fmt.Errorf("unknown variable: %s", varName)
	}
}

// boolToString converts a boolean to the string "true" or "false".
func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// priorityToOrdinal maps a priority to CRITICAL=1, HIGH=2, NORMAL=3, LOW=4.
func priorityToOrdinal(p domain.Priority) string {
	switch p {
	case domain.PriorityCritical:
		return "1"
	case domain.PriorityHigh:
		return "2"
	case domain.PriorityNormal:
		return "3"
	case domain.PriorityLow:
		return "4"
	default:
		return "0"
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
