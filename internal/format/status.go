package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// Counts aggregates a notification list. Priority, type and source counts
// cover active records only: unread and not dismissed.
type Counts struct {
	Total      int
	Active     int
	Read       int
	Dismissed  int
	Alerts     int
	ByPriority map[domain.Priority]int
	ByType     map[domain.Type]int
	BySource   map[string]int
}

// CountNotifications builds Counts over items.
func CountNotifications(items []domain.Notification) Counts {
	c := Counts{
		Total:      len(items),
		ByPriority: make(map[domain.Priority]int),
		ByType:     make(map[domain.Type]int),
		BySource:   make(map[string]int),
	}
	for _, n := range items {
		if n.Dismissed {
			c.Dismissed++
			continue
		}
		if n.Read {
			c.Read++
			continue
		}
		c.Active++
		c.ByPriority[n.Priority]++
		c.ByType[n.Type]++
		if n.IsAlert() {
			c.Alerts++
		}
		source := n.Source
		if source == "" {
			source = "unknown"
		}
		c.BySource[source]++
	}
	return c
}

// Highest returns the highest priority among active records, or "" when
// none are active.
func (c Counts) Highest() domain.Priority {
	for _, p := range []domain.Priority{
		domain.PriorityCritical,
		domain.PriorityHigh,
		domain.PriorityNormal,
		domain.PriorityLow,
	} {
		if c.ByPriority[p] > 0 {
			return p
		}
	}
	return ""
}

// FormatSummary writes a summary of notification counts to the writer.
// If nothing is active, writes "No active notifications".
func FormatSummary(w io.Writer, c Counts) error {
	if c.Active == 0 {
		_, err := fmt.Fprintf(w, "No active notifications\n")
		return err
	}
	_, err := fmt.Fprintf(w, "Active notifications: %d (%d alerts)\n", c.Active, c.Alerts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "  critical: %d, high: %d, normal: %d, low: %d\n",
		c.ByPriority[domain.PriorityCritical], c.ByPriority[domain.PriorityHigh],
		c.ByPriority[domain.PriorityNormal], c.ByPriority[domain.PriorityLow])
	return err
}

// FormatPriorities writes priority counts in key:value format, one per line.
func FormatPriorities(w io.Writer, c Counts) error {
	_, err := fmt.Fprintf(w, "critical:%d\nhigh:%d\nnormal:%d\nlow:%d\n",
		c.ByPriority[domain.PriorityCritical], c.ByPriority[domain.PriorityHigh],
		c.ByPriority[domain.PriorityNormal], c.ByPriority[domain.PriorityLow])
	return err
}

// FormatSources writes source counts in source:count format, sorted by
// source for deterministic output.
func FormatSources(w io.Writer, c Counts) error {
	keys := make([]string, 0, len(c.BySource))
	for k := range c.BySource {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "%s:%d\n", key, c.BySource[key]); err != nil {
			return err
		}
	}
	return nil
}

// StatusData holds aggregated status information for JSON output.
type StatusData struct {
	Total     int            `json:"total"`
	Active    int            `json:"active"`
	Read      int            `json:"read"`
	Dismissed int            `json:"dismissed"`
	Alerts    int            `json:"alerts"`
	Highest   string         `json:"highest,omitempty"`
	Priority  map[string]int `json:"priority"`
	Types     map[string]int `json:"types"`
	Sources   map[string]int `json:"sources"`
}

// FormatJSON writes c as JSON to the writer.
func FormatJSON(w io.Writer, c Counts) error {
	data := StatusData{
		Total:     c.Total,
		Active:    c.Active,
		Read:      c.Read,
		Dismissed: c.Dismissed,
		Alerts:    c.Alerts,
		Highest:   c.Highest().String(),
		Priority:  make(map[string]int, len(c.ByPriority)),
		Types:     make(map[string]int, len(c.ByType)),
		Sources:   c.BySource,
	}
	for p, n := range c.ByPriority {
		data.Priority[p.String()] = n
	}
	for t, n := range c.ByType {
		data.Types[t.String()] = n
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
