// Package search provides the free-text search strategies used to filter
// notifications. Every strategy implements Provider, so the CLI, the HTTP
// API and the watch TUI share one matching logic.
package search

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// Searchable fields.
const (
	FieldTitle    = "title"
	FieldMessage  = "message"
	FieldSource   = "source"
	FieldLocation = "location"
	FieldAreas    = "areas"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if the notification matches the search query.
	Match(n domain.Notification, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in
}

// DefaultOptions searches title, message and source, ignoring case.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{FieldTitle, FieldMessage, FieldSource},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
func WithFields(fields ...string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

// WithAlertFields adds the alert location and affected areas.
func WithAlertFields() Option {
	return func(o *Options) {
		o.Fields = append(append([]string(nil), o.Fields...), FieldLocation, FieldAreas)
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValues returns the non-empty values of field on n.
func fieldValues(n domain.Notification, field string) []string {
	var values []string
	switch field {
	case FieldTitle:
		values = []string{n.Title}
	case FieldMessage:
		values = []string{n.Message}
	case FieldSource:
		values = []string{n.Source}
	case FieldLocation:
		if n.Alert != nil {
			values = []string{n.Alert.Location}
		}
	case FieldAreas:
		if n.Alert != nil {
			values = n.Alert.AffectedAreas
		}
	}
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// anyField reports whether match holds for some value of a configured field.
func anyField(o Options, n domain.Notification, match func(value string) bool) bool {
	for _, field := range o.Fields {
		for _, v := range fieldValues(n, field) {
			if o.CaseInsensitive {
				v = strings.ToLower(v)
			}
			if match(v) {
				return true
			}
		}
	}
	return false
}

// New returns the provider registered under name: substring, token or regex.
func New(name string, opts ...Option) (Provider, error) {
	switch strings.ToLower(name) {
	case "", "substring":
		return NewSubstringProvider(opts...), nil
	case "token":
		return NewTokenProvider(opts...), nil
	case "regex":
		return NewRegexProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", name)
	}
}
