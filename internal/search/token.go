package search

import (
	"strings"

	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// TokenProvider splits the query on whitespace; every token must match at
// least one field. The special tokens "read" and "unread" filter on the read
// flag, and cancel out when both are given.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if all text tokens match and the read filter holds.
func (p *TokenProvider) Match(n domain.Notification, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}

	readFilter, unreadFilter := false, false
	textTokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		switch strings.ToLower(token) {
		case "read":
			readFilter = true
		case "unread":
			unreadFilter = true
		default:
			if p.opts.CaseInsensitive {
				token = strings.ToLower(token)
			}
			textTokens = append(textTokens, token)
		}
	}

	if readFilter != unreadFilter {
		if readFilter && !n.IsRead() {
			return false
		}
		if unreadFilter && n.IsRead() {
			return false
		}
	}

	for _, token := range textTokens {
		if !anyField(p.opts, n, func(v string) bool { return strings.Contains(v, token) }) {
			return false
		}
	}
	return true
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}
