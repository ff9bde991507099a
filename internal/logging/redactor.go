package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	sensitiveSegments = map[string]bool{
		"secret": true, "password": true, "token": true, "tokens": true,
		"key": true, "auth": true, "authorization": true, "credential": true,
	}
	segmentSplit = regexp.MustCompile(`[^a-z0-9]+`)
)

// redactor hides values logged under sensitive keys, and any configured
// secret (such as an HTTP API token) wherever it shows up in a string value.
type redactor struct {
	secrets []string
}

func newRedactor(secrets ...string) *redactor {
	r := &redactor{}
	for _, s := range secrets {
		if s = strings.TrimSpace(s); s != "" {
			r.secrets = append(r.secrets, s)
		}
	}
	return r
}

// redact returns a copy of the flattened key/value pairs with sensitive
// values replaced.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := make([]any, len(pairs))
	copy(out, pairs)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if sensitiveKey(key) {
			out[i+1] = redacted
			continue
		}
		if s, ok := out[i+1].(string); ok {
			out[i+1] = r.scrub(s)
		}
	}
	return out
}

func (r *redactor) scrub(s string) string {
	for _, secret := range r.secrets {
		s = strings.ReplaceAll(s, secret, redacted)
	}
	return s
}

// sensitiveKey matches whole key segments, so "api_token" is sensitive and
// "secretary" is not.
func sensitiveKey(key string) bool {
	for _, part := range segmentSplit.Split(strings.ToLower(key), -1) {
		if sensitiveSegments[part] {
			return true
		}
	}
	return false
}
