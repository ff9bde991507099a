package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

func readToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}

func hasToken(given string, set []string) bool {
	if given == "" {
		return false
	}
	for _, t := range set {
		if subtle.ConstantTimeCompare([]byte(t), []byte(given)) == 1 {
			return true
		}
	}
	return false
}

// RequireToken rejects requests that do not present one of tokens. With no
// tokens configured every request passes.
func RequireToken(tokens []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(tokens) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasToken(readToken(r), tokens) {
				next.ServeHTTP(w, r)
				return
			}
			writeError(w, http.StatusUnauthorized, "unauthorized")
		})
	}
}
