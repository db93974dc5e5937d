package middleware

import (
	"crypto/subtle"
	"net/http"
)

const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware rejects requests without the configured key. An empty key
// disables the check.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				writeError(w, http.StatusForbidden, "missing API key")
				return
			}

			if !ValidAPIKey(apiKey, key) {
				writeError(w, http.StatusForbidden, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ValidAPIKey compares in constant time.
func ValidAPIKey(expected, got string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
