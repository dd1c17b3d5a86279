package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/apex-supplements/store-api/internal/auth"
)

// TokenAuth middleware validates the bearer token issued at login.
// The token is read from "Authorization: Bearer <token>" or, for older
// clients, from the "api_key" header.
func TokenAuth(checker auth.CredentialChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := credentialFromRequest(r)

			if token == "" {
				writeUnauthorized(w, "Authentication token required")
				return
			}

			if err := checker.Check(token); err != nil {
				writeUnauthorized(w, "Invalid authentication token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func credentialFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.Header.Get("api_key")
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="store"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "message": message})
}
