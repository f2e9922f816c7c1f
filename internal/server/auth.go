package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"civic-reporting/backend/internal/auth/service"
)

const bearerPrefix = "bearer "

// Auth returns middleware that validates the Bearer token on every request
// and sets the staff identity in the request context. Requests without a
// valid token never reach the wrapped handler.
func Auth(auth *service.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			id, err := auth.Verify(token)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrMissingToken):
					writeAuthError(w, http.StatusUnauthorized, "Missing authorization token")
				case errors.Is(err, service.ErrInvalidRole):
					writeAuthError(w, http.StatusForbidden, "Invalid role")
				default:
					writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// extractBearer returns the Bearer token from the Authorization header, or ""
// if missing or malformed.
func extractBearer(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
