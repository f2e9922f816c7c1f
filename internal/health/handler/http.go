// Package handler serves the readiness endpoint.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const checkTimeout = 2 * time.Second

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PolicyChecker reports whether the in-process policy engine can evaluate.
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler answers GET /healthz. Either dependency may be nil, in which case
// that check is skipped (the ingest service has neither).
type Handler struct {
	db     Pinger
	policy PolicyChecker
}

// New constructs a Handler.
func New(db Pinger, policy PolicyChecker) *Handler {
	return &Handler{db: db, policy: policy}
}

// Healthz handles GET /healthz. Returns 200 when every configured dependency
// answers, 503 otherwise with the failing checks named.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	failures := map[string]string{}
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			failures["database"] = err.Error()
		}
	}
	if h.policy != nil {
		if err := h.policy.HealthCheck(ctx); err != nil {
			failures["policy"] = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if len(failures) > 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "unavailable", "failures": failures})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
