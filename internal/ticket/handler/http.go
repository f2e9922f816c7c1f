// Package handler exposes the staff ticket read endpoints over HTTP.
// All routes require an authenticated identity in the request context.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"civic-reporting/backend/internal/authz"
	"civic-reporting/backend/internal/server"
	"civic-reporting/backend/internal/ticket/service"
)

// Handler holds the HTTP handlers for the ticket read API.
type Handler struct {
	svc *service.QueryService
}

// New constructs a Handler.
func New(svc *service.QueryService) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the read endpoints on r. Mount behind the bearer middleware.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/tickets", h.List)
	r.Get("/tickets/{id}", h.Get)
}

// List handles GET /tickets. The response array shape depends on the caller's
// projection scope: summaries for officers, full records for supervisors.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := server.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	page, err := h.svc.List(r.Context(), id)
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	if page.Scope == authz.ScopeFull {
		writeJSON(w, http.StatusOK, page.Tickets)
		return
	}
	writeJSON(w, http.StatusOK, page.Summaries)
}

// Get handles GET /tickets/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := server.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	view, err := h.svc.Get(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		h.writeQueryError(w, err)
		return
	}

	if view.Scope == authz.ScopeFull {
		writeJSON(w, http.StatusOK, view.Ticket)
		return
	}
	writeJSON(w, http.StatusOK, view.Summary)
}

func (h *Handler) writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "Invalid role")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Ticket not found")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
