// Package handler exposes the staff login endpoint over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"civic-reporting/backend/internal/auth/service"
	"github.com/go-chi/chi/v5"
)

// Handler holds the HTTP handlers for staff authentication.
type Handler struct {
	svc *service.Service
}

// New constructs a Handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the auth endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.Login)
}

type loginRequest struct {
	Role       string `json:"role"`
	EmployeeID string `json:"employeeId"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Login handles POST /login. It issues a role-scoped token; no password is
// involved, callers are trusted staff on the internal network.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// An unreadable body is treated the same as a missing role.
		req = loginRequest{}
	}

	res, err := h.svc.Login(req.Role, req.EmployeeID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			writeError(w, http.StatusBadRequest, "Valid role (OFFICER or SUPERVISOR) required")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: res.Token, Role: string(res.Role)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
