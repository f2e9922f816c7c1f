// Package handler exposes the public ticket submission endpoint over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"civic-reporting/backend/internal/ingest/service"
	"civic-reporting/backend/internal/ticket/domain"
)

// Error codes returned to clients alongside the HTTP status.
const (
	codeValidation  = "VALIDATION_ERROR"
	codeOutsideCity = "OUTSIDE_CITY"
	codeGeocode     = "GEOCODE_FAILED"
	codePublish     = "PUBLISH_FAILED"
	codeInternal    = "INTERNAL_ERROR"
)

// Handler holds the HTTP handlers for public ticket submission.
type Handler struct {
	svc *service.Service
}

// New constructs a Handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the submission endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/tickets", h.Submit)
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Submit handles POST /tickets. Accepted submissions return 200 with the
// assigned ticket id; the body is otherwise an errorResponse whose code
// identifies the failed pipeline stage.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "Invalid input", Code: codeValidation, Details: "body: malformed JSON",
		})
		return
	}

	ticket, err := h.svc.Submit(r.Context(), &sub)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"ticketId": ticket.ID})
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "Invalid input", Code: codeValidation, Details: verr.Error(),
		})
	case errors.Is(err, service.ErrGeocodeUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: "Location validation service temporarily unavailable", Code: codeGeocode,
		})
	case errors.Is(err, service.ErrOutsideBoundary):
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error: "Location is outside " + title(h.svc.CityName()) + " city limits", Code: codeOutsideCity,
		})
	case errors.Is(err, service.ErrPublishFailure):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: "Ticket created but delivery failed. Please try again.", Code: codePublish,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "Internal server error", Code: codeInternal,
		})
	}
}

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
