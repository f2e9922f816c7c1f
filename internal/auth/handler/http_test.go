package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"civic-reporting/backend/internal/auth/service"
	"civic-reporting/backend/internal/security"
	"github.com/go-chi/chi/v5"
)

func newRouter() chi.Router {
	svc := service.NewService(security.NewTokenProvider("test-secret", 24*time.Hour))
	r := chi.NewRouter()
	New(svc).Routes(r)
	return r
}

func TestLogin_IssuesToken(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"role":"OFFICER","employeeId":"emp-1"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Token == "" {
		t.Error("token empty")
	}
	if body.Role != "OFFICER" {
		t.Errorf("role = %q, want OFFICER", body.Role)
	}
}

func TestLogin_InvalidRole(t *testing.T) {
	r := newRouter()

	for _, payload := range []string{`{"role":"ADMIN"}`, `{}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("payload %q: status = %d, want 400", payload, rec.Code)
		}
	}
}
