package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	authdomain "civic-reporting/backend/internal/auth/domain"
	"civic-reporting/backend/internal/authz"
	"civic-reporting/backend/internal/server"
	"civic-reporting/backend/internal/ticket/domain"
	"civic-reporting/backend/internal/ticket/service"
)

// fakeRepo is an in-memory ticket repository.
type fakeRepo struct {
	tickets []*domain.Ticket
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	for _, t := range r.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListAll(ctx context.Context) ([]*domain.Ticket, error) {
	return r.tickets, nil
}

func newRouter(t *testing.T, tickets []*domain.Ticket) chi.Router {
	t.Helper()
	e, err := authz.NewEvaluator(context.Background())
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	r := chi.NewRouter()
	New(service.NewQueryService(&fakeRepo{tickets: tickets}, e)).Routes(r)
	return r
}

func get(r chi.Router, target string, id *authdomain.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if id != nil {
		req = req.WithContext(server.WithIdentity(req.Context(), id))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sample() []*domain.Ticket {
	return []*domain.Ticket{{
		ID: "t1", Concern: "pothole", Notes: "deep", UserName: "Asha",
		Contact: "asha@example.com", Lat: 12.93, Lng: 77.61, Area: "Koramangala", Timestamp: 1700000001000,
	}}
}

func TestList_OfficerSeesRedactedFields(t *testing.T) {
	r := newRouter(t, sample())
	rec := get(r, "/tickets", &authdomain.Identity{Role: authdomain.RoleOfficer})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var rows []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	for _, key := range []string{"id", "concern", "area", "timestamp"} {
		if _, ok := row[key]; !ok {
			t.Errorf("summary missing %q", key)
		}
	}
	for _, key := range []string{"userName", "contact", "notes", "lat", "lng"} {
		if _, ok := row[key]; ok {
			t.Errorf("summary leaks %q", key)
		}
	}
}

func TestList_SupervisorSeesFullRecords(t *testing.T) {
	r := newRouter(t, sample())
	rec := get(r, "/tickets", &authdomain.Identity{Role: authdomain.RoleSupervisor})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var rows []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rows[0]["userName"] != "Asha" || rows[0]["contact"] != "asha@example.com" {
		t.Errorf("full record = %v", rows[0])
	}
}

func TestList_EmptyStoreReturnsArray(t *testing.T) {
	// An empty store must encode as [] for either projection, never null.
	r := newRouter(t, nil)
	for _, role := range []authdomain.Role{authdomain.RoleOfficer, authdomain.RoleSupervisor} {
		t.Run(string(role), func(t *testing.T) {
			rec := get(r, "/tickets", &authdomain.Identity{Role: role})
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var rows []map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if rows == nil {
				t.Fatalf("body = %s, want a JSON array", rec.Body.String())
			}
			if len(rows) != 0 {
				t.Errorf("rows = %d, want 0", len(rows))
			}
		})
	}
}

func TestList_UnknownRoleForbidden(t *testing.T) {
	r := newRouter(t, sample())
	rec := get(r, "/tickets", &authdomain.Identity{Role: "ADMIN"})

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestList_NoIdentityUnauthorized(t *testing.T) {
	r := newRouter(t, sample())
	rec := get(r, "/tickets", nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGet_FoundAndProjected(t *testing.T) {
	r := newRouter(t, sample())
	rec := get(r, "/tickets/t1", &authdomain.Identity{Role: authdomain.RoleOfficer})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var row map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&row); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if row["id"] != "t1" {
		t.Errorf("id = %v", row["id"])
	}
	if _, ok := row["userName"]; ok {
		t.Error("summary leaks userName")
	}
}

func TestGet_NotFound(t *testing.T) {
	r := newRouter(t, sample())
	rec := get(r, "/tickets/missing", &authdomain.Identity{Role: authdomain.RoleSupervisor})

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
