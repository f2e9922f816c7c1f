package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePinger struct{ err error }

func (p *fakePinger) PingContext(ctx context.Context) error { return p.err }

type fakeChecker struct{ err error }

func (c *fakeChecker) HealthCheck(ctx context.Context) error { return c.err }

func healthz(h *Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Healthz(rec, req)
	return rec
}

func TestHealthz_AllChecksPass(t *testing.T) {
	rec := healthz(New(&fakePinger{}, &fakeChecker{}))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHealthz_NilDependenciesSkipped(t *testing.T) {
	rec := healthz(New(nil, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHealthz_DatabaseDown(t *testing.T) {
	rec := healthz(New(&fakePinger{err: errors.New("connection refused")}, &fakeChecker{}))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHealthz_PolicyBroken(t *testing.T) {
	rec := healthz(New(&fakePinger{}, &fakeChecker{err: errors.New("compile failed")}))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
