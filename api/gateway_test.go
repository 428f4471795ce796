package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"PengaduanKPU/pkg/loadbalancer"
)

func TestGatewaySessionsRoute(t *testing.T) {
	mux := newGatewayMux(loadbalancer.New([]string{"http://localhost:6151"}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/auth/sessions", nil))
	if rec.Code == http.StatusNotFound {
		t.Error("/auth/sessions is not routed")
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/auth/sessions", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /auth/sessions: status = %d, want 405", rec.Code)
	}
}

func TestGatewayHealthRoute(t *testing.T) {
	mux := newGatewayMux(loadbalancer.New([]string{"http://localhost:6151"}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health: status = %d, want 200", rec.Code)
	}
}
