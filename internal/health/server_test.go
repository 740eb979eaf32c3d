package health

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProbeEndpoints(t *testing.T) {
	srv := NewServer(0)

	for _, path := range []string{"/", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
		if rec.Body.String() != "OK" {
			t.Fatalf("GET %s: expected OK body, got %q", path, rec.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("HEAD /: expected 200, got %d", rec.Code)
	}
}

func TestUnknownPath(t *testing.T) {
	srv := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
