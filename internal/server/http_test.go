package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/intervals-mcp/internal/config"
)

func newTestHTTPServer(t *testing.T) *HTTPServer {
	t.Helper()
	sc := newTestContext(t, &config.Config{})
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1",
		mcpserver.WithToolCapabilities(true),
	)
	return NewHTTPServer(mcpSrv, sc)
}

func TestHTTPServer_ServesHealthEndpoints(t *testing.T) {
	s := newTestHTTPServer(t)
	handler := s.Handler()

	for _, path := range []string{"/healthz", "/readyz", "/healthz/detailed"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestHTTPServer_RecordsMetricsWhenConfigured(t *testing.T) {
	s := newTestHTTPServer(t)

	provider := createTestProvider(t)
	s.serverContext.SetMetrics(provider.Metrics())

	// Should not panic with metrics recording active
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestHTTPServer_ShutdownFlipsReadiness(t *testing.T) {
	s := newTestHTTPServer(t)
	handler := s.Handler()

	if err := s.Shutdown(t.Context()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /readyz after shutdown status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestStatusRecorder_CapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	sr.WriteHeader(http.StatusTeapot)

	if sr.status != http.StatusTeapot {
		t.Errorf("status = %d, want %d", sr.status, http.StatusTeapot)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("underlying recorder code = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
