package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"genie-gateway/internal/config"
	"genie-gateway/internal/interfaces/httpserver"
)

func newTestServer(t *testing.T) *httpserver.HttpServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		ServiceName: "genie-gateway",
		Environment: "test",
		HTTPPort:    0,
	}
	return httpserver.New(cfg, zerolog.Nop(), nil, nil)
}

func TestHealthEndpoints(t *testing.T) {
	server := newTestServer(t)

	paths := []string{"/", "/health", "/healthz", "/readyz", "/health/auth"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			server.Engine().ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("GET %s status = %d, want 200", path, w.Code)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	server.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("GET /metrics status = %d, want 200", w.Code)
	}
}

func TestProtectedRouteWithoutBearer(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/genie/conversation/conv-1", nil)
	w := httptest.NewRecorder()
	server.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
