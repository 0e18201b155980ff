//go:build !integration

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/middleware"
	"github.com/guttosm/flock-service/internal/service/cache"
	"github.com/stretchr/testify/assert"
)

func TestNewRouter(t *testing.T) {
	handler := NewHandler(memoryServices(), WithAudit(false))
	healthHandler := NewHealthHandler()

	tests := []struct {
		name string
		cfg  func(t *testing.T) RouterConfig
		test func(*testing.T, *gin.Engine)
	}{
		{
			name: "without auth service only infrastructure routes exist",
			cfg:  func(*testing.T) RouterConfig { return DefaultRouterConfig() },
			test: func(t *testing.T, router *gin.Engine) {
				w := doRequest(router, http.MethodGet, "/api/v1/batches", farmToken, nil)
				assert.Equal(t, http.StatusNotFound, w.Code)

				w = doRequest(router, http.MethodGet, "/healthz", "", nil)
				assert.Equal(t, http.StatusOK, w.Code)
			},
		},
		{
			name: "api key is required in addition to the token",
			cfg: func(t *testing.T) RouterConfig {
				cfg := testRouterConfig(t)
				cfg.EnableAuth = true
				cfg.APIKeys = map[string]bool{"test-key": true}
				return cfg
			},
			test: func(t *testing.T, router *gin.Engine) {
				w := doRequest(router, http.MethodGet, "/api/v1/batches", farmToken, nil)
				assert.Equal(t, http.StatusUnauthorized, w.Code)

				req := httptest.NewRequest(http.MethodGet, "/api/v1/batches", nil)
				req.Header.Set("Authorization", "Bearer "+farmToken)
				req.Header.Set("X-API-Key", "test-key")
				w = httptest.NewRecorder()
				router.ServeHTTP(w, req)
				assert.Equal(t, http.StatusOK, w.Code)
			},
		},
		{
			name: "idempotent replay of a batch creation",
			cfg: func(t *testing.T) RouterConfig {
				cfg := testRouterConfig(t)
				store := cache.NewSharded[*middleware.StoredResponse](16, time.Minute, 1)
				t.Cleanup(store.Stop)
				cfg.Idempotency = store
				return cfg
			},
			test: func(t *testing.T, router *gin.Engine) {
				body := `{"name": "Layers", "arrivalDate": "2026-03-01T00:00:00Z", "chickenType": "Isa Brown", "originalCount": 10}`
				send := func() *httptest.ResponseRecorder {
					req := httptest.NewRequest(http.MethodPost, "/api/v1/batches", strings.NewReader(body))
					req.Header.Set("Content-Type", "application/json")
					req.Header.Set("Authorization", "Bearer "+farmToken)
					req.Header.Set("Idempotency-Key", "batch-1")
					w := httptest.NewRecorder()
					router.ServeHTTP(w, req)
					return w
				}

				first := send()
				second := send()
				assert.Equal(t, http.StatusCreated, first.Code)
				assert.Equal(t, http.StatusCreated, second.Code)
				assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))

				w := doRequest(router, http.MethodGet, "/api/v1/batches", farmToken, nil)
				assert.Contains(t, w.Body.String(), "Layers")
			},
		},
		{
			name: "swagger behind basic auth",
			cfg: func(*testing.T) RouterConfig {
				cfg := DefaultRouterConfig()
				cfg.SwaggerUser, cfg.SwaggerPass = "docs", "s3cret"
				return cfg
			},
			test: func(t *testing.T, router *gin.Engine) {
				w := doRequest(router, http.MethodGet, "/swagger/index.html", "", nil)
				assert.Equal(t, http.StatusUnauthorized, w.Code)

				req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
				req.SetBasicAuth("docs", "s3cret")
				w = httptest.NewRecorder()
				router.ServeHTTP(w, req)
				assert.Equal(t, http.StatusOK, w.Code)
			},
		},
		{
			name: "rate limiting",
			cfg: func(t *testing.T) RouterConfig {
				cfg := testRouterConfig(t)
				cfg.RateLimit = 2
				cfg.RateWindow = time.Minute
				return cfg
			},
			test: func(t *testing.T, router *gin.Engine) {
				var last int
				for i := 0; i < 3; i++ {
					last = doRequest(router, http.MethodGet, "/healthz", "", nil).Code
				}
				assert.Equal(t, http.StatusTooManyRequests, last)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(handler, healthHandler, tt.cfg(t))
			tt.test(t, router)
		})
	}
}

func TestRouter_Endpoints(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{
			name:           "healthz endpoint",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "readyz endpoint",
			method:         http.MethodGet,
			path:           "/readyz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics endpoint",
			method:         http.MethodGet,
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "swagger endpoint",
			method:         http.MethodGet,
			path:           "/swagger/index.html",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "batches without token",
			method:         http.MethodGet,
			path:           "/api/v1/batches",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "batches with token",
			method:         http.MethodGet,
			path:           "/api/v1/batches",
			token:          farmToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "allocation with missing body",
			method:         http.MethodPost,
			path:           "/api/v1/allocations",
			token:          farmToken,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unversioned path",
			method:         http.MethodGet,
			path:           "/api/batches",
			token:          farmToken,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
