package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// CORS allows browser clients from origins. A "*" entry allows any origin
// but then credentials are not shared. No origins means the local
// development defaults.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Accept-Language", "Cache-Control",
			"Authorization", "X-Refresh-Token", "X-Requested-With",
			APIKeyHeader, IdempotencyKeyHeader, RequestIDHeader,
		},
		ExposeHeaders: []string{
			RequestIDHeader, IdempotencyReplayedHeader, "Location", "Retry-After",
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset",
		},
		MaxAge: 12 * time.Hour,
	}

	switch {
	case slices.Contains(origins, "*"):
		cfg.AllowAllOrigins = true
	case len(origins) == 0:
		cfg.AllowOrigins = defaultCORSOrigins
		cfg.AllowCredentials = true
	default:
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
