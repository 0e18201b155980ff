package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/metrics"
	"github.com/guttosm/flock-service/internal/middleware"
	"github.com/guttosm/flock-service/internal/service"
	"github.com/guttosm/flock-service/internal/service/cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// APIPrefix is the path prefix of every business route.
const APIPrefix = "/api/v1"

// RouterConfig holds what NewRouter needs beyond the handlers. Zero values
// switch the matching middleware off.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration

	// APIKeys are only enforced when EnableAuth is set.
	APIKeys    map[string]bool
	EnableAuth bool

	Idempotency cache.Cache[*middleware.StoredResponse]
	CORSOrigins []string
	LogSink     *middleware.LogSink

	// Swagger UI asks for basic auth when both are set.
	SwaggerUser string
	SwaggerPass string

	AuthService       service.AuthService
	RoleService       service.RoleService
	PermissionService service.PermissionService
}

// DefaultRouterConfig allows 100 requests a minute per client and gives each
// API request 30 seconds.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: 30 * time.Second,
	}
}

// NewRouter builds the gin engine. Without a handler or an AuthService only
// health, metrics and swagger are served: every business route belongs to an
// authenticated caller's farm.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}
	router.Use(globalMiddleware(&cfg, limiter)...)

	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	mountSwagger(router, cfg.SwaggerUser, cfg.SwaggerPass)

	if handler == nil || cfg.AuthService == nil {
		return router
	}

	api := router.Group(APIPrefix, apiMiddleware(&cfg)...)

	auth := NewAuthRoutes(cfg.AuthService)
	auth.RegisterPublicRoutes(api)
	NewFlockRoutes(handler).RegisterProtectedRoutes(auth.ProtectedGroup(api, limiter), &cfg)

	return router
}

// globalMiddleware runs on every route. CORS comes first so preflights are
// answered before anything else, and the client address limiter last.
func globalMiddleware(cfg *RouterConfig, limiter *middleware.RateLimiter) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.AttachLogSink(cfg.LogSink),
		middleware.RequestLogger(cfg.LogSink),
		middleware.ErrorHandler(),
	}
	if limiter != nil {
		chain = append(chain, limiter.Middleware(middleware.ClientIPKey))
	}
	return chain
}

// apiMiddleware runs on /api/v1 only. The API key is a service-to-service
// check on top of the caller's JWT.
func apiMiddleware(cfg *RouterConfig) []gin.HandlerFunc {
	var chain []gin.HandlerFunc
	if cfg.RequestTimeout > 0 {
		chain = append(chain, middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.Idempotency != nil {
		chain = append(chain, middleware.Idempotency(cfg.Idempotency))
	}
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		chain = append(chain, middleware.APIKeyAuth(cfg.APIKeys))
	}
	return chain
}

func mountSwagger(router *gin.Engine, user, pass string) {
	docs := ginSwagger.WrapHandler(swaggerFiles.Handler)
	if user == "" || pass == "" {
		router.GET("/swagger/*any", docs)
		return
	}
	router.Group("/swagger", gin.BasicAuth(gin.Accounts{user: pass})).GET("/*any", docs)
}
