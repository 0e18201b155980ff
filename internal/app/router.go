// Package app provides router configuration.
package app

import (
	"time"

	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/http"
	"github.com/guttosm/flock-service/internal/middleware"
	"github.com/guttosm/flock-service/internal/service/cache"
)

const (
	idempotencyCacheSize = 4096
	idempotencyTTL       = 5 * time.Minute
	idempotencyShards    = 16
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
	LogSink       *middleware.LogSink
	Idempotency   *cache.Sharded[*middleware.StoredResponse]
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	flock := http.Services{
		Farms:        services.Farms,
		Batches:      services.Batches,
		Houses:       services.Houses,
		Allocations:  services.Allocations,
		Stock:        services.Stock,
		Production:   services.Production,
		FeedFormulas: services.FeedFormulas,
	}
	if dbComponents != nil {
		flock.Audit = dbComponents.LoggingService
	}
	handler := http.NewHandler(flock)
	healthHandler := http.NewHealthHandler()

	var sink *middleware.LogSink
	if dbComponents != nil {
		sink = middleware.NewLogSink(dbComponents.LoggingService, middleware.DefaultLogSinkConfig())
		healthHandler.RegisterChecker("mongodb", dbComponents)

		// Register circuit breakers for health monitoring
		for name, cb := range dbComponents.CircuitBreakers {
			healthHandler.RegisterCircuitBreaker(name, cb)
		}
	}

	idempotency := cache.NewSharded[*middleware.StoredResponse](idempotencyCacheSize, idempotencyTTL, idempotencyShards, cache.WithName("idempotency"))

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		Idempotency:       idempotency,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LogSink:           sink,
		AuthService:       services.Auth,
		RoleService:       services.Roles,
		PermissionService: services.Permissions,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
		LogSink:       sink,
		Idempotency:   idempotency,
	}
}
