// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/http"
	"github.com/guttosm/flock-service/internal/middleware"
	"github.com/guttosm/flock-service/internal/scheduler"
	"github.com/guttosm/flock-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

// App is the wired application: the HTTP router plus the resources that
// must be released on shutdown.
type App struct {
	Router    *gin.Engine
	Scheduler *scheduler.Scheduler

	db       *DatabaseComponents
	services *ServiceComponents
	logSink  *middleware.LogSink
	replays  *cache.Sharded[*middleware.StoredResponse]
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) *App {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	// Initialize database components (MongoDB repositories and services)
	dbComponents := InitializeDatabase(cfg.Database)

	// Initialize business services
	serviceComponents := InitializeServices(dbComponents, cfg)

	// Initialize router components (handlers and configuration)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	app := &App{
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		db:       dbComponents,
		services: serviceComponents,
		logSink:  routerComponents.LogSink,
		replays:  routerComponents.Idempotency,
	}

	if cfg.Scheduler.Enabled && serviceComponents.Batches != nil && serviceComponents.Stock != nil {
		sched := scheduler.New(cfg.Scheduler, serviceComponents.Batches, serviceComponents.Stock)
		if err := sched.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start scheduler")
		} else {
			app.Scheduler = sched
		}
	}

	return app
}

// Close stops the scheduler and the caches, flushes pending log entries and
// closes the database connection.
func (a *App) Close(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop(ctx)
	}
	a.services.Stop()
	if a.replays != nil {
		a.replays.Stop()
	}
	a.logSink.Close()
	if err := a.db.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}
