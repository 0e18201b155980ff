// Package app provides service initialization.
package app

import (
	"encoding/json"
	"time"

	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/client/optimizer"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/service"
	"github.com/guttosm/flock-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

const (
	optimizerCacheShards = 16

	grantCacheSize   = 256
	grantCacheTTL    = time.Minute
	grantCacheShards = 4
)

// ServiceComponents holds service-related components.
// Every service is nil when the database is unavailable.
type ServiceComponents struct {
	Auth        service.AuthService
	Roles       service.RoleService
	Permissions service.PermissionService

	Farms        service.FarmService
	Batches      service.BatchService
	Houses       service.HouseService
	Allocations  service.AllocationService
	Stock        service.StockService
	Production   service.ProductionService
	FeedFormulas service.FeedFormulaService

	OptimizerCache *cache.Sharded[json.RawMessage]
	GrantCache     *cache.Sharded[model.PermissionSet]
}

// InitializeServices initializes business logic services on top of the database components.
func InitializeServices(db *DatabaseComponents, cfg config.Config) *ServiceComponents {
	components := &ServiceComponents{}
	if db == nil {
		log.Warn().Msg("Database unavailable - business services disabled")
		return components
	}

	components.Auth = service.NewAuthService(db.UserRepo, db.RoleRepo, db.TokenRepo, cfg.Auth)
	components.GrantCache = cache.NewSharded[model.PermissionSet](grantCacheSize, grantCacheTTL, grantCacheShards, cache.WithName("grants"))
	components.Roles = service.NewRoleService(db.RoleRepo, components.GrantCache)
	components.Permissions = service.NewPermissionService(db.PermissionRepo)

	components.Farms = service.NewFarmService(db.UnitOfWork, db.FarmRepo, db.UserRepo, components.Auth)
	components.Batches = service.NewBatchService(db.UnitOfWork, db.BatchRepo, db.AllocationRepo)
	components.Houses = service.NewHouseService(db.UnitOfWork, db.HouseRepo, db.AllocationRepo)
	components.Allocations = service.NewAllocationService(db.UnitOfWork, db.BatchRepo, db.HouseRepo, db.AllocationRepo)
	components.Stock = service.NewStockService(db.StockRepo)
	components.Production = service.NewProductionService(db.UnitOfWork, db.BatchRepo, db.ProductionRepo)

	var results cache.Cache[json.RawMessage]
	if cfg.Optimizer.CacheSize > 0 {
		components.OptimizerCache = cache.NewSharded[json.RawMessage](cfg.Optimizer.CacheSize, cfg.Optimizer.CacheTTL, optimizerCacheShards, cache.WithName("optimizer"))
		results = components.OptimizerCache
	}
	if cfg.Optimizer.BaseURL == "" {
		log.Warn().Msg("FEED_OPTIMIZER_URL not set - formula optimization will answer 503")
	}
	components.FeedFormulas = service.NewFeedFormulaService(db.FeedFormulaRepo, optimizer.NewClient(cfg.Optimizer), results)

	return components
}

// Stop releases background resources held by the services.
func (s *ServiceComponents) Stop() {
	if s == nil {
		return
	}
	if s.OptimizerCache != nil {
		s.OptimizerCache.Stop()
	}
	if s.GrantCache != nil {
		s.GrantCache.Stop()
	}
}
