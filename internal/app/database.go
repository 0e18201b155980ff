// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/circuitbreaker"
	"github.com/guttosm/flock-service/internal/metrics"
	"github.com/guttosm/flock-service/internal/repository"
	"github.com/guttosm/flock-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB             *repository.MongoDB
	LoggingService service.LoggingService

	UnitOfWork      repository.UnitOfWork
	FarmRepo        repository.FarmRepositoryInterface
	BatchRepo       repository.BatchRepositoryInterface
	HouseRepo       repository.HouseRepositoryInterface
	AllocationRepo  repository.AllocationRepositoryInterface
	StockRepo       repository.StockRepositoryInterface
	ProductionRepo  repository.ProductionRepositoryInterface
	FeedFormulaRepo repository.FeedFormulaRepositoryInterface

	UserRepo       repository.UserRepositoryInterface
	RoleRepo       repository.RoleRepositoryInterface
	PermissionRepo repository.PermissionRepositoryInterface
	TokenRepo      repository.TokenRepositoryInterface

	// CircuitBreakers are keyed by the name reported on /readyz.
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
	}

	breakers := make(map[string]*circuitbreaker.CircuitBreaker)
	newBreaker := func(name string) *circuitbreaker.CircuitBreaker {
		cb := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.CircuitBreakerFailureThreshold,
			SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
			Timeout:          cfg.CircuitBreakerTimeout,
			Name:             name,
			IsFailure:        repository.IsDatabaseError,
			OnStateChange: func(name string, _, to circuitbreaker.State) {
				metrics.SetCircuitBreakerState(name, int(to))
			},
		})
		metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))
		breakers[name] = cb
		return cb
	}

	// Initialize repositories
	logsRepo := repository.NewLogsRepository(db)
	logsRepoWithCB := repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, newBreaker("mongodb-logs"))
	loggingService := service.NewLoggingService(logsRepoWithCB)

	uow := repository.NewUnitOfWorkWithCircuitBreaker(repository.NewMongoUnitOfWork(db), newBreaker("mongodb-transactions"))

	// Initialize auth repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	if err := seedAccessControl(context.Background(), roleRepo, permissionRepo); err != nil {
		log.Warn().Err(err).Msg("Default roles and permissions are incomplete")
	}

	return &DatabaseComponents{
		DB:             db,
		LoggingService: loggingService,

		UnitOfWork:      uow,
		FarmRepo:        repository.NewFarmRepositoryWithCircuitBreaker(repository.NewFarmRepository(db), newBreaker("mongodb-farms")),
		BatchRepo:       repository.NewBatchRepositoryWithCircuitBreaker(repository.NewBatchRepository(db), newBreaker("mongodb-batches")),
		HouseRepo:       repository.NewHouseRepositoryWithCircuitBreaker(repository.NewHouseRepository(db), newBreaker("mongodb-houses")),
		AllocationRepo:  repository.NewAllocationRepositoryWithCircuitBreaker(repository.NewAllocationRepository(db), newBreaker("mongodb-allocations")),
		StockRepo:       repository.NewStockRepositoryWithCircuitBreaker(repository.NewStockRepository(db), newBreaker("mongodb-stocks")),
		ProductionRepo:  repository.NewProductionRepositoryWithCircuitBreaker(repository.NewProductionRepository(db), newBreaker("mongodb-productions")),
		FeedFormulaRepo: repository.NewFeedFormulaRepositoryWithCircuitBreaker(repository.NewFeedFormulaRepository(db), newBreaker("mongodb-feed-formulas")),

		UserRepo:       userRepo,
		RoleRepo:       roleRepo,
		PermissionRepo: permissionRepo,
		TokenRepo:      tokenRepo,

		CircuitBreakers: breakers,
	}
}

// Check pings MongoDB for the readiness check.
func (d *DatabaseComponents) Check(ctx context.Context) error {
	return d.DB.HealthCheck(ctx)
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
