//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/guttosm/flock-service/config"
	"github.com/guttosm/flock-service/internal/mocks"
	"github.com/guttosm/flock-service/internal/repository/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryComponents backs the flock repositories with the in-memory store and
// the auth repositories with mocks.
func memoryComponents(t *testing.T) *DatabaseComponents {
	store := memstore.New()
	return &DatabaseComponents{
		LoggingService:  mocks.NewMockLoggingService(t),
		UnitOfWork:      store,
		FarmRepo:        store.Farms(),
		BatchRepo:       store.Batches(),
		HouseRepo:       store.Houses(),
		AllocationRepo:  store.Allocations(),
		StockRepo:       store.Stocks(),
		ProductionRepo:  store.Productions(),
		FeedFormulaRepo: store.FeedFormulas(),
		UserRepo:        mocks.NewMockUserRepositoryInterface(t),
		RoleRepo:        mocks.NewMockRoleRepositoryInterface(t),
		PermissionRepo:  mocks.NewMockPermissionRepositoryInterface(t),
		TokenRepo:       mocks.NewMockTokenRepositoryInterface(t),
	}
}

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name     string
		db       func(t *testing.T) *DatabaseComponents
		cfg      config.Config
		validate func(*testing.T, *ServiceComponents)
	}{
		{
			name: "no database leaves every service nil",
			db:   func(*testing.T) *DatabaseComponents { return nil },
			validate: func(t *testing.T, s *ServiceComponents) {
				assert.Nil(t, s.Auth)
				assert.Nil(t, s.Batches)
				assert.Nil(t, s.Allocations)
				assert.Nil(t, s.FeedFormulas)
				assert.Nil(t, s.OptimizerCache)
				assert.Nil(t, s.GrantCache)
			},
		},
		{
			name: "database wires every service",
			db:   memoryComponents,
			cfg: config.Config{
				Auth: config.AuthConfig{
					JWTSecretKey:     "test-secret",
					JWTRefreshSecret: "test-refresh-secret",
					AccessTokenTTL:   15 * time.Minute,
					RefreshTokenTTL:  24 * time.Hour,
				},
				Optimizer: config.OptimizerConfig{
					BaseURL:   "http://optimizer.test",
					Timeout:   time.Second,
					CacheSize: 64,
					CacheTTL:  time.Minute,
				},
			},
			validate: func(t *testing.T, s *ServiceComponents) {
				assert.NotNil(t, s.Auth)
				assert.NotNil(t, s.Roles)
				assert.NotNil(t, s.Permissions)
				assert.NotNil(t, s.Farms)
				assert.NotNil(t, s.Batches)
				assert.NotNil(t, s.Houses)
				assert.NotNil(t, s.Allocations)
				assert.NotNil(t, s.Stock)
				assert.NotNil(t, s.Production)
				assert.NotNil(t, s.FeedFormulas)
				assert.NotNil(t, s.OptimizerCache)
				assert.NotNil(t, s.GrantCache)
			},
		},
		{
			name: "zero cache size disables optimizer cache",
			db:   memoryComponents,
			cfg: config.Config{
				Optimizer: config.OptimizerConfig{CacheSize: 0},
			},
			validate: func(t *testing.T, s *ServiceComponents) {
				assert.NotNil(t, s.FeedFormulas)
				assert.Nil(t, s.OptimizerCache)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeServices(tt.db(t), tt.cfg)
			require.NotNil(t, components)
			defer components.Stop()
			tt.validate(t, components)
		})
	}
}

func TestServiceComponents_StopNil(t *testing.T) {
	var components *ServiceComponents
	assert.NotPanics(t, components.Stop)
}
