//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/guttosm/flock-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name     string
		db       func(t *testing.T) *DatabaseComponents
		cfg      config.Config
		validate func(*testing.T, *RouterComponents)
	}{
		{
			name: "creates router without database",
			db:   func(*testing.T) *DatabaseComponents { return nil },
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:      100,
					RateWindow:     time.Minute,
					RequestTimeout: 10 * time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components.Handler)
				assert.NotNil(t, components.HealthHandler)
				assert.False(t, components.Config.EnableAuth)
				assert.NotNil(t, components.Config.Idempotency)
				assert.Equal(t, 100, components.Config.RateLimit)
				assert.Equal(t, 10*time.Second, components.Config.RequestTimeout)
				assert.Nil(t, components.Config.LogSink)
				assert.Nil(t, components.LogSink)
				assert.Nil(t, components.Config.AuthService)
			},
		},
		{
			name: "creates router with auth enabled",
			db:   func(*testing.T) *DatabaseComponents { return nil },
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  50,
					RateWindow: 30 * time.Second,
				},
				Auth: config.AuthConfig{
					Enabled: true,
					APIKeys: map[string]bool{"test-key": true},
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.True(t, components.Config.EnableAuth)
				assert.Equal(t, map[string]bool{"test-key": true}, components.Config.APIKeys)
			},
		},
		{
			name: "creates router with database components",
			db:   memoryComponents,
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:   10,
					RateWindow:  time.Second,
					CORSOrigins: []string{"https://farm.example"},
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components.Config.LogSink)
				assert.Same(t, components.LogSink, components.Config.LogSink)
				assert.NotNil(t, components.Config.AuthService)
				assert.NotNil(t, components.Config.RoleService)
				assert.NotNil(t, components.Config.PermissionService)
				assert.Equal(t, []string{"https://farm.example"}, components.Config.CORSOrigins)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := tt.db(t)
			services := InitializeServices(db, tt.cfg)
			defer services.Stop()

			components := InitializeRouter(services, db, tt.cfg)
			require.NotNil(t, components)
			defer components.LogSink.Close()
			defer components.Idempotency.Stop()
			tt.validate(t, components)
		})
	}
}
