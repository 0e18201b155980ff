//go:build !integration

package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/guttosm/flock-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestNewServer(t *testing.T) {
	tests := []struct {
		name             string
		cfg              config.ServerConfig
		expectedWrite    time.Duration
		expectedShutdown time.Duration
	}{
		{
			name:             "short request timeout keeps the minimum write timeout",
			cfg:              config.ServerConfig{Port: "8080", RequestTimeout: 5 * time.Second, ShutdownTimeout: 3 * time.Second},
			expectedWrite:    15 * time.Second,
			expectedShutdown: 3 * time.Second,
		},
		{
			name:             "write timeout outlasts a long request timeout",
			cfg:              config.ServerConfig{Port: "8080", RequestTimeout: 30 * time.Second},
			expectedWrite:    35 * time.Second,
			expectedShutdown: 10 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(okHandler, tt.cfg)

			require.NotNil(t, server.httpServer)
			assert.Equal(t, ":8080", server.httpServer.Addr)
			assert.Equal(t, tt.expectedWrite, server.httpServer.WriteTimeout)
			assert.Equal(t, 5*time.Second, server.httpServer.ReadHeaderTimeout)
			assert.Equal(t, tt.expectedShutdown, server.shutdownTimeout)
		})
	}
}

func TestServer_Run_StopsOnContextCancel(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "0"})

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServer_Run_ListenError(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "invalid-port"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, server.Run(ctx))
}
