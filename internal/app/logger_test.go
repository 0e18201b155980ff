//go:build !integration

package app

import (
	"testing"

	"github.com/guttosm/flock-service/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	original := log.Logger
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})

	tests := []struct {
		name     string
		cfg      config.LogConfig
		expected zerolog.Level
	}{
		{name: "default level", cfg: config.LogConfig{}, expected: zerolog.InfoLevel},
		{name: "debug level", cfg: config.LogConfig{Level: "debug"}, expected: zerolog.DebugLevel},
		{name: "pretty output", cfg: config.LogConfig{Level: "warn", Pretty: true}, expected: zerolog.WarnLevel},
		{name: "unknown level falls back to info", cfg: config.LogConfig{Level: "chatty"}, expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { InitializeLogger(tt.cfg) })
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}
