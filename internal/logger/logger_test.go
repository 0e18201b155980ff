//go:build !integration

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}

func TestInit(t *testing.T) {
	original := log.Logger
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})

	Init("warn", true)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Init("debug", false)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestComponentLoggers(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	var buf bytes.Buffer
	log.Logger = New(&buf)

	t.Run("component", func(t *testing.T) {
		buf.Reset()
		l := Component("scheduler")
		l.Info().Msg("tick")

		entry := decodeLine(t, &buf)
		assert.Equal(t, ServiceName, entry["service"])
		assert.Equal(t, "scheduler", entry["component"])
		assert.Equal(t, "tick", entry["message"])
		assert.NotEmpty(t, entry["time"])
	})

	t.Run("farm", func(t *testing.T) {
		buf.Reset()
		l := ForFarm("allocation", "farm-1")
		l.Warn().Int("quantity", 40).Msg("Birds allocated")

		entry := decodeLine(t, &buf)
		assert.Equal(t, "allocation", entry["component"])
		assert.Equal(t, "farm-1", entry["farm_id"])
		assert.Equal(t, float64(40), entry["quantity"])
		assert.Equal(t, "warn", entry["level"])
	})
}
