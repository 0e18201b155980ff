//go:build !integration

package app

import (
	"context"
	"testing"

	"github.com/guttosm/flock-service/config"
	"github.com/stretchr/testify/assert"
)

func TestInitializeDatabase_Disabled(t *testing.T) {
	components := InitializeDatabase(config.DatabaseConfig{Enabled: false})
	assert.Nil(t, components)
}

func TestInitializeDatabase_InvalidURI(t *testing.T) {
	components := InitializeDatabase(config.DatabaseConfig{
		Enabled:      true,
		URI:          "not-a-mongodb-uri",
		DatabaseName: "flock",
	})
	assert.Nil(t, components)
}

func TestDatabaseComponents_CloseNil(t *testing.T) {
	var components *DatabaseComponents
	assert.NoError(t, components.Close(context.Background()))
	assert.NoError(t, (&DatabaseComponents{}).Close(context.Background()))
}
