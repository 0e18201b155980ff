//go:build integration

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/repository"
	"github.com/guttosm/flock-service/internal/service"
	"github.com/guttosm/flock-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingService_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.StartMongo(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Stop(ctx))
	}()

	db, err := repository.NewMongoDB(mongoContainer.URI, "test_flock_service")
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()
	require.NoError(t, db.SetLogsTTL(ctx, 30*24*time.Hour))

	logs := service.NewLoggingService(repository.NewLogsRepository(db))

	single := &model.LogEntry{Level: model.LogLevelInfo, Message: "Farm created", FarmID: "farm-1", Action: "create_farm"}
	require.NoError(t, logs.CreateLog(ctx, single))
	assert.False(t, single.ID.IsZero())
	assert.False(t, single.Timestamp.IsZero())

	require.NoError(t, logs.CreateLogs(ctx, []*model.LogEntry{
		{Level: model.LogLevelInfo, Message: "Birds allocated", FarmID: "farm-1", Action: "allocate"},
		{Level: model.LogLevelInfo, Message: "HTTP request", FarmID: "farm-1", Path: "/api/v1/allocations"},
		{Level: model.LogLevelInfo, Message: "Birds allocated", FarmID: "farm-2", Action: "allocate"},
	}))

	trail, err := logs.AuditTrail(ctx, "farm-1", model.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, trail, 2)
	actions := []string{trail[0].Action, trail[1].Action}
	assert.ElementsMatch(t, []string{"create_farm", "allocate"}, actions)

	allocations, err := logs.AuditTrail(ctx, "farm-1", model.AuditFilter{Action: "allocate", Since: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Len(t, allocations, 1)
}
