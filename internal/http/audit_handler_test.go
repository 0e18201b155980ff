//go:build !integration

package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/circuitbreaker"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuditRouter(t *testing.T) (*gin.Engine, *mocks.MockLoggingService) {
	logs := mocks.NewMockLoggingService(t)
	handler := NewHandler(Services{Audit: logs}, WithAudit(false))
	return NewRouter(handler, NewHealthHandler(), testRouterConfig(t)), logs
}

func TestListAudit(t *testing.T) {
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	t.Run("passes the parsed filter and caller farm", func(t *testing.T) {
		router, logs := setupAuditRouter(t)
		want := model.AuditFilter{Action: "transfer", Since: since, Until: until, Limit: 10}
		logs.On("AuditTrail", mock.Anything, testFarmID, want).
			Return([]*model.LogEntry{{Action: "transfer", FarmID: testFarmID, Message: "Birds transferred"}}, nil).Once()

		w := doRequest(router, http.MethodGet,
			"/api/v1/audit?action=transfer&since=2026-03-01T00:00:00Z&until=2026-03-08T00:00:00Z&limit=10", farmToken, nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		events := decodeData[[]model.LogEntry](t, w)
		require.Len(t, events, 1)
		assert.Equal(t, "transfer", events[0].Action)
	})

	t.Run("offsets are normalized to UTC", func(t *testing.T) {
		router, logs := setupAuditRouter(t)
		logs.On("AuditTrail", mock.Anything, testFarmID, model.AuditFilter{Since: since}).
			Return([]*model.LogEntry{}, nil).Once()

		w := doRequest(router, http.MethodGet, "/api/v1/audit?since=2026-03-01T03:00:00%2B03:00", farmToken, nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, decodeData[[]model.LogEntry](t, w))
	})

	t.Run("rejects malformed query values", func(t *testing.T) {
		router, _ := setupAuditRouter(t)
		for _, query := range []string{"since=yesterday", "until=2026-03-08", "limit=abc", "limit=0"} {
			w := doRequest(router, http.MethodGet, "/api/v1/audit?"+query, farmToken, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, query)
		}
	})

	t.Run("service failure maps to status", func(t *testing.T) {
		router, logs := setupAuditRouter(t)
		logs.On("AuditTrail", mock.Anything, testFarmID, model.AuditFilter{}).
			Return(nil, circuitbreaker.ErrCircuitOpen).Once()

		w := doRequest(router, http.MethodGet, "/api/v1/audit", farmToken, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("requires a farm", func(t *testing.T) {
		router, _ := setupAuditRouter(t)
		w := doRequest(router, http.MethodGet, "/api/v1/audit", noFarmToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
