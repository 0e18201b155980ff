//go:build !integration

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware_LabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/api/v1/batches/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := func(route, status string) float64 {
		return testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, route, status))
	}
	matched := counter("/api/v1/batches/:id", "200")
	unmatched := counter(unmatchedRoute, "404")

	for _, path := range []string{"/api/v1/batches/b-1", "/api/v1/batches/b-2", "/wp-login.php"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, matched+2, counter("/api/v1/batches/:id", "200"))
	assert.Equal(t, unmatched+1, counter(unmatchedRoute, "404"))
}

func TestRecordAllocation(t *testing.T) {
	moved := testutil.ToFloat64(BirdsMovedTotal.WithLabelValues("transfer"))
	failed := testutil.ToFloat64(AllocationOperationsTotal.WithLabelValues("transfer", "error"))

	RecordAllocation("transfer", 10*time.Millisecond, 40, nil)
	RecordAllocation("transfer", 5*time.Millisecond, 70, errors.New("insufficient birds"))

	assert.Equal(t, moved+40, testutil.ToFloat64(BirdsMovedTotal.WithLabelValues("transfer")), "failed moves are not counted")
	assert.Equal(t, failed+1, testutil.ToFloat64(AllocationOperationsTotal.WithLabelValues("transfer", "error")))
}

func TestCacheMetrics_PerCache(t *testing.T) {
	grants := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("grants", "get", "hit"))
	optimizer := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("optimizer", "get", "hit"))

	RecordCacheOperation("grants", "get", "hit")
	UpdateCacheMetrics("grants", 75, 100)
	UpdateCacheMetrics("optimizer", 3, 256)

	assert.Equal(t, grants+1, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("grants", "get", "hit")))
	assert.Equal(t, optimizer, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("optimizer", "get", "hit")))
	assert.Equal(t, 75.0, testutil.ToFloat64(CacheSize.WithLabelValues("grants")))
	assert.Equal(t, 256.0, testutil.ToFloat64(CacheCapacity.WithLabelValues("optimizer")))
}

func TestSchedulerAndStockMetrics(t *testing.T) {
	ok := testutil.ToFloat64(SchedulerRunsTotal.WithLabelValues("batch_age", "success"))
	failed := testutil.ToFloat64(SchedulerRunsTotal.WithLabelValues("low_stock", "error"))

	RecordSchedulerRun("batch_age", nil)
	RecordSchedulerRun("low_stock", errors.New("mongo down"))
	SetLowStockItems(3)
	SetCircuitBreakerState("mongodb-batches", 1)

	assert.Equal(t, ok+1, testutil.ToFloat64(SchedulerRunsTotal.WithLabelValues("batch_age", "success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(SchedulerRunsTotal.WithLabelValues("low_stock", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(LowStockItems))
	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("mongodb-batches")))
}

func TestRecordOptimizerRequest(t *testing.T) {
	before := testutil.ToFloat64(OptimizerRequestsTotal.WithLabelValues("rejected"))
	RecordOptimizerRequest(time.Millisecond, "rejected")
	assert.Equal(t, before+1, testutil.ToFloat64(OptimizerRequestsTotal.WithLabelValues("rejected")))
}
