package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/circuitbreaker"
)

const readinessTimeout = 2 * time.Second

// HealthChecker is a dependency checked by the readiness endpoint.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthChecks reports readiness per dependency.
type HealthChecks struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler serves the liveness and readiness endpoints. Register
// dependencies before the router starts serving.
type HealthHandler struct {
	checkers map[string]HealthChecker
	breakers map[string]*circuitbreaker.CircuitBreaker
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker reports the breaker as "<name>_circuit". An open or
// half-open breaker makes the service not ready.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb != nil {
		h.breakers[name] = cb
	}
}

// Register mounts /healthz and /readyz on the router root.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles GET /healthz.
//
// @Summary     Liveness check
// @Description Answers as long as the process is serving requests.
// @Tags        Health
// @Produce     json
// @Success     200 {object} HealthChecks
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthChecks{Status: "ok", Checks: map[string]string{"service": "ok"}})
}

// Readiness handles GET /readyz. Checkers run concurrently and share one
// deadline.
//
// @Summary     Readiness check
// @Description Probes MongoDB and reports every circuit breaker. Any failure answers 503.
// @Tags        Health
// @Produce     json
// @Success     200 {object} HealthChecks
// @Failure     503 {object} HealthChecks
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	result := HealthChecks{Status: "ok", Checks: make(map[string]string, len(h.checkers)+len(h.breakers))}
	var mu sync.Mutex
	report := func(name, state string, healthy bool) {
		mu.Lock()
		defer mu.Unlock()
		result.Checks[name] = state
		if !healthy {
			result.Status = "degraded"
		}
	}

	var wg sync.WaitGroup
	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			if err := checker.Check(ctx); err != nil {
				report(name, err.Error(), false)
				return
			}
			report(name, "ok", true)
		}(name, checker)
	}
	wg.Wait()

	for name, cb := range h.breakers {
		stats := cb.GetStats()
		report(name+"_circuit", stats.State, stats.IsHealthy)
	}

	if len(result.Checks) == 0 {
		result.Checks["service"] = "ok"
	}

	status := http.StatusOK
	if result.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, result)
}
