package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/middleware"
	"github.com/guttosm/flock-service/internal/service"
)

// Services groups the domain services served over HTTP. Nil services leave
// their routes unregistered.
type Services struct {
	Farms        service.FarmService
	Batches      service.BatchService
	Houses       service.HouseService
	Allocations  service.AllocationService
	Stock        service.StockService
	Production   service.ProductionService
	FeedFormulas service.FeedFormulaService
	Audit        service.LoggingService
}

// Handler provides HTTP handlers for the farm-scoped routes.
type Handler struct {
	farms        service.FarmService
	batches      service.BatchService
	houses       service.HouseService
	allocations  service.AllocationService
	stock        service.StockService
	production   service.ProductionService
	feedFormulas service.FeedFormulaService
	logs         service.LoggingService
	audit        bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAudit toggles audit logging of mutating requests.
func WithAudit(enabled bool) HandlerOption {
	return func(h *Handler) {
		h.audit = enabled
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(services Services, opts ...HandlerOption) *Handler {
	h := &Handler{
		farms:        services.Farms,
		batches:      services.Batches,
		houses:       services.Houses,
		allocations:  services.Allocations,
		stock:        services.Stock,
		production:   services.Production,
		feedFormulas: services.FeedFormulas,
		logs:         services.Audit,
		audit:        true,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// auditLog records a mutating action through the request's log sink.
func (h *Handler) auditLog(c *gin.Context, action, message string, fields map[string]interface{}) {
	if !h.audit {
		return
	}
	middleware.Audit(c, action, message, fields)
}

// bind decodes and validates the JSON body into T, writing a 400 on failure.
func bind[T any](c *gin.Context, builder *ResponseBuilder) (*T, bool) {
	req, err := DecodeRequest[T](c)
	if err != nil {
		builder.BindError(err)
		return nil, false
	}
	return req, true
}
