package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/middleware"
)

// ListAudit handles GET /api/v1/audit requests.
//
// @Summary      List audit events
// @Description  Returns the farm's audit events, newest first. since is inclusive and until exclusive.
// @Tags         Audit
// @Produce      json
// @Param        action query string false "Only events with this action, e.g. transfer"
// @Param        since  query string false "RFC3339 lower bound"
// @Param        until  query string false "RFC3339 upper bound"
// @Param        limit  query int    false "Page size, at most 200"
// @Success      200 {array} model.LogEntry
// @Failure      400 {object} dto.ErrorResponse "Bad request - malformed time or limit"
// @Security     BearerAuth
// @Router       /api/v1/audit [get]
func (h *Handler) ListAudit(c *gin.Context) {
	builder := NewResponseBuilder(c)

	filter, err := parseAuditFilter(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	events, err := h.logs.AuditTrail(c.Request.Context(), middleware.GetFarmID(c), filter)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(events)
}

func parseAuditFilter(c *gin.Context) (model.AuditFilter, error) {
	filter := model.AuditFilter{Action: c.Query("action")}

	var err error
	if filter.Since, err = queryTime(c, "since"); err != nil {
		return filter, err
	}
	if filter.Until, err = queryTime(c, "until"); err != nil {
		return filter, err
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, fmt.Errorf("limit must be a positive integer, got %q", raw)
		}
		filter.Limit = limit
	}
	return filter, nil
}

func queryTime(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", name, err)
	}
	return t.UTC(), nil
}
