package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/middleware"
)

// CreateProduction handles POST /api/v1/production requests.
//
// @Summary      Record production
// @Description  Records eggs collected and birds lost for a batch on a day. Dead birds are added to the batch's losses.
// @Tags         Production
// @Accept       json
// @Produce      json
// @Param        request body dto.ProductionRequest true "Production record"
// @Success      201 {object} dto.ProductionResponse
// @Failure      400 {object} dto.ErrorResponse "Bad request - more eggs than birds or losses exceed the batch"
// @Failure      404 {object} dto.ErrorResponse "Batch not found"
// @Security     BearerAuth
// @Router       /api/v1/production [post]
func (h *Handler) CreateProduction(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.ProductionRequest](c, builder)
	if !ok {
		return
	}

	record, err := h.production.Create(c.Request.Context(), middleware.GetFarmID(c), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "create_production", "Production recorded", map[string]interface{}{
		"batch_id": req.BatchID,
		"eggs":     record.NumberOfEggsCollected,
		"dead":     record.NumberOfDeadBirds,
	})
	builder.SuccessCreated(record)
}

// ListProduction handles GET /api/v1/production requests.
//
// @Summary      List production records
// @Tags         Production
// @Produce      json
// @Param        batchId query string false "Only records of this batch"
// @Success      200 {array} dto.ProductionResponse
// @Security     BearerAuth
// @Router       /api/v1/production [get]
func (h *Handler) ListProduction(c *gin.Context) {
	builder := NewResponseBuilder(c)

	records, err := h.production.List(c.Request.Context(), middleware.GetFarmID(c), c.Query("batchId"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(records)
}

// GetProduction handles GET /api/v1/production/:id requests.
//
// @Summary      Get production record
// @Tags         Production
// @Produce      json
// @Param        id path string true "Production ID"
// @Success      200 {object} dto.ProductionResponse
// @Failure      404 {object} dto.ErrorResponse "Production record not found"
// @Security     BearerAuth
// @Router       /api/v1/production/{id} [get]
func (h *Handler) GetProduction(c *gin.Context) {
	builder := NewResponseBuilder(c)

	record, err := h.production.Get(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(record)
}

// UpdateProduction handles PUT /api/v1/production/:id requests.
//
// @Summary      Replace production record
// @Description  Replaces a production record. The batch cannot change; the batch's losses follow the new dead count.
// @Tags         Production
// @Accept       json
// @Produce      json
// @Param        id path string true "Production ID"
// @Param        request body dto.ProductionRequest true "Production record"
// @Success      200 {object} dto.ProductionResponse
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      404 {object} dto.ErrorResponse "Production record not found"
// @Security     BearerAuth
// @Router       /api/v1/production/{id} [put]
func (h *Handler) UpdateProduction(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.ProductionRequest](c, builder)
	if !ok {
		return
	}

	record, err := h.production.Update(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "update_production", "Production updated", map[string]interface{}{"production_id": record.ID})
	builder.SuccessOK(record)
}

// DeleteProduction handles DELETE /api/v1/production/:id requests.
//
// @Summary      Delete production record
// @Tags         Production
// @Param        id path string true "Production ID"
// @Success      204 "Deleted"
// @Failure      404 {object} dto.ErrorResponse "Production record not found"
// @Security     BearerAuth
// @Router       /api/v1/production/{id} [delete]
func (h *Handler) DeleteProduction(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id := c.Param("id")
	if err := h.production.Delete(c.Request.Context(), middleware.GetFarmID(c), id); err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "delete_production", "Production deleted", map[string]interface{}{"production_id": id})
	builder.NoContent()
}
