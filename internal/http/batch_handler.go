package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/middleware"
)

// CreateBatch handles POST /api/v1/batches requests.
//
// @Summary      Register a batch
// @Description  Registers a batch of birds. All birds start unallocated.
// @Tags         Batches
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBatchRequest true "Batch"
// @Success      201 {object} model.Batch
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - caller has no farm"
// @Security     BearerAuth
// @Router       /api/v1/batches [post]
func (h *Handler) CreateBatch(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.CreateBatchRequest](c, builder)
	if !ok {
		return
	}

	batch, err := h.batches.Create(c.Request.Context(), middleware.GetFarmID(c), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "create_batch", "Batch created", map[string]interface{}{
		"batch_id":       batch.ID,
		"original_count": batch.OriginalCount,
	})
	builder.SuccessCreated(batch)
}

// ListBatches handles GET /api/v1/batches requests.
//
// @Summary      List batches
// @Tags         Batches
// @Produce      json
// @Param        includeArchived query bool false "Include archived batches"
// @Success      200 {array} model.Batch
// @Security     BearerAuth
// @Router       /api/v1/batches [get]
func (h *Handler) ListBatches(c *gin.Context) {
	builder := NewResponseBuilder(c)

	includeArchived, _ := strconv.ParseBool(c.Query("includeArchived"))
	batches, err := h.batches.List(c.Request.Context(), middleware.GetFarmID(c), includeArchived)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(batches)
}

// GetBatch handles GET /api/v1/batches/:id requests.
//
// @Summary      Get batch
// @Tags         Batches
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {object} model.Batch
// @Failure      404 {object} dto.ErrorResponse "Batch not found"
// @Security     BearerAuth
// @Router       /api/v1/batches/{id} [get]
func (h *Handler) GetBatch(c *gin.Context) {
	builder := NewResponseBuilder(c)

	batch, err := h.batches.Get(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(batch)
}

// UpdateBatch handles PATCH /api/v1/batches/:id requests.
//
// @Summary      Update batch
// @Description  Patches batch details and loss counters. Losses may not exceed the original count.
// @Tags         Batches
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID"
// @Param        request body dto.UpdateBatchRequest true "Changes"
// @Success      200 {object} model.Batch
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      404 {object} dto.ErrorResponse "Batch not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - concurrent update, retry"
// @Security     BearerAuth
// @Router       /api/v1/batches/{id} [patch]
func (h *Handler) UpdateBatch(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.UpdateBatchRequest](c, builder)
	if !ok {
		return
	}

	batch, err := h.batches.Update(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "update_batch", "Batch updated", map[string]interface{}{"batch_id": batch.ID})
	builder.SuccessOK(batch)
}

// DeleteBatch handles DELETE /api/v1/batches/:id requests.
//
// @Summary      Delete batch
// @Description  Deletes a batch that has no birds housed.
// @Tags         Batches
// @Param        id path string true "Batch ID"
// @Success      204 "Deleted"
// @Failure      404 {object} dto.ErrorResponse "Batch not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - batch still has birds housed"
// @Security     BearerAuth
// @Router       /api/v1/batches/{id} [delete]
func (h *Handler) DeleteBatch(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id := c.Param("id")
	if err := h.batches.Delete(c.Request.Context(), middleware.GetFarmID(c), id); err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "delete_batch", "Batch deleted", map[string]interface{}{"batch_id": id})
	builder.NoContent()
}
