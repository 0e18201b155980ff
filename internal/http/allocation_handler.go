package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/middleware"
	"github.com/guttosm/flock-service/internal/service"
)

// Allocate handles POST /api/v1/allocations requests.
//
// @Summary      Allocate birds to a house
// @Description  Moves unallocated birds of a batch into a house. Repeated allocations of the same batch and house add to one record. Supports idempotency via Idempotency-Key header.
// @Tags         Allocations
// @Accept       json
// @Produce      json
// @Param        request body dto.AllocateRequest true "Allocation"
// @Param        Idempotency-Key header string false "Idempotency key"
// @Success      201 {object} model.Allocation "Allocation created or incremented"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid quantity, not enough birds or capacity exceeded"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - caller has no farm"
// @Failure      404 {object} dto.ErrorResponse "Batch or house not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - concurrent update, retry"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/v1/allocations [post]
func (h *Handler) Allocate(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.AllocateRequest](c, builder)
	if !ok {
		return
	}

	allocation, err := h.allocations.Allocate(c.Request.Context(), middleware.GetFarmID(c), service.AllocateInput{
		BatchID:  req.BatchID,
		HouseID:  req.HouseID,
		Quantity: req.Quantity,
	})
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "allocate", "Birds allocated", map[string]interface{}{
		"batch_id": req.BatchID,
		"house_id": req.HouseID,
		"quantity": req.Quantity,
	})
	builder.SuccessCreated(allocation)
}

// Transfer handles POST /api/v1/allocations/transfer requests.
//
// @Summary      Transfer birds between houses
// @Description  Moves birds of one batch from a source house to a destination house. The batch's unallocated quantity is unchanged.
// @Tags         Allocations
// @Accept       json
// @Produce      json
// @Param        request body dto.TransferRequest true "Transfer"
// @Success      200 {object} dto.TransferResponse "Source and destination allocations"
// @Failure      400 {object} dto.ErrorResponse "Bad request - same house, not enough birds or capacity exceeded"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - caller has no farm"
// @Failure      404 {object} dto.ErrorResponse "Batch, house or source allocation not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - concurrent update, retry"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/v1/allocations/transfer [post]
func (h *Handler) Transfer(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.TransferRequest](c, builder)
	if !ok {
		return
	}

	from, to, err := h.allocations.Transfer(c.Request.Context(), middleware.GetFarmID(c), service.TransferInput{
		BatchID:     req.BatchID,
		FromHouseID: req.FromHouseID,
		ToHouseID:   req.ToHouseID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "transfer", "Birds transferred", map[string]interface{}{
		"batch_id":      req.BatchID,
		"from_house_id": req.FromHouseID,
		"to_house_id":   req.ToHouseID,
		"quantity":      req.Quantity,
	})
	builder.SuccessOK(dto.TransferResponse{From: from, To: to})
}

// UpdateAllocation handles PATCH /api/v1/allocations/:id requests.
//
// @Summary      Set allocation quantity
// @Description  Sets an allocation to an absolute quantity. The difference is returned to or taken from the batch's unallocated birds.
// @Tags         Allocations
// @Accept       json
// @Produce      json
// @Param        id path string true "Allocation ID"
// @Param        request body dto.UpdateAllocationRequest true "New quantity"
// @Success      200 {object} model.Allocation "Updated allocation"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      404 {object} dto.ErrorResponse "Allocation not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - concurrent update, retry"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/v1/allocations/{id} [patch]
func (h *Handler) UpdateAllocation(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.UpdateAllocationRequest](c, builder)
	if !ok {
		return
	}

	allocation, err := h.allocations.Update(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"), *req.Quantity)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "update_allocation", "Allocation updated", map[string]interface{}{
		"allocation_id": allocation.ID,
		"quantity":      allocation.Quantity,
	})
	builder.SuccessOK(allocation)
}

// GetAllocation handles GET /api/v1/allocations/:id requests.
//
// @Summary      Get allocation
// @Tags         Allocations
// @Produce      json
// @Param        id path string true "Allocation ID"
// @Success      200 {object} model.Allocation
// @Failure      404 {object} dto.ErrorResponse "Allocation not found"
// @Security     BearerAuth
// @Router       /api/v1/allocations/{id} [get]
func (h *Handler) GetAllocation(c *gin.Context) {
	builder := NewResponseBuilder(c)

	allocation, err := h.allocations.Get(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(allocation)
}

// ListBatchAllocations handles GET /api/v1/batches/:id/allocations requests.
//
// @Summary      List allocations of a batch
// @Tags         Allocations
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {array} model.Allocation
// @Failure      404 {object} dto.ErrorResponse "Batch not found"
// @Security     BearerAuth
// @Router       /api/v1/batches/{id}/allocations [get]
func (h *Handler) ListBatchAllocations(c *gin.Context) {
	builder := NewResponseBuilder(c)

	allocations, err := h.allocations.ListByBatch(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(allocations)
}

// ListHouseAllocations handles GET /api/v1/houses/:id/allocations requests.
//
// @Summary      List allocations in a house
// @Tags         Allocations
// @Produce      json
// @Param        id path string true "House ID"
// @Success      200 {array} model.Allocation
// @Failure      404 {object} dto.ErrorResponse "House not found"
// @Security     BearerAuth
// @Router       /api/v1/houses/{id}/allocations [get]
func (h *Handler) ListHouseAllocations(c *gin.Context) {
	builder := NewResponseBuilder(c)

	allocations, err := h.allocations.ListByHouse(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(allocations)
}
