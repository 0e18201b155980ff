package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/middleware"
)

// CreateStock handles POST /api/v1/stocks requests.
//
// @Summary      Create stock item
// @Tags         Stock
// @Accept       json
// @Produce      json
// @Param        request body dto.StockRequest true "Stock item"
// @Success      201 {object} model.Stock
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Security     BearerAuth
// @Router       /api/v1/stocks [post]
func (h *Handler) CreateStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.StockRequest](c, builder)
	if !ok {
		return
	}

	item, err := h.stock.Create(c.Request.Context(), middleware.GetFarmID(c), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "create_stock", "Stock item created", map[string]interface{}{"stock_id": item.ID, "item": item.Item})
	builder.SuccessCreated(item)
}

// ListStock handles GET /api/v1/stocks requests.
//
// @Summary      List stock items
// @Tags         Stock
// @Produce      json
// @Success      200 {array} model.Stock
// @Security     BearerAuth
// @Router       /api/v1/stocks [get]
func (h *Handler) ListStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	items, err := h.stock.List(c.Request.Context(), middleware.GetFarmID(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(items)
}

// ListLowStock handles GET /api/v1/stocks/low requests.
//
// @Summary      List low stock items
// @Description  Lists items whose quantity is at or below their threshold.
// @Tags         Stock
// @Produce      json
// @Success      200 {array} model.Stock
// @Security     BearerAuth
// @Router       /api/v1/stocks/low [get]
func (h *Handler) ListLowStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	items, err := h.stock.ListLow(c.Request.Context(), middleware.GetFarmID(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(items)
}

// GetStock handles GET /api/v1/stocks/:id requests.
//
// @Summary      Get stock item
// @Tags         Stock
// @Produce      json
// @Param        id path string true "Stock ID"
// @Success      200 {object} model.Stock
// @Failure      404 {object} dto.ErrorResponse "Stock item not found"
// @Security     BearerAuth
// @Router       /api/v1/stocks/{id} [get]
func (h *Handler) GetStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	item, err := h.stock.Get(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(item)
}

// UpdateStock handles PUT /api/v1/stocks/:id requests.
//
// @Summary      Replace stock item
// @Tags         Stock
// @Accept       json
// @Produce      json
// @Param        id path string true "Stock ID"
// @Param        request body dto.StockRequest true "Stock item"
// @Success      200 {object} model.Stock
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      404 {object} dto.ErrorResponse "Stock item not found"
// @Security     BearerAuth
// @Router       /api/v1/stocks/{id} [put]
func (h *Handler) UpdateStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.StockRequest](c, builder)
	if !ok {
		return
	}

	item, err := h.stock.Update(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "update_stock", "Stock item updated", map[string]interface{}{"stock_id": item.ID, "quantity": item.Quantity})
	builder.SuccessOK(item)
}

// DeleteStock handles DELETE /api/v1/stocks/:id requests.
//
// @Summary      Delete stock item
// @Tags         Stock
// @Param        id path string true "Stock ID"
// @Success      204 "Deleted"
// @Failure      404 {object} dto.ErrorResponse "Stock item not found"
// @Security     BearerAuth
// @Router       /api/v1/stocks/{id} [delete]
func (h *Handler) DeleteStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id := c.Param("id")
	if err := h.stock.Delete(c.Request.Context(), middleware.GetFarmID(c), id); err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "delete_stock", "Stock item deleted", map[string]interface{}{"stock_id": id})
	builder.NoContent()
}
