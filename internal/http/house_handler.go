package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/middleware"
)

// CreateHouse handles POST /api/v1/houses requests.
//
// @Summary      Create house
// @Description  Creates a house. A missing capacity means the house is unbounded.
// @Tags         Houses
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateHouseRequest true "House"
// @Success      201 {object} model.House
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Security     BearerAuth
// @Router       /api/v1/houses [post]
func (h *Handler) CreateHouse(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.CreateHouseRequest](c, builder)
	if !ok {
		return
	}

	house, err := h.houses.Create(c.Request.Context(), middleware.GetFarmID(c), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "create_house", "House created", map[string]interface{}{"house_id": house.ID})
	builder.SuccessCreated(house)
}

// ListHouses handles GET /api/v1/houses requests.
//
// @Summary      List houses
// @Description  Lists houses with their current occupancy.
// @Tags         Houses
// @Produce      json
// @Success      200 {array} model.House
// @Security     BearerAuth
// @Router       /api/v1/houses [get]
func (h *Handler) ListHouses(c *gin.Context) {
	builder := NewResponseBuilder(c)

	houses, err := h.houses.List(c.Request.Context(), middleware.GetFarmID(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(houses)
}

// GetHouse handles GET /api/v1/houses/:id requests.
//
// @Summary      Get house
// @Tags         Houses
// @Produce      json
// @Param        id path string true "House ID"
// @Success      200 {object} model.House
// @Failure      404 {object} dto.ErrorResponse "House not found"
// @Security     BearerAuth
// @Router       /api/v1/houses/{id} [get]
func (h *Handler) GetHouse(c *gin.Context) {
	builder := NewResponseBuilder(c)

	house, err := h.houses.Get(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(house)
}

// UpdateHouse handles PATCH /api/v1/houses/:id requests.
//
// @Summary      Update house
// @Description  Patches a house. Capacity may not drop below current occupancy.
// @Tags         Houses
// @Accept       json
// @Produce      json
// @Param        id path string true "House ID"
// @Param        request body dto.UpdateHouseRequest true "Changes"
// @Success      200 {object} model.House
// @Failure      400 {object} dto.ErrorResponse "Bad request - capacity below occupancy"
// @Failure      404 {object} dto.ErrorResponse "House not found"
// @Security     BearerAuth
// @Router       /api/v1/houses/{id} [patch]
func (h *Handler) UpdateHouse(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.UpdateHouseRequest](c, builder)
	if !ok {
		return
	}

	house, err := h.houses.Update(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "update_house", "House updated", map[string]interface{}{"house_id": house.ID})
	builder.SuccessOK(house)
}

// DeleteHouse handles DELETE /api/v1/houses/:id requests.
//
// @Summary      Delete house
// @Description  Deletes an empty house.
// @Tags         Houses
// @Param        id path string true "House ID"
// @Success      204 "Deleted"
// @Failure      404 {object} dto.ErrorResponse "House not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - house is occupied"
// @Security     BearerAuth
// @Router       /api/v1/houses/{id} [delete]
func (h *Handler) DeleteHouse(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id := c.Param("id")
	if err := h.houses.Delete(c.Request.Context(), middleware.GetFarmID(c), id); err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "delete_house", "House deleted", map[string]interface{}{"house_id": id})
	builder.NoContent()
}
