package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateFarm handles POST /api/v1/farms requests.
//
// @Summary      Create farm
// @Description  Creates a farm owned by the caller and links the caller to it. The response carries a fresh token pair that includes the farm; earlier tokens keep working but carry no farm.
// @Tags         Farms
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateFarmRequest true "Farm"
// @Success      201 {object} dto.FarmCreatedResponse
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      409 {object} dto.ErrorResponse "Conflict - caller already belongs to a farm"
// @Security     BearerAuth
// @Router       /api/v1/farms [post]
func (h *Handler) CreateFarm(c *gin.Context) {
	builder := NewResponseBuilder(c)

	userID, ok := c.Value("user_id").(primitive.ObjectID)
	if !ok {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyUnauthorized, errors.New("missing user id"))
		return
	}

	req, ok := bind[dto.CreateFarmRequest](c, builder)
	if !ok {
		return
	}

	created, err := h.farms.Create(c.Request.Context(), userID, req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	c.Set("farm_id", created.Farm.ID)
	h.auditLog(c, "create_farm", "Farm created", map[string]interface{}{"farm_id": created.Farm.ID})
	builder.SuccessCreated(created)
}

// GetFarm handles GET /api/v1/farms/current requests.
//
// @Summary      Get current farm
// @Tags         Farms
// @Produce      json
// @Success      200 {object} model.Farm
// @Failure      403 {object} dto.ErrorResponse "Forbidden - caller has no farm"
// @Security     BearerAuth
// @Router       /api/v1/farms/current [get]
func (h *Handler) GetFarm(c *gin.Context) {
	builder := NewResponseBuilder(c)

	farm, err := h.farms.Current(c.Request.Context(), middleware.GetFarmID(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(farm)
}

// UpdateFarm handles PATCH /api/v1/farms/current requests.
//
// @Summary      Update current farm
// @Tags         Farms
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateFarmRequest true "Changes"
// @Success      200 {object} model.Farm
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - caller has no farm"
// @Security     BearerAuth
// @Router       /api/v1/farms/current [patch]
func (h *Handler) UpdateFarm(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.UpdateFarmRequest](c, builder)
	if !ok {
		return
	}

	farm, err := h.farms.Update(c.Request.Context(), middleware.GetFarmID(c), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "update_farm", "Farm updated", nil)
	builder.SuccessOK(farm)
}
