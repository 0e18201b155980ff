package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/middleware"
)

// CreateFeedFormula handles POST /api/v1/feed-formulas requests.
//
// @Summary      Create feed formula
// @Description  Stores a feed formula. Total cost is computed from the ingredients.
// @Tags         Feed formulas
// @Accept       json
// @Produce      json
// @Param        request body dto.FeedFormulaRequest true "Formula"
// @Success      201 {object} model.FeedFormula
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Security     BearerAuth
// @Router       /api/v1/feed-formulas [post]
func (h *Handler) CreateFeedFormula(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.FeedFormulaRequest](c, builder)
	if !ok {
		return
	}

	formula, err := h.feedFormulas.Create(c.Request.Context(), middleware.GetFarmID(c), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "create_formula", "Feed formula created", map[string]interface{}{"formula_id": formula.ID})
	builder.SuccessCreated(formula)
}

// ListFeedFormulas handles GET /api/v1/feed-formulas requests.
//
// @Summary      List active feed formulas
// @Tags         Feed formulas
// @Produce      json
// @Success      200 {array} model.FeedFormula
// @Security     BearerAuth
// @Router       /api/v1/feed-formulas [get]
func (h *Handler) ListFeedFormulas(c *gin.Context) {
	builder := NewResponseBuilder(c)

	formulas, err := h.feedFormulas.List(c.Request.Context(), middleware.GetFarmID(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(formulas)
}

// GetFeedFormula handles GET /api/v1/feed-formulas/:id requests.
//
// @Summary      Get feed formula
// @Tags         Feed formulas
// @Produce      json
// @Param        id path string true "Formula ID"
// @Success      200 {object} model.FeedFormula
// @Failure      404 {object} dto.ErrorResponse "Formula not found"
// @Security     BearerAuth
// @Router       /api/v1/feed-formulas/{id} [get]
func (h *Handler) GetFeedFormula(c *gin.Context) {
	builder := NewResponseBuilder(c)

	formula, err := h.feedFormulas.Get(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(formula)
}

// UpdateFeedFormula handles PUT /api/v1/feed-formulas/:id requests.
//
// @Summary      Replace feed formula
// @Tags         Feed formulas
// @Accept       json
// @Produce      json
// @Param        id path string true "Formula ID"
// @Param        request body dto.FeedFormulaRequest true "Formula"
// @Success      200 {object} model.FeedFormula
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      404 {object} dto.ErrorResponse "Formula not found"
// @Security     BearerAuth
// @Router       /api/v1/feed-formulas/{id} [put]
func (h *Handler) UpdateFeedFormula(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.FeedFormulaRequest](c, builder)
	if !ok {
		return
	}

	formula, err := h.feedFormulas.Update(c.Request.Context(), middleware.GetFarmID(c), c.Param("id"), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "update_formula", "Feed formula updated", map[string]interface{}{"formula_id": formula.ID})
	builder.SuccessOK(formula)
}

// DeleteFeedFormula handles DELETE /api/v1/feed-formulas/:id requests.
//
// @Summary      Deactivate feed formula
// @Tags         Feed formulas
// @Param        id path string true "Formula ID"
// @Success      204 "Deactivated"
// @Failure      404 {object} dto.ErrorResponse "Formula not found"
// @Security     BearerAuth
// @Router       /api/v1/feed-formulas/{id} [delete]
func (h *Handler) DeleteFeedFormula(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id := c.Param("id")
	if err := h.feedFormulas.Delete(c.Request.Context(), middleware.GetFarmID(c), id); err != nil {
		builder.ServiceError(err)
		return
	}

	h.auditLog(c, "delete_formula", "Feed formula deactivated", map[string]interface{}{"formula_id": id})
	builder.NoContent()
}

// OptimizeFeedFormula handles POST /api/v1/feed-formulas/optimize requests.
//
// @Summary      Optimize feed formula
// @Description  Asks the external optimizer for a least-cost formula meeting the nutrition target. The optimizer's result is returned unchanged.
// @Tags         Feed formulas
// @Accept       json
// @Produce      json
// @Param        request body dto.OptimizeFormulaRequest true "Optimization request"
// @Success      200 {object} object "Optimizer result"
// @Failure      400 {object} dto.ErrorResponse "Bad request or rejected by the optimizer"
// @Failure      503 {object} dto.ErrorResponse "Optimizer unavailable"
// @Security     BearerAuth
// @Router       /api/v1/feed-formulas/optimize [post]
func (h *Handler) OptimizeFeedFormula(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, ok := bind[dto.OptimizeFormulaRequest](c, builder)
	if !ok {
		return
	}

	result, err := h.feedFormulas.Optimize(c.Request.Context(), middleware.GetFarmID(c), req)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(result)
}
