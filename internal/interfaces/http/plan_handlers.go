package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/report"
	"github.com/hsinyu/travelplan/internal/service"
)

// ListPlans handles GET /api/plans
func (h *Handlers) ListPlans(c *gin.Context) {
	plans, err := h.services.Plans.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// CreatePlan handles POST /api/plans
func (h *Handlers) CreatePlan(c *gin.Context) {
	var input service.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}

	plan, err := h.services.Plans.Create(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetPlan handles GET /api/plans/:id
func (h *Handlers) GetPlan(c *gin.Context) {
	plan, err := h.services.Plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdatePlan handles PUT /api/plans/:id
func (h *Handlers) UpdatePlan(c *gin.Context) {
	var input service.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}

	plan, err := h.services.Plans.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeletePlan handles DELETE /api/plans/:id
func (h *Handlers) DeletePlan(c *gin.Context) {
	if err := h.services.Plans.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}

// ExportPlan handles GET /api/plans/:id/pdf, returning the aggregate export
// payload the client lays out into a printable document
func (h *Handlers) ExportPlan(c *gin.Context) {
	ctx := c.Request.Context()
	planID := c.Param("id")

	plan, err := h.services.Plans.Get(ctx, planID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	days, err := h.services.TripItems.GetByPlanGrouped(ctx, planID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	accommodations, err := h.services.Accommodations.GetByPlan(ctx, planID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	budget, err := h.services.Budgets.GetByPlan(ctx, planID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	info, err := h.services.TravelInfo.GetByPlan(ctx, planID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	doc := report.Build(plan, days, accommodations, budget.Items, budget.Summary, info)
	c.JSON(http.StatusOK, doc)
}
