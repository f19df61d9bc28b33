package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/service"
	"github.com/hsinyu/travelplan/internal/spreadsheet"
)

// BatchBudgetRequest is the bulk replace request body
type BatchBudgetRequest struct {
	ActivityID string                     `json:"activityId"`
	Items      []service.BudgetItemInput  `json:"items"`
	Summary    service.BudgetSummaryInput `json:"summary"`
}

// ReplaceBudget handles POST /api/budgets/batch
func (h *Handlers) ReplaceBudget(c *gin.Context) {
	var req BatchBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}
	if req.ActivityID == "" {
		h.writeError(c, apperr.Validation("activityId is required"))
		return
	}

	view, err := h.services.Budgets.Replace(c.Request.Context(), req.ActivityID, req.Items, req.Summary)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetBudget handles GET /api/budgets/activity/:activityId
func (h *Handlers) GetBudget(c *gin.Context) {
	view, err := h.services.Budgets.GetByPlan(c.Request.Context(), c.Param("activityId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ToggleBudgetStatus handles PATCH /api/budgets/:id/status
func (h *Handlers) ToggleBudgetStatus(c *gin.Context) {
	item, err := h.services.Budgets.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ImportBudgetWorkbook handles POST /api/budgets/import. The uploaded xlsx
// feeds the same replace contract as manual entry; the saved summary is
// kept as-is since sheets only carry line items.
func (h *Handlers) ImportBudgetWorkbook(c *gin.Context) {
	activityID := c.PostForm("activityId")
	if activityID == "" {
		h.writeError(c, apperr.Validation("activityId is required"))
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.writeError(c, apperr.Validation("file is required"))
		return
	}
	defer file.Close()

	items, err := spreadsheet.ParseBudgetSheet(file)
	if err != nil {
		h.writeError(c, apperr.Validation("unreadable workbook: "+err.Error()))
		return
	}

	existing, err := h.services.Budgets.GetByPlan(c.Request.Context(), activityID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	summary := service.BudgetSummaryInput{
		TWDTotal:     existing.Summary.TWDTotal,
		THBTotal:     existing.Summary.THBTotal,
		ExchangeRate: existing.Summary.ExchangeRate,
		Note:         existing.Summary.Note,
	}

	view, err := h.services.Budgets.Replace(c.Request.Context(), activityID, items, summary)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ExportBudgetWorkbook handles GET /api/budgets/activity/:activityId/export
func (h *Handlers) ExportBudgetWorkbook(c *gin.Context) {
	view, err := h.services.Budgets.GetByPlan(c.Request.Context(), c.Param("activityId"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	buf, err := spreadsheet.WriteBudgetWorkbook(view.Items, view.Summary)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="budget.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
