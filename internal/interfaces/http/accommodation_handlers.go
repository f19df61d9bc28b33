package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/service"
	"github.com/hsinyu/travelplan/internal/spreadsheet"
)

// BatchAccommodationRequest is the bulk replace request body
type BatchAccommodationRequest struct {
	ActivityID string                       `json:"activityId"`
	Items      []service.AccommodationInput `json:"items"`
}

// ReplaceAccommodations handles POST /api/accommodations/batch
func (h *Handlers) ReplaceAccommodations(c *gin.Context) {
	var req BatchAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}
	if req.ActivityID == "" {
		h.writeError(c, apperr.Validation("activityId is required"))
		return
	}

	accs, err := h.services.Accommodations.Replace(c.Request.Context(), req.ActivityID, req.Items)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, accs)
}

// GetAccommodations handles GET /api/accommodations/activity/:activityId
func (h *Handlers) GetAccommodations(c *gin.Context) {
	accs, err := h.services.Accommodations.GetByPlan(c.Request.Context(), c.Param("activityId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, accs)
}

// ToggleAccommodationStatus handles PATCH /api/accommodations/:id/status
func (h *Handlers) ToggleAccommodationStatus(c *gin.Context) {
	acc, err := h.services.Accommodations.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// ImportAccommodationWorkbook handles POST /api/accommodations/import
func (h *Handlers) ImportAccommodationWorkbook(c *gin.Context) {
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

	items, err := spreadsheet.ParseAccommodationSheet(file)
	if err != nil {
		h.writeError(c, apperr.Validation("unreadable workbook: "+err.Error()))
		return
	}

	accs, err := h.services.Accommodations.Replace(c.Request.Context(), activityID, items)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, accs)
}
