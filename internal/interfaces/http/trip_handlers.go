package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/service"
	"github.com/hsinyu/travelplan/internal/spreadsheet"
)

// BatchTripItemRequest is the bulk replace request body
type BatchTripItemRequest struct {
	ActivityID string                  `json:"activityId"`
	Items      []service.TripItemInput `json:"items"`
}

// ReplaceTripItems handles POST /api/trip-items
func (h *Handlers) ReplaceTripItems(c *gin.Context) {
	var req BatchTripItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}
	if req.ActivityID == "" {
		h.writeError(c, apperr.Validation("activityId is required"))
		return
	}

	items, err := h.services.TripItems.Replace(c.Request.Context(), req.ActivityID, req.Items)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetTripItems handles GET /api/trip-items/activity/:activityId,
// returning the schedule grouped by date
func (h *Handlers) GetTripItems(c *gin.Context) {
	days, err := h.services.TripItems.GetByPlanGrouped(c.Request.Context(), c.Param("activityId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// ImportTripItemWorkbook handles POST /api/trip-items/import
func (h *Handlers) ImportTripItemWorkbook(c *gin.Context) {
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

	items, err := spreadsheet.ParseTripItemSheet(file)
	if err != nil {
		h.writeError(c, apperr.Validation("unreadable workbook: "+err.Error()))
		return
	}

	saved, err := h.services.TripItems.Replace(c.Request.Context(), activityID, items)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
