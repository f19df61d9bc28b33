package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/service"
)

// GetTravelInfo handles GET /api/travel-info/activity/:activityId
func (h *Handlers) GetTravelInfo(c *gin.Context) {
	info, err := h.services.TravelInfo.GetByPlan(c.Request.Context(), c.Param("activityId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpsertTravelInfo handles PUT /api/travel-info/activity/:activityId
func (h *Handlers) UpsertTravelInfo(c *gin.Context) {
	var input service.TravelInfoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.writeError(c, apperr.Validation("invalid request body"))
		return
	}

	info, err := h.services.TravelInfo.Upsert(c.Request.Context(), c.Param("activityId"), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
