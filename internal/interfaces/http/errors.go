package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/apperr"
)

// ErrorResponse is the JSON error body: a human-readable message plus
// optional per-row details on rejected batches
type ErrorResponse struct {
	Message string            `json:"message"`
	Details []apperr.RowError `json:"details,omitempty"`
}

// writeError maps a service error onto the HTTP taxonomy. Anything
// unclassified is an internal fault and keeps its detail out of the body.
func (h *Handlers) writeError(c *gin.Context, err error) {
	ae, ok := apperr.As(err)
	if !ok {
		h.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch ae.Kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindInternal:
		h.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}

	c.JSON(status, ErrorResponse{Message: ae.Message, Details: ae.Rows})
}
