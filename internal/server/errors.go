package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yates-Labs/roam/internal/logging"
	"github.com/Yates-Labs/roam/internal/orchestrator"
	"github.com/Yates-Labs/roam/internal/render"
	"github.com/Yates-Labs/roam/internal/trip"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: logging.RequestID(c),
	})
}

// respondDomainError maps workflow errors to HTTP responses.
func respondDomainError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *trip.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, "validation_error", verr.Error(), gin.H{"field": verr.Field})
	case errors.Is(err, trip.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, orchestrator.ErrGenerationFailed):
		respondError(c, http.StatusBadGateway, "generation_failed", err.Error(), nil)
	case errors.Is(err, render.ErrCacheEmpty):
		respondError(c, http.StatusConflict, "no_itinerary", err.Error(), nil)
	case errors.Is(err, render.ErrRenderingFailed):
		respondError(c, http.StatusInternalServerError, "rendering_failed", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}
