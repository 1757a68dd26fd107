package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripgen/internal/models/response_models"
)

// RespondItinerary writes the itinerary itself as the response body.
func RespondItinerary(c *gin.Context, itinerary *response_models.CanonicalItinerary) {
	c.JSON(http.StatusOK, itinerary)
}

func RespondError(c *gin.Context, code int, message, details string) {
	c.JSON(code, response_models.ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// HandleServiceError maps pipeline failures to the public error shape. The
// error field stays generic; the diagnostic chain only goes to details.
func HandleServiceError(c *gin.Context, log *zap.Logger, err error) {
	traceID := c.GetString("trace_id")

	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid itinerary request", err.Error())
	case errors.Is(err, ErrOracleUnavailable):
		log.Error("itinerary generator not configured", zap.String("trace_id", traceID), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Itinerary generator is not available", err.Error())
	case errors.Is(err, ErrOracleTransport):
		log.Warn("itinerary generator call failed", zap.String("trace_id", traceID), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Could not reach the itinerary generator, please try again", err.Error())
	case errors.Is(err, ErrOracleRefused):
		log.Warn("itinerary generator refused request", zap.String("trace_id", traceID), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "The itinerary generator declined this request", err.Error())
	case errors.Is(err, ErrMalformedPayload):
		log.Warn("itinerary generator returned unreadable output", zap.String("trace_id", traceID), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Failed to generate itinerary, please try again", err.Error())
	default:
		log.Error("unknown error", zap.String("trace_id", traceID), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
