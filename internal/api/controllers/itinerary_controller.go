package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripgen/internal/models/request_models"
	"tripgen/internal/services"
	"tripgen/pkg/middleware"
	"tripgen/pkg/utils"
)

// MaxItineraryRequestBytes caps the generation request body.
const MaxItineraryRequestBytes = 64 << 10

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	logger           *zap.Logger
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, logger *zap.Logger) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// GenerateItineraryHandler godoc
// @Summary Generate a travel itinerary
// @Description Build a multi-day itinerary from structured preferences or a natural-language query
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body object true "{\"preferences\": {...}} or {\"naturalLanguageQuery\": \"...\"}"
// @Success 200 {object} response_models.CanonicalItinerary
// @Failure 400 {object} response_models.ErrorResponse
// @Failure 500 {object} response_models.ErrorResponse
// @Router /api/generate-itinerary [post]
func (ic *ItineraryController) GenerateItineraryHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxItineraryRequestBytes)
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: request body exceeds %d bytes", utils.ErrInvalidInput, tooLarge.Limit)
		} else {
			err = fmt.Errorf("%w: could not read request body: %v", utils.ErrInvalidInput, err)
		}
		utils.HandleServiceError(c, ic.logger, err)
		return
	}

	input, err := request_models.ParseRequestInput(body)
	if err != nil {
		utils.HandleServiceError(c, ic.logger, err)
		return
	}

	ctx := utils.WithTraceID(c.Request.Context(), c.GetString(middleware.ContextTraceID))
	if userID := c.GetString(middleware.ContextUserID); userID != "" {
		ctx = utils.WithUserID(ctx, userID)
	}

	itinerary, err := ic.itineraryService.GenerateItinerary(ctx, input)
	if err != nil {
		utils.HandleServiceError(c, ic.logger, err)
		return
	}

	utils.RespondItinerary(c, itinerary)
}
