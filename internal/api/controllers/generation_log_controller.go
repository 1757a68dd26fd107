package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripgen/internal/models/response_models"
	"tripgen/internal/repositories"
	"tripgen/pkg/middleware"
	"tripgen/pkg/utils"
)

const maxGenerationLogPageSize = 100

type GenerationLogController struct {
	logRepo repositories.GenerationLogRepositoryInterface
	logger  *zap.Logger
}

func NewGenerationLogController(logRepo repositories.GenerationLogRepositoryInterface, logger *zap.Logger) *GenerationLogController {
	return &GenerationLogController{
		logRepo: logRepo,
		logger:  logger,
	}
}

// ListGenerationLogsHandler godoc
// @Summary List generation log entries
// @Description Most recent itinerary generations first; request metadata and outcome only
// @Tags Itinerary
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} response_models.GenerationLogPage
// @Failure 400 {object} response_models.ErrorResponse
// @Failure 401 {object} response_models.ErrorResponse
// @Failure 403 {object} response_models.ErrorResponse
// @Router /api/generation-logs [get]
func (gc *GenerationLogController) ListGenerationLogsHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number", "page must be a positive integer")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > maxGenerationLogPageSize {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size", "pageSize must be between 1 and 100")
		return
	}

	logs, err := gc.logRepo.ListGenerationLogs(c.Request.Context(), page, pageSize)
	if err != nil {
		gc.logger.Error("failed to list generation logs",
			zap.String("trace_id", c.GetString(middleware.ContextTraceID)),
			zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "Failed to load generation logs", err.Error())
		return
	}

	items := make([]response_models.GenerationLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, response_models.NewGenerationLogResponse(l))
	}
	c.JSON(http.StatusOK, response_models.GenerationLogPage{
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	})
}
