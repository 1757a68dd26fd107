package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tripgen/internal/api/controllers"
	"tripgen/internal/config"
	"tripgen/pkg/middleware"
)

const (
	GenerateItineraryPath = "/api/generate-itinerary"
	GenerationLogsPath    = "/api/generation-logs"
)

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	itineraryController *controllers.ItineraryController,
	generationLogController *controllers.GenerationLogController) *gin.Engine {

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	RegisterRoutes(r, cfg, itineraryController, generationLogController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	itineraryController *controllers.ItineraryController,
	generationLogController *controllers.GenerationLogController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	if cfg.Auth.Required {
		apiGroup.Use(middleware.JWTAuthMiddleware([]byte(cfg.Auth.JWTSecret)))
	}
	apiGroup.POST("/generate-itinerary", itineraryController.GenerateItineraryHandler)

	// The ledger is only readable when callers are authenticated.
	if cfg.Auth.Required {
		apiGroup.GET("/generation-logs",
			middleware.RoleMiddleware(cfg.Auth.AdminRole),
			generationLogController.ListGenerationLogsHandler)
	}
}
