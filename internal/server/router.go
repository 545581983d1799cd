package server

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/codemorph-backend/internal/http/handlers"
	"github.com/yungbote/codemorph-backend/internal/http/middleware"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ConvertHandler *handlers.ConvertHandler
	AnalyzeHandler *handlers.AnalyzeHandler
	ChatHandler    *handlers.ChatHandler
	ProfileHandler *handlers.ProfileHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS())

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/", handlers.Root)

		// Conversion
		api.POST("/process", cfg.ConvertHandler.Process)
		api.POST("/process-image", cfg.ConvertHandler.ProcessImage)
		api.POST("/process-audio", cfg.ConvertHandler.ProcessAudio)
		api.GET("/sessions/:session_id/history", cfg.ConvertHandler.History)

		// Analysis
		api.POST("/analyze-code", cfg.AnalyzeHandler.AnalyzeCode)
		api.POST("/analyze-code-file", cfg.AnalyzeHandler.AnalyzeCodeFile)

		// Coaching
		api.POST("/chat", cfg.ChatHandler.Chat)
		api.POST("/coach", cfg.ChatHandler.Chat)
		api.POST("/learning-profile", cfg.ProfileHandler.UpdateLearningProfile)
	}

	return router
}
