package api

import (
	"github.com/chordelia/chordelia-api/internal/api/handlers"
	apimiddleware "github.com/chordelia/chordelia-api/internal/api/middleware"
	"github.com/chordelia/chordelia-api/internal/engines"
	"github.com/chordelia/chordelia-api/internal/metrics"
	"github.com/chordelia/chordelia-api/internal/orchestrator"
	"github.com/gin-gonic/gin"
)

func SetupRouter(orch *orchestrator.Orchestrator, adapters *engines.Adapters, cloudwatch *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cloudwatch))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Conversational endpoints
	chatHandler := handlers.NewChatHandler(orch)
	router.POST("/chat/integrated", chatHandler.IntegratedChat)
	router.POST("/chat/analyze", chatHandler.Analyze)
	router.GET("/debug/context", chatHandler.DebugContext)

	// Direct engine endpoints
	chordHandler := handlers.NewChordHandler(adapters)
	router.POST("/chord/generate", chordHandler.Generate)
	router.POST("/progression/analyze", chordHandler.AnalyzeProgression)

	return router
}
