package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/roundlabs/quadmatch/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Match and summary endpoints (public read access, cached)
		v1.GET("/round/:chainId/:roundId/match", handler.GetRoundMatch)
		v1.GET("/round/:chainId/:roundId/summary", handler.GetRoundSummary)

		// Match preview (public, never cached or persisted)
		v1.GET("/round/:chainId/:roundId/match-preview", handler.GetMatchPreview)

		// Tip inclusion checks (public read access). Lives outside the
		// /round/:chainId/:roundId tree because each checked tip names its
		// own round in the body.
		v1.POST("/tips/:chainId/included", handler.CheckTipsIncluded)

		// Force recompute (requires authentication)
		v1.POST("/round/:chainId/:roundId/recompute", middleware.Auth(authCfg), handler.ForceRecompute)
	}
}
