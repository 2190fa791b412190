package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes. metrics may be nil to skip the
// Prometheus endpoint.
func SetupRoutes(router *gin.Engine, handler *Handler, metrics http.Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	v1 := router.Group("/api/v1")
	{
		grievances := v1.Group("/grievances")
		{
			grievances.POST("", handler.Process)            // POST /api/v1/grievances
			grievances.POST("/batch", handler.ProcessBatch) // POST /api/v1/grievances/batch
		}

		cases := v1.Group("/cases")
		{
			cases.GET("/queue", handler.Queue)              // GET /api/v1/cases/queue
			cases.POST("/:id/resolve", handler.ResolveCase) // POST /api/v1/cases/:id/resolve
		}

		// Single-stage endpoints for debugging and downstream tooling
		v1.POST("/classify", handler.Classify)       // POST /api/v1/classify
		v1.POST("/distress", handler.AnalyzeDistress) // POST /api/v1/distress
		v1.POST("/risk", handler.PredictRisk)         // POST /api/v1/risk
	}
}
