package worker

import (
	"context"
	"log"
	"net/http"

	"finpol-compliance/internal/api/rest"
	"finpol-compliance/internal/logger"
	"finpol-compliance/internal/redis"

	"github.com/gin-gonic/gin"
)

// StatsBackend - то, что нужно маршрутам воркера от Redis
type StatsBackend interface {
	redis.StatsStore
	ClearTransactionData(ctx context.Context) error
}

// SetupRoutes настраивает маршруты воркера
func SetupRoutes(router *gin.Engine, stats StatsBackend) {
	api := router.Group("/api/v1")
	{
		api.GET("/risk-stats", func(c *gin.Context) {
			counts, err := stats.GetRiskStats(c.Request.Context())
			if err != nil {
				log.Printf("Error reading risk stats: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read risk stats"})
				return
			}

			var total int64
			for _, n := range counts {
				total += n
			}
			c.JSON(http.StatusOK, gin.H{"risk_stats": counts, "total": total})
		})

		api.DELETE("/risk-stats", func(c *gin.Context) {
			if err := stats.ClearTransactionData(c.Request.Context()); err != nil {
				log.Printf("Error clearing risk stats: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear risk stats"})
				return
			}

			logger.LogEvent(logger.EventStatsUpdated, logger.ServiceWorker, "redis", map[string]interface{}{
				"action": "stats_cleared",
			})

			c.JSON(http.StatusOK, gin.H{"message": "Risk stats and cached outcomes cleared"})
		})
	}

	// Используем общие endpoints (health, events, stats)
	rest.SetupCommonEndpoints(router, "Risk Events Worker")
}
