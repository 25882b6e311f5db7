package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	_ "finpol-compliance/docs"
	"finpol-compliance/internal/config"
	"finpol-compliance/internal/logger"
	"finpol-compliance/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Check - проверка готовности зависимости
type Check func(ctx context.Context) error

// RouterOptions - необязательные части роутера
type RouterOptions struct {
	CORS        config.CORSConfig
	RateLimiter *limiter.Limiter // nil отключает ограничение
	Checks      map[string]Check // проверки для /ready
	Metrics     http.Handler     // nil - promhttp.Handler()
}

// SetupCommonEndpoints добавляет общие endpoints (health, events, stats) к роутеру
func SetupCommonEndpoints(router *gin.Engine, service string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": service})
	})

	router.GET("/api/v1/events", eventsHandler)
	router.GET("/api/v1/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, logger.GetStats())
	})
}

func eventsHandler(c *gin.Context) {
	limit := 100
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}
	events := logger.GetEvents(limit)
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// ReadyHandler выполняет проверки и отвечает 503, если хотя бы одна не прошла
func ReadyHandler(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				ready = false
				results[name] = "error: " + err.Error()
				continue
			}
			results[name] = "ok"
		}

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"ready": ready, "checks": results})
	}
}

// SetupRouter настраивает маршруты REST API
func SetupRouter(handlers *Handlers, opts RouterOptions) *gin.Engine {
	validation.RegisterGin()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(CORSMiddleware(opts.CORS))

	metricsHandler := opts.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	router.GET("/metrics", gin.WrapH(metricsHandler))
	router.GET("/ready", ReadyHandler(opts.Checks))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	SetupCommonEndpoints(router, "FinPol API")

	api := router.Group("/api/v1")
	if opts.RateLimiter != nil {
		api.Use(RateLimit(opts.RateLimiter))
	}
	RegisterRoutes(api, handlers)

	return router
}

// RegisterRoutes регистрирует маршруты API в группе
func RegisterRoutes(api *gin.RouterGroup, handlers *Handlers) {
	transactions := api.Group("/transactions")
	{
		transactions.POST("", handlers.CreateTransaction)
		transactions.GET("", handlers.ListTransactions)
		transactions.GET("/generate", handlers.GenerateRandomTransaction)
		transactions.POST("/analyze", handlers.AnalyzeTransaction)
		transactions.GET("/:id", handlers.GetTransaction)
		transactions.DELETE("/:id", handlers.DeleteTransaction)
	}

	compliance := api.Group("/compliance")
	{
		compliance.POST("/report/:id", handlers.GenerateComplianceReport)
		compliance.GET("/regulations", handlers.ListRegulations)
		compliance.POST("/regulations/search", handlers.SearchRegulations)
	}

	bulk := api.Group("/bulk")
	{
		bulk.POST("/upload", handlers.UploadStatement)
		bulk.POST("/upload/report", handlers.UploadStatementReport)
	}
}
