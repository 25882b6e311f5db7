package worker

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"finpol-compliance/internal/api/rest"
	"finpol-compliance/internal/config"

	"github.com/gin-gonic/gin"
)

// StartRiskEventsWorker запускает обработчик событий и его HTTP API
func StartRiskEventsWorker() {
	cfg := config.Load()

	deps, err := InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		log.Println("Starting Kafka consumer...")
		if err := deps.KafkaConsumer.Start(ctx); err != nil {
			log.Printf("Kafka consumer error: %v", err)
		}
	}()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(rest.CORSMiddleware(cfg.CORS))
	SetupRoutes(router, deps.RedisClient)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.WorkerPort),
		Handler: router,
	}

	go func() {
		log.Printf("Risk Events Worker starting on port %d", cfg.Server.WorkerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down worker...")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Worker exited")
}
