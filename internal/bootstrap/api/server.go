package api

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
	"finpol-compliance/internal/grpc"

	"github.com/ulule/limiter/v3"
)

// StartComplianceAPI запускает REST и gRPC серверы compliance API
func StartComplianceAPI() {
	cfg := config.Load()

	// Инициализация зависимостей
	deps, err := InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	var rateLimiter *limiter.Limiter
	if cfg.RateLimit.Enabled {
		rateLimiter, err = rest.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			log.Fatalf("Invalid rate limit %q: %v", cfg.RateLimit.Rate, err)
		}
	}

	// Настройка REST API
	handlers := rest.NewHandlers(deps.TransactionService, deps.BulkService, deps.Regulations, cfg.Bulk.MaxFileBytes)
	router := rest.SetupRouter(handlers, rest.RouterOptions{
		CORS:        cfg.CORS,
		RateLimiter: rateLimiter,
		Checks:      deps.Checks,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.APIPort),
		Handler: router,
	}

	go func() {
		log.Printf("Compliance API starting on port %d", cfg.Server.APIPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Запуск gRPC сервера в отдельной горутине
	grpcServer := grpc.NewServer(grpc.NewComplianceGRPCServer(deps.TransactionService, deps.Regulations))
	go func() {
		if err := grpc.StartGRPCServer(grpcServer, cfg.Server.GRPCPort); err != nil {
			log.Fatalf("Failed to start gRPC server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	grpcServer.GracefulStop()

	log.Println("Server exited")
}
