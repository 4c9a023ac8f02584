package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/segyhp/fincalc-engine/internal/config"
	"github.com/segyhp/fincalc-engine/internal/handler"
	"github.com/segyhp/fincalc-engine/internal/repository"
	"github.com/segyhp/fincalc-engine/internal/service"
	"github.com/segyhp/fincalc-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// money leaves the API as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize schedule cache
	cache := repository.NewNoopCache()
	if cfg.CacheEnabled() {
		redisClient := initRedis(cfg)
		defer redisClient.Close()
		cache = repository.NewRedisCache(redisClient, cfg.Redis.TTL)
		log.Info("schedule cache enabled", "addr", cfg.RedisAddr(), "ttl", cfg.Redis.TTL)
	}

	//Initialize service
	calculatorService := service.NewCalculatorService(cache, cfg, log)
	calculatorHandler := handler.NewCalculatorHandler(calculatorService)
	healthHandler := handler.NewHealthHandler(cache, cfg.GetHealthTimeout())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := handler.NewMetrics(registry)

	// Setup routes
	router := handler.SetupRoutes(calculatorHandler, healthHandler, metrics, log)

	// Start server
	server := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}

	log.Info("server exited")
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
