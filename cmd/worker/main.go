package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nearby-service/internal/config"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/infrastructure/seoulapi"
	"github.com/nearby-service/internal/pkg/logger"
	"github.com/nearby-service/internal/repository/cache"
	"github.com/nearby-service/internal/repository/postgres"
	redisRepo "github.com/nearby-service/internal/repository/redis"
	"github.com/nearby-service/internal/usecase"
	"github.com/nearby-service/internal/worker"
	"github.com/nearby-service/internal/worker/parking"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "nearby-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting parking sync worker")
	log.Info("Configuration loaded",
		zap.Duration("sync_interval", cfg.Worker.SyncInterval),
		zap.Int("page_size", cfg.SeoulAPI.PageSize))

	if cfg.SeoulAPI.APIKey == "" {
		log.Fatal("SEOUL_PARKING_API_KEY is required for parking sync")
	}

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis. Без Redis синхронизация идёт, но инстансы API не узнают об обновлении
	var streamRepo repository.StreamRepository
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, snapshot refresh events will not be published", zap.Error(err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	}

	// 5. Initialize use case
	syncUC := usecase.NewParkingSyncUseCase(
		seoulapi.NewClient(&cfg.SeoulAPI, log),
		postgres.NewParkingRepository(db),
		streamRepo,
		log,
	)

	// 6. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(0, log)
	workerManager.Register(parking.NewSyncWorker(syncUC, cfg.Worker.SyncInterval, true, log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop an in-flight sync
	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
