package main

// @title Nearby Service API
// @version 1.0.0
// @description Поиск заправок и парковок Сеула рядом с точкой и их ранжирование.
// @description
// @description Основные возможности:
// @description - Поиск в радиусе по снимку данных в памяти
// @description - Ранжирование по цене, расстоянию или выгоде поездки на заправку
// @description - Лучшая сущность каждого режима в одном ответе
// @description - Статистика по данным в БД и загруженным снимкам

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3001
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/nearby-service/docs"
	"github.com/nearby-service/internal/config"
	httpDelivery "github.com/nearby-service/internal/delivery/http"
	"github.com/nearby-service/internal/delivery/http/handler"
	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/logger"
	"github.com/nearby-service/internal/repository/cache"
	"github.com/nearby-service/internal/repository/postgres"
	redisRepo "github.com/nearby-service/internal/repository/redis"
	"github.com/nearby-service/internal/repository/snapshot"
	"github.com/nearby-service/internal/usecase"
	"github.com/nearby-service/internal/worker"
	"github.com/nearby-service/internal/worker/refresh"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "nearby-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Nearby Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Strings("snapshot_kinds", cfg.Snapshot.Kinds),
	)

	kinds, err := parseKinds(cfg.Snapshot.Kinds)
	if err != nil {
		log.Fatal("Invalid SNAPSHOT_KINDS", zap.Error(err))
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
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis. Без Redis сервис работает без кеша и без обновления снимков по событиям
	var (
		cacheRepo   repository.CacheRepository
		redisClient *cache.Redis
	)
	redisClient, err = cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, running without cache and snapshot events", zap.Error(err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
		log.Info("Redis connected")
	}

	// 5. Load snapshots. Ошибка загрузки не фатальна: до успешной перезагрузки запросы получают DATA_UNAVAILABLE
	entitySource := postgres.NewEntityRepository(db)
	store := snapshot.NewStore(entitySource, kinds, log)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.Snapshot.LoadTimeout)
	if err := store.ReloadAll(loadCtx); err != nil {
		log.Error("Initial snapshot load incomplete", zap.Error(err))
	}
	loadCancel()

	// 6. Initialize Use Cases
	ranker := usecase.NewRanker(domain.CostBenefitParams{
		FuelEfficiencyKmPerLiter: cfg.CostBenefit.FuelEfficiencyKmPerLiter,
		FixedRefuelLiters:        cfg.CostBenefit.FixedRefuelLiters,
	})

	nearbyUC := usecase.NewNearbyUseCase(
		store,
		cacheRepo,
		ranker,
		usecase.SearchLimits{
			DefaultRadiusKm: cfg.Search.DefaultRadiusKm,
			MaxRadiusKm:     cfg.Search.MaxRadiusKm,
		},
		cfg.Cache.NearbyCacheTTL,
		log,
	)

	statsUC := usecase.NewStatsUseCase(
		postgres.NewStatsRepository(db, log),
		cacheRepo,
		store,
		cfg.Cache.NearbyCacheTTL,
		log,
	)

	log.Info("Use cases initialized")

	// 7. Snapshot refresh worker
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	var workerManager *worker.WorkerManager
	if redisClient != nil {
		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		workerManager = worker.NewWorkerManager(0, log)
		workerManager.Register(refresh.NewSnapshotRefreshWorker(streamRepo, store, cfg.Worker.ConsumerGroup, log))
		if err := workerManager.Start(rootCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 8. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewNearbyHandler(nearbyUC, log),
		handler.NewStatsHandler(statsUC, log),
		handler.NewHealthHandler(store),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}
	rootCancel()

	log.Info("Server stopped successfully")
}

func parseKinds(values []string) ([]domain.EntityKind, error) {
	kinds := make([]domain.EntityKind, 0, len(values))
	for _, v := range values {
		kind, ok := domain.ParseEntityKind(v)
		if !ok {
			return nil, fmt.Errorf("unknown entity kind %q", v)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
