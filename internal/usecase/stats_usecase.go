package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"go.uber.org/zap"
)

// SnapshotStats - состояние снимков в памяти текущего инстанса
type SnapshotStats interface {
	Stats() []domain.SnapshotInfo
}

// StatsUseCase обрабатывает бизнес-логику для статистики
type StatsUseCase struct {
	statsRepo repository.StatsRepository
	cacheRepo repository.CacheRepository
	snapshots SnapshotStats
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	snapshots SnapshotStats,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		snapshots: snapshots,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// GetStatistics возвращает счётчики БД (через кеш) и состояние снимков этого инстанса
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats := uc.cachedStats(ctx)

	if stats == nil {
		counts, err := uc.statsRepo.GetCounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("get counts from db: %w", err)
		}
		stats = &domain.Statistics{
			Database:  counts,
			Generated: time.Now().UTC(),
		}

		if uc.cacheRepo != nil {
			if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheTTL); err != nil {
				uc.logger.Warn("Failed to cache stats", zap.Error(err))
			}
		}
	}

	// снимки у каждого инстанса свои, их не кешируем
	stats.Snapshots = uc.snapshots.Stats()
	return stats, nil
}

func (uc *StatsUseCase) cachedStats(ctx context.Context) *domain.Statistics {
	if uc.cacheRepo == nil {
		return nil
	}
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
		return nil
	}
	if cached != nil {
		uc.logger.Debug("Statistics fetched from cache")
	}
	return cached
}
