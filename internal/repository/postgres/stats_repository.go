package postgres

import (
	"context"
	"fmt"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"go.uber.org/zap"
)

type statsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStatsRepository создает новый экземпляр stats repository
func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// GetCounts возвращает количество записей по таблицам
func (r *statsRepository) GetCounts(ctx context.Context) (map[domain.EntityKind]domain.KindCounts, error) {
	queries := map[domain.EntityKind]string{
		domain.EntityKindParking: `
			SELECT COUNT(*) AS total,
			       COUNT(*) FILTER (WHERE latitude IS NOT NULL AND longitude IS NOT NULL) AS with_coords,
			       COUNT(*) FILTER (WHERE geocoded) AS geocoded
			FROM parking_lots`,
		domain.EntityKindFuel: `
			SELECT COUNT(*) AS total,
			       COUNT(*) FILTER (WHERE latitude IS NOT NULL AND longitude IS NOT NULL) AS with_coords,
			       0 AS geocoded
			FROM fuel_stations`,
	}

	result := make(map[domain.EntityKind]domain.KindCounts, len(queries))
	for kind, query := range queries {
		var counts domain.KindCounts
		if err := r.db.GetContext(ctx, &counts, query); err != nil {
			r.logger.Error("failed to count entities", zap.String("kind", string(kind)), zap.Error(err))
			return nil, fmt.Errorf("count %s: %w", kind, err)
		}
		result[kind] = counts
	}

	return result, nil
}
