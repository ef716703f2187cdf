package repository

import (
	"context"

	"github.com/nearby-service/internal/domain"
)

// StatsRepository интерфейс для подсчёта записей в таблицах
type StatsRepository interface {
	// GetCounts возвращает количество записей по каждому виду сущностей
	GetCounts(ctx context.Context) (map[domain.EntityKind]domain.KindCounts, error)
}
