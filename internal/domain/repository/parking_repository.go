package repository

import (
	"context"

	"github.com/nearby-service/internal/domain"
)

// ParkingRepository определяет методы для работы с таблицей parking_lots
type ParkingRepository interface {
	// ExistingCoordinates возвращает сохранённые координаты для указанных кодов
	ExistingCoordinates(ctx context.Context, codes []string) (map[string]domain.GeoPoint, error)

	// Upsert вставляет или обновляет парковки, возвращает число вставленных и обновлённых строк
	Upsert(ctx context.Context, lots []*domain.ParkingLot) (inserted, updated int, err error)

	// Sample возвращает первые limit парковок с координатами
	Sample(ctx context.Context, limit int) ([]*domain.ParkingLot, error)

	// SearchByName ищет парковки по подстроке в названии или адресе
	SearchByName(ctx context.Context, keyword string, limit int) ([]*domain.ParkingLot, error)
}

// ParkingSource - внешний источник парковок (открытый API)
type ParkingSource interface {
	// FetchAll постранично выгружает все парковки
	FetchAll(ctx context.Context) ([]*domain.ParkingLot, error)
}
