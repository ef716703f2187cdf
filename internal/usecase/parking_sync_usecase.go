package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
)

const syncEventSource = "parking-sync"

// ParkingSyncUseCase переносит парковки из открытого API в parking_lots
type ParkingSyncUseCase struct {
	source      repository.ParkingSource
	parkingRepo repository.ParkingRepository
	streamRepo  repository.StreamRepository
	logger      *zap.Logger
}

// NewParkingSyncUseCase создает новый экземпляр ParkingSyncUseCase
func NewParkingSyncUseCase(
	source repository.ParkingSource,
	parkingRepo repository.ParkingRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *ParkingSyncUseCase {
	return &ParkingSyncUseCase{
		source:      source,
		parkingRepo: parkingRepo,
		streamRepo:  streamRepo,
		logger:      logger,
	}
}

// Sync выгружает все парковки, сохраняет известные координаты для строк без них,
// записывает результат и публикует SnapshotRefreshed.
func (uc *ParkingSyncUseCase) Sync(ctx context.Context) (*domain.SyncResult, error) {
	start := time.Now()

	// 1. Выгрузка из API
	lots, err := uc.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch parking lots: %w", err)
	}

	result := &domain.SyncResult{Fetched: len(lots)}
	if len(lots) == 0 {
		uc.logger.Warn("Parking source returned no rows, nothing to sync")
		result.Duration = time.Since(start)
		return result, nil
	}

	// 2. Координаты из API важнее, иначе оставляем сохранённые
	codes := make([]string, 0, len(lots))
	for _, lot := range lots {
		if lot.Location() == nil {
			codes = append(codes, lot.Code)
		}
	}

	existing, err := uc.parkingRepo.ExistingCoordinates(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("load existing coordinates: %w", err)
	}

	for _, lot := range lots {
		if lot.Location() != nil {
			continue
		}
		if point, ok := existing[lot.Code]; ok {
			lot.SetLocation(&point)
			result.KeptCoordinates++
			continue
		}
		lot.SetLocation(nil)
		result.WithoutCoordinates++
	}

	// 3. Запись
	result.Inserted, result.Updated, err = uc.parkingRepo.Upsert(ctx, lots)
	if err != nil {
		return nil, fmt.Errorf("upsert parking lots: %w", err)
	}
	result.Duration = time.Since(start)

	uc.logger.Info("Parking lots synced",
		zap.Int("fetched", result.Fetched),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("kept_coordinates", result.KeptCoordinates),
		zap.Int("without_coordinates", result.WithoutCoordinates),
		zap.Duration("took", result.Duration))

	// 4. Инстансы API перечитают снимок по событию; ошибка публикации не откатывает синхронизацию
	if uc.streamRepo != nil {
		event := domain.NewSnapshotRefreshedEvent(domain.EntityKindParking, syncEventSource)
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamSnapshotRefreshed, event); err != nil {
			uc.logger.Error("Failed to publish snapshot refresh event",
				zap.String("event_id", event.EventID.String()),
				zap.Error(err))
		}
	}

	return result, nil
}
