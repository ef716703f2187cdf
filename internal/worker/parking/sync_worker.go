package parking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/worker"
)

// Syncer выполняет одну синхронизацию парковок
type Syncer interface {
	Sync(ctx context.Context) (*domain.SyncResult, error)
}

// SyncWorker периодически синхронизирует парковки с открытым API
type SyncWorker struct {
	*worker.BaseWorker
	syncer     Syncer
	interval   time.Duration
	runOnStart bool
}

// NewSyncWorker создает воркер; runOnStart - выполнить синхронизацию сразу после запуска
func NewSyncWorker(syncer Syncer, interval time.Duration, runOnStart bool, logger *zap.Logger) *SyncWorker {
	return &SyncWorker{
		BaseWorker: worker.NewBaseWorker("parking-sync", logger),
		syncer:     syncer,
		interval:   interval,
		runOnStart: runOnStart,
	}
}

// Start запускает цикл синхронизации. Ошибка одного прогона не останавливает воркер.
func (w *SyncWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting parking sync worker",
		zap.Duration("interval", w.interval),
		zap.Bool("run_on_start", w.runOnStart))

	if w.runOnStart {
		w.runOnce(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *SyncWorker) runOnce(ctx context.Context) {
	result, err := w.syncer.Sync(ctx)
	if err != nil {
		w.Logger().Error("Parking sync failed", zap.Error(err))
		return
	}
	w.Logger().Info("Parking sync finished",
		zap.Int("fetched", result.Fetched),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Duration("took", result.Duration))
}
