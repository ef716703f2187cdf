package refresh

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/worker"
)

// cleanupTimeout - время на удаление consumer group после остановки
const cleanupTimeout = 5 * time.Second

// SnapshotReloader перечитывает снимок одного вида сущностей
type SnapshotReloader interface {
	Reload(ctx context.Context, kind domain.EntityKind) (*domain.SnapshotInfo, error)
}

// SnapshotRefreshWorker слушает stream:snapshot:refreshed и перечитывает снимки.
// Каждый инстанс API читает через собственную consumer group, чтобы событие
// получили все инстансы, а не один из них.
type SnapshotRefreshWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	reloader     SnapshotReloader
	group        string
	consumerName string
}

// NewSnapshotRefreshWorker создает воркер; groupPrefix дополняется именем инстанса
func NewSnapshotRefreshWorker(
	streamRepo repository.StreamRepository,
	reloader SnapshotReloader,
	groupPrefix string,
	logger *zap.Logger,
) *SnapshotRefreshWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &SnapshotRefreshWorker{
		BaseWorker:   worker.NewBaseWorker("snapshot-refresh", logger),
		streamRepo:   streamRepo,
		reloader:     reloader,
		group:        groupPrefix + "-" + consumerName,
		consumerName: consumerName,
	}
}

// ConsumerGroup возвращает имя consumer group этого инстанса
func (w *SnapshotRefreshWorker) ConsumerGroup() string {
	return w.group
}

// Start создаёт consumer group и обрабатывает события до Stop или отмены ctx
func (w *SnapshotRefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting snapshot refresh worker",
		zap.String("consumer_group", w.group),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamSnapshotRefreshed, w.group); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	defer w.destroyGroup()

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.StopChan():
			cancel()
		case <-consumeCtx.Done():
		}
	}()

	messages, err := w.streamRepo.ConsumeStream(consumeCtx, domain.StreamSnapshotRefreshed, w.group, w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for msg := range messages {
		w.handleMessage(consumeCtx, msg)
	}

	if ctx.Err() != nil {
		logger.Info("Context cancelled")
		return ctx.Err()
	}
	logger.Info("Worker stopped")
	return nil
}

// handleMessage перечитывает снимок из события. Сообщение подтверждается всегда:
// при ошибке перезагрузки остаётся предыдущий снимок, а следующее событие повторит попытку.
func (w *SnapshotRefreshWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))
	defer w.ack(ctx, msg.ID)

	var event domain.SnapshotRefreshedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Error("Failed to unmarshal snapshot event", zap.Error(err))
		return
	}

	logger = logger.With(
		zap.String("event_id", event.EventID.String()),
		zap.String("kind", string(event.Kind)),
		zap.String("source", event.Source))

	info, err := w.reloader.Reload(ctx, event.Kind)
	switch {
	case stderrors.Is(err, errors.ErrInvalidEntityKind):
		logger.Debug("Kind is not served by this instance, skipping")
	case err != nil:
		logger.Error("Snapshot reload failed", zap.Error(err))
	default:
		logger.Info("Snapshot refreshed",
			zap.String("version", info.Version),
			zap.Int("entities", info.Entities))
	}
}

func (w *SnapshotRefreshWorker) ack(ctx context.Context, messageID string) {
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	if err := w.streamRepo.AckMessage(ctx, domain.StreamSnapshotRefreshed, w.group, messageID); err != nil {
		w.Logger().Warn("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}

// destroyGroup удаляет группу инстанса, чтобы в Redis не копились группы остановленных процессов
func (w *SnapshotRefreshWorker) destroyGroup() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	if err := w.streamRepo.DestroyConsumerGroup(ctx, domain.StreamSnapshotRefreshed, w.group); err != nil {
		w.Logger().Warn("Failed to destroy consumer group",
			zap.String("consumer_group", w.group),
			zap.Error(err))
	}
}
