package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultBlock     = 5 * time.Second
	readBatchSize    = 10
	readErrorBackoff = time.Second
	// maxStreamLen - приблизительный лимит длины стрима событий
	maxStreamLen = 1000
)

type streamRepository struct {
	client *redis.Client
	block  time.Duration
	logger *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository.
// block - сколько XREADGROUP ждёт новых сообщений; 0 - значение по умолчанию.
func NewStreamRepository(client *redis.Client, block time.Duration, logger *zap.Logger) repository.StreamRepository {
	if block <= 0 {
		block = defaultBlock
	}
	return &streamRepository{
		client: client,
		block:  block,
		logger: logger,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// "$" - только новые сообщения, MKSTREAM создаёт стрим при необходимости
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// DestroyConsumerGroup удаляет consumer group (группы создаются на каждый инстанс)
func (r *streamRepository) DestroyConsumerGroup(ctx context.Context, stream, group string) error {
	if err := r.client.XGroupDestroy(ctx, stream, group).Err(); err != nil {
		return fmt.Errorf("failed to destroy consumer group: %w", err)
	}
	r.logger.Info("Consumer group destroyed",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает сообщения из стрима через consumer group.
// Канал закрывается при отмене ctx.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	msgChan := make(chan domain.StreamMessage, readBatchSize)

	go func() {
		defer close(msgChan)

		for {
			if ctx.Err() != nil {
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			}

			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    readBatchSize,
				Block:    r.block,
			}).Result()
			if err != nil {
				if stderrors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))
				select {
				case <-time.After(readErrorBackoff):
				case <-ctx.Done():
					return
				}
				continue
			}

			for _, s := range result {
				for _, msg := range s.Messages {
					data, ok := msg.Values["data"].(string)
					if !ok {
						r.logger.Warn("Message does not contain 'data' field",
							zap.String("message_id", msg.ID))
						// без поля data сообщение обработать нельзя
						_ = r.AckMessage(ctx, stream, group, msg.ID)
						continue
					}

					select {
					case msgChan <- domain.StreamMessage{ID: msg.ID, Data: data}:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return msgChan, nil
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}

	r.logger.Debug("Message acknowledged", zap.String("message_id", messageID))
	return nil
}

// PublishToStream сериализует data в JSON и публикует в поле "data"
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}
