package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "nearby:"
	statsKey  = keyPrefix + "stats:current"
)

// SearchKey строит ключ ранжированного списка. В ключ входит версия снимка и точный
// центр запроса: расстояния зависят от центра, поэтому ключ только по ID сущности недопустим.
func SearchKey(kind domain.EntityKind, version string, center domain.GeoPoint, radiusMeters float64, mode domain.RankMode) string {
	return fmt.Sprintf("%ssearch:%s:%s:%s:%s:%s:%s",
		keyPrefix,
		kind,
		version,
		strconv.FormatFloat(center.Lat, 'f', -1, 64),
		strconv.FormatFloat(center.Lng, 'f', -1, 64),
		strconv.FormatFloat(radiusMeters, 'f', -1, 64),
		mode,
	)
}

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository создает кеш поверх клиента Redis
func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Warn("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: get: %v", errors.ErrCacheError, err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Warn("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: set: %v", errors.ErrCacheError, err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: delete: %v", errors.ErrCacheError, err)
	}
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: exists: %v", errors.ErrCacheError, err)
	}
	return val > 0, nil
}

// GetStats получает статистику из кеша; промах - (nil, nil)
func (r *cacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	data, err := r.Get(ctx, statsKey)
	if err != nil || data == nil {
		return nil, err
	}

	var stats domain.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Warn("Failed to unmarshal stats from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}

	return &stats, nil
}

// SetStats сохраняет статистику в кеше
func (r *cacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	return r.Set(ctx, statsKey, data, ttl)
}
