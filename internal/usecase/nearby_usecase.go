package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/pkg/utils"
	"github.com/nearby-service/internal/repository/cache"
	"github.com/nearby-service/internal/usecase/dto"
)

// SearchLimits - ограничения радиуса на границе API (км)
type SearchLimits struct {
	DefaultRadiusKm float64
	MaxRadiusKm     float64
}

// NearbyUseCase - поиск сущностей рядом с точкой и их ранжирование
type NearbyUseCase struct {
	store     repository.EntityStore
	cacheRepo repository.CacheRepository
	ranker    *Ranker
	limits    SearchLimits
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewNearbyUseCase создает NearbyUseCase. cacheRepo может быть nil - тогда кеш не используется.
func NewNearbyUseCase(
	store repository.EntityStore,
	cacheRepo repository.CacheRepository,
	ranker *Ranker,
	limits SearchLimits,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *NearbyUseCase {
	return &NearbyUseCase{
		store:     store,
		cacheRepo: cacheRepo,
		ranker:    ranker,
		limits:    limits,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// FilterNearby оставляет сущности с координатами на расстоянии <= radiusMeters от center.
// Порядок входа сохраняется. radiusMeters <= 0 даёт пустой результат.
func FilterNearby(entities []*domain.Entity, center domain.GeoPoint, radiusMeters float64) []domain.NearbyResult {
	results := []domain.NearbyResult{}
	if radiusMeters <= 0 {
		return results
	}
	for _, e := range entities {
		if !e.HasLocation() {
			continue
		}
		d := center.DistanceTo(*e.Location)
		if d <= radiusMeters {
			results = append(results, domain.NearbyResult{Entity: e, DistanceMeters: d})
		}
	}
	return results
}

// FindNearby возвращает сущности вида kind в радиусе radiusMeters от center.
// Если снимок не загружен - ErrDataUnavailable, а не пустой список.
func (uc *NearbyUseCase) FindNearby(ctx context.Context, kind domain.EntityKind, center domain.GeoPoint, radiusMeters float64) ([]domain.NearbyResult, error) {
	candidates, err := uc.store.Candidates(ctx, kind, center, radiusMeters)
	if err != nil {
		return nil, err
	}
	return FilterNearby(candidates, center, radiusMeters), nil
}

// Nearby - неранжированный поиск рядом, отсортированный по расстоянию
func (uc *NearbyUseCase) Nearby(ctx context.Context, req dto.NearbyRequest) (*dto.NearbyResponse, error) {
	kind, center, radiusMeters, err := uc.parseQuery(req.Kind, req.Lat, req.Lng, req.RadiusKm)
	if err != nil {
		return nil, err
	}

	version := uc.store.Version(kind)
	results, err := uc.FindNearby(ctx, kind, center, radiusMeters)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})

	return &dto.NearbyResponse{
		Kind:            kind,
		Center:          center,
		RadiusMeters:    radiusMeters,
		Results:         results,
		Total:           len(results),
		SnapshotVersion: version,
	}, nil
}

// Search ищет рядом, ранжирует по режиму и вычисляет лучших в каждом режиме.
// Ответ кешируется по версии снимка и точному центру запроса.
func (uc *NearbyUseCase) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error) {
	kind, center, radiusMeters, err := uc.parseQuery(req.Kind, req.Lat, req.Lng, req.RadiusKm)
	if err != nil {
		return nil, err
	}

	mode := domain.RankModePrice
	if req.Mode != "" {
		parsed, ok := domain.ParseRankMode(req.Mode)
		if !ok {
			return nil, errors.ErrInvalidRankMode.WithDetails(map[string]interface{}{
				"mode": req.Mode,
			})
		}
		mode = parsed
	}

	// 1. Кеш
	version := uc.store.Version(kind)
	cacheKey := ""
	if version != "" && uc.cacheRepo != nil {
		cacheKey = cache.SearchKey(kind, version, center, radiusMeters, mode)
		if cached := uc.getCached(ctx, cacheKey); cached != nil {
			return cached, nil
		}
	}

	// 2. Поиск и ранжирование
	results, err := uc.FindNearby(ctx, kind, center, radiusMeters)
	if err != nil {
		return nil, err
	}

	list, err := uc.ranker.Rank(results, mode)
	if err != nil {
		return nil, err
	}

	resp := &dto.SearchResponse{
		Kind:            kind,
		Center:          center,
		RadiusMeters:    radiusMeters,
		Mode:            mode,
		AveragePrice:    list.AveragePrice,
		InRange:         len(results),
		Entries:         list.Entries,
		Winners:         uc.ranker.Winners(results),
		SnapshotVersion: version,
	}

	// 3. Кешируем, только если снимок не сменился во время запроса
	if cacheKey != "" && uc.store.Version(kind) == version {
		uc.setCached(ctx, cacheKey, resp)
	}

	return resp, nil
}

// parseQuery приводит параметры запроса к значениям ядра; радиус переводится в метры
func (uc *NearbyUseCase) parseQuery(kindStr string, lat, lng, radiusKm *float64) (domain.EntityKind, domain.GeoPoint, float64, error) {
	kind, ok := domain.ParseEntityKind(kindStr)
	if !ok {
		return "", domain.GeoPoint{}, 0, errors.ErrInvalidEntityKind.WithDetails(map[string]interface{}{
			"kind": kindStr,
		})
	}

	if lat == nil || lng == nil || !utils.ValidateCoordinates(*lat, *lng) {
		return "", domain.GeoPoint{}, 0, errors.ErrInvalidCoordinates
	}
	center := domain.GeoPoint{Lat: *lat, Lng: *lng}

	km := uc.limits.DefaultRadiusKm
	if radiusKm != nil {
		km = *radiusKm
	}
	if !utils.ValidateRadius(km, uc.limits.MaxRadiusKm) {
		return "", domain.GeoPoint{}, 0, errors.ErrInvalidRadius.WithDetails(map[string]interface{}{
			"radius_km": km,
			"max_km":    uc.limits.MaxRadiusKm,
		})
	}

	return kind, center, utils.KmToMeters(km), nil
}

func (uc *NearbyUseCase) getCached(ctx context.Context, key string) *dto.SearchResponse {
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("Search cache unavailable", zap.Error(err))
		return nil
	}
	if data == nil {
		return nil
	}

	var resp dto.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Warn("Failed to unmarshal cached search", zap.String("key", key), zap.Error(err))
		return nil
	}
	resp.Cached = true
	return &resp
}

func (uc *NearbyUseCase) setCached(ctx context.Context, key string, resp *dto.SearchResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		uc.logger.Warn("Failed to marshal search response", zap.Error(err))
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache search response", zap.Error(err))
	}
}
