package snapshot

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// Store хранит по одному снимку на вид сущностей и атомарно подменяет их при перезагрузке
type Store struct {
	source    repository.EntitySource
	snapshots map[domain.EntityKind]*atomic.Pointer[Snapshot]
	kinds     []domain.EntityKind
	logger    *zap.Logger
}

var _ repository.EntityStore = (*Store)(nil)

// NewStore создает хранилище для указанных видов. Снимки пусты до первого Reload.
func NewStore(source repository.EntitySource, kinds []domain.EntityKind, logger *zap.Logger) *Store {
	snapshots := make(map[domain.EntityKind]*atomic.Pointer[Snapshot], len(kinds))
	for _, kind := range kinds {
		snapshots[kind] = &atomic.Pointer[Snapshot]{}
	}
	return &Store{
		source:    source,
		snapshots: snapshots,
		kinds:     kinds,
		logger:    logger,
	}
}

// Kinds возвращает обслуживаемые виды сущностей
func (s *Store) Kinds() []domain.EntityKind {
	return s.kinds
}

// Reload перечитывает сущности из источника и подменяет снимок.
// При ошибке остаётся предыдущий снимок.
func (s *Store) Reload(ctx context.Context, kind domain.EntityKind) (*domain.SnapshotInfo, error) {
	ptr, ok := s.snapshots[kind]
	if !ok {
		return nil, errors.ErrInvalidEntityKind.WithDetails(map[string]interface{}{
			"kind": string(kind),
		})
	}

	start := time.Now()
	entities, err := s.source.LoadAll(ctx, kind)
	if err != nil {
		s.logger.Error("Failed to reload snapshot, keeping previous",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, fmt.Errorf("reload %s snapshot: %w", kind, err)
	}

	snap := New(kind, entities)
	previous := ptr.Swap(snap)

	info := snap.Info()
	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("version", info.Version),
		zap.Int("entities", info.Entities),
		zap.Int("with_location", info.WithLocation),
		zap.Int("with_price", info.WithPrice),
		zap.Duration("took", time.Since(start)),
	}
	if previous != nil {
		fields = append(fields, zap.String("previous_version", previous.Version()))
	}
	s.logger.Info("Snapshot loaded", fields...)

	return &info, nil
}

// ReloadAll загружает снимки всех видов; возвращает первую ошибку, продолжая остальные
func (s *Store) ReloadAll(ctx context.Context) error {
	var firstErr error
	for _, kind := range s.kinds {
		if _, err := s.Reload(ctx, kind); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// current возвращает непустой снимок или ErrDataUnavailable
func (s *Store) current(kind domain.EntityKind) (*Snapshot, error) {
	ptr, ok := s.snapshots[kind]
	if !ok {
		return nil, errors.ErrDataUnavailable.WithDetails(map[string]interface{}{
			"kind": string(kind),
		})
	}
	snap := ptr.Load()
	if snap == nil || snap.Len() == 0 {
		return nil, errors.ErrDataUnavailable.WithDetails(map[string]interface{}{
			"kind": string(kind),
		})
	}
	return snap, nil
}

// Snapshot возвращает текущий снимок целиком, чтобы запрос работал с одной версией
func (s *Store) Snapshot(kind domain.EntityKind) (*Snapshot, error) {
	return s.current(kind)
}

func (s *Store) AllEntities(ctx context.Context, kind domain.EntityKind) ([]*domain.Entity, error) {
	snap, err := s.current(kind)
	if err != nil {
		return nil, err
	}
	return snap.Entities(), nil
}

func (s *Store) Candidates(ctx context.Context, kind domain.EntityKind, center domain.GeoPoint, radiusMeters float64) ([]*domain.Entity, error) {
	snap, err := s.current(kind)
	if err != nil {
		return nil, err
	}
	return snap.Candidates(center, radiusMeters), nil
}

func (s *Store) Version(kind domain.EntityKind) string {
	ptr, ok := s.snapshots[kind]
	if !ok {
		return ""
	}
	if snap := ptr.Load(); snap != nil {
		return snap.Version()
	}
	return ""
}

// Stats возвращает состояние снимков в порядке Kinds
func (s *Store) Stats() []domain.SnapshotInfo {
	result := make([]domain.SnapshotInfo, 0, len(s.kinds))
	for _, kind := range s.kinds {
		snap := s.snapshots[kind].Load()
		if snap == nil {
			result = append(result, domain.SnapshotInfo{Kind: kind})
			continue
		}
		result = append(result, snap.Info())
	}
	return result
}

// Ready - загружен ли хотя бы один непустой снимок каждого вида
func (s *Store) Ready() bool {
	for _, kind := range s.kinds {
		if _, err := s.current(kind); err != nil {
			return false
		}
	}
	return true
}
