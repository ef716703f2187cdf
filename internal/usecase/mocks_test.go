package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nearby-service/internal/domain"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

// MockEntitySource is a mock of EntitySource
type MockEntitySource struct {
	mock.Mock
}

func (m *MockEntitySource) LoadAll(ctx context.Context, kind domain.EntityKind) ([]*domain.Entity, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entity), args.Error(1)
}

// MockParkingSource is a mock of ParkingSource
type MockParkingSource struct {
	mock.Mock
}

func (m *MockParkingSource) FetchAll(ctx context.Context) ([]*domain.ParkingLot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ParkingLot), args.Error(1)
}

// MockParkingRepository is a mock of ParkingRepository
type MockParkingRepository struct {
	mock.Mock
}

func (m *MockParkingRepository) ExistingCoordinates(ctx context.Context, codes []string) (map[string]domain.GeoPoint, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.GeoPoint), args.Error(1)
}

func (m *MockParkingRepository) Upsert(ctx context.Context, lots []*domain.ParkingLot) (int, int, error) {
	args := m.Called(ctx, lots)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockParkingRepository) Sample(ctx context.Context, limit int) ([]*domain.ParkingLot, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ParkingLot), args.Error(1)
}

func (m *MockParkingRepository) SearchByName(ctx context.Context, keyword string, limit int) ([]*domain.ParkingLot, error) {
	args := m.Called(ctx, keyword, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ParkingLot), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) DestroyConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetCounts(ctx context.Context) (map[domain.EntityKind]domain.KindCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.EntityKind]domain.KindCounts), args.Error(1)
}

// Helper functions
func ptrFloat64(f float64) *float64 {
	return &f
}

func ptrString(s string) *string {
	return &s
}
