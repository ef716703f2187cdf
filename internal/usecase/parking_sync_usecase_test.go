package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/usecase"
)

func TestParkingSyncUseCase_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("merges coordinates and publishes refresh event", func(t *testing.T) {
		withCoords := &domain.ParkingLot{Code: "1", Name: "api coords"}
		withCoords.SetLocation(&domain.GeoPoint{Lat: 37.57, Lng: 126.97})
		keepStored := &domain.ParkingLot{Code: "2", Name: "stored coords", Address: ptrString("중구")}
		noCoords := &domain.ParkingLot{Code: "3", Name: "unknown"}
		lots := []*domain.ParkingLot{withCoords, keepStored, noCoords}

		source := new(MockParkingSource)
		source.On("FetchAll", ctx).Return(lots, nil)

		repo := new(MockParkingRepository)
		repo.On("ExistingCoordinates", ctx, []string{"2", "3"}).Return(map[string]domain.GeoPoint{
			"2": {Lat: 37.56, Lng: 126.98},
		}, nil)
		repo.On("Upsert", ctx, lots).Return(1, 2, nil)

		stream := new(MockStreamRepository)
		stream.On("PublishToStream", ctx, domain.StreamSnapshotRefreshed, mock.MatchedBy(func(e *domain.SnapshotRefreshedEvent) bool {
			return e.Kind == domain.EntityKindParking && e.Source == "parking-sync"
		})).Return(nil)

		uc := usecase.NewParkingSyncUseCase(source, repo, stream, zap.NewNop())
		result, err := uc.Sync(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Fetched)
		assert.Equal(t, 1, result.Inserted)
		assert.Equal(t, 2, result.Updated)
		assert.Equal(t, 1, result.KeptCoordinates)
		assert.Equal(t, 1, result.WithoutCoordinates)

		require.NotNil(t, keepStored.Location())
		assert.Equal(t, 37.56, keepStored.Location().Lat)
		assert.True(t, keepStored.Geocoded)
		assert.Equal(t, 37.57, withCoords.Location().Lat, "api coordinates win")
		assert.Nil(t, noCoords.Location())

		source.AssertExpectations(t)
		repo.AssertExpectations(t)
		stream.AssertExpectations(t)
	})

	t.Run("fetch failure stops sync", func(t *testing.T) {
		source := new(MockParkingSource)
		source.On("FetchAll", ctx).Return(nil, errors.New("timeout"))
		repo := new(MockParkingRepository)
		stream := new(MockStreamRepository)

		uc := usecase.NewParkingSyncUseCase(source, repo, stream, zap.NewNop())
		_, err := uc.Sync(ctx)
		require.Error(t, err)

		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upsert failure is not published", func(t *testing.T) {
		lot := &domain.ParkingLot{Code: "1", Name: "x"}
		source := new(MockParkingSource)
		source.On("FetchAll", ctx).Return([]*domain.ParkingLot{lot}, nil)
		repo := new(MockParkingRepository)
		repo.On("ExistingCoordinates", ctx, []string{"1"}).Return(map[string]domain.GeoPoint{}, nil)
		repo.On("Upsert", ctx, mock.Anything).Return(0, 0, errors.New("deadlock"))
		stream := new(MockStreamRepository)

		uc := usecase.NewParkingSyncUseCase(source, repo, stream, zap.NewNop())
		_, err := uc.Sync(ctx)
		require.Error(t, err)
		stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish failure keeps sync result", func(t *testing.T) {
		lot := &domain.ParkingLot{Code: "1", Name: "x"}
		lot.SetLocation(&domain.GeoPoint{Lat: 37.5, Lng: 127})
		source := new(MockParkingSource)
		source.On("FetchAll", ctx).Return([]*domain.ParkingLot{lot}, nil)
		repo := new(MockParkingRepository)
		repo.On("ExistingCoordinates", ctx, []string{}).Return(map[string]domain.GeoPoint{}, nil)
		repo.On("Upsert", ctx, mock.Anything).Return(1, 0, nil)
		stream := new(MockStreamRepository)
		stream.On("PublishToStream", ctx, domain.StreamSnapshotRefreshed, mock.Anything).Return(errors.New("redis down"))

		uc := usecase.NewParkingSyncUseCase(source, repo, stream, zap.NewNop())
		result, err := uc.Sync(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Inserted)
	})

	t.Run("empty source", func(t *testing.T) {
		source := new(MockParkingSource)
		source.On("FetchAll", ctx).Return([]*domain.ParkingLot{}, nil)
		repo := new(MockParkingRepository)

		uc := usecase.NewParkingSyncUseCase(source, repo, nil, zap.NewNop())
		result, err := uc.Sync(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Fetched)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
