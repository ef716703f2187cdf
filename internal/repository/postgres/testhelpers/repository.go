package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewEntityRepositoryForTest creates an entity source with test database and logger
func NewEntityRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.EntitySource {
	return postgres.NewEntityRepository(NewDBForTest(db, logger))
}

// NewParkingRepositoryForTest creates a parking repository with test database and logger
func NewParkingRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ParkingRepository {
	return postgres.NewParkingRepository(NewDBForTest(db, logger))
}

// NewStatsRepositoryForTest creates a stats repository with test database and logger
func NewStatsRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.StatsRepository {
	return postgres.NewStatsRepository(NewDBForTest(db, logger), logger)
}
