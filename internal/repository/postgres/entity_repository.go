package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	selectParkingLots = `
		SELECT pklt_cd, pklt_nm, addr, latitude, longitude, tpkct, prk_crg, prk_hm,
		       add_crg, add_unit_tm_mnt, dly_max_crg, oper_se_nm, chgd_free_nm,
		       wd_oper_bgng_tm, wd_oper_end_tm, telno, raw_data, geocoded, updated_at
		FROM parking_lots`

	selectFuelStations = `
		SELECT station_id, name, brand_code, address, latitude, longitude,
		       price, product_code, price_date
		FROM fuel_stations`
)

type entityRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewEntityRepository создает источник сущностей для снимков
func NewEntityRepository(db *DB) repository.EntitySource {
	return &entityRepository{
		db:     db,
		logger: db.logger,
	}
}

// LoadAll читает всю таблицу вида kind и нормализует строки в Entity
func (r *entityRepository) LoadAll(ctx context.Context, kind domain.EntityKind) ([]*domain.Entity, error) {
	start := time.Now()

	var (
		entities []*domain.Entity
		err      error
	)
	switch kind {
	case domain.EntityKindParking:
		entities, err = r.loadParking(ctx)
	case domain.EntityKindFuel:
		entities, err = r.loadFuel(ctx)
	default:
		return nil, errors.ErrInvalidEntityKind.WithDetails(map[string]interface{}{
			"kind": string(kind),
		})
	}
	if err != nil {
		r.logger.Error("Failed to load entities",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, err
	}

	r.logger.Debug("Entities loaded",
		zap.String("kind", string(kind)),
		zap.Int("count", len(entities)),
		zap.Duration("took", time.Since(start)))

	return entities, nil
}

func (r *entityRepository) loadParking(ctx context.Context) ([]*domain.Entity, error) {
	var lots []*domain.ParkingLot
	if err := r.db.SelectContext(ctx, &lots, selectParkingLots+" ORDER BY pklt_cd"); err != nil {
		return nil, fmt.Errorf("select parking lots: %w", err)
	}

	entities := make([]*domain.Entity, len(lots))
	for i, lot := range lots {
		entities[i] = lot.ToEntity()
	}
	return entities, nil
}

func (r *entityRepository) loadFuel(ctx context.Context) ([]*domain.Entity, error) {
	var stations []*domain.FuelStation
	if err := r.db.SelectContext(ctx, &stations, selectFuelStations+" ORDER BY station_id"); err != nil {
		return nil, fmt.Errorf("select fuel stations: %w", err)
	}

	entities := make([]*domain.Entity, len(stations))
	for i, st := range stations {
		entities[i] = st.ToEntity()
	}
	return entities, nil
}
