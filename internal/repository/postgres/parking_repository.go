package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"go.uber.org/zap"
)

const upsertParkingLot = `
	INSERT INTO parking_lots (
		pklt_cd, pklt_nm, addr, latitude, longitude, tpkct, prk_crg, prk_hm,
		add_crg, add_unit_tm_mnt, dly_max_crg, oper_se_nm, chgd_free_nm,
		wd_oper_bgng_tm, wd_oper_end_tm, telno, raw_data, geocoded, updated_at
	) VALUES (
		:pklt_cd, :pklt_nm, :addr, :latitude, :longitude, :tpkct, :prk_crg, :prk_hm,
		:add_crg, :add_unit_tm_mnt, :dly_max_crg, :oper_se_nm, :chgd_free_nm,
		:wd_oper_bgng_tm, :wd_oper_end_tm, :telno, :raw_data, :geocoded, NOW()
	)
	ON CONFLICT (pklt_cd) DO UPDATE SET
		pklt_nm = EXCLUDED.pklt_nm,
		addr = EXCLUDED.addr,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		tpkct = EXCLUDED.tpkct,
		prk_crg = EXCLUDED.prk_crg,
		prk_hm = EXCLUDED.prk_hm,
		add_crg = EXCLUDED.add_crg,
		add_unit_tm_mnt = EXCLUDED.add_unit_tm_mnt,
		dly_max_crg = EXCLUDED.dly_max_crg,
		oper_se_nm = EXCLUDED.oper_se_nm,
		chgd_free_nm = EXCLUDED.chgd_free_nm,
		wd_oper_bgng_tm = EXCLUDED.wd_oper_bgng_tm,
		wd_oper_end_tm = EXCLUDED.wd_oper_end_tm,
		telno = EXCLUDED.telno,
		raw_data = EXCLUDED.raw_data,
		geocoded = EXCLUDED.geocoded,
		updated_at = NOW()
	RETURNING (xmax = 0) AS inserted`

type parkingRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewParkingRepository создает репозиторий таблицы parking_lots
func NewParkingRepository(db *DB) repository.ParkingRepository {
	return &parkingRepository{
		db:     db,
		logger: db.logger,
	}
}

// ExistingCoordinates возвращает сохранённые координаты для кодов, у которых они есть
func (r *parkingRepository) ExistingCoordinates(ctx context.Context, codes []string) (map[string]domain.GeoPoint, error) {
	result := make(map[string]domain.GeoPoint)
	if len(codes) == 0 {
		return result, nil
	}

	var rows []struct {
		Code string `db:"pklt_cd"`
		domain.GeoPoint
	}
	query := `
		SELECT pklt_cd, latitude, longitude
		FROM parking_lots
		WHERE pklt_cd = ANY($1)
		  AND latitude IS NOT NULL AND longitude IS NOT NULL`

	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(codes)); err != nil {
		r.logger.Error("Failed to load existing coordinates", zap.Int("codes", len(codes)), zap.Error(err))
		return nil, fmt.Errorf("select existing coordinates: %w", err)
	}

	for _, row := range rows {
		result[row.Code] = row.GeoPoint
	}
	return result, nil
}

// Upsert записывает парковки одной транзакцией
func (r *parkingRepository) Upsert(ctx context.Context, lots []*domain.ParkingLot) (int, int, error) {
	if len(lots) == 0 {
		return 0, 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareNamedContext(ctx, upsertParkingLot)
	if err != nil {
		return 0, 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	inserted, updated := 0, 0
	for _, lot := range lots {
		var isInsert bool
		if err := stmt.GetContext(ctx, &isInsert, lot); err != nil {
			r.logger.Error("Failed to upsert parking lot", zap.String("code", lot.Code), zap.Error(err))
			return 0, 0, fmt.Errorf("upsert parking lot %s: %w", lot.Code, err)
		}
		if isInsert {
			inserted++
		} else {
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit upsert tx: %w", err)
	}

	r.logger.Info("Parking lots upserted",
		zap.Int("inserted", inserted),
		zap.Int("updated", updated))

	return inserted, updated, nil
}

// Sample возвращает первые limit парковок с координатами
func (r *parkingRepository) Sample(ctx context.Context, limit int) ([]*domain.ParkingLot, error) {
	var lots []*domain.ParkingLot
	query := selectParkingLots + `
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY pklt_cd
		LIMIT $1`

	if err := r.db.SelectContext(ctx, &lots, query, limit); err != nil {
		return nil, fmt.Errorf("select parking sample: %w", err)
	}
	return lots, nil
}

// SearchByName ищет по подстроке в названии или адресе без учёта регистра
func (r *parkingRepository) SearchByName(ctx context.Context, keyword string, limit int) ([]*domain.ParkingLot, error) {
	var lots []*domain.ParkingLot
	query := selectParkingLots + `
		WHERE pklt_nm ILIKE $1 OR addr ILIKE $1
		ORDER BY pklt_nm
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &lots, query, "%"+keyword+"%", limit); err != nil {
		return nil, fmt.Errorf("search parking lots: %w", err)
	}
	return lots, nil
}
