package dto

import (
	"github.com/nearby-service/internal/domain"
)

// NearbyResponse - сущности в радиусе, по возрастанию расстояния
type NearbyResponse struct {
	Kind            domain.EntityKind     `json:"kind"`
	Center          domain.GeoPoint       `json:"center"`
	RadiusMeters    float64               `json:"radius_meters"`
	Results         []domain.NearbyResult `json:"results"`
	Total           int                   `json:"total"`
	SnapshotVersion string                `json:"snapshot_version"`
}

// SearchResponse - ранжированный список и лучшие сущности каждого режима
type SearchResponse struct {
	Kind            domain.EntityKind    `json:"kind"`
	Center          domain.GeoPoint      `json:"center"`
	RadiusMeters    float64              `json:"radius_meters"`
	Mode            domain.RankMode      `json:"mode"`
	AveragePrice    float64              `json:"average_price"`
	InRange         int                  `json:"in_range"`
	Entries         []domain.RankedEntry `json:"entries"`
	Winners         domain.Winners       `json:"winners"`
	SnapshotVersion string               `json:"snapshot_version"`
	Cached          bool                 `json:"-"`
}

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status    string                `json:"status"`
	Snapshots []domain.SnapshotInfo `json:"snapshots"`
}
