package domain

import "github.com/nearby-service/internal/pkg/utils"

// GeoPoint - точка WGS84. Значение неизменяемое.
type GeoPoint struct {
	Lat float64 `json:"lat" db:"latitude"`
	Lng float64 `json:"lng" db:"longitude"`
}

// Valid проверяет диапазоны широты и долготы
func (p GeoPoint) Valid() bool {
	return utils.ValidateCoordinates(p.Lat, p.Lng)
}

// DistanceTo возвращает расстояние до q в метрах (гаверсинус)
func (p GeoPoint) DistanceTo(q GeoPoint) float64 {
	return utils.HaversineDistance(p.Lat, p.Lng, q.Lat, q.Lng)
}
