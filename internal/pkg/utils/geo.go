package utils

import "math"

// EarthRadiusMeters - фиксированный радиус Земли для формулы гаверсинуса
const EarthRadiusMeters = 6371000.0

// HaversineDistance вычисляет расстояние по большому кругу между двумя точками в метрах.
// Координаты должны быть валидными (см. ValidateCoordinates).
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет, что радиус положителен и не превышает maxKm
func ValidateRadius(radiusKm, maxKm float64) bool {
	return radiusKm > 0 && radiusKm <= maxKm
}

// KmToMeters переводит километры (единицы API) в метры (единицы ядра)
func KmToMeters(km float64) float64 {
	return km * 1000
}
