package domain

import "time"

// fuelBrands - коды брендов Opinet и их отображаемые названия
var fuelBrands = map[string]string{
	"SKE": "SK에너지",
	"GS":  "GS칼텍스",
	"GSC": "GS칼텍스",
	"HDO": "현대오일뱅크",
	"SOL": "S-OIL",
	"NHO": "농협",
	"ETC": "알뜰주유소",
	"SKG": "SK가스",
	"E1":  "E1",
	"RTE": "자가상표",
	"RTX": "고속도로알뜰",
}

// BrandName возвращает название бренда по коду; неизвестный код возвращается как есть
func BrandName(code string) string {
	if code == "" {
		return "기타"
	}
	if name, ok := fuelBrands[code]; ok {
		return name
	}
	return code
}

// FuelStation - строка таблицы fuel_stations
type FuelStation struct {
	StationID   string     `db:"station_id"`
	Name        string     `db:"name"`
	BrandCode   *string    `db:"brand_code"`
	Address     *string    `db:"address"`
	Latitude    *float64   `db:"latitude"`
	Longitude   *float64   `db:"longitude"`
	Price       *float64   `db:"price"`
	ProductCode *string    `db:"product_code"`
	PriceDate   *time.Time `db:"price_date"`
}

// ToEntity нормализует АЗС. Цена <= 0 означает "нет данных о цене".
func (s *FuelStation) ToEntity() *Entity {
	e := &Entity{
		ID:         s.StationID,
		Kind:       EntityKindFuel,
		Name:       s.Name,
		Brand:      BrandName(deref(s.BrandCode)),
		Address:    deref(s.Address),
		Location:   pointOf(s.Latitude, s.Longitude),
		Attributes: map[string]interface{}{},
	}
	if e.Name == "" {
		e.Name = "정보없음"
	}
	if s.Price != nil && *s.Price > 0 {
		price := *s.Price
		e.Price = &price
	}
	if s.ProductCode != nil {
		e.Attributes["product_code"] = *s.ProductCode
	}
	if s.PriceDate != nil {
		e.Attributes["price_date"] = s.PriceDate.Format("2006-01-02")
	}
	return e
}

// pointOf строит GeoPoint; нулевые или невалидные координаты считаются отсутствующими
func pointOf(lat, lng *float64) *GeoPoint {
	if lat == nil || lng == nil || *lat == 0 || *lng == 0 {
		return nil
	}
	p := GeoPoint{Lat: *lat, Lng: *lng}
	if !p.Valid() {
		return nil
	}
	return &p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
