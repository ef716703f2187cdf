package domain

import "time"

// ParkingLot - строка таблицы parking_lots (нормализованные поля GetParkInfo)
type ParkingLot struct {
	Code           string    `db:"pklt_cd" json:"code"`
	Name           string    `db:"pklt_nm" json:"name"`
	Address        *string   `db:"addr" json:"address,omitempty"`
	Latitude       *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude      *float64  `db:"longitude" json:"longitude,omitempty"`
	TotalSpaces    *float64  `db:"tpkct" json:"total_spaces,omitempty"`
	BaseFee        *float64  `db:"prk_crg" json:"base_fee,omitempty"`
	BaseMinutes    *float64  `db:"prk_hm" json:"base_minutes,omitempty"`
	AddFee         *float64  `db:"add_crg" json:"add_fee,omitempty"`
	AddUnitMinutes *float64  `db:"add_unit_tm_mnt" json:"add_unit_minutes,omitempty"`
	DailyMaxFee    *float64  `db:"dly_max_crg" json:"daily_max_fee,omitempty"`
	OperationType  *string   `db:"oper_se_nm" json:"operation_type,omitempty"`
	FeeType        *string   `db:"chgd_free_nm" json:"fee_type,omitempty"`
	WeekdayOpen    *string   `db:"wd_oper_bgng_tm" json:"weekday_open,omitempty"`
	WeekdayClose   *string   `db:"wd_oper_end_tm" json:"weekday_close,omitempty"`
	Phone          *string   `db:"telno" json:"phone,omitempty"`
	RawData        *string   `db:"raw_data" json:"-"`
	Geocoded       bool      `db:"geocoded" json:"geocoded"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Location возвращает координаты или nil
func (p *ParkingLot) Location() *GeoPoint {
	return pointOf(p.Latitude, p.Longitude)
}

// SetLocation выставляет координаты; nil очищает их
func (p *ParkingLot) SetLocation(loc *GeoPoint) {
	if loc == nil {
		p.Latitude, p.Longitude = nil, nil
		p.Geocoded = false
		return
	}
	lat, lng := loc.Lat, loc.Lng
	p.Latitude, p.Longitude = &lat, &lng
	p.Geocoded = true
}

// ToEntity нормализует парковку. Базовый тариф 0 означает бесплатную парковку
// и остаётся ценой; отрицательный тариф отбрасывается.
func (p *ParkingLot) ToEntity() *Entity {
	e := &Entity{
		ID:         p.Code,
		Kind:       EntityKindParking,
		Name:       p.Name,
		Address:    deref(p.Address),
		Location:   p.Location(),
		Attributes: map[string]interface{}{},
	}
	if p.BaseFee != nil && *p.BaseFee >= 0 {
		fee := *p.BaseFee
		e.Price = &fee
	}

	setFloat(e.Attributes, "total_spaces", p.TotalSpaces)
	setFloat(e.Attributes, "base_minutes", p.BaseMinutes)
	setFloat(e.Attributes, "add_fee", p.AddFee)
	setFloat(e.Attributes, "add_unit_minutes", p.AddUnitMinutes)
	setFloat(e.Attributes, "daily_max_fee", p.DailyMaxFee)
	setString(e.Attributes, "operation_type", p.OperationType)
	setString(e.Attributes, "fee_type", p.FeeType)
	setString(e.Attributes, "weekday_open", p.WeekdayOpen)
	setString(e.Attributes, "weekday_close", p.WeekdayClose)
	setString(e.Attributes, "phone", p.Phone)

	return e
}

func setFloat(attrs map[string]interface{}, key string, v *float64) {
	if v != nil {
		attrs[key] = *v
	}
}

func setString(attrs map[string]interface{}, key string, v *string) {
	if v != nil && *v != "" {
		attrs[key] = *v
	}
}

// SyncResult - итог синхронизации парковок с открытым API
type SyncResult struct {
	Fetched            int           `json:"fetched"`
	Inserted           int           `json:"inserted"`
	Updated            int           `json:"updated"`
	KeptCoordinates    int           `json:"kept_coordinates"`
	WithoutCoordinates int           `json:"without_coordinates"`
	Duration           time.Duration `json:"duration"`
}
