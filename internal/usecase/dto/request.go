package dto

// NearbyRequest - поиск сущностей вида Kind в радиусе от точки
type NearbyRequest struct {
	Kind     string   `params:"kind" validate:"required,entitykind"`
	Lat      *float64 `query:"lat" validate:"required,min=-90,max=90"`
	Lng      *float64 `query:"lng" validate:"required,min=-180,max=180"`
	RadiusKm *float64 `query:"radius_km" validate:"omitempty,gt=0"`
}

// SearchRequest - поиск рядом с ранжированием по режиму Mode
type SearchRequest struct {
	Kind     string   `params:"kind" validate:"required,entitykind"`
	Lat      *float64 `query:"lat" validate:"required,min=-90,max=90"`
	Lng      *float64 `query:"lng" validate:"required,min=-180,max=180"`
	RadiusKm *float64 `query:"radius_km" validate:"omitempty,gt=0"`
	Mode     string   `query:"mode" validate:"omitempty,rankmode"`
}
