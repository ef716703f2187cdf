package domain

// EntityKind - вид точки интереса
type EntityKind string

const (
	EntityKindFuel    EntityKind = "fuel"
	EntityKindParking EntityKind = "parking"
)

// EntityKinds - все поддерживаемые виды
var EntityKinds = []EntityKind{EntityKindFuel, EntityKindParking}

// ParseEntityKind разбирает строку вида сущности
func ParseEntityKind(s string) (EntityKind, bool) {
	switch EntityKind(s) {
	case EntityKindFuel, EntityKindParking:
		return EntityKind(s), true
	}
	return "", false
}

// Entity - точка интереса (АЗС или парковка), уже нормализованная на границе хранилища.
// Location и Price опциональны: сущность без координат не попадает в поиск рядом,
// сущность без цены не участвует в ранжировании по цене и выгоде.
type Entity struct {
	ID       string     `json:"id"`
	Kind     EntityKind `json:"kind"`
	Name     string     `json:"name"`
	Brand    string     `json:"brand,omitempty"`
	Address  string     `json:"address,omitempty"`
	Location *GeoPoint  `json:"location,omitempty"`
	Price    *float64   `json:"price,omitempty"`

	// Информационные поля (часы работы, вместимость, тарифы) передаются без изменений
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// HasLocation - известны ли координаты
func (e *Entity) HasLocation() bool {
	return e.Location != nil
}

// HasPrice - известна ли цена
func (e *Entity) HasPrice() bool {
	return e.Price != nil
}

// PriceValue возвращает цену или 0, если она неизвестна
func (e *Entity) PriceValue() float64 {
	if e.Price == nil {
		return 0
	}
	return *e.Price
}
