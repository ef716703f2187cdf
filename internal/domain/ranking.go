package domain

// RankMode - критерий ранжирования
type RankMode string

const (
	RankModePrice    RankMode = "price"
	RankModeDistance RankMode = "distance"
	RankModeValue    RankMode = "value"
)

// RankModes - все режимы в порядке отображения
var RankModes = []RankMode{RankModePrice, RankModeDistance, RankModeValue}

// ParseRankMode разбирает режим; "efficiency" - прежнее название режима value
func ParseRankMode(s string) (RankMode, bool) {
	switch s {
	case string(RankModePrice):
		return RankModePrice, true
	case string(RankModeDistance):
		return RankModeDistance, true
	case string(RankModeValue), "efficiency":
		return RankModeValue, true
	}
	return "", false
}

// NearbyResult - сущность с расстоянием от центра конкретного запроса.
// Живёт только в рамках запроса; кешировать по ID сущности нельзя.
type NearbyResult struct {
	Entity         *Entity `json:"entity"`
	DistanceMeters float64 `json:"distance_meters"`
}

// RankedEntry - элемент ранжированного списка
type RankedEntry struct {
	NearbyResult
	CostBenefit *CostBenefit `json:"cost_benefit,omitempty"`
}

// RankedList - полностью упорядоченный список для режима Mode.
// Первый элемент - лучший в этом режиме.
type RankedList struct {
	Mode         RankMode      `json:"mode"`
	Entries      []RankedEntry `json:"entries"`
	AveragePrice float64       `json:"average_price"`
}

// Best возвращает первый элемент или nil для пустого списка
func (l *RankedList) Best() *RankedEntry {
	if l == nil || len(l.Entries) == 0 {
		return nil
	}
	return &l.Entries[0]
}

// Len - количество элементов
func (l *RankedList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// Winners - лучшая сущность в каждом режиме
type Winners struct {
	LowestPrice *RankedEntry `json:"lowest_price,omitempty"`
	Closest     *RankedEntry `json:"closest,omitempty"`
	BestValue   *RankedEntry `json:"best_value,omitempty"`
}
