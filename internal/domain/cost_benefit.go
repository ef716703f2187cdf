package domain

import "math"

const (
	DefaultFuelEfficiencyKmPerLiter = 12.0
	DefaultFixedRefuelLiters        = 40.0
)

// CostBenefitParams - параметры модели выгоды поездки
type CostBenefitParams struct {
	FuelEfficiencyKmPerLiter float64
	FixedRefuelLiters        float64
}

// DefaultCostBenefitParams - 12 км/л, заправка 40 л
func DefaultCostBenefitParams() CostBenefitParams {
	return CostBenefitParams{
		FuelEfficiencyKmPerLiter: DefaultFuelEfficiencyKmPerLiter,
		FixedRefuelLiters:        DefaultFixedRefuelLiters,
	}
}

// CostBenefit - оценка поездки к сущности против средней цены по выборке
type CostBenefit struct {
	TotalSavings float64 `json:"total_savings"`
	TravelCost   float64 `json:"travel_cost"`
	NetSavings   float64 `json:"net_savings"`
	IsWorthIt    bool    `json:"is_worth_it"`
}

// Evaluate оценивает поездку туда и обратно до сущности.
// Стоимость поездки округляется до целого; NetSavings может быть отрицательным.
// Для сущности без цены используется цена 0.
func (p CostBenefitParams) Evaluate(entity *Entity, averagePrice, distanceMeters float64) CostBenefit {
	distanceKm := distanceMeters / 1000
	roundTripKm := distanceKm * 2
	litersForTravel := roundTripKm / p.FuelEfficiencyKmPerLiter
	travelCost := math.Round(litersForTravel * averagePrice)

	priceDiff := averagePrice - entity.PriceValue()
	totalSavings := priceDiff * p.FixedRefuelLiters
	netSavings := totalSavings - travelCost

	return CostBenefit{
		TotalSavings: totalSavings,
		TravelCost:   travelCost,
		NetSavings:   netSavings,
		IsWorthIt:    netSavings > 0,
	}
}

// EvaluateCostBenefit - Evaluate с параметрами по умолчанию
func EvaluateCostBenefit(entity *Entity, averagePrice, distanceMeters float64) CostBenefit {
	return DefaultCostBenefitParams().Evaluate(entity, averagePrice, distanceMeters)
}
