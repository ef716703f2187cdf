package usecase

import (
	"sort"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/pkg/errors"
)

// Ranker упорядочивает результаты поиска рядом по одному из режимов
type Ranker struct {
	params domain.CostBenefitParams
}

// NewRanker создает Ranker с параметрами модели выгоды
func NewRanker(params domain.CostBenefitParams) *Ranker {
	return &Ranker{params: params}
}

// AveragePrice - среднее арифметическое цен сущностей, у которых цена есть; 0 если таких нет
func AveragePrice(results []domain.NearbyResult) float64 {
	var sum float64
	var n int
	for _, r := range results {
		if r.Entity.HasPrice() {
			sum += *r.Entity.Price
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Rank строит полностью упорядоченный список для режима mode.
// Сортировка стабильная: при равных ключах сохраняется входной порядок.
//
//	price    - по возрастанию цены, при равной цене ближе выше; без цены исключаются
//	distance - по возрастанию расстояния, при равном расстоянии дешевле выше, без цены в конце
//	value    - по убыванию NetSavings; без цены исключаются
func (r *Ranker) Rank(results []domain.NearbyResult, mode domain.RankMode) (*domain.RankedList, error) {
	avg := AveragePrice(results)
	list := &domain.RankedList{
		Mode:         mode,
		Entries:      []domain.RankedEntry{},
		AveragePrice: avg,
	}

	switch mode {
	case domain.RankModePrice:
		for _, res := range results {
			if res.Entity.HasPrice() {
				list.Entries = append(list.Entries, domain.RankedEntry{NearbyResult: res})
			}
		}
		sort.SliceStable(list.Entries, func(i, j int) bool {
			a, b := list.Entries[i], list.Entries[j]
			if *a.Entity.Price != *b.Entity.Price {
				return *a.Entity.Price < *b.Entity.Price
			}
			return a.DistanceMeters < b.DistanceMeters
		})

	case domain.RankModeDistance:
		for _, res := range results {
			list.Entries = append(list.Entries, domain.RankedEntry{NearbyResult: res})
		}
		sort.SliceStable(list.Entries, func(i, j int) bool {
			a, b := list.Entries[i], list.Entries[j]
			if a.DistanceMeters != b.DistanceMeters {
				return a.DistanceMeters < b.DistanceMeters
			}
			return priceLess(a.Entity, b.Entity)
		})

	case domain.RankModeValue:
		for _, res := range results {
			if !res.Entity.HasPrice() {
				continue
			}
			cb := r.params.Evaluate(res.Entity, avg, res.DistanceMeters)
			list.Entries = append(list.Entries, domain.RankedEntry{NearbyResult: res, CostBenefit: &cb})
		}
		sort.SliceStable(list.Entries, func(i, j int) bool {
			return list.Entries[i].CostBenefit.NetSavings > list.Entries[j].CostBenefit.NetSavings
		})

	default:
		return nil, errors.ErrInvalidRankMode.WithDetails(map[string]interface{}{
			"mode": string(mode),
		})
	}

	return list, nil
}

// priceLess - сущность с ценой раньше сущности без цены, иначе по возрастанию цены
func priceLess(a, b *domain.Entity) bool {
	switch {
	case a.HasPrice() && b.HasPrice():
		return *a.Price < *b.Price
	case a.HasPrice():
		return true
	default:
		return false
	}
}

// Winners возвращает первый элемент ранжирования каждого режима
func (r *Ranker) Winners(results []domain.NearbyResult) domain.Winners {
	var w domain.Winners
	for _, mode := range domain.RankModes {
		list, err := r.Rank(results, mode)
		if err != nil {
			continue
		}
		best := list.Best()
		switch mode {
		case domain.RankModePrice:
			w.LowestPrice = best
		case domain.RankModeDistance:
			w.Closest = best
		case domain.RankModeValue:
			w.BestValue = best
		}
	}
	return w
}
