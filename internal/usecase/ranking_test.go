package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/usecase"
)

func result(id string, price *float64, distance float64) domain.NearbyResult {
	return domain.NearbyResult{
		Entity:         &domain.Entity{ID: id, Kind: domain.EntityKindFuel, Name: id, Price: price},
		DistanceMeters: distance,
	}
}

func entryIDs(list *domain.RankedList) []string {
	ids := make([]string, len(list.Entries))
	for i, e := range list.Entries {
		ids[i] = e.Entity.ID
	}
	return ids
}

func newRanker() *usecase.Ranker {
	return usecase.NewRanker(domain.DefaultCostBenefitParams())
}

func TestRanker_Rank(t *testing.T) {
	tests := []struct {
		name        string
		results     []domain.NearbyResult
		mode        domain.RankMode
		expected    []string
		description string
	}{
		{
			name: "price ascending",
			results: []domain.NearbyResult{
				result("A", ptrFloat64(1500), 0),
				result("B", ptrFloat64(1400), 900),
			},
			mode:        domain.RankModePrice,
			expected:    []string{"B", "A"},
			description: "1400 < 1500",
		},
		{
			name: "price ties broken by distance",
			results: []domain.NearbyResult{
				result("far", ptrFloat64(1500), 800),
				result("near", ptrFloat64(1500), 200),
				result("cheap", ptrFloat64(1450), 950),
			},
			mode:        domain.RankModePrice,
			expected:    []string{"cheap", "near", "far"},
			description: "equal price orders by ascending distance",
		},
		{
			name: "price excludes unpriced",
			results: []domain.NearbyResult{
				result("nop", nil, 10),
				result("A", ptrFloat64(1500), 300),
			},
			mode:        domain.RankModePrice,
			expected:    []string{"A"},
			description: "entity without price cannot be ranked by price",
		},
		{
			name: "distance ascending",
			results: []domain.NearbyResult{
				result("B", ptrFloat64(1400), 900),
				result("A", ptrFloat64(1500), 0),
			},
			mode:        domain.RankModeDistance,
			expected:    []string{"A", "B"},
			description: "0 < 900",
		},
		{
			name: "distance ties broken by price, unpriced last",
			results: []domain.NearbyResult{
				result("nop", nil, 500),
				result("p1500", ptrFloat64(1500), 500),
				result("p1400", ptrFloat64(1400), 500),
				result("close", nil, 100),
			},
			mode:        domain.RankModeDistance,
			expected:    []string{"close", "p1400", "p1500", "nop"},
			description: "unpriced entities sink to the end of their distance tie",
		},
		{
			name: "value descending net savings",
			results: []domain.NearbyResult{
				result("far-cheap", ptrFloat64(1300), 30000),
				result("near-small", ptrFloat64(1450), 500),
				result("expensive", ptrFloat64(1750), 1000),
				result("nop", nil, 0),
			},
			mode:        domain.RankModeValue,
			expected:    []string{"near-small", "far-cheap", "expensive"},
			description: "a big price advantage far away loses to a small one nearby",
		},
		{
			name: "stable for fully equal keys",
			results: []domain.NearbyResult{
				result("first", ptrFloat64(1500), 100),
				result("second", ptrFloat64(1500), 100),
				result("third", ptrFloat64(1500), 100),
			},
			mode:        domain.RankModePrice,
			expected:    []string{"first", "second", "third"},
			description: "input order is preserved when every key is equal",
		},
	}

	ranker := newRanker()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := ranker.Rank(tt.results, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, list.Mode)
			assert.Equal(t, tt.expected, entryIDs(list), tt.description)
		})
	}
}

func TestRanker_ValueCostBenefit(t *testing.T) {
	results := []domain.NearbyResult{
		result("expensive", ptrFloat64(1700), 0),
		result("cheap", ptrFloat64(1300), 10000),
	}

	list, err := newRanker().Rank(results, domain.RankModeValue)
	require.NoError(t, err)

	assert.Equal(t, 1500.0, list.AveragePrice)
	require.Len(t, list.Entries, 2)

	best := list.Best()
	assert.Equal(t, "cheap", best.Entity.ID)
	require.NotNil(t, best.CostBenefit)
	assert.Equal(t, domain.CostBenefit{
		TotalSavings: 8000,
		TravelCost:   2500,
		NetSavings:   5500,
		IsWorthIt:    true,
	}, *best.CostBenefit)

	assert.Equal(t, -8000.0, list.Entries[1].CostBenefit.NetSavings)
	assert.False(t, list.Entries[1].CostBenefit.IsWorthIt)
}

func TestRanker_AveragePriceIgnoresUnpriced(t *testing.T) {
	results := []domain.NearbyResult{
		result("a", ptrFloat64(1500), 0),
		result("b", ptrFloat64(1400), 900),
		result("nop", nil, 10),
	}

	assert.Equal(t, 1450.0, usecase.AveragePrice(results))

	list, err := newRanker().Rank(results, domain.RankModePrice)
	require.NoError(t, err)
	assert.Equal(t, 1450.0, list.AveragePrice)
	assert.NotContains(t, entryIDs(list), "nop")
}

func TestRanker_EmptyAndDegenerate(t *testing.T) {
	ranker := newRanker()

	for _, mode := range domain.RankModes {
		list, err := ranker.Rank(nil, mode)
		require.NoError(t, err)
		assert.Empty(t, list.Entries)
		assert.NotNil(t, list.Entries)
		assert.Equal(t, 0.0, list.AveragePrice)
		assert.Nil(t, list.Best())
	}

	// без цен value-ранжирование пустое, но distance работает
	unpriced := []domain.NearbyResult{result("x", nil, 10), result("y", nil, 5)}
	list, err := ranker.Rank(unpriced, domain.RankModeValue)
	require.NoError(t, err)
	assert.Empty(t, list.Entries)
	assert.Equal(t, 0.0, list.AveragePrice)

	list, err = ranker.Rank(unpriced, domain.RankModeDistance)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, entryIDs(list))
}

func TestRanker_UnknownMode(t *testing.T) {
	_, err := newRanker().Rank(nil, domain.RankMode("rating"))
	assert.Error(t, err)
}

func TestRanker_Idempotent(t *testing.T) {
	results := []domain.NearbyResult{
		result("a", ptrFloat64(1500), 300),
		result("b", ptrFloat64(1500), 300),
		result("c", nil, 300),
		result("d", ptrFloat64(1400), 700),
		result("e", ptrFloat64(1600), 50),
	}

	ranker := newRanker()
	for _, mode := range domain.RankModes {
		first, err := ranker.Rank(results, mode)
		require.NoError(t, err)
		second, err := ranker.Rank(results, mode)
		require.NoError(t, err)
		assert.Equal(t, entryIDs(first), entryIDs(second), string(mode))
	}

	// входной срез не изменяется
	assert.Equal(t, "a", results[0].Entity.ID)
	assert.Equal(t, "e", results[4].Entity.ID)
}

func TestRanker_Winners(t *testing.T) {
	results := []domain.NearbyResult{
		result("closest", ptrFloat64(1600), 50),
		result("cheapest", ptrFloat64(1300), 2000),
		result("middle", ptrFloat64(1450), 400),
	}

	w := newRanker().Winners(results)

	require.NotNil(t, w.LowestPrice)
	assert.Equal(t, "cheapest", w.LowestPrice.Entity.ID)
	require.NotNil(t, w.Closest)
	assert.Equal(t, "closest", w.Closest.Entity.ID)
	require.NotNil(t, w.BestValue)
	assert.NotNil(t, w.BestValue.CostBenefit)

	empty := newRanker().Winners(nil)
	assert.Nil(t, empty.LowestPrice)
	assert.Nil(t, empty.Closest)
	assert.Nil(t, empty.BestValue)
}
