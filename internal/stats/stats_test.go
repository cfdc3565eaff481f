package stats

import (
	"testing"

	"github.com/precios-ar/precios-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func station(id int, flag string, products ...*models.Product) models.StationOutput {
	return models.StationOutput{
		StationID: id,
		Flag:      flag,
		Products:  products,
	}
}

func product(name string, prices ...*float64) *models.Product {
	p := &models.Product{ProductID: 2, ProductName: name}
	for _, price := range prices {
		p.Prices = append(p.Prices, models.PricePoint{Price: price})
	}
	return p
}

func TestDerive(t *testing.T) {
	results := []models.StationOutput{
		station(1, "YPF", product("Nafta", floatPtr(300), floatPtr(280))),
		station(2, "SHELL C.A.P.S.A.", product("Nafta", floatPtr(320))),
		station(3, "YPF", product("Nafta", nil, floatPtr(310)), product("Gasoil", floatPtr(290))),
		station(4, "GULF", product("Gasoil", nil)),
	}

	stats := Derive(results, 10)
	require.NotNil(t, stats)

	t.Run("Lowest, average and highest per product", func(t *testing.T) {
		assert.Equal(t, 300.0, stats.LowestPrice["Nafta"])
		assert.Equal(t, 320.0, stats.HighestPrice["Nafta"])
		assert.Equal(t, 310.0, stats.AveragePrice["Nafta"])
		assert.Equal(t, []int{1}, stats.CheapestStations["Nafta"])
	})

	t.Run("Most recent non-null price is used", func(t *testing.T) {
		// Station 3's latest Nafta observation is null, so 310 counts instead
		assert.Contains(t, stats.PriceDistribution["Nafta"], "310-319")
		total := 0
		for _, count := range stats.PriceDistribution["Nafta"] {
			total += count
		}
		assert.Equal(t, 3, total)
	})

	t.Run("Products with only null prices are excluded", func(t *testing.T) {
		assert.Equal(t, 290.0, stats.LowestPrice["Gasoil"])
		assert.Equal(t, 290.0, stats.HighestPrice["Gasoil"])
	})

	t.Run("Flag distribution", func(t *testing.T) {
		assert.Equal(t, 2, stats.FlagDistribution["YPF"])
		assert.Equal(t, 1, stats.FlagDistribution["SHELL C.A.P.S.A."])
		assert.Equal(t, 1, stats.FlagDistribution["GULF"])
	})
}
