package stats

import (
	"fmt"
	"math"

	"github.com/precios-ar/precios-api/internal/models"
)

// Derive computes per-product price statistics over a set of search results,
// using each product's most recent non-null price.
func Derive(results []models.StationOutput, bucketSize int) *models.SearchStatistics {
	if bucketSize <= 0 {
		bucketSize = 5
	}
	stats := &models.SearchStatistics{
		CheapestStations:  make(map[string][]int),
		LowestPrice:       make(map[string]float64),
		AveragePrice:      make(map[string]float64),
		HighestPrice:      make(map[string]float64),
		PriceDistribution: make(map[string]map[string]int),
		StandardDeviation: make(map[string]float64),
		FlagDistribution:  make(map[string]int),
	}

	// Group latest prices by product name
	productPrices := make(map[string][]float64)
	productStations := make(map[string]map[float64][]int) // price -> station ids

	for _, result := range results {
		for _, product := range result.Products {
			price, ok := latestPrice(product)
			if !ok {
				continue
			}

			productPrices[product.ProductName] = append(productPrices[product.ProductName], price)

			if productStations[product.ProductName] == nil {
				productStations[product.ProductName] = make(map[float64][]int)
			}
			productStations[product.ProductName][price] = append(productStations[product.ProductName][price], result.StationID)
		}
	}

	for productName, prices := range productPrices {
		if len(prices) == 0 {
			continue
		}

		// Lowest/avg/highest price and cheapest stations
		lowestPrice := prices[0]
		highestPrice := prices[0]
		sum := 0.0

		for _, p := range prices {
			if p < lowestPrice {
				lowestPrice = p
			}
			if p > highestPrice {
				highestPrice = p
			}
			sum += p
		}
		stats.LowestPrice[productName] = lowestPrice
		stats.HighestPrice[productName] = highestPrice
		stats.CheapestStations[productName] = productStations[productName][lowestPrice]

		avgPrice := sum / float64(len(prices))
		stats.AveragePrice[productName] = math.Round(avgPrice*10) / 10

		// Standard deviation
		if len(prices) > 1 {
			variance := 0.0
			for _, p := range prices {
				variance += math.Pow(p-avgPrice, 2)
			}
			variance /= float64(len(prices))
			stats.StandardDeviation[productName] = math.Sqrt(variance)
		}

		stats.PriceDistribution[productName] = make(map[string]int)
		for _, p := range prices {
			price := int(p)
			bucketStart := (price / bucketSize) * bucketSize
			bucketEnd := bucketStart + bucketSize - 1
			bucketKey := fmt.Sprintf("%d-%d", bucketStart, bucketEnd)
			stats.PriceDistribution[productName][bucketKey]++
		}
	}

	// Flag distribution - count results by flag name
	for _, result := range results {
		if result.Flag != "" {
			stats.FlagDistribution[result.Flag]++
		}
	}

	return stats
}

// latestPrice returns the most recent non-null price in the product's
// history, which is ordered most-recent-first.
func latestPrice(product *models.Product) (float64, bool) {
	for _, point := range product.Prices {
		if point.Price != nil {
			return *point.Price, true
		}
	}
	return 0, false
}
