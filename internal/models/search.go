package models

import "time"

type SearchResponse struct {
	Results     []StationOutput   `json:"results"`
	Attribution []string          `json:"attribution"`
	Statistics  *SearchStatistics `json:"statistics,omitempty"`
	LastUpdated *time.Time        `json:"last_updated,omitempty"`
}

type SearchStatistics struct {
	CheapestStations  map[string][]int          `json:"cheapest_stations"`
	LowestPrice       map[string]float64        `json:"lowest_price"`
	AveragePrice      map[string]float64        `json:"average_price"`
	HighestPrice      map[string]float64        `json:"highest_price"`
	PriceDistribution map[string]map[string]int `json:"price_distribution"`
	StandardDeviation map[string]float64        `json:"standard_deviation"`
	FlagDistribution  map[string]int            `json:"flag_distribution"`
}
