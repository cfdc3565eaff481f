package internal

import (
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/precios-ar/precios-api/internal/models"
)

// EffectiveDateLayout is the timestamp format used by the fecha_vigencia
// column of the source dataset.
const EffectiveDateLayout = "02/01/2006 15:04"

type datedRecord struct {
	models.PriceRecord
	effectiveAt time.Time // zero when the date failed to parse
}

// Aggregate groups flat price records into stations, each holding a product
// price history in descending effective-date order.
//
// All records are sorted globally by descending effective date before
// grouping, so the first record seen for a station supplies its display
// fields (the most recent observation) and each product's history is
// appended already ordered. Records with an unparseable date carry the zero
// time, which sorts after every real timestamp; the stable sort keeps
// equal-date rows in arrival order.
func Aggregate(records []models.PriceRecord) *models.StationIndex {
	rows := make([]datedRecord, len(records))
	for i, rec := range records {
		ts, err := time.Parse(EffectiveDateLayout, rec.EffectiveDate)
		if err != nil {
			log.Printf("unparseable effective date %q for station %d, treating as unknown", rec.EffectiveDate, rec.StationID)
			ts = time.Time{}
		}
		rows[i] = datedRecord{PriceRecord: rec, effectiveAt: ts}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].effectiveAt.After(rows[j].effectiveAt)
	})

	index := models.NewStationIndex()
	for _, row := range rows {
		station, ok := index.Get(row.StationID)
		if !ok {
			station = seedStation(row)
			index.Add(station)
		}

		product := station.Product(row.ProductID, row.ProductName)
		product.Prices = append(product.Prices, pricePoint(row))
	}

	return index
}

func seedStation(row datedRecord) *models.Station {
	return &models.Station{
		StationID:   row.StationID,
		StationName: row.StationName,
		Address:     row.Address,
		Town:        row.Town,
		Province:    row.Province,
		Flag:        row.Flag,
		FlagID:      row.FlagID,
		Coordinates: models.Coordinates{
			Lat: parseOptionalFloat(row.Latitude),
			Lng: parseOptionalFloat(row.Longitude),
		},
	}
}

func pricePoint(row datedRecord) models.PricePoint {
	point := models.PricePoint{
		Price:      parseOptionalFloat(row.Price),
		HourType:   row.HourType,
		HourTypeID: row.HourTypeID,
	}
	if !row.effectiveAt.IsZero() {
		date := row.effectiveAt.UTC().Format(time.RFC3339)
		point.Date = &date
	}
	return point
}

func parseOptionalFloat(value string) *float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &f
}
