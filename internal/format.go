package internal

import (
	"fmt"
	"io"

	"github.com/precios-ar/precios-api/internal/models"
)

// FormatOutput flattens the station index into the output document order:
// stations in first-seen order, each with its products as a list in
// first-seen order. Unresolved coordinate axes fall back to 0.0 so the
// geometry stays total.
func FormatOutput(stations *models.StationIndex) []models.StationOutput {
	output := make([]models.StationOutput, 0, stations.Len())

	for _, station := range stations.Stations() {
		output = append(output, models.StationOutput{
			StationID:   station.StationID,
			StationName: station.StationName,
			Address:     station.Address,
			Town:        station.Town,
			Province:    station.Province,
			Flag:        station.Flag,
			FlagID:      station.FlagID,
			Geometry: models.PointGeometry{
				Type: "Point",
				Coordinates: [2]float64{
					orZero(station.Coordinates.Lng),
					orZero(station.Coordinates.Lat),
				},
			},
			Products: station.Products(),
		})
	}

	return output
}

// WriteJSON writes the output document pretty-printed with 2-space indent.
// Non-ASCII text is emitted literally.
func WriteJSON(w io.Writer, output []models.StationOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func orZero(value *float64) float64 {
	if value == nil {
		return 0.0
	}
	return *value
}
