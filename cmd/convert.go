package cmd

import (
	"context"
	"log"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/precios-ar/precios-api/internal"
	"github.com/precios-ar/precios-api/internal/models"
)

// Convert runs the full pipeline: read the historical prices CSV, aggregate
// rows into stations, resolve missing coordinates, and write the formatted
// JSON document.
func Convert(csvPath, outPath string, concurrency int, skipBadRecords bool) error {

	cfg := bootstrap()
	if concurrency > 0 {
		cfg.Concurrency = concurrency
	}
	if skipBadRecords {
		cfg.SkipBadRecords = true
	}

	records, err := readRecords(csvPath, cfg.SkipBadRecords)
	if err != nil {
		return err
	}
	log.Printf("read %d price records from %s", len(records), csvPath)

	stations := internal.Aggregate(records)
	log.Printf("aggregated %d stations", stations.Len())

	var geocoder internal.Geocoder
	if cfg.GeocoderApiKey == "" {
		log.Print("Warning: geocoder API key not found, geocoding will be disabled")
	} else {
		geocoder = internal.NewGeocoder(cfg.GeocoderApiKey)
	}

	resolver := internal.NewCoordinateResolver(geocoder, cfg.Concurrency)
	if err := resolver.Resolve(context.Background(), stations); err != nil {
		return errors.Wrap(err, "failed to resolve coordinates")
	}

	output := internal.FormatOutput(stations)

	outFile, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", outPath)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			log.Printf("failed to close output file: %v", err)
		}
	}()

	if err := internal.WriteJSON(outFile, output); err != nil {
		return errors.Wrapf(err, "failed to write %s", outPath)
	}

	log.Printf("wrote %d stations to %s", len(output), outPath)
	return nil
}

func readRecords(csvPath string, skipBadRecords bool) ([]models.PriceRecord, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", csvPath)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("failed to close input file: %v", err)
		}
	}()

	records := make([]models.PriceRecord, 0, 1024)
	skipped := 0
	for record := range internal.ParseCSV(file, true, models.PriceRecordFromCSV) {
		if record.Error != nil {
			// Source-level malformation is fatal even when bad records are
			// skipped; the skip setting gates per-record defects only.
			if errors.Is(record.Error, internal.ErrMalformedSource) {
				return nil, errors.Wrapf(record.Error, "failed to read %s", csvPath)
			}
			if skipBadRecords {
				log.Printf("skipping bad record: %v", record.Error)
				skipped++
				continue
			}
			return nil, errors.Wrap(record.Error, "failed to read price records")
		}
		records = append(records, *record.Value)
	}

	if len(records) == 0 && skipped > 0 {
		return nil, errors.Newf("all %d records in %s are malformed", skipped, csvPath)
	}

	return records, nil
}
