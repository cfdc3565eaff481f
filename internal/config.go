package internal

import (
	"log"
	"os"
	"strconv"
)

// Config carries the externally tunable settings: the geocoder credential
// (empty disables geocoding), the lookup concurrency limit, and whether bad
// input records are skipped instead of aborting the run.
type Config struct {
	GeocoderApiKey string
	Concurrency    int
	SkipBadRecords bool
}

func LoadConfig() *Config {
	cfg := &Config{
		GeocoderApiKey: os.Getenv("API_KEY"),
		Concurrency:    DefaultConcurrency,
	}

	if value := os.Getenv("GEOCODER_CONCURRENCY"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			log.Printf("ignoring invalid GEOCODER_CONCURRENCY value %q", value)
		} else {
			cfg.Concurrency = n
		}
	}

	if value := os.Getenv("SKIP_BAD_RECORDS"); value != "" {
		skip, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("ignoring invalid SKIP_BAD_RECORDS value %q", value)
		} else {
			cfg.SkipBadRecords = skip
		}
	}

	return cfg
}
