package internal

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kofalt/go-memoize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tavsec/gin-healthcheck/checks"

	"github.com/precios-ar/precios-api/internal/models"
)

var ATTRIBUTION = []string{
	"Contains public data from the Secretaría de Energía de la República Argentina (datos.energia.gob.ar)",
}

var stationsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "precios_stations_loaded",
	Help: "Number of stations currently loaded in the dataset store.",
})

// StationStore serves the converted stations document to the API. Search
// results are memoized per bounding box until the next reload.
type StationStore interface {
	Search(boundingBox []float64) ([]models.StationOutput, error)
	Reload() error
	Count() int
	LastUpdated() *time.Time
	Check() checks.Check
}

const searchCacheTTL = 90 * time.Second

type jsonFileStore struct {
	path string

	mu          sync.RWMutex
	stations    []models.StationOutput
	lastUpdated *time.Time
	cache       *memoize.Memoizer
}

func NewStationStore(path string) (StationStore, error) {
	store := &jsonFileStore{path: path}
	if err := store.Reload(); err != nil {
		return nil, err
	}
	return store, nil
}

func (store *jsonFileStore) Reload() error {
	data, err := os.ReadFile(store.path)
	if err != nil {
		return errors.Wrapf(err, "failed to read dataset from %s", store.path)
	}

	var stations []models.StationOutput
	if err := json.Unmarshal(data, &stations); err != nil {
		return errors.Wrapf(err, "failed to unmarshal dataset from %s", store.path)
	}

	now := time.Now().UTC()
	store.mu.Lock()
	store.stations = stations
	store.lastUpdated = &now
	store.cache = memoize.NewMemoizer(searchCacheTTL, 10*time.Minute)
	store.mu.Unlock()

	stationsLoaded.Set(float64(len(stations)))
	log.Printf("loaded %d stations from %s", len(stations), store.path)
	return nil
}

func (store *jsonFileStore) Search(boundingBox []float64) ([]models.StationOutput, error) {
	store.mu.RLock()
	stations := store.stations
	cache := store.cache
	store.mu.RUnlock()

	key := fmt.Sprintf("bbox:%v", boundingBox)
	results, err, _ := cache.Memoize(key, func() (any, error) {
		var matches []models.StationOutput
		for _, station := range stations {
			lng := station.Geometry.Coordinates[0]
			lat := station.Geometry.Coordinates[1]
			if lng >= boundingBox[0] && lat >= boundingBox[1] && lng <= boundingBox[2] && lat <= boundingBox[3] {
				matches = append(matches, station)
			}
		}
		return matches, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute search")
	}

	return results.([]models.StationOutput), nil
}

func (store *jsonFileStore) Count() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.stations)
}

func (store *jsonFileStore) LastUpdated() *time.Time {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.lastUpdated
}

func (store *jsonFileStore) Check() checks.Check {
	return &storeCheck{store: store}
}

type storeCheck struct {
	store *jsonFileStore
}

func (check *storeCheck) Name() string {
	return "dataset"
}

func (check *storeCheck) Pass() bool {
	return check.store.Count() > 0
}
