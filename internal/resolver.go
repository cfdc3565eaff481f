package internal

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/precios-ar/precios-api/internal/models"
)

const (
	DefaultConcurrency = 5

	// Minimum spacing after each lookup before its concurrency slot is
	// released, as a courtesy rate-limit towards the geocoding service.
	defaultCooldown = 100 * time.Millisecond
)

// CoordinateResolver fills in missing coordinates for stations that lack a
// valid pair. Resolution mutates only the coordinate fields, never regresses
// a valid pair, and attempts each station at most once per run.
type CoordinateResolver interface {
	Resolve(ctx context.Context, stations *models.StationIndex) error
}

// NewCoordinateResolver returns a resolver backed by the given geocoder,
// running at most concurrency lookups in flight at once. A nil geocoder
// (no credential configured) yields a no-op resolver.
func NewCoordinateResolver(geocoder Geocoder, concurrency int) CoordinateResolver {
	if geocoder == nil {
		return &disabledResolver{}
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &geocodingResolver{
		geocoder:    geocoder,
		concurrency: concurrency,
		cooldown:    defaultCooldown,
	}
}

type disabledResolver struct{}

func (r *disabledResolver) Resolve(_ context.Context, _ *models.StationIndex) error {
	log.Print("geocoding is disabled, using existing coordinates")
	return nil
}

type geocodingResolver struct {
	geocoder    Geocoder
	concurrency int
	cooldown    time.Duration
}

func (r *geocodingResolver) Resolve(ctx context.Context, stations *models.StationIndex) error {
	var pending []*models.Station
	for _, station := range stations.Stations() {
		if !station.Coordinates.Valid() {
			pending = append(pending, station)
		}
	}

	if len(pending) == 0 {
		log.Print("all stations have valid coordinates")
		return nil
	}
	log.Printf("found %d stations with missing or invalid coordinates", len(pending))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, station := range pending {
		g.Go(func() error {
			r.resolveStation(ctx, station)

			// Hold the slot for the cooldown so sustained throughput stays
			// at roughly concurrency lookups per (cooldown + latency).
			select {
			case <-time.After(r.cooldown):
			case <-ctx.Done():
			}
			return nil
		})
	}

	return g.Wait()
}

// resolveStation touches only the given station's coordinates, so concurrent
// calls for different stations never conflict. Lookup failures are logged
// and leave the prior values untouched.
func (r *geocodingResolver) resolveStation(ctx context.Context, station *models.Station) {
	address := fmt.Sprintf("%s, %s, %s, Argentina", station.Address, station.Town, station.Province)

	location, err := r.geocoder.Resolve(ctx, address)
	if err != nil {
		log.Printf("failed to geocode station %d (%s): %v", station.StationID, address, err)
		return
	}
	if location.Lat == 0 || location.Lng == 0 {
		log.Printf("failed to geocode station %d (%s): empty location", station.StationID, address)
		return
	}

	lat, lng := location.Lat, location.Lng
	station.Coordinates.Lat = &lat
	station.Coordinates.Lng = &lng
	log.Printf("geocoded station %d: %s => %f, %f", station.StationID, address, lat, lng)
}
