package internal

import (
	"context"
	"fmt"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"

	"github.com/precios-ar/precios-api/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPStatusError is returned when the remote server responds with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	Status     string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("http status response from %s: %s", e.URL, e.Status)
}

// Geocoder resolves a free-text address to coordinates. Any failure mode
// (transport error, non-2xx status, non-OK API status, empty result list)
// is reported as an error; the first candidate result wins when the service
// returns several.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (models.LatLng, error)
}

const (
	geocodeBaseUrl = "https://maps.googleapis.com/maps/api/geocode/json"
	geocodeRegion  = "ar"
	geocodeTimeout = 10 * time.Second
)

type googleGeocoder struct {
	baseUrl string
	apiKey  string
	region  string
	timeout time.Duration
	client  *http.Client
}

func NewGeocoder(apiKey string) Geocoder {
	return &googleGeocoder{
		baseUrl: geocodeBaseUrl,
		apiKey:  apiKey,
		region:  geocodeRegion,
		timeout: geocodeTimeout,
		client:  &http.Client{},
	}
}

func (g *googleGeocoder) Resolve(ctx context.Context, address string) (models.LatLng, error) {
	params := neturl.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)
	params.Set("region", g.region)
	url := g.baseUrl + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.LatLng{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return models.LatLng{}, fmt.Errorf("failed to fetch from %s: %w", g.baseUrl, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode > 299 {
		return models.LatLng{}, &HTTPStatusError{URL: g.baseUrl, Status: resp.Status, StatusCode: resp.StatusCode}
	}

	var geocodeResp models.GeocodeResponse
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&geocodeResp); err != nil {
		return models.LatLng{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if geocodeResp.Status != "OK" || len(geocodeResp.Results) == 0 {
		if geocodeResp.ErrorMessage != "" {
			return models.LatLng{}, errors.Newf("geocoding failed with status %s: %s", geocodeResp.Status, geocodeResp.ErrorMessage)
		}
		return models.LatLng{}, errors.Newf("geocoding failed with status %s", geocodeResp.Status)
	}

	return geocodeResp.Results[0].Geometry.Location, nil
}
