package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(server *httptest.Server) *googleGeocoder {
	return &googleGeocoder{
		baseUrl: server.URL,
		apiKey:  "test-key",
		region:  "ar",
		timeout: time.Second,
		client:  server.Client(),
	}
}

func TestGoogleGeocoder(t *testing.T) {

	t.Run("Successful lookup returns the first result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "AV. RIVADAVIA 1000, CABA, Argentina", r.URL.Query().Get("address"))
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			assert.Equal(t, "ar", r.URL.Query().Get("region"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"status": "OK",
				"results": [
					{"geometry": {"location": {"lat": -34.608, "lng": -58.392}}},
					{"geometry": {"location": {"lat": -31.4, "lng": -64.2}}}
				]
			}`))
		}))
		defer server.Close()

		location, err := newTestGeocoder(server).Resolve(context.Background(), "AV. RIVADAVIA 1000, CABA, Argentina")
		require.NoError(t, err)
		assert.Equal(t, -34.608, location.Lat)
		assert.Equal(t, -58.392, location.Lng)
	})

	t.Run("Non-OK status is a failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
		}))
		defer server.Close()

		_, err := newTestGeocoder(server).Resolve(context.Background(), "nowhere")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ZERO_RESULTS")
	})

	t.Run("OK status with empty results is a failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "OK", "results": []}`))
		}))
		defer server.Close()

		_, err := newTestGeocoder(server).Resolve(context.Background(), "nowhere")
		require.Error(t, err)
	})

	t.Run("Non-2xx response yields HTTPStatusError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newTestGeocoder(server).Resolve(context.Background(), "anywhere")
		require.Error(t, err)

		var statusErr *HTTPStatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	})

	t.Run("Slow responses hit the timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"status": "OK"}`))
		}))
		defer server.Close()

		geocoder := newTestGeocoder(server)
		geocoder.timeout = 20 * time.Millisecond

		_, err := geocoder.Resolve(context.Background(), "anywhere")
		require.Error(t, err)
	})
}
