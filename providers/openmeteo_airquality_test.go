package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

func newAirQualityProvider(baseURL string) *OpenMeteoAirQualityProvider {
	return NewOpenMeteoAirQualityProvider(&config.AirQualityConfig{
		BaseURL: baseURL,
	}, &testClientConfig)
}

func TestFetchAirQuality_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "48.8566", q.Get("latitude"))
		assert.Equal(t, "auto", q.Get("timezone"))
		assert.Contains(t, q.Get("current"), "european_aqi")
		assert.Contains(t, q.Get("current"), "pm2_5")
		assert.Contains(t, q.Get("current"), "ammonia")

		_, err := w.Write([]byte(`{
			"latitude": 48.8566,
			"longitude": 2.3522,
			"current": {
				"time": "2026-03-14T10:00",
				"european_aqi": 45,
				"us_aqi": 52,
				"pm10": 21.3,
				"pm2_5": 14.8,
				"carbon_monoxide": 233,
				"nitrogen_dioxide": 18.4,
				"sulphur_dioxide": 2.1,
				"ozone": 61,
				"ammonia": 4.2,
				"dust": 0
			}
		}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	provider := newAirQualityProvider(server.URL)

	air, err := provider.FetchAirQuality(context.Background(),
		models.Coordinates{Latitude: 48.8566, Longitude: 2.3522})

	require.NoError(t, err)
	require.NotNil(t, air)
	assert.Equal(t, 45.0, air.Current.EuropeanAQI)
	assert.Equal(t, 14.8, air.Current.PM25)
	assert.Equal(t, 10, air.Current.Time.Hour())
}

func TestFetchAirQuality_InvalidCoordinates(t *testing.T) {
	provider := newAirQualityProvider("http://localhost:1")

	_, err := provider.FetchAirQuality(context.Background(),
		models.Coordinates{Latitude: 0, Longitude: 200})

	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ValidationError, appErr.Type)
}

func TestFetchAirQuality_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider := newAirQualityProvider(server.URL)

	_, err := provider.FetchAirQuality(context.Background(),
		models.Coordinates{Latitude: 48.8566, Longitude: 2.3522})

	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.FetchError, appErr.Type)
}
