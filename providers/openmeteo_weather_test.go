package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

var testClientConfig = config.ClientConfig{
	TimeoutSeconds: 5,
	MaxRetries:     0,
	RateLimitRPS:   100,
	RateLimitBurst: 100,
}

const weatherPayload = `{
	"latitude": 52.52,
	"longitude": 13.405,
	"timezone": "Europe/Berlin",
	"current": {
		"time": "2026-03-14T10:00",
		"temperature_2m": 12.5,
		"apparent_temperature": 10.1,
		"weather_code": 61,
		"wind_speed_10m": 14.2,
		"wind_direction_10m": 230,
		"relative_humidity_2m": 82,
		"surface_pressure": 1011.4,
		"is_day": 1,
		"precipitation": 0.4,
		"uv_index": 2.1,
		"cloud_cover": 90
	},
	"hourly": {
		"time": ["2026-03-14T10:00", "2026-03-14T11:00", "2026-03-14T12:00"],
		"temperature_2m": [12.5, 13.0, 13.4],
		"weather_code": [61, 61, 3],
		"precipitation": [0.4, 0.2, 0],
		"precipitation_probability": [80, 60, 20],
		"wind_speed_10m": [14.2, 13.8, 12.9],
		"relative_humidity_2m": [82, 80, 77]
	},
	"daily": {
		"time": ["2026-03-14"],
		"weather_code": [61],
		"temperature_2m_max": [14.1],
		"temperature_2m_min": [6.3],
		"precipitation_sum": [3.2],
		"precipitation_probability_max": [85],
		"wind_speed_10m_max": [22.4],
		"uv_index_max": [3.0],
		"sunrise": ["2026-03-14T06:24"],
		"sunset": ["2026-03-14T18:09"]
	}
}`

func newWeatherProvider(baseURL string) *OpenMeteoWeatherProvider {
	return NewOpenMeteoWeatherProvider(&config.WeatherConfig{
		BaseURL:      baseURL,
		ForecastDays: 7,
	}, &testClientConfig)
}

func TestFetchWeather_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "52.5200", q.Get("latitude"))
		assert.Equal(t, "13.4050", q.Get("longitude"))
		assert.Equal(t, "celsius", q.Get("temperature_unit"))
		assert.Equal(t, "kmh", q.Get("wind_speed_unit"))
		assert.Equal(t, "auto", q.Get("timezone"))
		assert.Equal(t, "7", q.Get("forecast_days"))
		assert.Contains(t, q.Get("current"), "uv_index")
		assert.Contains(t, q.Get("hourly"), "precipitation_probability")
		assert.Contains(t, q.Get("daily"), "sunset")

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(weatherPayload))
		assert.NoError(t, err)
	}))
	defer server.Close()

	provider := newWeatherProvider(server.URL)
	coords := models.Coordinates{Latitude: 52.52, Longitude: 13.405}

	weather, err := provider.FetchWeather(context.Background(), coords, models.UnitCelsius)

	require.NoError(t, err)
	require.NotNil(t, weather)
	assert.Equal(t, "Europe/Berlin", weather.Timezone)
	assert.Equal(t, models.UnitCelsius, weather.Unit)
	assert.Equal(t, 12.5, weather.Current.Temperature)
	assert.Equal(t, 61, weather.Current.WeatherCode)
	assert.True(t, weather.Current.IsDay)
	assert.Equal(t, 90.0, weather.Current.CloudCover)
	assert.Equal(t, 3, weather.Hourly.Len())
	assert.Equal(t, 13.0, weather.Hourly.Temperature[1])
	assert.Len(t, weather.Daily.Time, 1)
	assert.Equal(t, 14.1, weather.Daily.TemperatureMax[0])
	assert.Equal(t, 6, weather.Daily.Sunrise[0].Hour())
}

func TestFetchWeather_InvalidCoordinates(t *testing.T) {
	provider := newWeatherProvider("http://localhost:1")

	_, err := provider.FetchWeather(context.Background(),
		models.Coordinates{Latitude: 95, Longitude: 0}, models.UnitCelsius)

	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ValidationError, appErr.Type)
}

func TestFetchWeather_InvalidUnit(t *testing.T) {
	provider := newWeatherProvider("http://localhost:1")

	_, err := provider.FetchWeather(context.Background(),
		models.Coordinates{}, models.TemperatureUnit("kelvin"))

	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ValidationError, appErr.Type)
}

func TestFetchWeather_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	provider := newWeatherProvider(server.URL)

	_, err := provider.FetchWeather(context.Background(),
		models.Coordinates{Latitude: 52.52, Longitude: 13.405}, models.UnitCelsius)

	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.FetchError, appErr.Type)
}

func TestFetchWeather_MismatchedHourlyArrays(t *testing.T) {
	// hourly temperature array shorter than the time axis
	broken := `{
		"latitude": 52.52, "longitude": 13.405, "timezone": "Europe/Berlin",
		"current": {"time": "2026-03-14T10:00", "is_day": 1},
		"hourly": {
			"time": ["2026-03-14T10:00", "2026-03-14T11:00"],
			"temperature_2m": [12.5],
			"weather_code": [61, 61],
			"precipitation": [0, 0],
			"precipitation_probability": [0, 0],
			"wind_speed_10m": [0, 0],
			"relative_humidity_2m": [0, 0]
		},
		"daily": {
			"time": ["2026-03-14"], "weather_code": [61],
			"temperature_2m_max": [14.1], "temperature_2m_min": [6.3],
			"precipitation_sum": [0], "precipitation_probability_max": [0],
			"wind_speed_10m_max": [0], "uv_index_max": [0],
			"sunrise": ["2026-03-14T06:24"], "sunset": ["2026-03-14T18:09"]
		}
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(broken))
		assert.NoError(t, err)
	}))
	defer server.Close()

	provider := newWeatherProvider(server.URL)

	_, err := provider.FetchWeather(context.Background(),
		models.Coordinates{Latitude: 52.52, Longitude: 13.405}, models.UnitCelsius)

	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.DataShapeError, appErr.Type)
}

func TestFetchWeather_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, err := w.Write([]byte(weatherPayload))
		assert.NoError(t, err)
	}))
	defer server.Close()

	cfg := testClientConfig
	cfg.MaxRetries = 1
	provider := NewOpenMeteoWeatherProvider(&config.WeatherConfig{
		BaseURL:      server.URL,
		ForecastDays: 7,
	}, &cfg)

	weather, err := provider.FetchWeather(context.Background(),
		models.Coordinates{Latitude: 52.52, Longitude: 13.405}, models.UnitCelsius)

	require.NoError(t, err)
	assert.NotNil(t, weather)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchWeather_UnitRoundTrip(t *testing.T) {
	// The same snapshot fetched in fahrenheit differs only in the
	// unit-dependent numeric fields, not timestamps or codes.
	fahrenheitPayload := weatherPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(fahrenheitPayload))
		assert.NoError(t, err)
	}))
	defer server.Close()

	provider := newWeatherProvider(server.URL)
	coords := models.Coordinates{Latitude: 52.52, Longitude: 13.405}

	celsius, err := provider.FetchWeather(context.Background(), coords, models.UnitCelsius)
	require.NoError(t, err)
	fahrenheit, err := provider.FetchWeather(context.Background(), coords, models.UnitFahrenheit)
	require.NoError(t, err)

	assert.Equal(t, celsius.Current.Time, fahrenheit.Current.Time)
	assert.Equal(t, celsius.Current.WeatherCode, fahrenheit.Current.WeatherCode)
	assert.Equal(t, celsius.Hourly.Time, fahrenheit.Hourly.Time)
	assert.Equal(t, celsius.Daily.WeatherCode, fahrenheit.Daily.WeatherCode)
	assert.NotEqual(t, celsius.Unit, fahrenheit.Unit)
}
