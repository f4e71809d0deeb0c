package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "https://api.open-meteo.com/v1/forecast", config.Weather.BaseURL)
		assert.Equal(t, 7, config.Weather.ForecastDays)
		assert.Equal(t, 15, config.Weather.CacheTTLMinutes)
		assert.Equal(t, 30, config.AirQuality.CacheTTLMinutes)
		assert.Equal(t, "https://geocoding-api.open-meteo.com/v1/search", config.Geocoding.SearchURL)
		assert.Equal(t, 10, config.Geocoding.MaxResults)
		assert.Equal(t, "memory", config.Cache.Type)
		assert.Equal(t, "weatherdash.db", config.Database.Path)
		assert.Equal(t, "Berlin", config.Location.DefaultName)
		assert.Equal(t, 52.52, config.Location.DefaultLatitude)
		assert.Equal(t, 10, config.Client.TimeoutSeconds)
		assert.Equal(t, 1, config.Client.MaxRetries)
		assert.Equal(t, 5, config.Alerts.CheckIntervalMinutes)
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("SERVER_PORT", "9090"))
		require.NoError(t, os.Setenv("WEATHER_BASE_URL", "http://localhost:8089/v1/forecast"))
		require.NoError(t, os.Setenv("CACHE_TYPE", "redis"))
		require.NoError(t, os.Setenv("CACHE_REDIS_ADDR", "redis:6379"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "http://localhost:8089/v1/forecast", config.Weather.BaseURL)
		assert.Equal(t, "redis", config.Cache.Type)
		assert.Equal(t, "redis:6379", config.Cache.RedisAddr)
	})

	t.Run("InvalidPort", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("SERVER_PORT", "70000"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "SERVER_PORT")
	})

	t.Run("InvalidBaseURL", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("WEATHER_BASE_URL", "ftp://example.com"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "WEATHER_BASE_URL")
	})

	t.Run("InvalidCacheType", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("CACHE_TYPE", "memcached"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "CACHE_TYPE")
	})

	t.Run("RetriesBounded", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("CLIENT_MAX_RETRIES", "5"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "CLIENT_MAX_RETRIES")
	})

	t.Run("InvalidDefaultLocation", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("LOCATION_DEFAULT_LATITUDE", "95"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "LOCATION_DEFAULT_LATITUDE")
	})
}
