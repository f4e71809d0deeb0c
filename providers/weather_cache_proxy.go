package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
	"weatherdash.app/metrics"
	"weatherdash.app/models"
	"weatherdash.app/providers/cache"
)

// WeatherCacheProxy caches weather snapshots for a stale window keyed by
// (latitude, longitude, unit). Concurrent requests for the same key while
// one fetch is in flight are coalesced to a single upstream call.
type WeatherCacheProxy struct {
	provider WeatherProvider
	cache    cache.Interface
	ttl      time.Duration
	group    singleflight.Group
	metrics  *metrics.CacheMetrics
}

func NewWeatherCacheProxy(provider WeatherProvider, c cache.Interface, ttl time.Duration) *WeatherCacheProxy {
	return &WeatherCacheProxy{
		provider: provider,
		cache:    c,
		ttl:      ttl,
		metrics:  metrics.NewCacheMetrics("weather"),
	}
}

func (p *WeatherCacheProxy) FetchWeather(ctx context.Context, coords models.Coordinates, unit models.TemperatureUnit) (*models.WeatherData, error) {
	key := weatherCacheKey(coords, unit)

	if data, found := p.cache.Get(ctx, key); found {
		var weather models.WeatherData
		if err := json.Unmarshal(data, &weather); err == nil {
			p.metrics.RecordHit()
			slog.Debug("weather cache hit", "key", key)
			return &weather, nil
		}
		// corrupt entry: drop it and fetch fresh
		p.cache.Delete(ctx, key)
	}

	p.metrics.RecordMiss()
	slog.Debug("weather cache miss", "key", key)

	result, err, _ := p.group.Do(key, func() (interface{}, error) {
		started := time.Now()
		weather, fetchErr := p.provider.FetchWeather(ctx, coords, unit)
		if fetchErr != nil {
			return nil, fetchErr
		}
		p.metrics.RecordFetchDuration(time.Since(started).Seconds())

		if data, marshalErr := json.Marshal(weather); marshalErr == nil {
			p.cache.Set(ctx, key, data, p.ttl)
		}
		return weather, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.WeatherData), nil
}

func weatherCacheKey(coords models.Coordinates, unit models.TemperatureUnit) string {
	return fmt.Sprintf("weather:%.4f:%.4f:%s", coords.Latitude, coords.Longitude, unit)
}

// AirQualityCacheProxy is the air-quality counterpart, keyed by
// coordinates only.
type AirQualityCacheProxy struct {
	provider AirQualityProvider
	cache    cache.Interface
	ttl      time.Duration
	group    singleflight.Group
	metrics  *metrics.CacheMetrics
}

func NewAirQualityCacheProxy(provider AirQualityProvider, c cache.Interface, ttl time.Duration) *AirQualityCacheProxy {
	return &AirQualityCacheProxy{
		provider: provider,
		cache:    c,
		ttl:      ttl,
		metrics:  metrics.NewCacheMetrics("air_quality"),
	}
}

func (p *AirQualityCacheProxy) FetchAirQuality(ctx context.Context, coords models.Coordinates) (*models.AirQualityData, error) {
	key := fmt.Sprintf("airquality:%.4f:%.4f", coords.Latitude, coords.Longitude)

	if data, found := p.cache.Get(ctx, key); found {
		var air models.AirQualityData
		if err := json.Unmarshal(data, &air); err == nil {
			p.metrics.RecordHit()
			slog.Debug("air quality cache hit", "key", key)
			return &air, nil
		}
		p.cache.Delete(ctx, key)
	}

	p.metrics.RecordMiss()
	slog.Debug("air quality cache miss", "key", key)

	result, err, _ := p.group.Do(key, func() (interface{}, error) {
		started := time.Now()
		air, fetchErr := p.provider.FetchAirQuality(ctx, coords)
		if fetchErr != nil {
			return nil, fetchErr
		}
		p.metrics.RecordFetchDuration(time.Since(started).Seconds())

		if data, marshalErr := json.Marshal(air); marshalErr == nil {
			p.cache.Set(ctx, key, data, p.ttl)
		}
		return air, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.AirQualityData), nil
}
