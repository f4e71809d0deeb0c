package providers

import (
	"context"

	"golang.org/x/time/rate"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

// Rate-limited decorators keep outbound traffic to the public endpoints
// bounded. Waiting respects context cancellation.

type RateLimitedWeatherProvider struct {
	provider WeatherProvider
	limiter  *rate.Limiter
}

// NewRateLimitedWeatherProvider wraps a weather provider with a token
// bucket of rps requests per second and the given burst size.
func NewRateLimitedWeatherProvider(provider WeatherProvider, rps float64, burst int) *RateLimitedWeatherProvider {
	return &RateLimitedWeatherProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedWeatherProvider) FetchWeather(ctx context.Context, coords models.Coordinates, unit models.TemperatureUnit) (*models.WeatherData, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, errors.NewFetchError("rate limit wait canceled", err)
	}
	return r.provider.FetchWeather(ctx, coords, unit)
}

type RateLimitedAirQualityProvider struct {
	provider AirQualityProvider
	limiter  *rate.Limiter
}

// NewRateLimitedAirQualityProvider wraps an air-quality provider with a
// token bucket limiter.
func NewRateLimitedAirQualityProvider(provider AirQualityProvider, rps float64, burst int) *RateLimitedAirQualityProvider {
	return &RateLimitedAirQualityProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedAirQualityProvider) FetchAirQuality(ctx context.Context, coords models.Coordinates) (*models.AirQualityData, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, errors.NewFetchError("rate limit wait canceled", err)
	}
	return r.provider.FetchAirQuality(ctx, coords)
}
