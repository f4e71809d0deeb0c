// Package providers implements the clients for the upstream weather,
// air-quality and geocoding endpoints, plus the caching and resilience
// decorators wrapped around them.
package providers

import (
	"context"

	"weatherdash.app/models"
)

// WeatherProvider fetches one complete forecast snapshot. The temperature
// unit is baked into the returned values.
type WeatherProvider interface {
	FetchWeather(ctx context.Context, coords models.Coordinates, unit models.TemperatureUnit) (*models.WeatherData, error)
}

// AirQualityProvider fetches the current air-quality snapshot.
type AirQualityProvider interface {
	FetchAirQuality(ctx context.Context, coords models.Coordinates) (*models.AirQualityData, error)
}

// Geocoder resolves location names. ReverseGeocode never fails: on any
// upstream error it falls back to a coordinate-formatted name.
type Geocoder interface {
	SearchLocations(ctx context.Context, query string) ([]models.GeocodingResult, error)
	ReverseGeocode(ctx context.Context, coords models.Coordinates) string
}

// LocationProvider is the host positioning capability. A single-shot
// request, not a subscription.
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (models.Coordinates, error)
}

// Notifier delivers a fire-and-forget local notification. Permission
// handling and delivery are outside this system.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
