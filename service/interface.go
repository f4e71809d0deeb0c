package service

import (
	"context"

	"weatherdash.app/models"
)

// DashboardServiceInterface defines the operations behind the dashboard
// endpoints.
type DashboardServiceInterface interface {
	Weather(ctx context.Context, coords models.Coordinates, unit models.TemperatureUnit) (*models.WeatherData, error)
	AirQuality(ctx context.Context, coords models.Coordinates) (*AirQualityReport, error)
	HourlyWindow(ctx context.Context, coords models.Coordinates, unit models.TemperatureUnit, n int) ([]HourlySample, error)
	Overlay(ctx context.Context, coords models.Coordinates, mapType models.MapType, unit models.TemperatureUnit) ([]models.OverlayPoint, error)
	SearchLocations(ctx context.Context, query string) ([]models.GeocodingResult, error)
	ReverseGeocode(ctx context.Context, coords models.Coordinates) string
	DetectLocation(ctx context.Context) DetectedLocation
}

// AlertServiceInterface defines the periodic alert check invoked by the
// scheduler.
type AlertServiceInterface interface {
	CheckAndNotify(ctx context.Context) error
}

// PreferenceStoreInterface defines the preference operations the services
// and the API depend on.
type PreferenceStoreInterface interface {
	Get() models.Preferences
	Update(ctx context.Context, mutate func(*models.Preferences)) (models.Preferences, error)
	Subscribe(notify func(models.Preferences))
}

// Ensure implementations satisfy interfaces
var _ DashboardServiceInterface = (*DashboardService)(nil)
var _ AlertServiceInterface = (*AlertService)(nil)
