// Package service orchestrates the dashboard pipeline: weather and
// air-quality retrieval, location detection, hourly windows, map overlays
// and the background weather alerts.
package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"weatherdash.app/airquality"
	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/forecast"
	"weatherdash.app/models"
	"weatherdash.app/overlay"
	"weatherdash.app/providers"
)

// ErrSuperseded marks a response discarded because the selected query
// changed while the request was in flight.
var ErrSuperseded = errors.New(errors.FetchError, "response superseded by a newer request")

const (
	resourceWeather    = "weather"
	resourceAirQuality = "airquality"
)

// AirQualityReport pairs the raw air-quality snapshot with its derived
// severity tier and the fixed health advice for that tier.
type AirQualityReport struct {
	Data       *models.AirQualityData `json:"data"`
	Level      models.AQILevel        `json:"level"`
	LevelLabel string                 `json:"level_label"`
	Advice     models.HealthAdvice    `json:"advice"`
}

// HourlySample is one entry of the hourly forecast window, enriched with
// the derived condition and the current-hour highlight flag.
type HourlySample struct {
	Time                     time.Time               `json:"time"`
	Temperature              float64                 `json:"temperature"`
	WeatherCode              int                     `json:"weather_code"`
	Condition                models.WeatherCondition `json:"condition"`
	Precipitation            float64                 `json:"precipitation"`
	PrecipitationProbability float64                 `json:"precipitation_probability"`
	WindSpeed                float64                 `json:"wind_speed"`
	IsCurrent                bool                    `json:"is_current"`
}

// DetectedLocation is the outcome of location detection. Detection never
// fails: when positioning is unavailable the configured default location is
// returned with IsFallback set.
type DetectedLocation struct {
	Coordinates models.Coordinates `json:"coordinates"`
	Name        string             `json:"name"`
	IsFallback  bool               `json:"is_fallback"`
	IsSaved     bool               `json:"is_saved"`
}

// DashboardService coordinates the upstream providers behind the dashboard
// endpoints. Fetches are tagged with a request identity so a response
// arriving for a no-longer-selected query is recognized and discarded;
// concurrent fetches for the identical query all deliver.
type DashboardService struct {
	weather  providers.WeatherProvider
	air      providers.AirQualityProvider
	geocoder providers.Geocoder
	location providers.LocationProvider
	prefs    PreferenceStoreInterface
	fallback config.LocationConfig
	tracker  *fetchTracker
	now      func() time.Time
}

// NewDashboardService creates the dashboard orchestration service.
func NewDashboardService(
	weather providers.WeatherProvider,
	air providers.AirQualityProvider,
	geocoder providers.Geocoder,
	location providers.LocationProvider,
	prefs PreferenceStoreInterface,
	fallback config.LocationConfig,
) *DashboardService {
	return &DashboardService{
		weather:  weather,
		air:      air,
		geocoder: geocoder,
		location: location,
		prefs:    prefs,
		fallback: fallback,
		tracker:  newFetchTracker(),
		now:      time.Now,
	}
}

// Weather fetches one complete forecast snapshot. An empty unit defaults to
// the preferred unit.
func (s *DashboardService) Weather(ctx context.Context, coords models.Coordinates, unit models.TemperatureUnit) (*models.WeatherData, error) {
	if err := coords.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	unit = s.resolveUnit(unit)

	key := fmt.Sprintf("weather:%.4f:%.4f:%s", coords.Latitude, coords.Longitude, unit)
	id := s.tracker.begin(resourceWeather, key)

	data, err := s.weather.FetchWeather(ctx, coords, unit)
	if !s.tracker.complete(resourceWeather, key, id, err) {
		slog.Debug("discarding superseded weather response", "key", key, "requestID", id)
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// AirQuality fetches the current air-quality snapshot and classifies it.
func (s *DashboardService) AirQuality(ctx context.Context, coords models.Coordinates) (*AirQualityReport, error) {
	if err := coords.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	key := fmt.Sprintf("airquality:%.4f:%.4f", coords.Latitude, coords.Longitude)
	id := s.tracker.begin(resourceAirQuality, key)

	data, err := s.air.FetchAirQuality(ctx, coords)
	if !s.tracker.complete(resourceAirQuality, key, id, err) {
		slog.Debug("discarding superseded air-quality response", "key", key, "requestID", id)
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}

	level := airquality.ClassifyAQI(data.Current.EuropeanAQI)
	return &AirQualityReport{
		Data:       data,
		Level:      level,
		LevelLabel: level.String(),
		Advice:     airquality.Advice(level),
	}, nil
}

// HourlyWindow returns up to n hourly samples starting at the current hour.
// The window never wraps past the end of the fetched forecast.
func (s *DashboardService) HourlyWindow(ctx context.Context, coords models.Coordinates, unit models.TemperatureUnit, n int) ([]HourlySample, error) {
	data, err := s.Weather(ctx, coords, unit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	indexes := forecast.NextNHours(data.Hourly.Time, now, n)

	samples := make([]HourlySample, 0, len(indexes))
	for _, i := range indexes {
		t := data.Hourly.Time[i]
		samples = append(samples, HourlySample{
			Time:                     t,
			Temperature:              data.Hourly.Temperature[i],
			WeatherCode:              data.Hourly.WeatherCode[i],
			Condition:                forecast.Classify(data.Hourly.WeatherCode[i], isDaylight(data.Daily, t)),
			Precipitation:            data.Hourly.Precipitation[i],
			PrecipitationProbability: data.Hourly.PrecipitationProbability[i],
			WindSpeed:                data.Hourly.WindSpeed[i],
			IsCurrent:                forecast.IsCurrentHour(t, now),
		})
	}
	return samples, nil
}

// Overlay generates the synthetic map overlay points for one map type
// around the given center. The seed is derived from the query so repeated
// calls render the same field.
func (s *DashboardService) Overlay(ctx context.Context, coords models.Coordinates, mapType models.MapType, unit models.TemperatureUnit) ([]models.OverlayPoint, error) {
	if !mapType.Valid() {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown map type %q", mapType))
	}

	data, err := s.Weather(ctx, coords, unit)
	if err != nil {
		return nil, err
	}

	return overlay.GeneratePoints(coords, &data.Current, mapType, data.Unit, overlaySeed(coords, mapType)), nil
}

// SearchLocations resolves a free-form location query.
func (s *DashboardService) SearchLocations(ctx context.Context, query string) ([]models.GeocodingResult, error) {
	return s.geocoder.SearchLocations(ctx, query)
}

// ReverseGeocode names a coordinate pair. Never fails.
func (s *DashboardService) ReverseGeocode(ctx context.Context, coords models.Coordinates) string {
	return s.geocoder.ReverseGeocode(ctx, coords)
}

// DetectLocation resolves the location the dashboard should show. A saved
// location wins over positioning; positioning failure falls back to the
// configured default city.
func (s *DashboardService) DetectLocation(ctx context.Context) DetectedLocation {
	prefs := s.prefs.Get()
	if prefs.RememberLocation && prefs.SavedCoordinates != nil {
		name := prefs.SavedLocationName
		if name == "" {
			name = s.geocoder.ReverseGeocode(ctx, *prefs.SavedCoordinates)
		}
		return DetectedLocation{
			Coordinates: *prefs.SavedCoordinates,
			Name:        name,
			IsSaved:     true,
		}
	}

	coords, err := s.location.CurrentLocation(ctx)
	if err != nil {
		slog.Warn("location detection failed, using default location",
			"error", err, "default", s.fallback.DefaultName)
		return DetectedLocation{
			Coordinates: models.Coordinates{
				Latitude:  s.fallback.DefaultLatitude,
				Longitude: s.fallback.DefaultLongitude,
			},
			Name:       s.fallback.DefaultName,
			IsFallback: true,
		}
	}

	return DetectedLocation{
		Coordinates: coords,
		Name:        s.geocoder.ReverseGeocode(ctx, coords),
	}
}

// WeatherState reports the fetch state of the newest weather request for
// the given query.
func (s *DashboardService) WeatherState(coords models.Coordinates, unit models.TemperatureUnit) FetchState {
	unit = s.resolveUnit(unit)
	return s.tracker.state(resourceWeather, fmt.Sprintf("weather:%.4f:%.4f:%s", coords.Latitude, coords.Longitude, unit))
}

func (s *DashboardService) resolveUnit(unit models.TemperatureUnit) models.TemperatureUnit {
	if unit.Valid() {
		return unit
	}
	return s.prefs.Get().Unit
}

// isDaylight places an hourly timestamp between sunrise and sunset of its
// day. Days outside the fetched daily window count as daylight.
func isDaylight(daily models.DailyForecast, t time.Time) bool {
	for i, day := range daily.Time {
		if day.Year() == t.Year() && day.YearDay() == t.YearDay() {
			return !t.Before(daily.Sunrise[i]) && t.Before(daily.Sunset[i])
		}
	}
	return true
}

func overlaySeed(coords models.Coordinates, mapType models.MapType) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%.4f:%.4f:%s", coords.Latitude, coords.Longitude, mapType)
	return int64(h.Sum64())
}
