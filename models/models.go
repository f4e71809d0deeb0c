// Package models defines data structures used throughout the application
package models

import (
	"fmt"
	"math"
	"time"
)

// TemperatureUnit selects the unit the upstream API bakes into numeric values.
// Changing the unit requires a new fetch; values are never converted locally.
type TemperatureUnit string

const (
	UnitCelsius    TemperatureUnit = "celsius"
	UnitFahrenheit TemperatureUnit = "fahrenheit"
)

// Valid reports whether the unit is one of the supported values.
func (u TemperatureUnit) Valid() bool {
	return u == UnitCelsius || u == UnitFahrenheit
}

// MapType selects which weather field the map overlay visualizes.
type MapType string

const (
	MapTemperature   MapType = "temperature"
	MapPrecipitation MapType = "precipitation"
	MapClouds        MapType = "clouds"
	MapWind          MapType = "wind"
)

// Valid reports whether the map type is one of the supported values.
func (m MapType) Valid() bool {
	switch m {
	case MapTemperature, MapPrecipitation, MapClouds, MapWind:
		return true
	}
	return false
}

// Coordinates is an immutable pair of floating-point degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that both degrees are finite and in range.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) ||
		math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return fmt.Errorf("coordinates must be finite")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// DisplayName formats coordinates the way location fallbacks are shown,
// rounded to 4 decimal places.
func (c Coordinates) DisplayName() string {
	return fmt.Sprintf("Location (%.4f, %.4f)", c.Latitude, c.Longitude)
}

// GeocodingResult is one hit from a location name search. Admin qualifiers
// are optional and used only for display disambiguation.
type GeocodingResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1,omitempty"`
	Admin2    string  `json:"admin2,omitempty"`
	Admin3    string  `json:"admin3,omitempty"`
}

// CurrentWeather is a single observation. Replaced wholesale on refetch.
type CurrentWeather struct {
	Time                time.Time `json:"time"`
	Temperature         float64   `json:"temperature"`
	ApparentTemperature float64   `json:"apparent_temperature"`
	WeatherCode         int       `json:"weather_code"`
	WindSpeed           float64   `json:"wind_speed"`
	WindDirection       float64   `json:"wind_direction"`
	Humidity            float64   `json:"humidity"`
	Pressure            float64   `json:"pressure"`
	IsDay               bool      `json:"is_day"`
	Precipitation       float64   `json:"precipitation"`
	UVIndex             float64   `json:"uv_index"`
	CloudCover          float64   `json:"cloud_cover"`
}

// HourlyForecast holds parallel arrays, one entry per hour. The array index
// is the join key: Time[i], Temperature[i], WeatherCode[i] all describe the
// same instant. All arrays must have identical length.
type HourlyForecast struct {
	Time                     []time.Time `json:"time"`
	Temperature              []float64   `json:"temperature"`
	WeatherCode              []int       `json:"weather_code"`
	Precipitation            []float64   `json:"precipitation"`
	PrecipitationProbability []float64   `json:"precipitation_probability"`
	WindSpeed                []float64   `json:"wind_speed"`
	Humidity                 []float64   `json:"humidity"`
}

// Len returns the number of hourly samples.
func (h HourlyForecast) Len() int { return len(h.Time) }

// DailyForecast holds parallel arrays, one entry per day.
type DailyForecast struct {
	Time                        []time.Time `json:"time"`
	WeatherCode                 []int       `json:"weather_code"`
	TemperatureMax              []float64   `json:"temperature_max"`
	TemperatureMin              []float64   `json:"temperature_min"`
	PrecipitationSum            []float64   `json:"precipitation_sum"`
	PrecipitationProbabilityMax []float64   `json:"precipitation_probability_max"`
	WindSpeedMax                []float64   `json:"wind_speed_max"`
	UVIndexMax                  []float64   `json:"uv_index_max"`
	Sunrise                     []time.Time `json:"sunrise"`
	Sunset                      []time.Time `json:"sunset"`
}

// WeatherData is the unit of one complete fetch. The temperature unit is
// baked into the numeric values at fetch time; the cache key includes it.
type WeatherData struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Timezone  string          `json:"timezone"`
	Unit      TemperatureUnit `json:"unit"`
	Current   CurrentWeather  `json:"current"`
	Hourly    HourlyForecast  `json:"hourly"`
	Daily     DailyForecast   `json:"daily"`
}

// AirQualityCurrent is the current air-quality observation.
type AirQualityCurrent struct {
	Time            time.Time `json:"time"`
	EuropeanAQI     float64   `json:"european_aqi"`
	USAQI           float64   `json:"us_aqi"`
	PM10            float64   `json:"pm10"`
	PM25            float64   `json:"pm2_5"`
	CarbonMonoxide  float64   `json:"carbon_monoxide"`
	NitrogenDioxide float64   `json:"nitrogen_dioxide"`
	SulphurDioxide  float64   `json:"sulphur_dioxide"`
	Ozone           float64   `json:"ozone"`
	Ammonia         float64   `json:"ammonia"`
	Dust            float64   `json:"dust"`
}

// AirQualityData is one complete air-quality fetch, keyed by coordinates.
type AirQualityData struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Current   AirQualityCurrent `json:"current"`
}

// WeatherCondition is the derived semantic condition used to pick icons,
// backgrounds and map themes. Pure function of (weatherCode, isDay).
type WeatherCondition string

const (
	ConditionClearDay        WeatherCondition = "clear-day"
	ConditionClearNight      WeatherCondition = "clear-night"
	ConditionPartlyCloudyDay WeatherCondition = "partly-cloudy-day"
	ConditionPartlyCloudyNt  WeatherCondition = "partly-cloudy-night"
	ConditionCloudy          WeatherCondition = "cloudy"
	ConditionRain            WeatherCondition = "rain"
	ConditionShowers         WeatherCondition = "showers"
	ConditionThunderstorm    WeatherCondition = "thunderstorm"
	ConditionSnow            WeatherCondition = "snow"
	ConditionFog             WeatherCondition = "fog"
)

// AQILevel is one of five ordinal severity tiers derived from european_aqi.
type AQILevel int

const (
	AQIGood AQILevel = iota + 1
	AQIModerate
	AQIUnhealthySensitive
	AQIUnhealthy
	AQIVeryUnhealthy
)

func (l AQILevel) String() string {
	switch l {
	case AQIGood:
		return "Good"
	case AQIModerate:
		return "Moderate"
	case AQIUnhealthySensitive:
		return "Unhealthy for Sensitive Groups"
	case AQIUnhealthy:
		return "Unhealthy"
	case AQIVeryUnhealthy:
		return "Very Unhealthy"
	}
	return "Unknown"
}

// HealthAdvice carries fixed advisory strings per AQI level.
type HealthAdvice struct {
	Ventilation string `json:"ventilation"`
	Outdoor     string `json:"outdoor"`
	Sensitive   string `json:"sensitive"`
}

// OverlayPoint is a synthetic, non-measured map marker used for visual
// approximation of a weather field around one true sample point.
type OverlayPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Color     string  `json:"color"`
	Opacity   float64 `json:"opacity"`
	Radius    float64 `json:"radius"`
}

// AlertSettings configures the background weather-alert check.
type AlertSettings struct {
	Enabled         bool      `json:"enabled"`
	IntervalMinutes int       `json:"interval_minutes"`
	LastAlertAt     time.Time `json:"last_alert_at"`
}

// Preferences is the one piece of state that outlives a single view.
// Writes follow a last-writer-wins discipline.
type Preferences struct {
	Unit              TemperatureUnit `json:"unit"`
	RememberLocation  bool            `json:"remember_location"`
	SavedCoordinates  *Coordinates    `json:"saved_coordinates,omitempty"`
	SavedLocationName string          `json:"saved_location_name,omitempty"`
	IsCurrentLocation bool            `json:"is_current_location"`
	AutoRefresh       bool            `json:"auto_refresh"`
	Alerts            AlertSettings   `json:"alerts"`
}

// DefaultPreferences returns the preferences used before any write.
func DefaultPreferences() Preferences {
	return Preferences{
		Unit:        UnitCelsius,
		AutoRefresh: true,
		Alerts:      AlertSettings{IntervalMinutes: 60},
	}
}

// PreferenceRecord is the persisted key-value row backing the preference store.
type PreferenceRecord struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeatherRequest binds the query parameters shared by the weather endpoints.
// Presence of lat/lon is checked by the handler; zero is a legal degree.
type WeatherRequest struct {
	Latitude  float64         `form:"lat" binding:"latitude"`
	Longitude float64         `form:"lon" binding:"longitude"`
	Unit      TemperatureUnit `form:"unit" binding:"omitempty,oneof=celsius fahrenheit"`
}

// Coordinates returns the request's coordinate pair.
func (r WeatherRequest) Coordinates() Coordinates {
	return Coordinates{Latitude: r.Latitude, Longitude: r.Longitude}
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
