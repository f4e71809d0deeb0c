package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

const (
	hourTimeLayout = "2006-01-02T15:04"
	dateLayout     = "2006-01-02"
)

// OpenMeteoWeatherProvider implements WeatherProvider against the
// Open-Meteo forecast endpoint. One round trip fetches current conditions,
// the hourly series and the daily series together.
type OpenMeteoWeatherProvider struct {
	baseURL      string
	forecastDays int
	client       *resilientClient
}

// NewOpenMeteoWeatherProvider creates a new Open-Meteo forecast client
func NewOpenMeteoWeatherProvider(weatherCfg *config.WeatherConfig, clientCfg *config.ClientConfig) *OpenMeteoWeatherProvider {
	return &OpenMeteoWeatherProvider{
		baseURL:      weatherCfg.BaseURL,
		forecastDays: weatherCfg.ForecastDays,
		client:       newResilientClient("open-meteo-forecast", clientCfg.Timeout(), clientCfg.MaxRetries),
	}
}

var (
	currentFields = []string{
		"temperature_2m", "apparent_temperature", "weather_code",
		"wind_speed_10m", "wind_direction_10m", "relative_humidity_2m",
		"surface_pressure", "is_day", "precipitation", "uv_index", "cloud_cover",
	}
	hourlyFields = []string{
		"temperature_2m", "weather_code", "precipitation",
		"precipitation_probability", "wind_speed_10m", "relative_humidity_2m",
	}
	dailyFields = []string{
		"weather_code", "temperature_2m_max", "temperature_2m_min",
		"precipitation_sum", "precipitation_probability_max",
		"wind_speed_10m_max", "uv_index_max", "sunrise", "sunset",
	}
)

type openMeteoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Current   struct {
		Time                string  `json:"time"`
		Temperature         float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		WindDirection       float64 `json:"wind_direction_10m"`
		Humidity            float64 `json:"relative_humidity_2m"`
		Pressure            float64 `json:"surface_pressure"`
		IsDay               int     `json:"is_day"`
		Precipitation       float64 `json:"precipitation"`
		UVIndex             float64 `json:"uv_index"`
		CloudCover          float64 `json:"cloud_cover"`
	} `json:"current"`
	Hourly struct {
		Time                     []string  `json:"time"`
		Temperature              []float64 `json:"temperature_2m"`
		WeatherCode              []int     `json:"weather_code"`
		Precipitation            []float64 `json:"precipitation"`
		PrecipitationProbability []float64 `json:"precipitation_probability"`
		WindSpeed                []float64 `json:"wind_speed_10m"`
		Humidity                 []float64 `json:"relative_humidity_2m"`
	} `json:"hourly"`
	Daily struct {
		Time                        []string  `json:"time"`
		WeatherCode                 []int     `json:"weather_code"`
		TemperatureMax              []float64 `json:"temperature_2m_max"`
		TemperatureMin              []float64 `json:"temperature_2m_min"`
		PrecipitationSum            []float64 `json:"precipitation_sum"`
		PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
		WindSpeedMax                []float64 `json:"wind_speed_10m_max"`
		UVIndexMax                  []float64 `json:"uv_index_max"`
		Sunrise                     []string  `json:"sunrise"`
		Sunset                      []string  `json:"sunset"`
	} `json:"daily"`
}

// FetchWeather retrieves one complete forecast snapshot. Wind speed is
// requested in km/h and the timezone is resolved by the server from the
// coordinates. The numeric values carry the requested temperature unit.
func (p *OpenMeteoWeatherProvider) FetchWeather(ctx context.Context, coords models.Coordinates, unit models.TemperatureUnit) (*models.WeatherData, error) {
	if err := coords.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !unit.Valid() {
		return nil, errors.NewValidationError("unit must be celsius or fahrenheit")
	}

	resp, err := p.client.Do(ctx, func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%.4f", coords.Latitude))
		values.Set("longitude", fmt.Sprintf("%.4f", coords.Longitude))
		values.Set("current", strings.Join(currentFields, ","))
		values.Set("hourly", strings.Join(hourlyFields, ","))
		values.Set("daily", strings.Join(dailyFields, ","))
		values.Set("temperature_unit", string(unit))
		values.Set("wind_speed_unit", "kmh")
		values.Set("timezone", "auto")
		values.Set("forecast_days", fmt.Sprintf("%d", p.forecastDays))

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewFetchError("failed to fetch weather data", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewFetchError(fmt.Sprintf("weather endpoint returned status %d", resp.StatusCode), nil)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewFetchError("failed to decode weather response", err)
	}

	return mapWeatherResponse(&payload, unit)
}

func mapWeatherResponse(payload *openMeteoResponse, unit models.TemperatureUnit) (*models.WeatherData, error) {
	hourly, err := mapHourly(payload)
	if err != nil {
		return nil, err
	}
	daily, err := mapDaily(payload)
	if err != nil {
		return nil, err
	}

	currentTime, err := time.Parse(hourTimeLayout, payload.Current.Time)
	if err != nil {
		return nil, errors.NewDataShapeError("current observation has unparseable time: " + payload.Current.Time)
	}

	return &models.WeatherData{
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		Timezone:  payload.Timezone,
		Unit:      unit,
		Current: models.CurrentWeather{
			Time:                currentTime,
			Temperature:         payload.Current.Temperature,
			ApparentTemperature: payload.Current.ApparentTemperature,
			WeatherCode:         payload.Current.WeatherCode,
			WindSpeed:           payload.Current.WindSpeed,
			WindDirection:       payload.Current.WindDirection,
			Humidity:            payload.Current.Humidity,
			Pressure:            payload.Current.Pressure,
			IsDay:               payload.Current.IsDay == 1,
			Precipitation:       payload.Current.Precipitation,
			UVIndex:             payload.Current.UVIndex,
			CloudCover:          payload.Current.CloudCover,
		},
		Hourly: *hourly,
		Daily:  *daily,
	}, nil
}

// mapHourly validates that every hourly array has the same length as the
// time axis. A mismatch is upstream data corruption and fails the fetch,
// never a silent truncation.
func mapHourly(payload *openMeteoResponse) (*models.HourlyForecast, error) {
	h := payload.Hourly
	n := len(h.Time)
	if n == 0 {
		return nil, errors.NewDataShapeError("hourly series is empty")
	}
	if len(h.Temperature) != n || len(h.WeatherCode) != n || len(h.Precipitation) != n ||
		len(h.PrecipitationProbability) != n || len(h.WindSpeed) != n || len(h.Humidity) != n {
		return nil, errors.NewDataShapeError("hourly arrays have mismatched lengths")
	}

	times, err := parseTimes(h.Time, hourTimeLayout)
	if err != nil {
		return nil, err
	}

	return &models.HourlyForecast{
		Time:                     times,
		Temperature:              h.Temperature,
		WeatherCode:              h.WeatherCode,
		Precipitation:            h.Precipitation,
		PrecipitationProbability: h.PrecipitationProbability,
		WindSpeed:                h.WindSpeed,
		Humidity:                 h.Humidity,
	}, nil
}

func mapDaily(payload *openMeteoResponse) (*models.DailyForecast, error) {
	d := payload.Daily
	n := len(d.Time)
	if n == 0 {
		return nil, errors.NewDataShapeError("daily series is empty")
	}
	if len(d.WeatherCode) != n || len(d.TemperatureMax) != n || len(d.TemperatureMin) != n ||
		len(d.PrecipitationSum) != n || len(d.PrecipitationProbabilityMax) != n ||
		len(d.WindSpeedMax) != n || len(d.UVIndexMax) != n ||
		len(d.Sunrise) != n || len(d.Sunset) != n {
		return nil, errors.NewDataShapeError("daily arrays have mismatched lengths")
	}

	times, err := parseTimes(d.Time, dateLayout)
	if err != nil {
		return nil, err
	}
	sunrise, err := parseTimes(d.Sunrise, hourTimeLayout)
	if err != nil {
		return nil, err
	}
	sunset, err := parseTimes(d.Sunset, hourTimeLayout)
	if err != nil {
		return nil, err
	}

	return &models.DailyForecast{
		Time:                        times,
		WeatherCode:                 d.WeatherCode,
		TemperatureMax:              d.TemperatureMax,
		TemperatureMin:              d.TemperatureMin,
		PrecipitationSum:            d.PrecipitationSum,
		PrecipitationProbabilityMax: d.PrecipitationProbabilityMax,
		WindSpeedMax:                d.WindSpeedMax,
		UVIndexMax:                  d.UVIndexMax,
		Sunrise:                     sunrise,
		Sunset:                      sunset,
	}, nil
}

func parseTimes(raw []string, layout string) ([]time.Time, error) {
	parsed := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := time.Parse(layout, s)
		if err != nil {
			return nil, errors.NewDataShapeError("unparseable timestamp in series: " + s)
		}
		parsed[i] = t
	}
	return parsed, nil
}
