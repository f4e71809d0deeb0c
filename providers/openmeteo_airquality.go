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

// OpenMeteoAirQualityProvider implements AirQualityProvider against the
// Open-Meteo air-quality endpoint.
type OpenMeteoAirQualityProvider struct {
	baseURL string
	client  *resilientClient
}

// NewOpenMeteoAirQualityProvider creates a new Open-Meteo air-quality client
func NewOpenMeteoAirQualityProvider(airCfg *config.AirQualityConfig, clientCfg *config.ClientConfig) *OpenMeteoAirQualityProvider {
	return &OpenMeteoAirQualityProvider{
		baseURL: airCfg.BaseURL,
		client:  newResilientClient("open-meteo-air-quality", clientCfg.Timeout(), clientCfg.MaxRetries),
	}
}

var pollutantFields = []string{
	"european_aqi", "us_aqi", "pm10", "pm2_5", "carbon_monoxide",
	"nitrogen_dioxide", "sulphur_dioxide", "ozone", "ammonia", "dust",
}

type airQualityResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Current   struct {
		Time            string  `json:"time"`
		EuropeanAQI     float64 `json:"european_aqi"`
		USAQI           float64 `json:"us_aqi"`
		PM10            float64 `json:"pm10"`
		PM25            float64 `json:"pm2_5"`
		CarbonMonoxide  float64 `json:"carbon_monoxide"`
		NitrogenDioxide float64 `json:"nitrogen_dioxide"`
		SulphurDioxide  float64 `json:"sulphur_dioxide"`
		Ozone           float64 `json:"ozone"`
		Ammonia         float64 `json:"ammonia"`
		Dust            float64 `json:"dust"`
	} `json:"current"`
}

// FetchAirQuality retrieves the current air-quality snapshot for the
// given coordinates.
func (p *OpenMeteoAirQualityProvider) FetchAirQuality(ctx context.Context, coords models.Coordinates) (*models.AirQualityData, error) {
	if err := coords.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	resp, err := p.client.Do(ctx, func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%.4f", coords.Latitude))
		values.Set("longitude", fmt.Sprintf("%.4f", coords.Longitude))
		values.Set("current", strings.Join(pollutantFields, ","))
		values.Set("timezone", "auto")

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewFetchError("failed to fetch air quality data", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewFetchError(fmt.Sprintf("air quality endpoint returned status %d", resp.StatusCode), nil)
	}

	var payload airQualityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewFetchError("failed to decode air quality response", err)
	}

	observedAt, err := time.Parse(hourTimeLayout, payload.Current.Time)
	if err != nil {
		return nil, errors.NewDataShapeError("air quality observation has unparseable time: " + payload.Current.Time)
	}

	return &models.AirQualityData{
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		Current: models.AirQualityCurrent{
			Time:            observedAt,
			EuropeanAQI:     payload.Current.EuropeanAQI,
			USAQI:           payload.Current.USAQI,
			PM10:            payload.Current.PM10,
			PM25:            payload.Current.PM25,
			CarbonMonoxide:  payload.Current.CarbonMonoxide,
			NitrogenDioxide: payload.Current.NitrogenDioxide,
			SulphurDioxide:  payload.Current.SulphurDioxide,
			Ozone:           payload.Current.Ozone,
			Ammonia:         payload.Current.Ammonia,
			Dust:            payload.Current.Dust,
		},
	}, nil
}
