package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

// OpenMeteoGeocoder implements Geocoder against the Open-Meteo geocoding
// endpoints. Forward search is capped by configuration; the language is
// fixed to English.
type OpenMeteoGeocoder struct {
	searchURL  string
	reverseURL string
	maxResults int
	client     *resilientClient
}

// NewOpenMeteoGeocoder creates a new geocoding client
func NewOpenMeteoGeocoder(geoCfg *config.GeocodingConfig, clientCfg *config.ClientConfig) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		searchURL:  geoCfg.SearchURL,
		reverseURL: geoCfg.ReverseURL,
		maxResults: geoCfg.MaxResults,
		client:     newResilientClient("open-meteo-geocoding", clientCfg.Timeout(), clientCfg.MaxRetries),
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
		Admin2    string  `json:"admin2"`
		Admin3    string  `json:"admin3"`
	} `json:"results"`
}

// SearchLocations resolves a free-text name to candidate locations. A
// blank query short-circuits without a network call.
func (g *OpenMeteoGeocoder) SearchLocations(ctx context.Context, query string) ([]models.GeocodingResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	payload, err := g.fetch(ctx, g.searchURL, func(values url.Values) {
		values.Set("name", query)
		values.Set("count", fmt.Sprintf("%d", g.maxResults))
	})
	if err != nil {
		return nil, err
	}

	results := make([]models.GeocodingResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, models.GeocodingResult{
			Name:      r.Name,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Country:   r.Country,
			Admin1:    r.Admin1,
			Admin2:    r.Admin2,
			Admin3:    r.Admin3,
		})
	}
	return results, nil
}

// ReverseGeocode resolves coordinates to a display name. The most specific
// administrative qualifier present is appended to the base name. On any
// failure or an empty result set the coordinate-formatted fallback is
// returned; the error is never propagated to the caller.
func (g *OpenMeteoGeocoder) ReverseGeocode(ctx context.Context, coords models.Coordinates) string {
	payload, err := g.fetch(ctx, g.reverseURL, func(values url.Values) {
		values.Set("latitude", fmt.Sprintf("%.4f", coords.Latitude))
		values.Set("longitude", fmt.Sprintf("%.4f", coords.Longitude))
	})
	if err != nil {
		slog.Warn("reverse geocoding failed, using coordinate fallback", "error", err)
		return coords.DisplayName()
	}
	if len(payload.Results) == 0 {
		return coords.DisplayName()
	}

	top := payload.Results[0]
	for _, qualifier := range []string{top.Admin3, top.Admin2, top.Admin1} {
		if qualifier != "" && qualifier != top.Name {
			return top.Name + ", " + qualifier
		}
	}
	return top.Name
}

func (g *OpenMeteoGeocoder) fetch(ctx context.Context, baseURL string, setParams func(url.Values)) (*geocodingResponse, error) {
	resp, err := g.client.Do(ctx, func() (*http.Request, error) {
		values := url.Values{}
		values.Set("language", "en")
		setParams(values)
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", baseURL, values.Encode()), nil)
	})
	if err != nil {
		return nil, errors.NewGeocodeError("geocoding request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewGeocodeError(fmt.Sprintf("geocoding endpoint returned status %d", resp.StatusCode), nil)
	}

	var payload geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewGeocodeError("failed to decode geocoding response", err)
	}
	return &payload, nil
}
