package providers

import (
	"context"

	"weatherdash.app/errors"
	"weatherdash.app/models"
)

// StaticLocationProvider reports a fixed host position, configured at
// startup. Used when the deployment knows where it runs.
type StaticLocationProvider struct {
	coords models.Coordinates
}

func NewStaticLocationProvider(coords models.Coordinates) *StaticLocationProvider {
	return &StaticLocationProvider{coords: coords}
}

func (p *StaticLocationProvider) CurrentLocation(ctx context.Context) (models.Coordinates, error) {
	if err := p.coords.Validate(); err != nil {
		return models.Coordinates{}, errors.NewLocationUnavailableError("configured position is invalid", err)
	}
	return p.coords, nil
}

// UnavailableLocationProvider models a host without a positioning
// capability. Callers fall back to the configured default location.
type UnavailableLocationProvider struct{}

func NewUnavailableLocationProvider() *UnavailableLocationProvider {
	return &UnavailableLocationProvider{}
}

func (p *UnavailableLocationProvider) CurrentLocation(ctx context.Context) (models.Coordinates, error) {
	return models.Coordinates{}, errors.NewLocationUnavailableError("positioning capability is not available", nil)
}
