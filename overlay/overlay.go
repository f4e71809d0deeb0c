// Package overlay synthesizes map overlay points around a single fetched
// weather sample. The generated field is a visual approximation only: away
// from the center point the values are perturbed copies of the one real
// sample, not measured or interpolated weather data.
package overlay

import (
	"math"
	"math/rand"

	"weatherdash.app/models"
)

// Grid geometry. Candidate offsets form a (2*halfWidth+1)^2 square; only
// offsets within an index distance of halfWidth are kept, which yields a
// disc. Spacing is in degrees.
const (
	gridHalfWidth = 4
	gridSpacing   = 0.04
)

// Jitter bounds for the multiplicative perturbation factor.
const (
	jitterMin = 0.85
	jitterMax = 1.15
)

// tier buckets a synthetic value into rendering attributes. A skip tier
// renders nothing rather than a neutral color.
type tier struct {
	upper   float64 // exclusive upper bound; the last tier uses +Inf
	skip    bool
	color   string
	opacity float64
	radius  float64
}

var temperatureTiers = []tier{ // bounds in Celsius
	{upper: 0, color: "#3b82f6", opacity: 0.35, radius: 2800},
	{upper: 10, color: "#22d3ee", opacity: 0.30, radius: 2600},
	{upper: 20, color: "#4ade80", opacity: 0.30, radius: 2600},
	{upper: 30, color: "#fb923c", opacity: 0.35, radius: 2800},
	{upper: math.Inf(1), color: "#ef4444", opacity: 0.40, radius: 3000},
}

var precipitationTiers = []tier{ // bounds in mm
	{upper: 0.05, skip: true}, // no precipitation: render nothing
	{upper: 0.5, color: "#bae6fd", opacity: 0.25, radius: 2400},
	{upper: 2, color: "#38bdf8", opacity: 0.35, radius: 2600},
	{upper: 5, color: "#2563eb", opacity: 0.45, radius: 2800},
	{upper: math.Inf(1), color: "#7c3aed", opacity: 0.55, radius: 3000},
}

var cloudTiers = []tier{ // bounds in percent cover
	{upper: 10, skip: true}, // clear sky: render nothing
	{upper: 35, color: "#e5e7eb", opacity: 0.20, radius: 2600},
	{upper: 65, color: "#9ca3af", opacity: 0.30, radius: 2800},
	{upper: 85, color: "#6b7280", opacity: 0.40, radius: 3000},
	{upper: math.Inf(1), color: "#4b5563", opacity: 0.50, radius: 3200},
}

var windTiers = []tier{ // bounds in km/h
	{upper: 5, skip: true}, // calm: render nothing
	{upper: 15, color: "#a7f3d0", opacity: 0.25, radius: 2400},
	{upper: 30, color: "#34d399", opacity: 0.35, radius: 2600},
	{upper: 50, color: "#f59e0b", opacity: 0.45, radius: 2800},
	{upper: math.Inf(1), color: "#dc2626", opacity: 0.55, radius: 3000},
}

// MaxPointDistanceDegrees is the largest offset from center any generated
// point can have along either axis combined, i.e. the disc radius in degrees.
const MaxPointDistanceDegrees = gridHalfWidth * gridSpacing

// GeneratePoints derives a disc of overlay points around center from one
// current-weather sample. The same (center, sample, mapType, unit, seed)
// always yields the same points. A nil sample degrades to no points.
//
// Temperature thresholds are Celsius bands; when the sample was fetched in
// Fahrenheit the synthetic value is converted back before bucketing.
func GeneratePoints(
	center models.Coordinates,
	sample *models.CurrentWeather,
	mapType models.MapType,
	unit models.TemperatureUnit,
	seed int64,
) []models.OverlayPoint {
	if sample == nil || !mapType.Valid() {
		return nil
	}

	base := sampleValue(sample, mapType)
	tiers := tiersFor(mapType)
	rng := rand.New(rand.NewSource(seed))

	var points []models.OverlayPoint
	for dy := -gridHalfWidth; dy <= gridHalfWidth; dy++ {
		for dx := -gridHalfWidth; dx <= gridHalfWidth; dx++ {
			indexDist := math.Hypot(float64(dx), float64(dy))
			if indexDist > gridHalfWidth {
				continue
			}

			// The jitter amplitude grows with distance, so points near the
			// center stay close to the real sampled value.
			norm := indexDist / gridHalfWidth
			jitter := jitterMin + rng.Float64()*(jitterMax-jitterMin)
			value := base * (1 + (jitter-1)*norm)

			bucketValue := value
			if mapType == models.MapTemperature && unit == models.UnitFahrenheit {
				bucketValue = (value - 32) * 5 / 9
			}

			t, ok := bucket(tiers, bucketValue)
			if !ok {
				continue
			}

			points = append(points, models.OverlayPoint{
				Latitude:  center.Latitude + float64(dy)*gridSpacing,
				Longitude: center.Longitude + float64(dx)*gridSpacing,
				Color:     t.color,
				Opacity:   t.opacity,
				Radius:    t.radius,
			})
		}
	}
	return points
}

func sampleValue(sample *models.CurrentWeather, mapType models.MapType) float64 {
	switch mapType {
	case models.MapTemperature:
		return sample.Temperature
	case models.MapPrecipitation:
		return sample.Precipitation
	case models.MapClouds:
		return sample.CloudCover
	case models.MapWind:
		return sample.WindSpeed
	}
	return 0
}

func tiersFor(mapType models.MapType) []tier {
	switch mapType {
	case models.MapTemperature:
		return temperatureTiers
	case models.MapPrecipitation:
		return precipitationTiers
	case models.MapClouds:
		return cloudTiers
	case models.MapWind:
		return windTiers
	}
	return nil
}

func bucket(tiers []tier, value float64) (tier, bool) {
	for _, t := range tiers {
		if value < t.upper {
			if t.skip {
				return tier{}, false
			}
			return t, true
		}
	}
	return tier{}, false
}
