// Package airquality classifies European AQI readings into severity tiers
// and maps tiers to fixed health advisories.
package airquality

import "weatherdash.app/models"

// European AQI tier boundaries. A value equal to a boundary belongs to the
// lower tier.
const (
	thresholdGood               = 20
	thresholdModerate           = 40
	thresholdUnhealthySensitive = 60
	thresholdUnhealthy          = 80
)

// ClassifyAQI maps a european_aqi value onto one of five ordinal tiers.
func ClassifyAQI(europeanAQI float64) models.AQILevel {
	switch {
	case europeanAQI <= thresholdGood:
		return models.AQIGood
	case europeanAQI <= thresholdModerate:
		return models.AQIModerate
	case europeanAQI <= thresholdUnhealthySensitive:
		return models.AQIUnhealthySensitive
	case europeanAQI <= thresholdUnhealthy:
		return models.AQIUnhealthy
	default:
		return models.AQIVeryUnhealthy
	}
}

// Advice returns the fixed advisory strings for a tier. Not computed from
// raw pollutant concentrations.
func Advice(level models.AQILevel) models.HealthAdvice {
	if advice, ok := healthAdvice[level]; ok {
		return advice
	}
	return healthAdvice[models.AQIVeryUnhealthy]
}

var healthAdvice = map[models.AQILevel]models.HealthAdvice{
	models.AQIGood: {
		Ventilation: "Air out freely, the air is clean.",
		Outdoor:     "Great conditions for outdoor activities.",
		Sensitive:   "No precautions needed.",
	},
	models.AQIModerate: {
		Ventilation: "Ventilating is fine for short periods.",
		Outdoor:     "Outdoor activities are fine for most people.",
		Sensitive:   "Unusually sensitive people should watch for symptoms.",
	},
	models.AQIUnhealthySensitive: {
		Ventilation: "Keep windows closed during peak hours.",
		Outdoor:     "Consider shorter or less intense outdoor activities.",
		Sensitive:   "Sensitive groups should limit prolonged outdoor exertion.",
	},
	models.AQIUnhealthy: {
		Ventilation: "Keep windows closed.",
		Outdoor:     "Reduce outdoor activities, especially exercise.",
		Sensitive:   "Sensitive groups should stay indoors.",
	},
	models.AQIVeryUnhealthy: {
		Ventilation: "Do not ventilate, keep indoor air filtered.",
		Outdoor:     "Avoid outdoor activities.",
		Sensitive:   "Everyone should stay indoors, sensitive groups at high risk.",
	},
}
