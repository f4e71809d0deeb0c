// Package forecast derives display semantics from fetched weather data:
// the condition classification and the hourly display window.
package forecast

import "weatherdash.app/models"

// Classify maps an upstream weather code plus the day/night flag to a
// semantic condition. Total: any integer outside the documented ranges
// falls back to clear-day. Showers (80-82) are matched before the broader
// snow range, so snow covers 71-77 and 85-86.
func Classify(weatherCode int, isDay bool) models.WeatherCondition {
	switch {
	case weatherCode >= 0 && weatherCode <= 1:
		if isDay {
			return models.ConditionClearDay
		}
		return models.ConditionClearNight
	case weatherCode == 2:
		if isDay {
			return models.ConditionPartlyCloudyDay
		}
		return models.ConditionPartlyCloudyNt
	case weatherCode == 3:
		return models.ConditionCloudy
	case weatherCode >= 45 && weatherCode <= 48:
		return models.ConditionFog
	case weatherCode >= 80 && weatherCode <= 82:
		return models.ConditionShowers
	case weatherCode >= 51 && weatherCode <= 67:
		return models.ConditionRain
	case (weatherCode >= 71 && weatherCode <= 77) || weatherCode == 85 || weatherCode == 86:
		return models.ConditionSnow
	case weatherCode >= 95 && weatherCode <= 99:
		return models.ConditionThunderstorm
	default:
		return models.ConditionClearDay
	}
}

// Gradient returns the background theme token for a condition. Pure
// presentation lookup consumed by the rendering layer.
func Gradient(condition models.WeatherCondition, darkMode bool) string {
	if darkMode {
		if token, ok := darkGradients[condition]; ok {
			return token
		}
		return "gradient-night-default"
	}
	if token, ok := lightGradients[condition]; ok {
		return token
	}
	return "gradient-day-default"
}

var lightGradients = map[models.WeatherCondition]string{
	models.ConditionClearDay:        "gradient-clear-day",
	models.ConditionClearNight:      "gradient-clear-night",
	models.ConditionPartlyCloudyDay: "gradient-partly-cloudy-day",
	models.ConditionPartlyCloudyNt:  "gradient-partly-cloudy-night",
	models.ConditionCloudy:          "gradient-cloudy",
	models.ConditionRain:            "gradient-rain",
	models.ConditionShowers:         "gradient-showers",
	models.ConditionThunderstorm:    "gradient-thunderstorm",
	models.ConditionSnow:            "gradient-snow",
	models.ConditionFog:             "gradient-fog",
}

var darkGradients = map[models.WeatherCondition]string{
	models.ConditionClearDay:        "gradient-clear-day-dark",
	models.ConditionClearNight:      "gradient-clear-night-dark",
	models.ConditionPartlyCloudyDay: "gradient-partly-cloudy-day-dark",
	models.ConditionPartlyCloudyNt:  "gradient-partly-cloudy-night-dark",
	models.ConditionCloudy:          "gradient-cloudy-dark",
	models.ConditionRain:            "gradient-rain-dark",
	models.ConditionShowers:         "gradient-showers-dark",
	models.ConditionThunderstorm:    "gradient-thunderstorm-dark",
	models.ConditionSnow:            "gradient-snow-dark",
	models.ConditionFog:             "gradient-fog-dark",
}
