package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"weatherdash.app/errors"
	"weatherdash.app/forecast"
	"weatherdash.app/models"
	"weatherdash.app/providers"
)

// AlertService performs the periodic weather-alert check. Alerts honor the
// preference store's settings: an enabled flag, a minimum interval between
// notifications and the timestamp of the last one sent.
type AlertService struct {
	dashboard DashboardServiceInterface
	prefs     PreferenceStoreInterface
	notifier  providers.Notifier
	now       func() time.Time
}

// NewAlertService creates the weather-alert service.
func NewAlertService(
	dashboard DashboardServiceInterface,
	prefs PreferenceStoreInterface,
	notifier providers.Notifier,
) *AlertService {
	return &AlertService{
		dashboard: dashboard,
		prefs:     prefs,
		notifier:  notifier,
		now:       time.Now,
	}
}

// CheckAndNotify sends one weather notification when alerts are enabled and
// the configured interval has elapsed since the last one. A successful send
// advances the last-alert timestamp.
func (s *AlertService) CheckAndNotify(ctx context.Context) error {
	prefs := s.prefs.Get()
	if !prefs.Alerts.Enabled {
		return nil
	}

	interval := time.Duration(prefs.Alerts.IntervalMinutes) * time.Minute
	if !prefs.Alerts.LastAlertAt.IsZero() && s.now().Sub(prefs.Alerts.LastAlertAt) < interval {
		return nil
	}

	location := s.dashboard.DetectLocation(ctx)
	weather, err := s.dashboard.Weather(ctx, location.Coordinates, prefs.Unit)
	if err != nil {
		return errors.NewNotificationError("fetch weather for alert", err)
	}

	title := fmt.Sprintf("Weather in %s", location.Name)
	body := composeAlertBody(weather.Current, weather.Unit)

	if err := s.notifier.Notify(ctx, title, body); err != nil {
		return errors.NewNotificationError("deliver weather alert", err)
	}

	sentAt := s.now()
	if _, err := s.prefs.Update(ctx, func(p *models.Preferences) {
		p.Alerts.LastAlertAt = sentAt
	}); err != nil {
		return err
	}

	slog.Info("weather alert sent", "location", location.Name)
	return nil
}

func composeAlertBody(current models.CurrentWeather, unit models.TemperatureUnit) string {
	condition := forecast.Classify(current.WeatherCode, current.IsDay)
	label := strings.ReplaceAll(string(condition), "-", " ")

	symbol := "C"
	if unit == models.UnitFahrenheit {
		symbol = "F"
	}
	return fmt.Sprintf("%.0f°%s, %s. Wind %.0f km/h, humidity %.0f%%.",
		current.Temperature, symbol, label, current.WindSpeed, current.Humidity)
}
