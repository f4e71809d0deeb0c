// Package preferences manages the user settings that outlive a single view.
package preferences

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"weatherdash.app/models"
)

// Persisted keys. Coordinates and alert settings are stored as JSON blobs,
// everything else as plain strings.
const (
	keyTemperatureUnit   = "temperature_unit"
	keyRememberLocation  = "remember_location"
	keySavedCoordinates  = "saved_coordinates"
	keySavedLocationName = "saved_location_name"
	keyIsCurrentLocation = "is_current_location"
	keyAutoRefresh       = "auto_refresh"
	keyWeatherAlerts     = "weather_alerts"
)

// Backend loads and saves individual preference entries.
type Backend interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, key, value string) error
}

// Store holds the current preferences in memory and writes every change
// through to its backend. Concurrent updates follow last-writer-wins: the
// mutator runs under the store lock, so the last completed Update defines
// the stored state.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	prefs   models.Preferences
	subs    []func(models.Preferences)
}

// NewStore loads persisted preferences from the backend. Missing or
// malformed entries fall back to defaults rather than failing the load.
func NewStore(ctx context.Context, backend Backend) (*Store, error) {
	values, err := backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Store{
		backend: backend,
		prefs:   decode(values),
	}, nil
}

// Get returns a snapshot of the current preferences.
func (s *Store) Get() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Update applies the mutator to the current preferences, persists the
// changed entries and notifies subscribers. The returned snapshot is the
// state after the mutation.
func (s *Store) Update(ctx context.Context, mutate func(*models.Preferences)) (models.Preferences, error) {
	s.mu.Lock()

	before, err := encode(s.prefs)
	if err != nil {
		s.mu.Unlock()
		return models.Preferences{}, err
	}

	next := s.prefs
	mutate(&next)

	after, err := encode(next)
	if err != nil {
		s.mu.Unlock()
		return models.Preferences{}, err
	}

	for key, value := range after {
		if before[key] == value {
			continue
		}
		if err := s.backend.Save(ctx, key, value); err != nil {
			s.mu.Unlock()
			return models.Preferences{}, err
		}
	}

	s.prefs = next
	subs := make([]func(models.Preferences), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, notify := range subs {
		notify(next)
	}
	return next, nil
}

// Subscribe registers a callback invoked after every successful update.
// Callbacks run outside the store lock.
func (s *Store) Subscribe(notify func(models.Preferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, notify)
}

func encode(p models.Preferences) (map[string]string, error) {
	coords := ""
	if p.SavedCoordinates != nil {
		raw, err := json.Marshal(p.SavedCoordinates)
		if err != nil {
			return nil, err
		}
		coords = string(raw)
	}

	alerts, err := json.Marshal(p.Alerts)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		keyTemperatureUnit:   string(p.Unit),
		keyRememberLocation:  strconv.FormatBool(p.RememberLocation),
		keySavedCoordinates:  coords,
		keySavedLocationName: p.SavedLocationName,
		keyIsCurrentLocation: strconv.FormatBool(p.IsCurrentLocation),
		keyAutoRefresh:       strconv.FormatBool(p.AutoRefresh),
		keyWeatherAlerts:     string(alerts),
	}, nil
}

func decode(values map[string]string) models.Preferences {
	prefs := models.DefaultPreferences()

	if unit := models.TemperatureUnit(values[keyTemperatureUnit]); unit.Valid() {
		prefs.Unit = unit
	}
	if v, err := strconv.ParseBool(values[keyRememberLocation]); err == nil {
		prefs.RememberLocation = v
	}
	if raw := values[keySavedCoordinates]; raw != "" {
		var coords models.Coordinates
		if err := json.Unmarshal([]byte(raw), &coords); err == nil && coords.Validate() == nil {
			prefs.SavedCoordinates = &coords
		}
	}
	prefs.SavedLocationName = values[keySavedLocationName]
	if v, err := strconv.ParseBool(values[keyIsCurrentLocation]); err == nil {
		prefs.IsCurrentLocation = v
	}
	if v, err := strconv.ParseBool(values[keyAutoRefresh]); err == nil {
		prefs.AutoRefresh = v
	}
	if raw := values[keyWeatherAlerts]; raw != "" {
		var alerts models.AlertSettings
		if err := json.Unmarshal([]byte(raw), &alerts); err == nil && alerts.IntervalMinutes > 0 {
			prefs.Alerts = alerts
		}
	}

	return prefs
}
