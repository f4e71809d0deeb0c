package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherdash.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server     ServerConfig     `split_words:"true"`
	Weather    WeatherConfig    `split_words:"true"`
	AirQuality AirQualityConfig `split_words:"true"`
	Geocoding  GeocodingConfig  `split_words:"true"`
	Cache      CacheConfig      `split_words:"true"`
	Database   DatabaseConfig   `split_words:"true"`
	Location   LocationConfig   `split_words:"true"`
	Client     ClientConfig     `split_words:"true"`
	Alerts     AlertsConfig     `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// WeatherConfig contains settings for the upstream forecast endpoint
type WeatherConfig struct {
	BaseURL         string `envconfig:"WEATHER_BASE_URL" default:"https://api.open-meteo.com/v1/forecast"`
	ForecastDays    int    `envconfig:"WEATHER_FORECAST_DAYS" default:"7"`
	CacheTTLMinutes int    `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"15"`
}

// CacheTTL returns the weather stale window as a duration.
func (w WeatherConfig) CacheTTL() time.Duration {
	return time.Duration(w.CacheTTLMinutes) * time.Minute
}

// AirQualityConfig contains settings for the upstream air-quality endpoint
type AirQualityConfig struct {
	BaseURL         string `envconfig:"AIR_QUALITY_BASE_URL" default:"https://air-quality-api.open-meteo.com/v1/air-quality"`
	CacheTTLMinutes int    `envconfig:"AIR_QUALITY_CACHE_TTL_MINUTES" default:"30"`
}

// CacheTTL returns the air-quality stale window as a duration.
func (a AirQualityConfig) CacheTTL() time.Duration {
	return time.Duration(a.CacheTTLMinutes) * time.Minute
}

// GeocodingConfig contains settings for the geocoding endpoints
type GeocodingConfig struct {
	SearchURL  string `envconfig:"GEOCODING_SEARCH_URL" default:"https://geocoding-api.open-meteo.com/v1/search"`
	ReverseURL string `envconfig:"GEOCODING_REVERSE_URL" default:"https://geocoding-api.open-meteo.com/v1/reverse"`
	MaxResults int    `envconfig:"GEOCODING_MAX_RESULTS" default:"10"`
}

// CacheConfig selects and configures the cache backend
type CacheConfig struct {
	Type          string `envconfig:"CACHE_TYPE" default:"memory"`
	RedisAddr     string `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"CACHE_REDIS_DB" default:"0"`
	DialTimeout   int    `envconfig:"CACHE_REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout   int    `envconfig:"CACHE_REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout  int    `envconfig:"CACHE_REDIS_WRITE_TIMEOUT" default:"3"`
}

// DatabaseConfig contains the preference store database settings
type DatabaseConfig struct {
	Path string `envconfig:"DB_PATH" default:"weatherdash.db"`
}

// LocationConfig names the fallback location used when positioning fails
type LocationConfig struct {
	DefaultName      string  `envconfig:"LOCATION_DEFAULT_NAME" default:"Berlin"`
	DefaultLatitude  float64 `envconfig:"LOCATION_DEFAULT_LATITUDE" default:"52.52"`
	DefaultLongitude float64 `envconfig:"LOCATION_DEFAULT_LONGITUDE" default:"13.405"`
}

// ClientConfig tunes the outbound HTTP clients
type ClientConfig struct {
	TimeoutSeconds int     `envconfig:"CLIENT_TIMEOUT_SECONDS" default:"10"`
	MaxRetries     int     `envconfig:"CLIENT_MAX_RETRIES" default:"1"`
	RateLimitRPS   float64 `envconfig:"CLIENT_RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"CLIENT_RATE_LIMIT_BURST" default:"10"`
}

// Timeout returns the outbound request timeout as a duration.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AlertsConfig contains settings for the background alert scheduler
type AlertsConfig struct {
	CheckIntervalMinutes int `envconfig:"ALERTS_CHECK_INTERVAL_MINUTES" default:"5"`
}

// CheckInterval returns how often alert settings are evaluated.
func (a AlertsConfig) CheckInterval() time.Duration {
	return time.Duration(a.CheckIntervalMinutes) * time.Minute
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.AirQuality.Validate(); err != nil {
		return err
	}
	if err := c.Geocoding.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Location.Validate(); err != nil {
		return err
	}
	if err := c.Client.Validate(); err != nil {
		return err
	}
	if err := c.Alerts.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks weather endpoint configuration
func (w *WeatherConfig) Validate() error {
	if err := validateBaseURL("WEATHER_BASE_URL", w.BaseURL); err != nil {
		return err
	}
	if w.ForecastDays < 1 || w.ForecastDays > 16 {
		return errors.NewConfigurationError("WEATHER_FORECAST_DAYS must be between 1 and 16", nil)
	}
	if w.CacheTTLMinutes < 1 {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be at least 1", nil)
	}
	return nil
}

// Validate checks air-quality endpoint configuration
func (a *AirQualityConfig) Validate() error {
	if err := validateBaseURL("AIR_QUALITY_BASE_URL", a.BaseURL); err != nil {
		return err
	}
	if a.CacheTTLMinutes < 1 {
		return errors.NewConfigurationError("AIR_QUALITY_CACHE_TTL_MINUTES must be at least 1", nil)
	}
	return nil
}

// Validate checks geocoding endpoint configuration
func (g *GeocodingConfig) Validate() error {
	if err := validateBaseURL("GEOCODING_SEARCH_URL", g.SearchURL); err != nil {
		return err
	}
	if err := validateBaseURL("GEOCODING_REVERSE_URL", g.ReverseURL); err != nil {
		return err
	}
	if g.MaxResults < 1 || g.MaxResults > 100 {
		return errors.NewConfigurationError("GEOCODING_MAX_RESULTS must be between 1 and 100", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty when CACHE_TYPE is redis", nil)
	}
	return nil
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return errors.NewConfigurationError("DB_PATH cannot be empty", nil)
	}
	return nil
}

// Validate checks the fallback location configuration
func (l *LocationConfig) Validate() error {
	if l.DefaultName == "" {
		return errors.NewConfigurationError("LOCATION_DEFAULT_NAME cannot be empty", nil)
	}
	if l.DefaultLatitude < -90 || l.DefaultLatitude > 90 {
		return errors.NewConfigurationError("LOCATION_DEFAULT_LATITUDE must be between -90 and 90", nil)
	}
	if l.DefaultLongitude < -180 || l.DefaultLongitude > 180 {
		return errors.NewConfigurationError("LOCATION_DEFAULT_LONGITUDE must be between -180 and 180", nil)
	}
	return nil
}

// Validate checks outbound client configuration
func (c *ClientConfig) Validate() error {
	if c.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("CLIENT_TIMEOUT_SECONDS must be at least 1", nil)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 2 {
		return errors.NewConfigurationError("CLIENT_MAX_RETRIES must be between 0 and 2", nil)
	}
	if c.RateLimitRPS <= 0 {
		return errors.NewConfigurationError("CLIENT_RATE_LIMIT_RPS must be positive", nil)
	}
	if c.RateLimitBurst < 1 {
		return errors.NewConfigurationError("CLIENT_RATE_LIMIT_BURST must be at least 1", nil)
	}
	return nil
}

// Validate checks alert scheduler configuration
func (a *AlertsConfig) Validate() error {
	if a.CheckIntervalMinutes < 1 {
		return errors.NewConfigurationError("ALERTS_CHECK_INTERVAL_MINUTES must be at least 1", nil)
	}
	if a.CheckIntervalMinutes > 1440 {
		return errors.NewConfigurationError("ALERTS_CHECK_INTERVAL_MINUTES cannot exceed 1440 minutes (24 hours)", nil)
	}
	return nil
}
