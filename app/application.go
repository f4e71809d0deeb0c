// Package app wires the application's dependencies together.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"weatherdash.app/api"
	"weatherdash.app/config"
	"weatherdash.app/database"
	"weatherdash.app/preferences"
	"weatherdash.app/providers"
	"weatherdash.app/providers/cache"
	"weatherdash.app/scheduler"
	"weatherdash.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	cache     cache.Interface
	prefs     *preferences.Store
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded")
	return nil
}

func (app *Application) initializeDatabase() error {
	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized", "path", app.config.Database.Path)
	return nil
}

func (app *Application) initializeServices() error {
	cacheBackend, err := cache.NewFromConfig(&app.config.Cache)
	if err != nil {
		return fmt.Errorf("create cache backend: %w", err)
	}
	app.cache = cacheBackend

	weatherProvider := app.buildWeatherProvider(cacheBackend)
	airProvider := app.buildAirQualityProvider(cacheBackend)
	geocoder := providers.NewOpenMeteoGeocoder(&app.config.Geocoding, &app.config.Client)

	// No positioning capability on the server side: detection always
	// resolves through saved preferences or the configured default city.
	location := providers.NewUnavailableLocationProvider()

	prefs, err := preferences.NewStore(context.Background(), preferences.NewGormBackend(app.db))
	if err != nil {
		return fmt.Errorf("load preference store: %w", err)
	}
	app.prefs = prefs

	dashboard := service.NewDashboardService(
		weatherProvider,
		airProvider,
		geocoder,
		location,
		prefs,
		app.config.Location,
	)

	alerts := service.NewAlertService(dashboard, prefs, providers.NewSlogNotifier())

	app.server = api.NewServer(app.config, dashboard, prefs)
	app.scheduler = scheduler.NewScheduler(app.config, alerts)

	slog.Info("Services initialized", "cache", app.config.Cache.Type)
	return nil
}

func (app *Application) buildWeatherProvider(cacheBackend cache.Interface) providers.WeatherProvider {
	base := providers.NewOpenMeteoWeatherProvider(&app.config.Weather, &app.config.Client)
	limited := providers.NewRateLimitedWeatherProvider(base,
		app.config.Client.RateLimitRPS, app.config.Client.RateLimitBurst)
	return providers.NewWeatherCacheProxy(limited, cacheBackend, app.config.Weather.CacheTTL())
}

func (app *Application) buildAirQualityProvider(cacheBackend cache.Interface) providers.AirQualityProvider {
	base := providers.NewOpenMeteoAirQualityProvider(&app.config.AirQuality, &app.config.Client)
	limited := providers.NewRateLimitedAirQualityProvider(base,
		app.config.Client.RateLimitRPS, app.config.Client.RateLimitBurst)
	return providers.NewAirQualityCacheProxy(limited, cacheBackend, app.config.AirQuality.CacheTTL())
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting alert scheduler", "interval", app.config.Alerts.CheckInterval())
	app.scheduler.Start()

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	switch c := app.cache.(type) {
	case *cache.MemoryCache:
		c.Stop()
	case *cache.RedisCache:
		if err := c.Close(); err != nil {
			slog.Warn("Error closing redis cache", "error", err)
		}
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
