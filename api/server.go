// Package api exposes the dashboard pipeline over HTTP.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherdash.app/config"
	apperr "weatherdash.app/errors"
	"weatherdash.app/forecast"
	"weatherdash.app/models"
	"weatherdash.app/service"
)

const defaultHourlyWindow = 24

var validate = validator.New()

// Server represents the HTTP server and API handler
type Server struct {
	router    *gin.Engine
	config    *config.Config
	dashboard service.DashboardServiceInterface
	prefs     service.PreferenceStoreInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	config *config.Config,
	dashboard service.DashboardServiceInterface,
	prefs service.PreferenceStoreInterface,
) *Server {
	router := gin.Default()

	server := &Server{
		router:    router,
		config:    config,
		dashboard: dashboard,
		prefs:     prefs,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/air-quality", s.getAirQuality)
		api.GET("/hourly", s.getHourly)
		api.GET("/overlay", s.getOverlay)
		api.GET("/locations/search", s.searchLocations)
		api.GET("/locations/reverse", s.reverseGeocode)
		api.GET("/locations/current", s.currentLocation)
		api.GET("/preferences", s.getPreferences)
		api.PUT("/preferences", s.updatePreferences)
	}

	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// bindCoordinates parses and validates the lat/lon/unit query parameters.
// Presence is checked on the raw query because zero is a legal degree.
func (s *Server) bindCoordinates(c *gin.Context) (*models.WeatherRequest, error) {
	if c.Query("lat") == "" || c.Query("lon") == "" {
		return nil, apperr.NewValidationError("lat and lon parameters are required")
	}

	var req models.WeatherRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return nil, apperr.NewValidationError("invalid lat, lon or unit parameter")
	}
	return &req, nil
}

// weatherResponse extends the raw snapshot with the derived condition and
// the background gradients for both themes.
type weatherResponse struct {
	*models.WeatherData
	Condition     models.WeatherCondition `json:"condition"`
	GradientLight string                  `json:"gradient_light"`
	GradientDark  string                  `json:"gradient_dark"`
}

func (s *Server) getWeather(c *gin.Context) {
	req, err := s.bindCoordinates(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	weather, err := s.dashboard.Weather(c.Request.Context(), req.Coordinates(), req.Unit)
	if err != nil {
		slog.Error("weather fetch failed", "error", err, "lat", req.Latitude, "lon", req.Longitude)
		s.handleError(c, err)
		return
	}

	condition := forecast.Classify(weather.Current.WeatherCode, weather.Current.IsDay)
	c.JSON(http.StatusOK, weatherResponse{
		WeatherData:   weather,
		Condition:     condition,
		GradientLight: forecast.Gradient(condition, false),
		GradientDark:  forecast.Gradient(condition, true),
	})
}

func (s *Server) getAirQuality(c *gin.Context) {
	req, err := s.bindCoordinates(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	report, err := s.dashboard.AirQuality(c.Request.Context(), req.Coordinates())
	if err != nil {
		slog.Error("air-quality fetch failed", "error", err, "lat", req.Latitude, "lon", req.Longitude)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) getHourly(c *gin.Context) {
	req, err := s.bindCoordinates(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	hours := defaultHourlyWindow
	if raw := c.Query("hours"); raw != "" {
		hours, err = strconv.Atoi(raw)
		if err != nil || hours < 1 {
			s.handleError(c, apperr.NewValidationError("hours must be a positive integer"))
			return
		}
	}

	samples, err := s.dashboard.HourlyWindow(c.Request.Context(), req.Coordinates(), req.Unit, hours)
	if err != nil {
		slog.Error("hourly window failed", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hours": samples})
}

func (s *Server) getOverlay(c *gin.Context) {
	req, err := s.bindCoordinates(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	mapType := models.MapType(c.Query("type"))
	points, err := s.dashboard.Overlay(c.Request.Context(), req.Coordinates(), mapType, req.Unit)
	if err != nil {
		slog.Error("overlay generation failed", "error", err, "type", mapType)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"type": mapType, "points": points})
}

func (s *Server) searchLocations(c *gin.Context) {
	query := c.Query("q")

	results, err := s.dashboard.SearchLocations(c.Request.Context(), query)
	if err != nil {
		slog.Error("location search failed", "error", err, "query", query)
		s.handleError(c, err)
		return
	}

	if results == nil {
		results = []models.GeocodingResult{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) reverseGeocode(c *gin.Context) {
	req, err := s.bindCoordinates(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	name := s.dashboard.ReverseGeocode(c.Request.Context(), req.Coordinates())
	c.JSON(http.StatusOK, gin.H{"name": name})
}

func (s *Server) currentLocation(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.DetectLocation(c.Request.Context()))
}

func (s *Server) getPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, s.prefs.Get())
}

func (s *Server) updatePreferences(c *gin.Context) {
	var req models.Preferences
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperr.NewValidationError("invalid preferences payload"))
		return
	}

	if err := validate.Var(string(req.Unit), "oneof=celsius fahrenheit"); err != nil {
		s.handleError(c, apperr.NewValidationError("unit must be celsius or fahrenheit"))
		return
	}
	if err := validate.Var(req.Alerts.IntervalMinutes, "gte=1,lte=1440"); err != nil {
		s.handleError(c, apperr.NewValidationError("alert interval must be between 1 and 1440 minutes"))
		return
	}
	if req.SavedCoordinates != nil {
		if err := req.SavedCoordinates.Validate(); err != nil {
			s.handleError(c, apperr.NewValidationError(err.Error()))
			return
		}
	}

	updated, err := s.prefs.Update(c.Request.Context(), func(p *models.Preferences) {
		*p = req
	})
	if err != nil {
		slog.Error("preference update failed", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperr.FetchError, apperr.DataShapeError:
			statusCode = http.StatusBadGateway
			message = "Upstream weather service unavailable"
		case apperr.GeocodeError:
			statusCode = http.StatusBadGateway
			message = "Upstream geocoding service unavailable"
		case apperr.LocationUnavailableError:
			statusCode = http.StatusServiceUnavailable
			message = "Location detection unavailable"
		case apperr.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		case apperr.NotificationError:
			statusCode = http.StatusServiceUnavailable
			message = "Unable to deliver notification"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
