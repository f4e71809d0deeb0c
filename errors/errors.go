package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType string

// Domain/Business Logic Errors - errors related to input validation and lookups
const (
	ValidationError ErrorType = "VALIDATION_ERROR"
	NotFoundError   ErrorType = "NOT_FOUND_ERROR"
)

// Infrastructure Errors - errors related to external systems and services
const (
	FetchError               ErrorType = "FETCH_ERROR"
	GeocodeError             ErrorType = "GEOCODE_ERROR"
	LocationUnavailableError ErrorType = "LOCATION_UNAVAILABLE_ERROR"
	DataShapeError           ErrorType = "DATA_SHAPE_ERROR"
	DatabaseError            ErrorType = "DATABASE_ERROR"
	NotificationError        ErrorType = "NOTIFICATION_ERROR"
)

// System/Configuration Errors - errors related to system setup and configuration
const (
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

// Infrastructure Error Constructors
func NewFetchError(message string, cause error) *AppError {
	return Wrap(FetchError, message, cause)
}

func NewGeocodeError(message string, cause error) *AppError {
	return Wrap(GeocodeError, message, cause)
}

func NewLocationUnavailableError(message string, cause error) *AppError {
	return Wrap(LocationUnavailableError, message, cause)
}

// NewDataShapeError marks an upstream payload whose parallel arrays or
// required fields are inconsistent. Such a payload fails the whole fetch,
// it is never partially consumed.
func NewDataShapeError(message string) *AppError {
	return New(DataShapeError, message)
}

func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

func NewNotificationError(message string, cause error) *AppError {
	return Wrap(NotificationError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}
