package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "latitude out of range")
			},
			expected: "VALIDATION_ERROR: latitude out of range",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("connection refused")
				return Wrap(FetchError, "weather request failed", cause)
			},
			expected: "FETCH_ERROR: weather request failed (caused by: connection refused)",
		},
		{
			name: "DataShapeError",
			setup: func() *AppError {
				return NewDataShapeError("hourly arrays have mismatched lengths")
			},
			expected: "DATA_SHAPE_ERROR: hourly arrays have mismatched lengths",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial timeout")
	err := NewFetchError("air quality request failed", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))

	plain := NewValidationError("unit must be celsius or fahrenheit")
	assert.Nil(t, plain.Unwrap())
}

func TestErrorAs_PreservesType(t *testing.T) {
	var appErr *AppError

	wrapped := fmt.Errorf("handler: %w", NewLocationUnavailableError("positioning denied", nil))
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, LocationUnavailableError, appErr.Type)
}

func TestConstructors_SetTypes(t *testing.T) {
	tests := []struct {
		err      *AppError
		expected ErrorType
	}{
		{NewValidationError("bad input"), ValidationError},
		{NewNotFoundError("no results"), NotFoundError},
		{NewFetchError("upstream down", nil), FetchError},
		{NewGeocodeError("search failed", nil), GeocodeError},
		{NewLocationUnavailableError("denied", nil), LocationUnavailableError},
		{NewDataShapeError("ragged arrays"), DataShapeError},
		{NewDatabaseError("migration failed", nil), DatabaseError},
		{NewNotificationError("delivery failed", nil), NotificationError},
		{NewConfigurationError("missing env", nil), ConfigurationError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.err.Type)
	}
}
