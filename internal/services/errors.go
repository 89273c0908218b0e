package services

import (
	"context"
	"errors"

	"github.com/aouyang1/go-hwforecaster/forecast"
	"github.com/aouyang1/go-hwforecaster/forecast/options"
	"github.com/aouyang1/go-hwforecaster/timedataset"
)

const (
	CodeInvalidSeries    = "INVALID_SERIES"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeInvalidHorizon   = "INVALID_HORIZON"
	CodeModelDiverged    = "MODEL_DIVERGED"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeTimeout          = "TIMEOUT"
	CodeForecastFailed   = "FORECAST_FAILED"
)

// ServiceError represents a business logic error
type ServiceError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap returns the error that caused the service error if any
func (e *ServiceError) Unwrap() error {
	return e.err
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]any) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// classify maps an error from the forecasting packages onto a ServiceError. Errors that
// are already a ServiceError pass through unchanged.
func classify(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	code := CodeForecastFailed
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		code = CodeTimeout
	case errors.Is(err, forecast.ErrInsufficientData):
		code = CodeInsufficientData
	case errors.Is(err, forecast.ErrInvalidHorizon):
		code = CodeInvalidHorizon
	case errors.Is(err, forecast.ErrModelDiverged):
		code = CodeModelDiverged
	case errors.Is(err, timedataset.ErrInvalidSeries),
		errors.Is(err, timedataset.ErrNoTrainingData),
		errors.Is(err, timedataset.ErrNonMontonic),
		errors.Is(err, timedataset.ErrDatasetLenMismatch),
		errors.Is(err, timedataset.ErrMissingColumn),
		errors.Is(err, timedataset.ErrMalformedRow):
		code = CodeInvalidSeries
	case errors.Is(err, options.ErrInvalidSeasonalPeriod),
		errors.Is(err, options.ErrUnsupportedComponent),
		errors.Is(err, options.ErrUnsupportedInit),
		errors.Is(err, options.ErrInvalidParams),
		errors.Is(err, options.ErrInvalidGrid):
		code = CodeInvalidRequest
	}

	return &ServiceError{
		Code:    code,
		Message: err.Error(),
		err:     err,
	}
}
