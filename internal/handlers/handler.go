package handlers

import (
	"errors"

	"github.com/aouyang1/go-hwforecaster/internal/logging"
	"github.com/aouyang1/go-hwforecaster/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger          *logging.Logger
	forecastService *services.ForecastService
}

// New creates a new handler instance
func New(logger *logging.Logger, forecastService *services.ForecastService) *Handler {
	return &Handler{
		logger:          logger,
		forecastService: forecastService,
	}
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Path    string         `json:"path,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// statusFor maps a service error code onto an HTTP status
func statusFor(code string) int {
	switch code {
	case services.CodeInvalidSeries, services.CodeInvalidHorizon, services.CodeInvalidRequest:
		return fiber.StatusBadRequest
	case services.CodeInsufficientData, services.CodeModelDiverged:
		return fiber.StatusUnprocessableEntity
	case services.CodeTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) badRequest(c *fiber.Ctx, message string, err error) error {
	detail := ErrorDetail{
		Code:    services.CodeInvalidRequest,
		Message: message,
	}
	if err != nil {
		detail.Details = map[string]any{"error": err.Error()}
	}
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: detail})
}

func (h *Handler) serviceError(c *fiber.Ctx, err error) error {
	var svcErr *services.ServiceError
	if !errors.As(err, &svcErr) {
		svcErr = services.NewServiceError(services.CodeForecastFailed, err.Error())
	}
	status := statusFor(svcErr.Code)
	if status >= fiber.StatusInternalServerError {
		h.logger.WithContext(c.UserContext()).Error("forecast request failed", "code", svcErr.Code, "error", err)
	}
	return c.Status(status).JSON(ErrorResponse{
		Error: ErrorDetail{
			Code:    svcErr.Code,
			Message: svcErr.Message,
			Details: svcErr.Details,
		},
	})
}
