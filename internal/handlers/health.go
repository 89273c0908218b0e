package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HomeResponse represents the liveness response
type HomeResponse struct {
	Message string `json:"message"`
}

// Home reports the service is running
func (h *Handler) Home(c *fiber.Ctx) error {
	return c.JSON(HomeResponse{Message: "hwforecast is running"})
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error: ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "route not found",
			Path:    c.Path(),
		},
	})
}
