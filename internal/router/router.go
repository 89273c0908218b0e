package router

import (
	"github.com/aouyang1/go-hwforecaster/internal/config"
	"github.com/aouyang1/go-hwforecaster/internal/handlers"
	"github.com/aouyang1/go-hwforecaster/internal/logging"
	"github.com/aouyang1/go-hwforecaster/internal/services"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, cfg config.Config) *handlers.Handler {
	forecastService := services.NewForecastService(logger, cfg.Forecast)
	h := handlers.New(logger, forecastService)

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	app.Get("/", h.Home)

	v1 := app.Group("/v1")
	v1.Post("/forecast", h.Forecast)
	v1.Post("/forecast/csv", h.ForecastCSV)

	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, cfg config.Config) *fiber.App {
	fiberCfg := fiber.Config{
		AppName:               "hwforecast",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler(logger),
	}
	if cfg.Server.BodyLimit > 0 {
		fiberCfg.BodyLimit = cfg.Server.BodyLimit
	}
	app := fiber.New(fiberCfg)

	Setup(app, logger, cfg)

	return app
}

// ErrorHandler renders errors that escape the handlers in the same shape as handled
// errors
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		logger.WithContext(c.UserContext()).Error("request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(handlers.ErrorResponse{
			Error: handlers.ErrorDetail{
				Code:    "ERROR",
				Message: message,
			},
		})
	}
}
