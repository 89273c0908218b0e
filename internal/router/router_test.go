package router

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aouyang1/go-hwforecaster/internal/config"
	"github.com/aouyang1/go-hwforecaster/internal/handlers"
	"github.com/aouyang1/go-hwforecaster/internal/logging"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutes(t *testing.T) {
	testData := map[string]struct {
		method string
		path   string
		body   string
		status int
	}{
		"home": {
			method: fiber.MethodGet,
			path:   "/",
			status: fiber.StatusOK,
		},
		"forecast": {
			method: fiber.MethodPost,
			path:   "/v1/forecast",
			body:   `{"values":[1,2,3,4,2,3,4,5,3,4,5,6],"seasonal_period":4,"horizon":2}`,
			status: fiber.StatusOK,
		},
		"forecast wrong method": {
			method: fiber.MethodGet,
			path:   "/v1/forecast",
			status: fiber.StatusNotFound,
		},
		"unknown": {
			method: fiber.MethodGet,
			path:   "/v2/forecast",
			status: fiber.StatusNotFound,
		},
	}

	app := New(logging.NewNop(), *config.DefaultConfig())
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(td.method, td.path, strings.NewReader(td.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			req.Header.Set(fiber.HeaderOrigin, "http://localhost:8501")

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, td.status, resp.StatusCode)
			assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
			assert.NotEmpty(t, resp.Header.Get(logging.RequestIDHeader))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logging.NewNop()),
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	testData := map[string]struct {
		path    string
		status  int
		message string
	}{
		"fiber error": {
			path:    "/teapot",
			status:  fiber.StatusTeapot,
			message: "short and stout",
		},
		"plain error": {
			path:    "/boom",
			status:  fiber.StatusInternalServerError,
			message: "internal server error",
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, td.path, nil))
			require.NoError(t, err)
			assert.Equal(t, td.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var res handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &res))
			assert.Equal(t, td.message, res.Error.Message)
		})
	}
}
