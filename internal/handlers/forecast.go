package handlers

import (
	"github.com/aouyang1/go-hwforecaster/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
)

// CSVFileField is the multipart field holding the uploaded observations
const CSVFileField = "file"

// Forecast handles forecasts over raw values
// POST /v1/forecast
func (h *Handler) Forecast(c *fiber.Ctx) error {
	var body services.ForecastRequest
	if err := c.BodyParser(&body); err != nil {
		return h.badRequest(c, "failed to parse request body", err)
	}

	res, err := h.forecastService.Forecast(c.UserContext(), &body)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(res)
}

// ForecastCSV handles forecasts over an uploaded csv with date and sales columns
// POST /v1/forecast/csv?periods=N&seasonal_period=M
func (h *Handler) ForecastCSV(c *fiber.Ctx) error {
	periods, err := intParam(c, "periods")
	if err != nil {
		return h.badRequest(c, "periods must be an integer", err)
	}
	period, err := intParam(c, "seasonal_period")
	if err != nil {
		return h.badRequest(c, "seasonal_period must be an integer", err)
	}

	fh, err := c.FormFile(CSVFileField)
	if err != nil {
		return h.badRequest(c, "missing csv file upload", err)
	}
	file, err := fh.Open()
	if err != nil {
		return h.badRequest(c, "unable to open csv file upload", err)
	}
	defer file.Close()

	res, err := h.forecastService.ForecastCSV(c.UserContext(), file, &services.CSVForecastRequest{
		Periods:        periods,
		SeasonalPeriod: period,
	})
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(res)
}

// intParam reads an integer from the query string falling back to the form body. A
// missing parameter is zero.
func intParam(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		raw = c.FormValue(key)
	}
	if raw == "" {
		return 0, nil
	}
	return cast.ToIntE(raw)
}
