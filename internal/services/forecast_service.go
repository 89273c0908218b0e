package services

import (
	"context"
	"fmt"
	"io"
	"time"

	forecaster "github.com/aouyang1/go-hwforecaster"
	"github.com/aouyang1/go-hwforecaster/forecast"
	"github.com/aouyang1/go-hwforecaster/internal/config"
	"github.com/aouyang1/go-hwforecaster/internal/logging"
	"github.com/aouyang1/go-hwforecaster/timedataset"
)

// DateLayout keys dated forecasts
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// ForecastService fits a model per request and projects it forward. Nothing is kept
// between calls.
type ForecastService struct {
	logger *logging.Logger
	cfg    config.ForecastConfig
}

// NewForecastService creates a new ForecastService
func NewForecastService(logger *logging.Logger, cfg config.ForecastConfig) *ForecastService {
	return &ForecastService{
		logger: logger,
		cfg:    cfg,
	}
}

// ForecastRequest represents a forecast over raw values. Zero SeasonalPeriod and Horizon
// use the configured defaults.
type ForecastRequest struct {
	Values         []float64 `json:"values"`
	SeasonalPeriod int       `json:"seasonal_period"`
	Horizon        int       `json:"horizon"`
}

// ForecastResponse holds the projected points and the fit model
type ForecastResponse struct {
	Forecast []forecast.Point `json:"forecast"`
	Model    forecast.Model   `json:"model"`
}

// CSVForecastRequest represents a forecast over an uploaded file of dated observations.
// Zero Periods uses the configured CSV default.
type CSVForecastRequest struct {
	Periods        int
	SeasonalPeriod int
	CSVOptions     *timedataset.CSVOptions
}

// CSVForecastResponse holds the forecast keyed by future date. Dates step one day at a
// time from the last observed date.
type CSVForecastResponse struct {
	Forecast map[string]float64 `json:"forecast"`
	Model    forecast.Model     `json:"model"`
}

// Forecast fits the values and projects the requested horizon
func (s *ForecastService) Forecast(ctx context.Context, req *ForecastRequest) (*ForecastResponse, error) {
	if req == nil {
		return nil, NewServiceError(CodeInvalidRequest, "missing forecast request")
	}
	horizon, err := s.horizon(req.Horizon, s.cfg.Horizon)
	if err != nil {
		return nil, err
	}

	f, err := s.fit(ctx, req.Values, req.SeasonalPeriod)
	if err != nil {
		return nil, err
	}

	res, err := f.Forecast(horizon)
	if err != nil {
		return nil, classify(err)
	}
	m, err := f.Model()
	if err != nil {
		return nil, classify(err)
	}

	return &ForecastResponse{
		Forecast: res.Points(),
		Model:    m.Series,
	}, nil
}

// ForecastCSV loads the dated observations from r, fits the values and projects Periods
// days past the last date
func (s *ForecastService) ForecastCSV(ctx context.Context, r io.Reader, req *CSVForecastRequest) (*CSVForecastResponse, error) {
	if req == nil {
		req = &CSVForecastRequest{}
	}
	horizon, err := s.horizon(req.Periods, s.cfg.CSVPeriods)
	if err != nil {
		return nil, err
	}

	td, err := timedataset.LoadCSV(r, req.CSVOptions)
	if err != nil {
		return nil, classify(fmt.Errorf("unable to load csv, %w", err))
	}

	f, err := s.fit(ctx, td.Y, req.SeasonalPeriod)
	if err != nil {
		return nil, err
	}

	res, err := f.Forecast(horizon)
	if err != nil {
		return nil, classify(err)
	}
	dates, err := s.futureDates(td, horizon)
	if err != nil {
		return nil, classify(err)
	}
	m, err := f.Model()
	if err != nil {
		return nil, classify(err)
	}

	out := &CSVForecastResponse{
		Forecast: make(map[string]float64, horizon),
		Model:    m.Series,
	}
	for i, d := range dates {
		out.Forecast[d.Format(DateLayout)] = res.Forecast[i]
	}
	return out, nil
}

// horizon resolves a requested horizon, falling back to def when unset. MaxHorizon of
// zero leaves the horizon unbounded.
func (s *ForecastService) horizon(h, def int) (int, error) {
	if h == 0 {
		h = def
	}
	if h < 1 || (s.cfg.MaxHorizon > 0 && h > s.cfg.MaxHorizon) {
		msg := "horizon must be at least 1"
		if s.cfg.MaxHorizon > 0 {
			msg = fmt.Sprintf("horizon must be between 1 and %d", s.cfg.MaxHorizon)
		}
		return 0, NewServiceErrorWithDetails(CodeInvalidHorizon, msg, map[string]any{"horizon": h})
	}
	return h, nil
}

func (s *ForecastService) futureDates(td *timedataset.TimeDataset, horizon int) ([]time.Time, error) {
	ts := timedataset.TimeSlice(td.T)
	if s.cfg.BusinessDays {
		return ts.ExtendWorkdays(horizon, day, nil)
	}
	return ts.Extend(horizon, day)
}

// fit trains a forecaster on y, giving up once the configured timeout elapses. The fit
// itself is not interruptible so an abandoned fit runs to completion in the background.
func (s *ForecastService) fit(ctx context.Context, y []float64, period int) (*forecaster.Forecaster, error) {
	logger := s.logger.WithContext(ctx)

	opt := forecaster.NewDefaultOptions()
	opt.SeriesOptions = s.cfg.SeriesOptions(period)
	opt.BusinessDays = s.cfg.BusinessDays

	f, err := forecaster.New(opt)
	if err != nil {
		return nil, classify(err)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- f.Fit(y)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Warn("forecast fit failed", "observations", len(y), "seasonal_period", opt.SeriesOptions.SeasonalPeriod, "error", err)
			return nil, classify(err)
		}
	case <-ctx.Done():
		logger.Warn("forecast fit timed out", "observations", len(y), "timeout", s.cfg.Timeout)
		return nil, classify(ctx.Err())
	}

	params := f.FittedModel().Params()
	logger.Debug("forecast fit",
		"observations", len(y),
		"seasonal_period", opt.SeriesOptions.SeasonalPeriod,
		"alpha", params.Alpha,
		"beta", params.Beta,
		"gamma", params.Gamma,
		"duration", time.Since(start),
	)
	return f, nil
}
