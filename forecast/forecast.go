// Package forecast fits an additive Holt-Winters model with level, trend and seasonal
// components to a univariate series and projects it forward.
package forecast

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aouyang1/go-hwforecaster/forecast/options"
	"github.com/aouyang1/go-hwforecaster/timedataset"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInsufficientData   = errors.New("series must span at least two seasonal cycles")
	ErrInvalidHorizon     = errors.New("horizon must be at least 1")
	ErrModelDiverged      = errors.New("model diverged for every smoothing parameter candidate")
	ErrUninitializedModel = errors.New("uninitialized model")
)

// Params are the level, trend and seasonal smoothing parameters
type Params = options.Params

// FittedModel is the result of fitting a series. It holds the final smoothed state, the
// chosen smoothing parameters and in-sample diagnostics. It keeps no reference to the
// series it was fit on and is safe to share across goroutines.
type FittedModel struct {
	opt *options.Options

	params Params
	period int
	nObs   int
	sse    float64

	initial State
	final   State

	fitted    []float64
	residuals []float64
	scores    *Scores
}

// Fit estimates the initial components from the first two seasonal cycles, chooses the
// smoothing parameters minimizing the one-step SSE over the whole series and runs the
// recurrence to the last observation. If no options are provided a default is used.
func Fit(s *timedataset.Series, opt *options.Options) (*FittedModel, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("no observations, %w", timedataset.ErrInvalidSeries)
	}

	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate options, %w", err)
	}

	n := s.Len()
	period := opt.SeasonalPeriod
	if n < 2*period {
		return nil, fmt.Errorf(
			"%d observations with seasonal period %d, need at least %d, %w",
			n, period, 2*period, ErrInsufficientData,
		)
	}

	y := s.Window(0, n)
	init := initialState(y, period, opt.Initialization)

	var best candidate
	if opt.Params != nil {
		_, sse := smooth(y, init, *opt.Params, nil)
		if !isFinite(sse) {
			return nil, fmt.Errorf("fixed params %+v, %w", *opt.Params, ErrModelDiverged)
		}
		best = candidate{params: *opt.Params, sse: sse}
	} else {
		best, _, err = searchParams(y, init, opt.SearchOptions)
		if err != nil {
			return nil, fmt.Errorf("unable to search smoothing parameters, %w", err)
		}
	}

	fitted := make([]float64, n)
	final, sse := smooth(y, init, best.params, fitted)
	if !isFinite(sse) || !final.finite() {
		return nil, fmt.Errorf("final run with params %+v, %w", best.params, ErrModelDiverged)
	}

	residuals := make([]float64, n)
	floats.SubTo(residuals, y, fitted)

	scores, err := NewScores(fitted, y)
	if err != nil {
		return nil, fmt.Errorf("unable to compute fit scores, %w", err)
	}

	slog.Debug("fit holt-winters model",
		"observations", n,
		"seasonal_period", period,
		"alpha", best.params.Alpha,
		"beta", best.params.Beta,
		"gamma", best.params.Gamma,
		"sse", sse,
	)

	return &FittedModel{
		opt:       opt,
		params:    best.params,
		period:    period,
		nObs:      n,
		sse:       sse,
		initial:   init,
		final:     final,
		fitted:    fitted,
		residuals: residuals,
		scores:    scores,
	}, nil
}

// Params returns the chosen smoothing parameters
func (m *FittedModel) Params() Params {
	return m.params
}

func (m *FittedModel) SeasonalPeriod() int {
	return m.period
}

// NumObservations returns the length of the series the model was fit on
func (m *FittedModel) NumObservations() int {
	return m.nObs
}

// SSE returns the in-sample sum of squared one-step errors
func (m *FittedModel) SSE() float64 {
	return m.sse
}

// InitialState returns a copy of the state the recurrence started from, estimated from
// the first two cycles
func (m *FittedModel) InitialState() State {
	return m.initial.Copy()
}

// FinalState returns a copy of the state after the last observation
func (m *FittedModel) FinalState() State {
	return m.final.Copy()
}

// FittedValues returns a copy of the in-sample one-step predictions. Models restored
// from a serialized Model return nil.
func (m *FittedModel) FittedValues() []float64 {
	return slices.Clone(m.fitted)
}

// Residuals returns a copy of the in-sample one-step errors, observed minus predicted.
// Models restored from a serialized Model return nil.
func (m *FittedModel) Residuals() []float64 {
	return slices.Clone(m.residuals)
}

func (m *FittedModel) Scores() *Scores {
	if m.scores == nil {
		return nil
	}
	scores := *m.scores
	return &scores
}

// Options returns a copy of the validated options used for the fit
func (m *FittedModel) Options() *options.Options {
	opt := *m.opt
	opt.SearchOptions.Grid = slices.Clone(m.opt.SearchOptions.Grid)
	if m.opt.Params != nil {
		p := *m.opt.Params
		opt.Params = &p
	}
	return &opt
}
