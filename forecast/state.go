package forecast

import (
	"math"
	"slices"

	"github.com/aouyang1/go-hwforecaster/forecast/options"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// State holds the smoothed level, trend and one seasonal offset per position in the
// seasonal cycle
type State struct {
	Level    float64   `json:"level"`
	Trend    float64   `json:"trend"`
	Seasonal []float64 `json:"seasonal"`
}

func (s State) Copy() State {
	return State{
		Level:    s.Level,
		Trend:    s.Trend,
		Seasonal: slices.Clone(s.Seasonal),
	}
}

func (s State) finite() bool {
	if !isFinite(s.Level) || !isFinite(s.Trend) {
		return false
	}
	for _, v := range s.Seasonal {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// initialState estimates the starting components from the first two seasonal cycles.
// The trend is the per-step change between the two cycle means. With InitCycleMean the
// level is the first cycle mean and each seasonal offset is the deviation of the first
// cycle value from that mean. With InitDetrended the offsets are deviations from the
// first cycle trend line and the level is back-cast to one step before the first
// observation. Seasonal offsets are centred to sum to zero.
func initialState(y []float64, period int, method string) State {
	mean1 := stat.Mean(y[:period], nil)
	mean2 := stat.Mean(y[period:2*period], nil)
	trend := (mean2 - mean1) / float64(period)

	level := mean1
	seasonal := make([]float64, period)
	switch method {
	case options.InitDetrended:
		centre := float64(period-1) / 2.0
		for p := 0; p < period; p++ {
			seasonal[p] = y[p] - (mean1 + (float64(p)-centre)*trend)
		}
		level = mean1 - float64(period+1)/2.0*trend
	default:
		for p := 0; p < period; p++ {
			seasonal[p] = y[p] - mean1
		}
	}
	floats.AddConst(-stat.Mean(seasonal, nil), seasonal)

	return State{
		Level:    level,
		Trend:    trend,
		Seasonal: seasonal,
	}
}

// smooth runs the additive Holt-Winters recurrence over every observation starting from
// init and returns the final state along with the sum of squared one-step errors. If
// fitted is non-nil it is filled with the one-step predictions. A diverging run returns
// an SSE of +Inf.
func smooth(y []float64, init State, p Params, fitted []float64) (State, float64) {
	period := len(init.Seasonal)
	seasonal := slices.Clone(init.Seasonal)
	trend := init.Trend
	level := init.Level

	var sse float64
	for t, obs := range y {
		idx := t % period
		pred := level + trend + seasonal[idx]
		if fitted != nil {
			fitted[t] = pred
		}

		r := obs - pred
		level += trend + p.Alpha*r
		trend += p.Alpha * p.Beta * r
		seasonal[idx] += p.Gamma * (1 - p.Alpha) * r

		sse += r * r
		if !isFinite(sse) {
			return State{}, math.Inf(1)
		}
	}

	return State{
		Level:    level,
		Trend:    trend,
		Seasonal: seasonal,
	}, sse
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
