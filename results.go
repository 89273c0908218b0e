package forecaster

import (
	"time"

	"github.com/aouyang1/go-hwforecaster/forecast"
)

// Results holds a projection. T is only populated when the forecaster was fit on a time
// indexed series.
type Results struct {
	Offsets  []int       `json:"offsets"`
	T        []time.Time `json:"time,omitempty"`
	Forecast []float64   `json:"forecast"`
}

// Points returns the forecast as offset/value pairs
func (r *Results) Points() []forecast.Point {
	points := make([]forecast.Point, 0, len(r.Forecast))
	for i, v := range r.Forecast {
		points = append(points, forecast.Point{Offset: r.Offsets[i], Value: v})
	}
	return points
}
