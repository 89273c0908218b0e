package forecast

import "fmt"

// Point is a single projected value Offset steps past the last observation
type Point struct {
	Offset int     `json:"offset"`
	Value  float64 `json:"value"`
}

// Project extends the fitted model horizon steps past the last observation. See
// FittedModel.Project.
func Project(m *FittedModel, horizon int) ([]Point, error) {
	return m.Project(horizon)
}

// Project returns horizon points with offsets 1..horizon. Each value is the final level
// plus the trend carried forward linearly and the seasonal offset for that position in
// the cycle. The model is not modified.
func (m *FittedModel) Project(horizon int) ([]Point, error) {
	if m == nil {
		return nil, ErrUninitializedModel
	}
	if horizon < 1 {
		return nil, fmt.Errorf("horizon of %d, %w", horizon, ErrInvalidHorizon)
	}

	points := make([]Point, 0, horizon)
	for k := 1; k <= horizon; k++ {
		idx := (m.nObs - 1 + k) % m.period
		val := m.final.Level + float64(k)*m.final.Trend + m.final.Seasonal[idx]
		points = append(points, Point{Offset: k, Value: val})
	}
	return points, nil
}

// PointValues returns the projected values in offset order
func PointValues(points []Point) []float64 {
	vals := make([]float64, 0, len(points))
	for _, p := range points {
		vals = append(vals, p.Value)
	}
	return vals
}
