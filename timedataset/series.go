package timedataset

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSeries = errors.New("invalid series")

// Series is an immutable sequence of finite observations where the position of each value
// is its index. Insertion order is chronological order.
type Series struct {
	values []float64
}

// FromValues validates and copies the raw observations into a Series. An empty input or
// any NaN/Inf value returns an error wrapping ErrInvalidSeries.
func FromValues(values []float64) (*Series, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no observations, %w", ErrInvalidSeries)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite value %v at index %d, %w", v, i, ErrInvalidSeries)
		}
	}

	y := make([]float64, len(values))
	copy(y, values)
	return &Series{values: y}, nil
}

// Len returns the number of observations
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// At returns the observation at index i. Panics if i is out of range.
func (s *Series) At(i int) float64 {
	return s.values[i]
}

// Values returns a copy of the observations
func (s *Series) Values() []float64 {
	if s == nil {
		return nil
	}
	y := make([]float64, len(s.values))
	copy(y, s.values)
	return y
}

// Window returns a read-only view of the observations in [start, end). Callers must not
// modify the returned slice.
func (s *Series) Window(start, end int) []float64 {
	return s.values[start:end:end]
}

// Last returns the final observation
func (s *Series) Last() float64 {
	return s.values[len(s.values)-1]
}
