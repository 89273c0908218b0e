// Package stats provides summary statistics over residual series
package stats

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrInvalidPercentiles = errors.New("lower percentile must be less than upper percentile")

// DetectOutliers returns the indices of values outside the Tukey fences built from the
// lower and upper percentiles. With the 0.25 and 0.75 percentiles and a factor of 1.5 these
// are the usual box plot whiskers. Percentiles are clamped into [0, 1] and the factor is
// floored at 0.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) ([]int, error) {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)
	if lowerPerc >= upperPerc {
		return nil, ErrInvalidPercentiles
	}
	if len(y) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(y)
	slices.Sort(sorted)
	lower := stat.Quantile(lowerPerc, stat.Empirical, sorted, nil)
	upper := stat.Quantile(upperPerc, stat.Empirical, sorted, nil)

	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] > upper || y[i] < lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx, nil
}

// Description summarizes the distribution of a series
type Description struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// Describe computes count, mean, sample standard deviation, min, max and quartiles
func Describe(y []float64) Description {
	if len(y) == 0 {
		return Description{}
	}

	sorted := slices.Clone(y)
	slices.Sort(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	return Description{
		Count:  len(sorted),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(sorted),
		P25:    stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P75:    stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    floats.Max(sorted),
	}
}
