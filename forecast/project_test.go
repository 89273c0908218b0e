package forecast

import (
	"testing"

	"github.com/aouyang1/go-hwforecaster/forecast/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectInvalidHorizon(t *testing.T) {
	m, err := Fit(mustSeries(t, monthlySales), &options.Options{SeasonalPeriod: 12})
	require.Nil(t, err)

	for _, h := range []int{0, -1, -100} {
		points, err := Project(m, h)
		assert.ErrorIs(t, err, ErrInvalidHorizon, "horizon %d", h)
		assert.Nil(t, points)
	}
}

func TestProjectUninitialized(t *testing.T) {
	_, err := Project(nil, 1)
	assert.ErrorIs(t, err, ErrUninitializedModel)
}

func TestProjectDeterministic(t *testing.T) {
	m, err := Fit(mustSeries(t, noisyWeekly(70)), &options.Options{SeasonalPeriod: 7})
	require.Nil(t, err)
	before := m.FinalState()

	first, err := Project(m, 30)
	require.Nil(t, err)
	second, err := m.Project(30)
	require.Nil(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, before, m.FinalState())
}

func TestProjectPrefixIdempotent(t *testing.T) {
	m, err := Fit(mustSeries(t, noisyWeekly(70)), &options.Options{SeasonalPeriod: 7})
	require.Nil(t, err)

	full, err := m.Project(25)
	require.Nil(t, err)
	for i, p := range full {
		assert.Equal(t, i+1, p.Offset)
	}

	for _, h := range []int{1, 2, 7, 13, 24} {
		prefix, err := m.Project(h)
		require.Nil(t, err)
		assert.Equal(t, full[:h], prefix, "horizon %d", h)
	}
}

func TestProjectSeasonalPhase(t *testing.T) {
	state := State{Level: 10, Trend: 1, Seasonal: []float64{100, 200, 300}}
	// 4 observations leaves the next step at phase 1
	m := &FittedModel{period: 3, nObs: 4, final: state}

	points, err := m.Project(4)
	require.Nil(t, err)
	assert.Equal(t, []Point{
		{Offset: 1, Value: 10 + 1 + 200},
		{Offset: 2, Value: 10 + 2 + 300},
		{Offset: 3, Value: 10 + 3 + 100},
		{Offset: 4, Value: 10 + 4 + 200},
	}, points)
}
