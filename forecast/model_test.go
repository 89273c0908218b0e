package forecast

import (
	"bytes"
	"testing"

	"github.com/aouyang1/go-hwforecaster/forecast/options"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelRoundTrip(t *testing.T) {
	m, err := Fit(mustSeries(t, noisyWeekly(70)), &options.Options{SeasonalPeriod: 7})
	require.Nil(t, err)

	model, err := m.Model()
	require.Nil(t, err)

	out, err := json.Marshal(model)
	require.Nil(t, err)

	var decoded Model
	require.Nil(t, json.Unmarshal(out, &decoded))

	restored, err := NewFromModel(decoded)
	require.Nil(t, err)

	expected, err := m.Project(14)
	require.Nil(t, err)
	res, err := restored.Project(14)
	require.Nil(t, err)
	assert.Equal(t, expected, res)

	assert.Equal(t, m.Params(), restored.Params())
	assert.Equal(t, m.SSE(), restored.SSE())
	assert.Equal(t, m.Scores(), restored.Scores())
	assert.Equal(t, m.Options(), restored.Options())
	assert.Nil(t, restored.FittedValues())
	assert.Nil(t, restored.Residuals())
}

func TestModelUninitialized(t *testing.T) {
	var m *FittedModel
	_, err := m.Model()
	assert.ErrorIs(t, err, ErrUninitializedModel)
}

func TestNewFromModelErrors(t *testing.T) {
	valid := Model{
		Params:          Params{Alpha: 0.5, Beta: 0.5, Gamma: 0.5},
		SeasonalPeriod:  2,
		NumObservations: 4,
		FinalState:      State{Level: 1, Trend: 0, Seasonal: []float64{1, -1}},
	}

	testData := map[string]struct {
		modify func(m Model) Model
		err    error
	}{
		"invalid period": {
			modify: func(m Model) Model { m.SeasonalPeriod = 1; return m },
			err:    options.ErrInvalidSeasonalPeriod,
		},
		"seasonal length mismatch": {
			modify: func(m Model) Model { m.FinalState.Seasonal = []float64{1}; return m },
			err:    ErrInvalidModel,
		},
		"too few observations": {
			modify: func(m Model) Model { m.NumObservations = 3; return m },
			err:    ErrInvalidModel,
		},
		"invalid params": {
			modify: func(m Model) Model { m.Params.Gamma = 0; return m },
			err:    options.ErrInvalidParams,
		},
		"invalid options": {
			modify: func(m Model) Model { m.Options = &options.Options{SeasonalPeriod: 2, Trend: "damped"}; return m },
			err:    options.ErrUnsupportedComponent,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := NewFromModel(td.modify(valid))
			assert.ErrorIs(t, err, td.err)
		})
	}

	m, err := NewFromModel(valid)
	require.Nil(t, err)
	assert.Equal(t, 2, m.Options().SeasonalPeriod)

	points, err := m.Project(2)
	require.Nil(t, err)
	assert.Equal(t, []Point{{Offset: 1, Value: 2}, {Offset: 2, Value: 0}}, points)
}

func TestModelTablePrint(t *testing.T) {
	testData := map[string]struct {
		m        Model
		prefix   string
		indent   string
		expected string
	}{
		"no input": {
			expected: `Forecast:
Observations: 0    Seasonal Period: 0
Params:
  Alpha   Beta  Gamma
 0.0000 0.0000 0.0000
State:
Level: 0.000    Trend: 0.000
 Season Offset
`,
		},
		"basic input with prefix and indent": {
			m: Model{
				Params:          Params{Alpha: 0.1, Beta: 0.2, Gamma: 0.3},
				SeasonalPeriod:  2,
				NumObservations: 4,
				Scores: &Scores{
					MAPE: 0.1234,
					MSE:  1.2345,
					R2:   0.0123,
				},
				FinalState: State{Level: 10, Trend: 1.5, Seasonal: []float64{-1, 1}},
			},
			prefix: "--",
			indent: "**",
			expected: `--Forecast:
--**Observations: 4    Seasonal Period: 2
--**Params:
  --****Alpha   Beta  Gamma
 --****0.1000 0.2000 0.3000
--Scores:
--**MAPE: 0.123    MSE: 1.234    R2: 0.012
--State:
--**Level: 10.000    Trend: 1.500
 --**Season Offset
      --**0 -1.000
      --**1  1.000
`,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.Nil(t, td.m.TablePrint(&buf, td.prefix, td.indent))
			assert.Equal(t, td.expected, buf.String())
		})
	}
}
