package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScores(t *testing.T) {
	testData := map[string]struct {
		predicted []float64
		actual    []float64
		expected  *Scores
		err       error
	}{
		"length mismatch": {
			predicted: []float64{1, 2},
			actual:    []float64{1},
			err:       ErrResLenMismatch,
		},
		"empty": {
			expected: &Scores{R2: 1.0},
		},
		"perfect fit": {
			predicted: []float64{1, 2, 3},
			actual:    []float64{1, 2, 3},
			expected:  &Scores{R2: 1.0},
		},
		"constant matched": {
			predicted: []float64{4, 4, 4},
			actual:    []float64{4, 4, 4},
			expected:  &Scores{R2: 1.0},
		},
		"constant missed": {
			predicted: []float64{4, 5, 4},
			actual:    []float64{4, 4, 4},
			expected: &Scores{
				SSE:  1,
				MSE:  1.0 / 3.0,
				RMSE: 0.5773502691896257,
				MAE:  1.0 / 3.0,
				MAPE: 0.25 / 3.0,
				R2:   0,
			},
		},
		"with errors": {
			predicted: []float64{2, 2, 4, 4},
			actual:    []float64{1, 2, 3, 4},
			expected: &Scores{
				SSE:  2,
				MSE:  0.5,
				RMSE: 0.7071067811865476,
				MAE:  0.5,
				MAPE: (1.0 + 1.0/3.0) / 4.0,
				R2:   0.6,
			},
		},
		"zero actual skipped in mape": {
			predicted: []float64{1, 2},
			actual:    []float64{0, 2},
			expected: &Scores{
				SSE:  1,
				MSE:  0.5,
				RMSE: 0.7071067811865476,
				MAE:  0.5,
				MAPE: 0,
				R2:   0.5,
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := NewScores(td.predicted, td.actual)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDelta(t, td.expected.SSE, res.SSE, 1e-9)
			assert.InDelta(t, td.expected.MSE, res.MSE, 1e-9)
			assert.InDelta(t, td.expected.RMSE, res.RMSE, 1e-9)
			assert.InDelta(t, td.expected.MAE, res.MAE, 1e-9)
			assert.InDelta(t, td.expected.MAPE, res.MAPE, 1e-9)
			assert.InDelta(t, td.expected.R2, res.R2, 1e-9)
		})
	}
}

func TestMSE(t *testing.T) {
	_, err := MSE([]float64{1}, nil)
	assert.ErrorIs(t, err, ErrResLenMismatch)

	mse, err := MSE([]float64{1, 3}, []float64{2, 1})
	require.Nil(t, err)
	assert.InDelta(t, 2.5, mse, 1e-12)
}
