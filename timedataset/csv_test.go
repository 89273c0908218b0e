package timedataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	testData := map[string]struct {
		input    string
		opt      *CSVOptions
		expected *TimeDataset
		err      error
	}{
		"empty file": {
			input: "",
			err:   ErrNoTrainingData,
		},
		"header only": {
			input: "Date,Sales\n",
			err:   ErrNoTrainingData,
		},
		"missing value column": {
			input: "Date,Units\n2024-01-01,5\n",
			err:   ErrMissingColumn,
		},
		"missing date column": {
			input: "Day,Sales\n2024-01-01,5\n",
			err:   ErrMissingColumn,
		},
		"bad date": {
			input: "Date,Sales\nyesterday,5\n",
			err:   ErrMalformedRow,
		},
		"bad value": {
			input: "Date,Sales\n2024-01-01,lots\n",
			err:   ErrMalformedRow,
		},
		"extra field": {
			input: "Date,Sales\n2024-01-01,5\n2024-01-02,6,extra\n",
			err:   ErrMalformedRow,
		},
		"missing field": {
			input: "Date,Sales\n2024-01-01,5\n2024-01-02\n",
			err:   ErrMalformedRow,
		},
		"unterminated quote": {
			input: "Date,Sales\n2024-01-01,\"5\n2024-01-02,6\n",
			err:   ErrMalformedRow,
		},
		"bare quote in header": {
			input: "Da\"te,Sales\n2024-01-01,5\n",
			err:   ErrMalformedRow,
		},
		"nan value": {
			input: "Date,Sales\n2024-01-01,5\n2024-01-02,NaN\n",
			err:   ErrInvalidSeries,
		},
		"duplicate dates": {
			input: "Date,Sales\n2024-01-01,5\n2024-01-01,6\n",
			err:   ErrNonMontonic,
		},
		"unordered rows with extra columns": {
			input: "Store, Date ,Sales\n1,2024-01-03,30\n1,2024-01-01,10\n1,2024-01-02,20\n",
			expected: &TimeDataset{
				T: []time.Time{
					time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
				},
				Y: []float64{10, 20, 30},
			},
		},
		"custom columns and delimiter": {
			input: "ts;demand\n2024-02-01;1.5\n2024-03-01;2.5\n",
			opt: &CSVOptions{
				DateColumn:  "TS",
				ValueColumn: "Demand",
				Delimiter:   ';',
			},
			expected: &TimeDataset{
				T: []time.Time{
					time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				},
				Y: []float64{1.5, 2.5},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := LoadCSV(strings.NewReader(td.input), td.opt)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			require.Len(t, res.T, len(td.expected.T))
			for i := range td.expected.T {
				assert.True(t, td.expected.T[i].Equal(res.T[i]), "time at %d", i)
			}
			assert.Equal(t, td.expected.Y, res.Y)
		})
	}
}
