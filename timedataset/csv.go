package timedataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var (
	ErrMissingColumn = errors.New("required column not found in header")
	ErrMalformedRow  = errors.New("malformed csv row")
)

// CSVOptions configures how a dated observation file is read. Column names are matched
// case-insensitively after trimming whitespace.
type CSVOptions struct {
	DateColumn  string
	ValueColumn string
	Delimiter   rune
	Location    *time.Location
}

// NewDefaultCSVOptions reads a comma delimited file with Date and Sales columns
func NewDefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn:  "date",
		ValueColumn: "sales",
		Delimiter:   ',',
		Location:    time.UTC,
	}
}

// LoadCSV reads a header row followed by date/value rows and returns a validated
// TimeDataset ordered by date.
func LoadCSV(r io.Reader, opt *CSVOptions) (*TimeDataset, error) {
	if opt == nil {
		opt = NewDefaultCSVOptions()
	}
	loc := opt.Location
	if loc == nil {
		loc = time.UTC
	}

	reader := csv.NewReader(r)
	if opt.Delimiter != 0 {
		reader.Comma = opt.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv, %w", ErrNoTrainingData)
		}
		return nil, fmt.Errorf("unable to read csv header, %w, %w", ErrMalformedRow, err)
	}

	dateIdx, valueIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case strings.ToLower(opt.DateColumn):
			dateIdx = i
		case strings.ToLower(opt.ValueColumn):
			valueIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("%q, %w", opt.DateColumn, ErrMissingColumn)
	}
	if valueIdx < 0 {
		return nil, fmt.Errorf("%q, %w", opt.ValueColumn, ErrMissingColumn)
	}

	type row struct {
		t time.Time
		y float64
	}
	var rows []row
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d, %w, %w", line, ErrMalformedRow, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf(
				"line %d has %d fields, expected %d, %w",
				line, len(record), len(header), ErrMalformedRow,
			)
		}

		t, err := cast.ToTimeInDefaultLocationE(strings.TrimSpace(record[dateIdx]), loc)
		if err != nil {
			return nil, fmt.Errorf("line %d date %q, %w", line, record[dateIdx], ErrMalformedRow)
		}
		y, err := cast.ToFloat64E(strings.TrimSpace(record[valueIdx]))
		if err != nil {
			return nil, fmt.Errorf("line %d value %q, %w", line, record[valueIdx], ErrMalformedRow)
		}
		rows = append(rows, row{t: t, y: y})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].t.Before(rows[j].t)
	})

	t := make([]time.Time, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		t[i] = r.t
		y[i] = r.y
	}
	return NewUnivariateDataset(t, y)
}
