package forecaster

import (
	"io"
	"math"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// missingValue is the echarts placeholder for a gap in a line series
const missingValue = "-"

// LineTSeries generates an echart multi-line chart for some arbitrary label/value combination.
// Each series in y must have the same length as the x axis labels. NaN values are drawn as
// gaps.
func LineTSeries(title string, seriesName []string, x []string, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	line = line.SetXAxis(x)
	for i, series := range seriesName {
		lineData := make([]opts.LineData, 0, len(y[i]))
		for _, v := range y[i] {
			if math.IsNaN(v) {
				lineData = append(lineData, opts.LineData{Value: missingValue})
				continue
			}
			lineData = append(lineData, opts.LineData{Value: v})
		}
		line = line.AddSeries(series, lineData)
	}
	return line
}

// PlotOpts sets the number of points to forecast past the training data. By default 10% of
// the training size is used.
type PlotOpts struct {
	HorizonCnt int
}

// PlotFit uses the Apache Echarts library to generate an html page showing the training data,
// in-sample fit, forecast with its uncertainty band and the fit residual
func (f *Forecaster) PlotFit(w io.Writer, opt *PlotOpts) error {
	if f.model == nil {
		return ErrNotFit
	}
	fitted := f.FittedValues()
	residuals := f.Residuals()
	if len(fitted) == 0 || len(f.observed) == 0 {
		return ErrNoResiduals
	}

	n := len(f.observed)
	horizonCnt := n / 10
	if opt != nil && opt.HorizonCnt > 0 {
		horizonCnt = opt.HorizonCnt
	}
	horizonCnt = max(horizonCnt, 1)

	res, err := f.Forecast(horizonCnt)
	if err != nil {
		return err
	}

	trainPad := nanSlice(n)
	horizonPad := nanSlice(horizonCnt)

	x := f.axisLabels(n, res)
	page := components.NewPage()
	page.AddCharts(
		LineTSeries(
			"Forecast Fit",
			[]string{"Actual", "Fitted", "Forecast"},
			x,
			[][]float64{
				concat(f.observed, horizonPad),
				concat(fitted, horizonPad),
				concat(trainPad, res.Forecast),
			},
		),
		LineTSeries(
			"Forecast Residual",
			[]string{"Residual"},
			x,
			[][]float64{concat(residuals, horizonPad)},
		),
	)
	return page.Render(w)
}

// axisLabels uses training and forecast times when available and step offsets otherwise
func (f *Forecaster) axisLabels(n int, res *Results) []string {
	labels := make([]string, 0, n+len(res.Forecast))
	if f.trainingData != nil && len(res.T) > 0 {
		for _, t := range f.trainingData.T {
			labels = append(labels, t.Format(time.RFC3339))
		}
		for _, t := range res.T {
			labels = append(labels, t.Format(time.RFC3339))
		}
		return labels
	}

	for i := 0; i < n+len(res.Forecast); i++ {
		labels = append(labels, strconv.Itoa(i))
	}
	return labels
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func concat(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
