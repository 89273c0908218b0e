// Package forecaster wraps an additive Holt-Winters fit with time indexing, residual
// diagnostics, model export and plotting.
package forecaster

import (
	"errors"
	"fmt"
	"time"

	"github.com/aouyang1/go-hwforecaster/forecast"
	"github.com/aouyang1/go-hwforecaster/stats"
	"github.com/aouyang1/go-hwforecaster/timedataset"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNotFit           = errors.New("forecaster has not been fit")
	ErrNoOptionsInModel = errors.New("no options set in model")
	ErrNoResiduals      = errors.New("no in-sample residuals available")
)

// Forecaster fits a Holt-Winters model and can be used to generate forecasts
type Forecaster struct {
	opt *Options

	model          *forecast.FittedModel
	observed       []float64
	residualStdDev float64

	trainingData *timedataset.TimeDataset
	trainEndTime time.Time
	interval     time.Duration
}

// New creates a new instance of a Forecaster using the provided options. If no options are
// provided a default is used.
func New(opt *Options) (*Forecaster, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Forecaster{opt: opt}, nil
}

// NewFromModel creates a new instance of Forecaster from a pre-existing model. This should be
// generated from a previous forecaster call to Model().
func NewFromModel(model Model) (*Forecaster, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	opt, err := model.Options.Validate()
	if err != nil {
		return nil, err
	}

	fm, err := forecast.NewFromModel(model.Series)
	if err != nil {
		return nil, fmt.Errorf("unable to load from series model, %w", err)
	}
	opt.SeriesOptions = fm.Options()

	return &Forecaster{
		opt:            opt,
		model:          fm,
		residualStdDev: model.ResidualStdDev,
		trainEndTime:   model.TrainEndTime,
		interval:       model.Interval,
	}, nil
}

// Fit fits the model to values ordered by time with no time index
func (f *Forecaster) Fit(y []float64) error {
	s, err := timedataset.FromValues(y)
	if err != nil {
		return fmt.Errorf("unable to create training series, %w", err)
	}
	if err := f.fit(s); err != nil {
		return err
	}

	f.trainingData = nil
	f.trainEndTime = time.Time{}
	f.interval = 0
	return nil
}

// FitWithTime fits the model to a time indexed series. The most common spacing between
// points is used to generate future time points.
func (f *Forecaster) FitWithTime(t []time.Time, y []float64) error {
	td, err := timedataset.NewUnivariateDataset(t, y)
	if err != nil {
		return fmt.Errorf("unable to create training dataset, %w", err)
	}
	interval, err := timedataset.TimeSlice(td.T).EstimateFreq()
	if err != nil {
		return fmt.Errorf("unable to infer interval from training data time, %w", err)
	}

	s, err := td.Series()
	if err != nil {
		return fmt.Errorf("unable to create training series, %w", err)
	}
	if err := f.fit(s); err != nil {
		return err
	}

	f.trainingData = td
	f.trainEndTime = timedataset.TimeSlice(td.T).EndTime()
	f.interval = interval
	return nil
}

func (f *Forecaster) fit(s *timedataset.Series) error {
	model, err := forecast.Fit(s, f.opt.SeriesOptions)
	if err != nil {
		return fmt.Errorf("unable to fit series, %w", err)
	}
	f.model = model
	f.observed = s.Values()

	f.residualStdDev = 0
	if residuals := model.Residuals(); len(residuals) > 1 {
		f.residualStdDev = stat.StdDev(residuals, nil)
	}
	return nil
}

// Forecast projects the fit model horizon steps forward
func (f *Forecaster) Forecast(horizon int) (*Results, error) {
	if f.model == nil {
		return nil, ErrNotFit
	}
	points, err := f.model.Project(horizon)
	if err != nil {
		return nil, fmt.Errorf("unable to project forecast, %w", err)
	}

	res := &Results{
		Offsets:  make([]int, 0, len(points)),
		Forecast: forecast.PointValues(points),
	}
	for _, p := range points {
		res.Offsets = append(res.Offsets, p.Offset)
	}

	if !f.trainEndTime.IsZero() {
		res.T, err = f.futureTimes(horizon)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (f *Forecaster) futureTimes(horizon int) ([]time.Time, error) {
	ts := timedataset.TimeSlice([]time.Time{f.trainEndTime})
	var (
		t   []time.Time
		err error
	)
	if f.opt.BusinessDays {
		t, err = ts.ExtendWorkdays(horizon, f.interval, nil)
	} else {
		t, err = ts.Extend(horizon, f.interval)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to generate forecast time points, %w", err)
	}
	return t, nil
}

// Residuals returns the in-sample one-step errors of the fit, observed minus predicted. A
// forecaster loaded from a model has none.
func (f *Forecaster) Residuals() []float64 {
	if f.model == nil {
		return nil
	}
	return f.model.Residuals()
}

// FittedValues returns the in-sample one-step predictions of the fit
func (f *Forecaster) FittedValues() []float64 {
	if f.model == nil {
		return nil
	}
	return f.model.FittedValues()
}

// ResidualOutliers returns the indices of in-sample residuals outside the outlier fences
func (f *Forecaster) ResidualOutliers() ([]int, error) {
	residuals := f.Residuals()
	if len(residuals) == 0 {
		return nil, ErrNoResiduals
	}
	return stats.DetectOutliers(
		residuals,
		f.opt.OutlierOptions.LowerPercentile,
		f.opt.OutlierOptions.UpperPercentile,
		f.opt.OutlierOptions.TukeyFactor,
	)
}

// ResidualStdDev returns the standard deviation of the in-sample residuals
func (f *Forecaster) ResidualStdDev() float64 {
	return f.residualStdDev
}

// Scores returns the in-sample fit scores
func (f *Forecaster) Scores() *forecast.Scores {
	if f.model == nil {
		return nil
	}
	return f.model.Scores()
}

// FittedModel returns the underlying fit model
func (f *Forecaster) FittedModel() *forecast.FittedModel {
	return f.model
}

// TrainingData returns the time indexed training data. Nil when fit on values only.
func (f *Forecaster) TrainingData() *timedataset.TimeDataset {
	return f.trainingData
}

// Model generates a serializeable representation of the fit options and series model. This
// can be used to initialize a new Forecaster for immediate forecasts skipping the training step.
func (f *Forecaster) Model() (Model, error) {
	if f.model == nil {
		return Model{}, ErrNotFit
	}
	seriesModel, err := f.model.Model()
	if err != nil {
		return Model{}, fmt.Errorf("unable to fetch series model, %w", err)
	}

	opt := *f.opt
	opt.SeriesOptions = seriesModel.Options
	outlier := *f.opt.OutlierOptions
	opt.OutlierOptions = &outlier

	return Model{
		Options:        &opt,
		Series:         seriesModel,
		ResidualStdDev: f.residualStdDev,
		TrainEndTime:   f.trainEndTime,
		Interval:       f.interval,
	}, nil
}
