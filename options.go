package forecaster

import (
	"fmt"

	"github.com/aouyang1/go-hwforecaster/forecast/options"
)

// OutlierOptions configures the Tukey fences used to flag in-sample residual outliers
type OutlierOptions struct {
	UpperPercentile float64 `json:"upper_percentile"`
	LowerPercentile float64 `json:"lower_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

// NewOutlierOptions returns the standard box plot fences
func NewOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		UpperPercentile: 0.75,
		LowerPercentile: 0.25,
		TukeyFactor:     1.5,
	}
}

// Options configures the series fit, the outlier fences and whether future time points
// skip non-business days.
type Options struct {
	SeriesOptions  *options.Options `json:"series_options"`
	OutlierOptions *OutlierOptions  `json:"outlier_options"`
	BusinessDays   bool             `json:"business_days"`
}

// NewDefaultOptions returns a set of default forecaster options
func NewDefaultOptions() *Options {
	return &Options{
		SeriesOptions:  options.NewDefaultOptions(),
		OutlierOptions: NewOutlierOptions(),
	}
}

// Validate returns a copy of the options with unset fields populated with defaults
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}
	out := *o

	seriesOpt, err := out.SeriesOptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate series options, %w", err)
	}
	out.SeriesOptions = seriesOpt

	if out.OutlierOptions == nil {
		out.OutlierOptions = NewOutlierOptions()
	} else {
		outlier := *out.OutlierOptions
		out.OutlierOptions = &outlier
	}
	return &out, nil
}
