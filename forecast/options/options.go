// Package options contains all options for fitting an additive Holt-Winters model to a
// univariate series
package options

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aouyang1/go-hwforecaster/forecast/util"
)

const (
	DefaultSeasonalPeriod = 12

	ComponentAdditive = "additive"

	// InitCycleMean starts from the first cycle mean with seasonal offsets measured
	// against that mean.
	InitCycleMean = "cycle_mean"
	// InitDetrended measures seasonal offsets against the first cycle trend line and
	// starts from the level back-cast to one step before the first observation.
	InitDetrended = "detrended"
)

var (
	ErrInvalidSeasonalPeriod = errors.New("seasonal period must be at least 2")
	ErrUnsupportedComponent  = errors.New("unsupported component type")
	ErrUnsupportedInit       = errors.New("unsupported initialization method")
)

// Options configures a Holt-Winters fit by specifying the seasonal cycle length, the
// component types and how the smoothing parameters are chosen. Params, when set, skips
// the search and fits with the fixed smoothing parameters.
type Options struct {
	SeasonalPeriod int    `json:"seasonal_period"`
	Trend          string `json:"trend"`
	Seasonal       string `json:"seasonal"`
	Initialization string `json:"initialization"`

	Params        *Params       `json:"params,omitempty"`
	SearchOptions SearchOptions `json:"search_options"`
}

// NewDefaultOptions returns a set of default fit options for monthly data with a yearly
// cycle
func NewDefaultOptions() *Options {
	return &Options{
		SeasonalPeriod: DefaultSeasonalPeriod,
		Trend:          ComponentAdditive,
		Seasonal:       ComponentAdditive,
		Initialization: InitCycleMean,
		SearchOptions:  NewDefaultSearchOptions(),
	}
}

// Validate checks the options and returns a copy with unset fields populated with
// defaults. A nil Options validates to NewDefaultOptions.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}

	out := *o
	if out.SeasonalPeriod < 2 {
		return nil, fmt.Errorf("seasonal period of %d, %w", out.SeasonalPeriod, ErrInvalidSeasonalPeriod)
	}

	trend, err := validateComponent("trend", out.Trend)
	if err != nil {
		return nil, err
	}
	out.Trend = trend

	seasonal, err := validateComponent("seasonal", out.Seasonal)
	if err != nil {
		return nil, err
	}
	out.Seasonal = seasonal

	initialization, err := validateInitialization(out.Initialization)
	if err != nil {
		return nil, err
	}
	out.Initialization = initialization

	if out.Params != nil {
		if err := out.Params.Validate(); err != nil {
			return nil, err
		}
		p := *out.Params
		out.Params = &p
	}

	search, err := out.SearchOptions.Validate()
	if err != nil {
		return nil, err
	}
	out.SearchOptions = search
	return &out, nil
}

func validateComponent(name, val string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", ComponentAdditive:
		return ComponentAdditive, nil
	default:
		return "", fmt.Errorf("%s component %q, %w", name, val, ErrUnsupportedComponent)
	}
}

func validateInitialization(val string) (string, error) {
	switch method := strings.ToLower(strings.TrimSpace(val)); method {
	case "":
		return InitCycleMean, nil
	case InitCycleMean, InitDetrended:
		return method, nil
	default:
		return "", fmt.Errorf("initialization %q, %w", val, ErrUnsupportedInit)
	}
}

func (o *Options) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s%sOptions:\n", prefix, util.IndentExpand(indent, indentGrowth))
	fmt.Fprintf(tbl, "%s%sSeasonal Period:\t%d\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), o.SeasonalPeriod)
	fmt.Fprintf(tbl, "%s%sTrend:\t%s\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), o.Trend)
	fmt.Fprintf(tbl, "%s%sSeasonal:\t%s\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), o.Seasonal)
	fmt.Fprintf(tbl, "%s%sInitialization:\t%s\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), o.Initialization)
	if err := tbl.Flush(); err != nil {
		return err
	}

	if o.Params != nil {
		return o.Params.TablePrint(w, prefix, indent, indentGrowth+1)
	}
	return o.SearchOptions.TablePrint(w, prefix, indent, indentGrowth+1)
}
