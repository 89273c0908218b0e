package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	forecaster "github.com/aouyang1/go-hwforecaster"
	"github.com/aouyang1/go-hwforecaster/forecast"
	"github.com/aouyang1/go-hwforecaster/stats"
	"github.com/aouyang1/go-hwforecaster/timedataset"
	"github.com/goccy/go-json"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var ErrNoInput = errors.New("exactly one of --values or --csv is required")

type forecastFlags struct {
	values   string
	csvPath  string
	period   int
	init     string
	horizon  int
	asJSON   bool
	plotPath string
	summary  bool
}

// forecastOutput is the --json rendering of a forecast
type forecastOutput struct {
	Results   *forecaster.Results `json:"results"`
	Model     forecast.Model      `json:"model"`
	Residuals stats.Description   `json:"residuals"`
	Outliers  []int               `json:"residual_outliers"`
}

func newForecastCmd(a *app) *cobra.Command {
	flags := &forecastFlags{}
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Fit a series and print its forecast",
		Long: `Fit an additive Holt-Winters model to comma separated values or to a csv
file with date and sales columns, then print the projection.`,
		Example: `  hwforecast forecast --values 500,520,510,530,540,560,550,570 --period 4 --horizon 4
  hwforecast forecast --csv sales.csv --period 7 --horizon 30 --plot fit.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForecast(cmd, a, flags)
		},
	}
	cmd.Flags().StringVar(&flags.values, "values", "", "Comma separated observations in time order")
	cmd.Flags().StringVar(&flags.csvPath, "csv", "", "Path to a csv file with date and sales columns")
	cmd.Flags().IntVarP(&flags.period, "period", "p", 0, "Seasonal period (default: forecast.seasonal_period from config)")
	cmd.Flags().StringVar(&flags.init, "init", "", "Initialization method, cycle_mean or detrended (default: forecast.initialization from config)")
	cmd.Flags().IntVarP(&flags.horizon, "horizon", "H", 0, "Number of steps to forecast (default: forecast.horizon from config)")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Print the forecast and model as json")
	cmd.Flags().StringVar(&flags.plotPath, "plot", "", "Write an html plot of the fit and forecast to this path")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "Print the fit model summary")
	return cmd
}

func runForecast(cmd *cobra.Command, a *app, flags *forecastFlags) error {
	if (flags.values == "") == (flags.csvPath == "") {
		return ErrNoInput
	}

	horizon := flags.horizon
	if horizon == 0 {
		horizon = a.cfg.Forecast.Horizon
	}

	opt := forecaster.NewDefaultOptions()
	opt.SeriesOptions = a.cfg.Forecast.SeriesOptions(flags.period)
	if flags.init != "" {
		opt.SeriesOptions.Initialization = flags.init
	}
	opt.BusinessDays = a.cfg.Forecast.BusinessDays

	f, err := forecaster.New(opt)
	if err != nil {
		return err
	}

	if flags.values != "" {
		y, err := parseValues(flags.values)
		if err != nil {
			return err
		}
		if err := f.Fit(y); err != nil {
			return err
		}
	} else {
		td, err := loadCSVFile(flags.csvPath)
		if err != nil {
			return err
		}
		if err := f.FitWithTime(td.T, td.Y); err != nil {
			return err
		}
	}

	params := f.FittedModel().Params()
	a.logger.Debug("fit series",
		"observations", f.FittedModel().NumObservations(),
		"seasonal_period", f.FittedModel().SeasonalPeriod(),
		"alpha", params.Alpha,
		"beta", params.Beta,
		"gamma", params.Gamma,
	)

	res, err := f.Forecast(horizon)
	if err != nil {
		return err
	}

	if flags.plotPath != "" {
		if err := writePlot(f, flags.plotPath, horizon); err != nil {
			return err
		}
		a.logger.Info("wrote forecast plot", "path", flags.plotPath)
	}

	out := cmd.OutOrStdout()
	if flags.asJSON {
		return writeJSON(out, f, res)
	}
	if err := writeTable(out, res); err != nil {
		return err
	}
	if flags.summary {
		m, err := f.Model()
		if err != nil {
			return err
		}
		desc := stats.Describe(f.Residuals())
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Residuals: mean %.3f    std dev %.3f    min %.3f    max %.3f\n",
			desc.Mean, desc.StdDev, desc.Min, desc.Max)
		return m.TablePrint(out)
	}
	return nil
}

func parseValues(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	y := make([]float64, 0, len(parts))
	for i, p := range parts {
		v, err := cast.ToFloat64E(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("value %d %q, %w", i, p, timedataset.ErrInvalidSeries)
		}
		y = append(y, v)
	}
	return y, nil
}

func loadCSVFile(path string) (*timedataset.TimeDataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open csv, %w", err)
	}
	defer file.Close()
	return timedataset.LoadCSV(file, nil)
}

func writePlot(f *forecaster.Forecaster, path string, horizon int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create plot file, %w", err)
	}
	if err := f.PlotFit(file, &forecaster.PlotOpts{HorizonCnt: horizon}); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeJSON(w io.Writer, f *forecaster.Forecaster, res *forecaster.Results) error {
	m, err := f.Model()
	if err != nil {
		return err
	}
	outliers, err := f.ResidualOutliers()
	if err != nil && !errors.Is(err, forecaster.ErrNoResiduals) {
		return err
	}
	if outliers == nil {
		outliers = []int{}
	}

	out, err := json.MarshalIndent(forecastOutput{
		Results:   res,
		Model:     m.Series,
		Residuals: stats.Describe(f.Residuals()),
		Outliers:  outliers,
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeTable(w io.Writer, res *forecaster.Results) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	hasTime := len(res.T) == len(res.Forecast)
	if hasTime {
		fmt.Fprintf(tw, "Time\tForecast\t\n")
	} else {
		fmt.Fprintf(tw, "Offset\tForecast\t\n")
	}
	for i, v := range res.Forecast {
		if hasTime {
			fmt.Fprintf(tw, "%s\t%.4f\t\n", res.T[i].Format(time.RFC3339), v)
			continue
		}
		fmt.Fprintf(tw, "%d\t%.4f\t\n", res.Offsets[i], v)
	}
	return tw.Flush()
}
