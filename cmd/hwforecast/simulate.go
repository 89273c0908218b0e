package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/aouyang1/go-hwforecaster/timedataset"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

type simulateFlags struct {
	n         int
	period    int
	intercept float64
	slope     float64
	amp       float64
	noise     float64
	seed      uint64
	start     string
	interval  time.Duration
	out       string
}

func newSimulateCmd(a *app) *cobra.Command {
	flags := &simulateFlags{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Write a synthetic seasonal series as csv",
		Long: `Generate a series made of a linear trend, a sine wave repeating every
period steps and normally distributed noise. The output has date and sales
columns and can be fed back into forecast --csv or the csv endpoint.`,
		Example: `  hwforecast simulate --n 365 --period 7 --noise 2 --out sales.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if flags.out != "" {
				file, err := os.Create(flags.out)
				if err != nil {
					return fmt.Errorf("unable to create output file, %w", err)
				}
				defer file.Close()
				w = file
			}
			if err := runSimulate(w, flags); err != nil {
				return err
			}
			if flags.out != "" {
				a.logger.Info("wrote simulated series", "path", flags.out, "observations", flags.n)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&flags.n, "n", 365, "Number of observations")
	cmd.Flags().IntVarP(&flags.period, "period", "p", 7, "Seasonal period in steps")
	cmd.Flags().Float64Var(&flags.intercept, "intercept", 100, "Value of the first observation before seasonality and noise")
	cmd.Flags().Float64Var(&flags.slope, "slope", 0.1, "Change in level per step")
	cmd.Flags().Float64Var(&flags.amp, "amp", 10, "Amplitude of the seasonal sine wave")
	cmd.Flags().Float64Var(&flags.noise, "noise", 1, "Standard deviation of the noise")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 1, "Noise seed")
	cmd.Flags().StringVar(&flags.start, "start", "2024-01-01", "Date of the first observation")
	cmd.Flags().DurationVar(&flags.interval, "interval", 24*time.Hour, "Spacing between observations")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output path (default: stdout)")
	return cmd
}

func runSimulate(w io.Writer, flags *simulateFlags) error {
	if flags.n < 1 {
		return fmt.Errorf("n of %d, %w", flags.n, timedataset.ErrNoTrainingData)
	}
	if flags.period < 1 {
		return fmt.Errorf("period of %d must be positive", flags.period)
	}
	if flags.interval <= 0 {
		return fmt.Errorf("interval of %s, %w", flags.interval, timedataset.ErrNonPositiveFreq)
	}
	start, err := cast.ToTimeInDefaultLocationE(flags.start, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid start %q, %w", flags.start, err)
	}

	t := timedataset.GenerateT(flags.n, flags.interval, func() time.Time {
		return start.Add(time.Duration(flags.n) * flags.interval)
	})
	y := timedataset.GenerateLinearY(flags.n, flags.intercept, flags.slope).
		Add(timedataset.GenerateSeasonalY(flags.n, flags.amp, flags.period, 0)).
		Add(timedataset.GenerateNoise(flags.n, flags.noise, flags.seed))

	layout := time.RFC3339
	if flags.interval%(24*time.Hour) == 0 {
		layout = "2006-01-02"
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "sales"}); err != nil {
		return err
	}
	for i := range t {
		if err := cw.Write([]string{t[i].Format(layout), strconv.FormatFloat(y[i], 'f', 4, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
