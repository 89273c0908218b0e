package forecaster

import (
	"fmt"
	"io"
	"time"

	"github.com/aouyang1/go-hwforecaster/forecast"
)

// Model is a serializeable representation of a fit forecaster. TrainEndTime and Interval
// are zero when the forecaster was fit on values only.
type Model struct {
	Options        *Options       `json:"options"`
	Series         forecast.Model `json:"series_model"`
	ResidualStdDev float64        `json:"residual_std_dev"`
	TrainEndTime   time.Time      `json:"train_end_time"`
	Interval       time.Duration  `json:"interval"`
}

func (m Model) TablePrint(w io.Writer) error {
	if !m.TrainEndTime.IsZero() {
		if _, err := fmt.Fprintf(w, "Training End Time: %s    Interval: %s\n", m.TrainEndTime, m.Interval); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Residual Std Dev: %.3f\n", m.ResidualStdDev); err != nil {
		return err
	}
	return m.Series.TablePrint(w, "", "  ")
}
