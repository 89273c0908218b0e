package forecast

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aouyang1/go-hwforecaster/forecast/options"
	"github.com/aouyang1/go-hwforecaster/forecast/util"
)

var ErrInvalidModel = errors.New("invalid model")

// Model represents a serializeable format of a fitted model storing the fit options,
// smoothing parameters, initial and final states, and fit scores
type Model struct {
	Options         *options.Options `json:"options"`
	Params          Params           `json:"params"`
	SeasonalPeriod  int              `json:"seasonal_period"`
	NumObservations int              `json:"num_observations"`
	SSE             float64          `json:"sse"`
	InitialState    State            `json:"initial_state"`
	FinalState      State            `json:"final_state"`
	Scores          *Scores          `json:"scores"`
}

// Model returns a serializeable copy of the fitted model
func (m *FittedModel) Model() (Model, error) {
	if m == nil {
		return Model{}, ErrUninitializedModel
	}
	return Model{
		Options:         m.Options(),
		Params:          m.params,
		SeasonalPeriod:  m.period,
		NumObservations: m.nObs,
		SSE:             m.sse,
		InitialState:    m.initial.Copy(),
		FinalState:      m.final.Copy(),
		Scores:          m.Scores(),
	}, nil
}

// NewFromModel restores a fitted model from its serialized form. The restored model can
// project immediately but carries no in-sample fitted values or residuals.
func NewFromModel(model Model) (*FittedModel, error) {
	period := model.SeasonalPeriod
	if period < 2 {
		return nil, fmt.Errorf("seasonal period of %d, %w", period, options.ErrInvalidSeasonalPeriod)
	}
	if len(model.FinalState.Seasonal) != period {
		return nil, fmt.Errorf(
			"final state has %d seasonal components for period %d, %w",
			len(model.FinalState.Seasonal), period, ErrInvalidModel,
		)
	}
	if !model.FinalState.finite() {
		return nil, fmt.Errorf("final state is not finite, %w", ErrInvalidModel)
	}
	if model.NumObservations < 2*period {
		return nil, fmt.Errorf(
			"%d observations with seasonal period %d, %w",
			model.NumObservations, period, ErrInvalidModel,
		)
	}
	if err := model.Params.Validate(); err != nil {
		return nil, fmt.Errorf("%w, %w", ErrInvalidModel, err)
	}

	opt := model.Options
	if opt == nil {
		opt = options.NewDefaultOptions()
		opt.SeasonalPeriod = period
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to validate model options, %w", err)
	}

	m := &FittedModel{
		opt:     opt,
		params:  model.Params,
		period:  period,
		nObs:    model.NumObservations,
		sse:     model.SSE,
		initial: model.InitialState.Copy(),
		final:   model.FinalState.Copy(),
	}
	if model.Scores != nil {
		scores := *model.Scores
		m.scores = &scores
	}
	return m, nil
}

func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sForecast:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sObservations: %d    Seasonal Period: %d\n",
		prefix, util.IndentExpand(indent, 1),
		m.NumObservations, m.SeasonalPeriod,
	); err != nil {
		return err
	}

	if m.Options != nil {
		if err := m.Options.TablePrint(w, prefix, indent, 1); err != nil {
			return err
		}
	}
	if err := m.Params.TablePrint(w, prefix, indent, 1); err != nil {
		return err
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sScores:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sMAPE: %.3f    MSE: %.3f    R2: %.3f\n",
			prefix, util.IndentExpand(indent, 1),
			m.Scores.MAPE,
			m.Scores.MSE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}

	return m.FinalState.tablePrint(w, prefix, indent, 0)
}

func (s State) tablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	if _, err := fmt.Fprintf(w, "%s%sState:\n", prefix, util.IndentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sLevel: %.3f    Trend: %.3f\n",
		prefix, util.IndentExpand(indent, indentGrowth+1),
		s.Level, s.Trend,
	); err != nil {
		return err
	}

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sSeason\tOffset\t\n", prefix, util.IndentExpand(indent, indentGrowth+1)); err != nil {
		return err
	}
	for i, v := range s.Seasonal {
		if _, err := fmt.Fprintf(tbl, "%s%s%d\t%.3f\t\n",
			prefix, util.IndentExpand(indent, indentGrowth+1),
			i, v); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
