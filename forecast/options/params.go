package options

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/aouyang1/go-hwforecaster/forecast/util"
)

// MinParam is the smallest smoothing parameter the search will consider. Parameters live
// in (0, 1] so candidates are clipped into [MinParam, 1].
const MinParam = 1e-4

var ErrInvalidParams = errors.New("smoothing parameters must be in (0, 1]")

// Params are the level (Alpha), trend (Beta) and seasonal (Gamma) smoothing parameters
type Params struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
}

func (p Params) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"alpha", p.Alpha},
		{"beta", p.Beta},
		{"gamma", p.Gamma},
	} {
		if math.IsNaN(v.val) || v.val <= 0 || v.val > 1 {
			return fmt.Errorf("%s of %v, %w", v.name, v.val, ErrInvalidParams)
		}
	}
	return nil
}

// Clip returns the parameters bounded to [MinParam, 1]
func (p Params) Clip() Params {
	return Params{
		Alpha: clip(p.Alpha),
		Beta:  clip(p.Beta),
		Gamma: clip(p.Gamma),
	}
}

// Slice returns the parameters in alpha, beta, gamma order
func (p Params) Slice() []float64 {
	return []float64{p.Alpha, p.Beta, p.Gamma}
}

func ParamsFromSlice(x []float64) Params {
	return Params{Alpha: x[0], Beta: x[1], Gamma: x[2]}
}

func clip(v float64) float64 {
	if math.IsNaN(v) || v < MinParam {
		return MinParam
	}
	if v > 1 {
		return 1
	}
	return v
}

func (p Params) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s%sParams:\n", prefix, util.IndentExpand(indent, indentGrowth))
	fmt.Fprintf(tbl, "%s%sAlpha\tBeta\tGamma\t\n", prefix, util.IndentExpand(indent, indentGrowth+1))
	fmt.Fprintf(tbl, "%s%s%.4f\t%.4f\t%.4f\t\n",
		prefix, util.IndentExpand(indent, indentGrowth+1),
		p.Alpha, p.Beta, p.Gamma,
	)
	return tbl.Flush()
}
