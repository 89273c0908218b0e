package options

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aouyang1/go-hwforecaster/forecast/util"
)

const (
	DefaultRefineStep     = 0.05
	DefaultMinStep        = 1e-3
	DefaultMaxEvaluations = 2000
	DefaultTolerance      = 1e-9
)

var (
	ErrInvalidGrid        = errors.New("search grid must be non-empty with values in (0, 1]")
	ErrNegativeStep       = errors.New("refinement step cannot be negative")
	ErrNegativeEvaluation = errors.New("max evaluations cannot be negative")
	ErrNegativeTolerance  = errors.New("tolerance cannot be negative")
	ErrNegativeParallel   = errors.New("parallelization cannot be negative")
)

// DefaultGrid is the coarse set of values scanned for each of alpha, beta and gamma
func DefaultGrid() []float64 {
	return []float64{0.1, 0.3, 0.5, 0.7, 0.9}
}

// SearchOptions configures how the smoothing parameters are chosen. The coarse grid is
// scanned first, followed by a coordinate refinement around the best candidate that
// halves its step from RefineStep until it drops below MinStep. Polish runs a bounded
// Nelder-Mead search from the refined point.
type SearchOptions struct {
	Grid          []float64 `json:"grid"`
	RefineStep    float64   `json:"refine_step"`
	MinStep       float64   `json:"min_step"`
	DisableRefine bool      `json:"disable_refine"`

	Polish         bool    `json:"polish"`
	MaxEvaluations int     `json:"max_evaluations"`
	Tolerance      float64 `json:"tolerance"`

	// Parallelization sets how many grid candidates are evaluated concurrently
	Parallelization int `json:"parallelization"`
}

func NewDefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Grid:            DefaultGrid(),
		RefineStep:      DefaultRefineStep,
		MinStep:         DefaultMinStep,
		MaxEvaluations:  DefaultMaxEvaluations,
		Tolerance:       DefaultTolerance,
		Parallelization: 1,
	}
}

// Validate returns a copy of the search options with unset fields populated with defaults
func (s SearchOptions) Validate() (SearchOptions, error) {
	if s.Grid == nil {
		s.Grid = DefaultGrid()
	}
	if len(s.Grid) == 0 {
		return s, ErrInvalidGrid
	}
	for _, v := range s.Grid {
		if math.IsNaN(v) || v <= 0 || v > 1 {
			return s, fmt.Errorf("grid value %v, %w", v, ErrInvalidGrid)
		}
	}
	s.Grid = slices.Clone(s.Grid)

	if s.RefineStep < 0 || s.MinStep < 0 {
		return s, ErrNegativeStep
	}
	if s.RefineStep == 0 {
		s.RefineStep = DefaultRefineStep
	}
	if s.MinStep == 0 {
		s.MinStep = DefaultMinStep
	}
	if s.MaxEvaluations < 0 {
		return s, ErrNegativeEvaluation
	}
	if s.MaxEvaluations == 0 {
		s.MaxEvaluations = DefaultMaxEvaluations
	}
	if s.Tolerance < 0 {
		return s, ErrNegativeTolerance
	}
	if s.Tolerance == 0 {
		s.Tolerance = DefaultTolerance
	}
	if s.Parallelization < 0 {
		return s, ErrNegativeParallel
	}
	if s.Parallelization == 0 {
		s.Parallelization = 1
	}
	return s, nil
}

// NumCandidates returns the number of grid points scanned
func (s SearchOptions) NumCandidates() int {
	n := len(s.Grid)
	return n * n * n
}

func (s SearchOptions) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	grid := make([]string, 0, len(s.Grid))
	for _, v := range s.Grid {
		grid = append(grid, strconv.FormatFloat(v, 'g', -1, 64))
	}

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s%sSearch:\n", prefix, util.IndentExpand(indent, indentGrowth))
	fmt.Fprintf(tbl, "%s%sGrid:\t%s\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), strings.Join(grid, ","))
	if !s.DisableRefine {
		fmt.Fprintf(tbl, "%s%sRefine Step:\t%g\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), s.RefineStep)
		fmt.Fprintf(tbl, "%s%sMin Step:\t%g\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), s.MinStep)
	}
	fmt.Fprintf(tbl, "%s%sPolish:\t%t\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), s.Polish)
	return tbl.Flush()
}
