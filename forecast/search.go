package forecast

import (
	"log/slog"
	"math"
	"sync"

	"github.com/aouyang1/go-hwforecaster/forecast/options"
	"gonum.org/v1/gonum/optimize"
)

// polishConvergeIterations is the number of Nelder-Mead iterations without a change in
// SSE larger than the tolerance before the polish stops
const polishConvergeIterations = 20

type candidate struct {
	params Params
	sse    float64
}

// gridCandidates enumerates the grid in alpha, beta, gamma lexicographic order
func gridCandidates(grid []float64) []Params {
	cands := make([]Params, 0, len(grid)*len(grid)*len(grid))
	for _, a := range grid {
		for _, b := range grid {
			for _, g := range grid {
				cands = append(cands, Params{Alpha: a, Beta: b, Gamma: g})
			}
		}
	}
	return cands
}

// evaluateGrid computes the SSE of every candidate. Results are stored by candidate index
// so the outcome is independent of the number of workers.
func evaluateGrid(y []float64, init State, cands []Params, parallelization int) []float64 {
	sses := make([]float64, len(cands))
	if parallelization <= 1 {
		for i, p := range cands {
			_, sses[i] = smooth(y, init, p, nil)
		}
		return sses
	}

	sem := make(chan struct{}, parallelization)
	var wg sync.WaitGroup
	for i, p := range cands {
		sem <- struct{}{}
		wg.Add(1)

		go func(i int, p Params) {
			defer func() {
				<-sem
				wg.Done()
			}()
			_, sses[i] = smooth(y, init, p, nil)
		}(i, p)
	}
	wg.Wait()
	return sses
}

// searchParams picks the smoothing parameters minimizing the in-sample one-step SSE. The
// grid winner is the first candidate in grid order with the lowest SSE. Refinement and
// polish only ever replace it with a strictly lower SSE.
func searchParams(y []float64, init State, opt options.SearchOptions) (candidate, []float64, error) {
	cands := gridCandidates(opt.Grid)
	sses := evaluateGrid(y, init, cands, opt.Parallelization)

	best := candidate{sse: math.Inf(1)}
	found := false
	for i, sse := range sses {
		if !isFinite(sse) {
			continue
		}
		if !found || sse < best.sse {
			best = candidate{params: cands[i], sse: sse}
			found = true
		}
	}
	if !found {
		return candidate{}, sses, ErrModelDiverged
	}

	if !opt.DisableRefine {
		best = refine(y, init, best, opt)
	}
	if opt.Polish {
		best = polish(y, init, best, opt)
	}
	return best, sses, nil
}

// refine runs a coordinate search around the current best, trying a step up and down on
// each parameter and halving the step once no move improves the SSE
func refine(y []float64, init State, best candidate, opt options.SearchOptions) candidate {
	var evals int
	for step := opt.RefineStep; step >= opt.MinStep; step /= 2 {
		for improved := true; improved; {
			improved = false
			for i := 0; i < 3; i++ {
				for _, delta := range []float64{-step, step} {
					if evals >= opt.MaxEvaluations {
						return best
					}

					x := best.params.Slice()
					x[i] += delta
					p := options.ParamsFromSlice(x).Clip()
					if p == best.params {
						continue
					}

					evals++
					_, sse := smooth(y, init, p, nil)
					if isFinite(sse) && sse < best.sse {
						best = candidate{params: p, sse: sse}
						improved = true
					}
				}
			}
		}
	}
	return best
}

// polish runs Nelder-Mead over a logistic reparameterisation so every point the solver
// visits maps into [MinParam, 1]
func polish(y []float64, init State, best candidate, opt options.SearchOptions) candidate {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			_, sse := smooth(y, init, fromUnbounded(x), nil)
			if math.IsNaN(sse) {
				return math.Inf(1)
			}
			return sse
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: opt.MaxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   opt.Tolerance,
			Iterations: polishConvergeIterations,
		},
	}

	res, err := optimize.Minimize(problem, toUnbounded(best.params), settings, &optimize.NelderMead{})
	if err != nil {
		slog.Debug("nelder-mead polish stopped early", "error", err.Error())
	}
	if res == nil {
		return best
	}

	p := fromUnbounded(res.X)
	_, sse := smooth(y, init, p, nil)
	if isFinite(sse) && sse < best.sse {
		return candidate{params: p, sse: sse}
	}
	return best
}

const logitBound = 1e-9

func toUnbounded(p Params) []float64 {
	x := p.Slice()
	for i, v := range x {
		u := (v - options.MinParam) / (1 - options.MinParam)
		u = math.Min(math.Max(u, logitBound), 1-logitBound)
		x[i] = math.Log(u / (1 - u))
	}
	return x
}

func fromUnbounded(x []float64) Params {
	v := make([]float64, len(x))
	for i, xi := range x {
		v[i] = options.MinParam + (1-options.MinParam)/(1+math.Exp(-xi))
	}
	return options.ParamsFromSlice(v).Clip()
}
