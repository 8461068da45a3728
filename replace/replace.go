package replace

import (
	"errors"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cran/oppr/core"
	"github.com/cran/oppr/evaluate"
	"github.com/cran/oppr/solver"
)

// ErrVectorLength reports a portfolio vector whose length does not
// match the problem's action count.
var ErrVectorLength = errors.New("replace: portfolio length mismatch")

// SolveFunc re-solves a derived problem and returns an action-space
// funding vector. heuristic.Solve and an encoder/solver pipeline both
// adapt to this shape.
type SolveFunc func(*core.Problem) ([]float64, error)

// Options configures the analysis.
type Options struct {
	// Parallel caps the number of concurrent re-solves.
	// Zero or negative means GOMAXPROCS.
	Parallel int
}

// Entry is the replacement-cost row for one action.
type Entry struct {
	// ActionID names the action.
	ActionID string
	// Funded reports whether the action is funded in the reference
	// portfolio.
	Funded bool
	// Cost is the action's cost.
	Cost float64
	// Objective is the objective of the re-solved portfolio with the
	// action barred. NaN when no re-solve was performed.
	Objective float64
	// ReplacementCost is the objective degradation caused by barring
	// the action. NaN when not applicable, +Inf when barring makes the
	// problem infeasible.
	ReplacementCost float64
}

// Missing reports whether no replacement cost applies to the row.
func (e Entry) Missing() bool { return math.IsNaN(e.ReplacementCost) }

// Infeasible reports whether barring the action leaves no feasible
// portfolio at all.
func (e Entry) Infeasible() bool { return math.IsInf(e.ReplacementCost, 1) }

// Analyze returns one Entry per action, in action order, for the
// reference portfolio x. Funded non-baseline actions are barred one at
// a time and the problem re-solved through solve; every other row
// carries a NaN replacement cost.
//
// Replacement costs are non-negative for an optimal reference
// portfolio. A heuristic reference can produce negative values: the
// re-solve found a better portfolio without the action.
//
// Errors: core readiness sentinels; ErrVectorLength; evaluator
// sentinels for malformed vectors; any non-infeasibility error from
// solve aborts the analysis.
func Analyze(p *core.Problem, x []float64, solve SolveFunc, opt Options) ([]Entry, error) {
	if err := p.Ready(); err != nil {
		return nil, err
	}
	if len(x) != p.NumActions() {
		return nil, ErrVectorLength
	}

	ref, err := evaluate.Evaluate(p, x)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, p.NumActions())
	for i := range entries {
		// The baseline action is funded in every portfolio.
		entries[i] = Entry{
			ActionID:        p.ActionID(i),
			Funded:          x[i] >= 1-evaluate.Tolerance || i == p.BaselineAction(),
			Cost:            p.ActionCost(i),
			Objective:       math.NaN(),
			ReplacementCost: math.NaN(),
		}
	}

	workers := opt.Parallel
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range entries {
		if !entries[i].Funded || i == p.BaselineAction() {
			continue
		}

		i := i
		g.Go(func() error {
			e, cerr := barred(p, solve, ref.Objective, i)
			if cerr != nil {
				return cerr
			}

			entries[i].Objective = e.Objective
			entries[i].ReplacementCost = e.ReplacementCost

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entries, nil
}

// barred re-solves p with action i locked out and returns the row's
// objective and replacement cost.
func barred(p *core.Problem, solve SolveFunc, refObj float64, i int) (Entry, error) {
	inf := Entry{Objective: math.NaN(), ReplacementCost: math.Inf(1)}

	dp, err := p.WithLockedOut(p.ActionID(i))
	if err != nil {
		// A locked-in action cannot be barred: it is indispensable.
		if errors.Is(err, core.ErrConflictingLocks) {
			return inf, nil
		}

		return Entry{}, err
	}

	nx, err := solve(dp)
	if err != nil {
		if errors.Is(err, solver.ErrInfeasible) {
			return inf, nil
		}

		return Entry{}, err
	}

	out, err := evaluate.Evaluate(dp, nx)
	if err != nil {
		return Entry{}, err
	}

	rc := refObj - out.Objective
	if p.Objective() == core.MinSet {
		rc = out.Objective - refObj
	}

	return Entry{Objective: out.Objective, ReplacementCost: rc}, nil
}
