// Package heuristic - backward-greedy action removal.
//
// Design contract (strict):
//   - Deterministic: fixed ranking (least objective loss, then higher
//     cost, then lower index); no randomness, no time-based behavior.
//   - All outcome math flows through the evaluator; this file never
//     touches the persistence matrix directly.
//   - Strict sentinels; no panics on user input.
package heuristic

import (
	"time"

	"github.com/cran/oppr/core"
	"github.com/cran/oppr/evaluate"
	"github.com/cran/oppr/solver"
)

// Solve runs the backward-greedy trajectory on p and returns the single
// terminal solution. Values are in action space (one entry per action).
//
// Contracts:
//   - p must be solve-ready. Binary and proportional decisions are
//     treated identically: the trajectory only visits 0/1 vectors.
//
// Errors: core readiness sentinels; solver.ErrInfeasible when even the
// maximal fundable set violates the constraints (locked-in cost above
// budget, or a target unreachable with every action funded).
//
// Complexity: O(A² · eval) time, O(A) space.
func Solve(p *core.Problem) (solver.Result, error) {
	if err := p.Ready(); err != nil {
		return solver.Result{}, err
	}
	start := time.Now()

	// Stage 1: maximal fundable set — everything in, locked-out stay out.
	x := make([]float64, p.NumActions())
	for i := range x {
		if !p.LockedOut(i) {
			x[i] = 1
		}
	}

	out, err := evaluate.Evaluate(p, x)
	if err != nil {
		return solver.Result{}, err
	}

	// Minimum set: the full set must already meet every target.
	if p.Objective() == core.MinSet && !out.Feasible {
		return solver.Result{}, solver.ErrInfeasible
	}

	// Stage 2: removal loop.
	for {
		if p.Objective().Budgeted() && out.Cost <= p.Budget()+evaluate.Tolerance {
			// First point at or under budget: objective only shrinks on
			// the trajectory, so this is the best feasible vector seen.
			break
		}

		best, bestOut, ok, serr := selectRemoval(p, x)
		if serr != nil {
			return solver.Result{}, serr
		}
		if !ok {
			if p.Objective().Budgeted() {
				// Nothing left to drop and still above budget.
				return solver.Result{}, solver.ErrInfeasible
			}

			break
		}

		x[best] = 0
		out = bestOut
	}

	return solver.Result{
		Status:    solver.StatusSuboptimalTimeout,
		Values:    x,
		Objective: out.Objective,
		Runtime:   time.Since(start).Seconds(),
	}, nil
}

// selectRemoval picks the funded, non-locked, non-baseline action whose
// removal is ranked best, and returns its index with the outcome of the
// reduced set. ok is false when no admissible removal exists.
//
// Ranking: smallest objective decrease first, then higher cost, then
// lower action index. For the minimum-set objective only removals that
// keep every target met are admissible, ranked by larger cost saving.
func selectRemoval(p *core.Problem, x []float64) (int, evaluate.Outcome, bool, error) {
	minset := p.Objective() == core.MinSet

	bestIdx := -1
	var bestOut evaluate.Outcome

	for i := 0; i < p.NumActions(); i++ {
		if x[i] == 0 || p.LockedIn(i) || i == p.BaselineAction() {
			continue
		}

		x[i] = 0
		out, err := evaluate.Evaluate(p, x)
		x[i] = 1
		if err != nil {
			return 0, evaluate.Outcome{}, false, err
		}

		if minset {
			if !out.Feasible {
				continue
			}
			if bestIdx < 0 || p.ActionCost(i) > p.ActionCost(bestIdx) {
				bestIdx, bestOut = i, out
			}

			continue
		}

		switch {
		case bestIdx < 0,
			out.Objective > bestOut.Objective,
			out.Objective == bestOut.Objective && p.ActionCost(i) > p.ActionCost(bestIdx):
			bestIdx, bestOut = i, out
		}
	}

	return bestIdx, bestOut, bestIdx >= 0, nil
}
