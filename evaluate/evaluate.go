// Package evaluate - objective recomputation for action vectors.
//
// Design contract (strict):
//   - Pure: no mutation of the problem, no hidden state, safe to call
//     concurrently on a shared Problem.
//   - Defensive: the vector is revalidated even when callers constructed
//     it themselves; strict sentinels, no panics.
//   - Stable: objective and cost are rounded at 1e-9 to avoid
//     cross-platform FP drift in comparisons.
package evaluate

import (
	"errors"
	"fmt"
	"math"

	"github.com/cran/oppr/core"
	"github.com/cran/oppr/phylo"
)

// Tolerance is the feasibility and funding tolerance: values within
// Tolerance of 1 count as funded, budgets and targets are checked within
// Tolerance.
const Tolerance = 1e-6

// roundScale stabilizes reported objective/cost values at 1e-9.
const roundScale = 1e9

// Sentinel errors for evaluation.
var (
	// ErrVectorLength indicates len(x) != NumActions.
	ErrVectorLength = errors.New("evaluate: action vector length mismatch")

	// ErrVectorRange indicates an entry outside [0,1] beyond tolerance.
	ErrVectorRange = errors.New("evaluate: action value out of range")
)

// Outcome reports what one action vector achieves.
type Outcome struct {
	// Objective is the achieved objective value under the problem's
	// objective kind (total cost for minimum set).
	Objective float64

	// Persistence holds the credited persistence probability per feature.
	Persistence []float64

	// Cost is Σ cost_i · x_i.
	Cost float64

	// Feasible reports budget compliance (budgeted objectives) or target
	// compliance (minimum set), plus lock consistency.
	Feasible bool

	// FundedProjects[j] reports whether project j is fully funded.
	FundedProjects []bool

	// Allocation[f] is the project index credited with feature f.
	Allocation []int
}

// Evaluate recomputes the outcome of action vector x on problem p.
//
// Contracts:
//   - p must be solve-ready (Problem.Ready);
//   - len(x) == p.NumActions(); entries within [0,1] ± Tolerance;
//   - entries ≥ 1−Tolerance count as funded; the baseline action is
//     always treated as funded regardless of its entry.
//
// Errors: core readiness sentinels, ErrVectorLength, ErrVectorRange.
//
// Complexity: O(A + P·A + F·P + Σ|branch leaves|).
func Evaluate(p *core.Problem, x []float64) (Outcome, error) {
	if err := p.Ready(); err != nil {
		return Outcome{}, err
	}
	if len(x) != p.NumActions() {
		return Outcome{}, fmt.Errorf("%d values for %d actions: %w", len(x), p.NumActions(), ErrVectorLength)
	}
	for i, v := range x {
		if v < -Tolerance || v > 1+Tolerance || math.IsNaN(v) {
			return Outcome{}, fmt.Errorf("action %q value %v: %w", p.ActionID(i), v, ErrVectorRange)
		}
	}

	out := Outcome{
		Persistence:    make([]float64, p.NumFeatures()),
		FundedProjects: make([]bool, p.NumProjects()),
		Allocation:     make([]int, p.NumFeatures()),
	}

	// Stage 1: funded actions and cost.
	funded := make([]bool, p.NumActions())
	var cost float64
	for i, v := range x {
		funded[i] = v >= 1-Tolerance
		cost += p.ActionCost(i) * v
	}
	funded[p.BaselineAction()] = true
	out.Cost = round1e9(cost)

	// Stage 2: funded projects (all constituent actions funded).
	for j := 0; j < p.NumProjects(); j++ {
		ok := true
		for k := 0; k < p.ProjectActionCount(j); k++ {
			if !funded[p.ProjectActionAt(j, k)] {
				ok = false

				break
			}
		}
		out.FundedProjects[j] = ok
	}

	// Stage 3: credit each feature to its best funded project. The best
	// project is recomputed from Q, ties resolved to the lowest project
	// index; the baseline is always funded, so a credited project always
	// exists.
	for f := 0; f < p.NumFeatures(); f++ {
		bestJ, bestQ := -1, -1.0
		for j := 0; j < p.NumProjects(); j++ {
			if !out.FundedProjects[j] {
				continue
			}
			if q := p.Persistence(f, j); q > bestQ {
				bestJ, bestQ = j, q
			}
		}
		out.Allocation[f] = bestJ
		out.Persistence[f] = bestQ
	}

	// Stage 4: objective value by kind.
	obj, err := objectiveValue(p, out.Persistence, out.Cost)
	if err != nil {
		return Outcome{}, err
	}
	out.Objective = obj

	// Stage 5: feasibility — locks first, then budget or targets.
	out.Feasible = locksRespected(p, funded, x)
	if p.Objective().Budgeted() {
		out.Feasible = out.Feasible && out.Cost <= p.Budget()+Tolerance
	} else {
		for f := 0; f < p.NumFeatures(); f++ {
			if out.Persistence[f] < p.Target(f)-Tolerance {
				out.Feasible = false

				break
			}
		}
	}

	return out, nil
}

// objectiveValue maps persistence (and cost) to the objective value.
func objectiveValue(p *core.Problem, persistence []float64, cost float64) (float64, error) {
	switch p.Objective() {
	case core.MaxRichness, core.MaxPhylo:
		tree, err := p.EvaluationTree()
		if err != nil {
			return 0, err
		}
		survival := make(map[string]float64, p.NumFeatures())
		for f := 0; f < p.NumFeatures(); f++ {
			survival[p.FeatureID(f)] = persistence[f]
		}
		if tau := p.BranchThreshold(); tau > 0 {
			v, err := gatedDiversity(tree, survival, tau)
			if err != nil {
				return 0, err
			}

			return round1e9(v), nil
		}
		v, err := tree.ExpectedDiversity(survival)
		if err != nil {
			return 0, err
		}

		return round1e9(v), nil

	case core.MaxTargets:
		var v float64
		for f := 0; f < p.NumFeatures(); f++ {
			if persistence[f] >= p.Target(f)-Tolerance {
				v += p.FeatureWeight(f)
			}
		}

		return round1e9(v), nil

	case core.MinSet:
		return cost, nil

	default:
		return 0, core.ErrNoObjective
	}
}

// gatedDiversity scores the branch-threshold variant of expected
// diversity: a branch earns credit only when the summed survival of its
// descendant features reaches tau, matching the gate rows of the
// encoded program, and the credit itself stays the expected-survival
// term 1 − Π(1 − s).
func gatedDiversity(tree *phylo.Tree, survival map[string]float64, tau float64) (float64, error) {
	var total float64
	for _, b := range tree.Branches() {
		var sum float64
		extinct := 1.0
		for _, leaf := range b.Leaves {
			s, ok := survival[leaf]
			if !ok {
				return 0, fmt.Errorf("branch leaf %q: %w", leaf, phylo.ErrUnknownLeaf)
			}
			sum += s
			extinct *= 1 - s
		}
		if sum < tau-Tolerance {
			continue
		}
		total += b.Length * (1 - extinct)
	}

	return total, nil
}

// locksRespected checks lock consistency of the vector.
func locksRespected(p *core.Problem, funded []bool, x []float64) bool {
	for i := range funded {
		if p.LockedIn(i) && !funded[i] {
			return false
		}
		if p.LockedOut(i) && x[i] > Tolerance {
			return false
		}
	}

	return true
}

// round1e9 rounds v at 1e-9 for stable cross-platform comparisons.
func round1e9(v float64) float64 {
	return math.Round(v*roundScale) / roundScale
}
