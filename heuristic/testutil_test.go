// Package heuristic_test holds the shared fixture and the exhaustive
// reference search used to bound the greedy results.
package heuristic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cran/oppr/core"
	"github.com/cran/oppr/evaluate"
)

// newScenario builds the canonical three-feature fixture: baseline
// persistence 0.1 everywhere, p1 ($10) raising f1 to 0.9 and p2 ($20)
// raising f2 and f3 to 0.8, with raw (unadjusted) persistence.
func newScenario(t *testing.T) *core.Problem {
	t.Helper()

	actions := []core.Action{
		{ID: "base", Cost: 0},
		{ID: "a1", Cost: 10},
		{ID: "a2", Cost: 20},
	}
	projects := []core.Project{
		{ID: "noop", Success: 1, Actions: []string{"base"},
			Benefit: map[string]float64{"f1": 0.1, "f2": 0.1, "f3": 0.1}},
		{ID: "p1", Success: 1, Actions: []string{"a1"},
			Benefit: map[string]float64{"f1": 0.9}},
		{ID: "p2", Success: 1, Actions: []string{"a2"},
			Benefit: map[string]float64{"f2": 0.8, "f3": 0.8}},
	}
	features := []core.Feature{{ID: "f1"}, {ID: "f2"}, {ID: "f3"}}

	p, err := core.NewProblem(actions, projects, features,
		core.WithBaseline("base", "noop"),
		core.WithoutBaselineAdjustment())
	require.NoError(t, err)

	return p
}

// exhaustiveOptimum enumerates every lock-respecting 0/1 vector and
// returns the best feasible objective (maximum, or minimum cost for the
// minimum-set objective). ok is false when no subset is feasible.
func exhaustiveOptimum(t *testing.T, p *core.Problem) (float64, bool) {
	t.Helper()

	minset := p.Objective() == core.MinSet
	best, ok := math.Inf(-1), false
	if minset {
		best = math.Inf(1)
	}

	n := p.NumActions()
	for mask := 0; mask < 1<<n; mask++ {
		x := make([]float64, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				x[i] = 1
			}
		}
		if x[p.BaselineAction()] == 0 {
			continue
		}

		out, err := evaluate.Evaluate(p, x)
		require.NoError(t, err)
		if !out.Feasible {
			continue
		}

		if minset {
			if out.Objective < best {
				best, ok = out.Objective, true
			}
		} else if out.Objective > best {
			best, ok = out.Objective, true
		}
	}

	return best, ok
}
