package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cran/oppr/core"
	"github.com/cran/oppr/heuristic"
	"github.com/cran/oppr/solver"
)

func TestSolve_NotReady(t *testing.T) {
	_, err := heuristic.Solve(newScenario(t))
	require.ErrorIs(t, err, core.ErrNoObjective)
}

func TestSolve_NonBindingBudgetKeepsEverything(t *testing.T) {
	p, err := newScenario(t).WithMaxRichnessObjective(30)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	res, err := heuristic.Solve(p)
	require.NoError(t, err)
	require.Equal(t, solver.StatusSuboptimalTimeout, res.Status)
	require.Equal(t, []float64{1, 1, 1}, res.Values)
	require.InDelta(t, 2.5, res.Objective, 1e-6)
	require.GreaterOrEqual(t, res.Runtime, 0.0)
}

func TestSolve_RemovalTrajectory(t *testing.T) {
	// Budget $20: one removal suffices, and dropping a1 (losing 0.8)
	// beats dropping a2 (losing 1.4).
	p, err := newScenario(t).WithMaxRichnessObjective(20)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	res, err := heuristic.Solve(p)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 1}, res.Values)
	require.InDelta(t, 1.7, res.Objective, 1e-6)
}

func TestSolve_GreedyCanMissTheOptimum(t *testing.T) {
	// Budget $10: the first removal greedily drops a1, which forces a2
	// out on the next step. The trajectory ends at the bare baseline
	// (0.3) even though funding a1 alone scores 1.1.
	p, err := newScenario(t).WithMaxRichnessObjective(10)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	res, err := heuristic.Solve(p)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 0}, res.Values)
	require.InDelta(t, 0.3, res.Objective, 1e-6)

	opt, ok := exhaustiveOptimum(t, p)
	require.True(t, ok)
	require.InDelta(t, 1.1, opt, 1e-6)
	require.LessOrEqual(t, res.Objective, opt+1e-6)
}

func TestSolve_NeverBeatsExhaustive(t *testing.T) {
	for _, budget := range []float64{0, 5, 10, 15, 20, 25, 30} {
		p, err := newScenario(t).WithMaxRichnessObjective(budget)
		require.NoError(t, err)
		p, err = p.WithBinaryDecisions()
		require.NoError(t, err)

		res, err := heuristic.Solve(p)
		require.NoError(t, err)

		opt, ok := exhaustiveOptimum(t, p)
		require.True(t, ok)
		require.LessOrEqual(t, res.Objective, opt+1e-6, "budget %v", budget)
	}
}

func TestSolve_TieBreaksOnHigherCost(t *testing.T) {
	// Removing either action loses 0.4; the tie goes to the costlier a2,
	// which also lands the trajectory under budget in one step.
	actions := []core.Action{{ID: "base"}, {ID: "a1", Cost: 5}, {ID: "a2", Cost: 10}}
	projects := []core.Project{
		{ID: "noop", Success: 1, Actions: []string{"base"},
			Benefit: map[string]float64{"f1": 0.1, "f2": 0.1}},
		{ID: "p1", Success: 1, Actions: []string{"a1"},
			Benefit: map[string]float64{"f1": 0.5}},
		{ID: "p2", Success: 1, Actions: []string{"a2"},
			Benefit: map[string]float64{"f2": 0.5}},
	}
	p, err := core.NewProblem(actions, projects,
		[]core.Feature{{ID: "f1"}, {ID: "f2"}},
		core.WithBaseline("base", "noop"), core.WithoutBaselineAdjustment())
	require.NoError(t, err)
	p, err = p.WithMaxRichnessObjective(10)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	res, err := heuristic.Solve(p)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 0}, res.Values)
}

func TestSolve_Locks(t *testing.T) {
	// Locked-out a1: the trajectory starts without it.
	p, err := newScenario(t).WithLockedOut("a1")
	require.NoError(t, err)
	p, err = p.WithMaxRichnessObjective(30)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	res, err := heuristic.Solve(p)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 1}, res.Values)

	// Locked-in a2 costs $20 against a $10 budget: nothing removable
	// can bridge the gap.
	p, err = newScenario(t).WithLockedIn("a2")
	require.NoError(t, err)
	p, err = p.WithMaxRichnessObjective(10)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	_, err = heuristic.Solve(p)
	require.ErrorIs(t, err, solver.ErrInfeasible)
}

func TestSolve_MinSet(t *testing.T) {
	p, err := newScenario(t).WithMinSetObjective()
	require.NoError(t, err)
	p, err = p.WithAbsoluteTargets(0.1, 0.8, 0.8)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	// a1 is droppable (f1's target holds at baseline); a2 is not.
	res, err := heuristic.Solve(p)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 1}, res.Values)
	require.InDelta(t, 20.0, res.Objective, 1e-6)

	opt, ok := exhaustiveOptimum(t, p)
	require.True(t, ok)
	require.InDelta(t, 20.0, opt, 1e-6)
}

func TestSolve_MinSetUnreachableTarget(t *testing.T) {
	p, err := newScenario(t).WithMinSetObjective()
	require.NoError(t, err)
	p, err = p.WithAbsoluteTargets(0.99)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	_, err = heuristic.Solve(p)
	require.ErrorIs(t, err, solver.ErrInfeasible)
}

func TestSolve_MinSetCostMonotoneInTargets(t *testing.T) {
	// Raising every persistence target can only grow the exhaustive
	// minimal cost, and once a level is unreachable so is every
	// higher one.
	levels := []float64{0.05, 0.1, 0.5, 0.8, 0.9}
	prev, wasFeasible := 0.0, true
	for _, level := range levels {
		p, err := newScenario(t).WithMinSetObjective()
		require.NoError(t, err)
		p, err = p.WithAbsoluteTargets(level)
		require.NoError(t, err)
		p, err = p.WithBinaryDecisions()
		require.NoError(t, err)

		opt, ok := exhaustiveOptimum(t, p)
		if !ok {
			wasFeasible = false
			continue
		}
		require.True(t, wasFeasible, "feasible at %v after an unreachable level", level)
		require.GreaterOrEqual(t, opt+1e-9, prev, "cost dropped at target %v", level)
		prev = opt
	}
	require.False(t, wasFeasible, "0.9 exceeds the best attainable persistence for f2/f3")
}

func TestSolve_MaxTargets(t *testing.T) {
	p, err := newScenario(t).WithMaxTargetsObjective(30)
	require.NoError(t, err)
	p, err = p.WithAbsoluteTargets(0.7)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	res, err := heuristic.Solve(p)
	require.NoError(t, err)
	require.InDelta(t, 3.0, res.Objective, 1e-6)
}
