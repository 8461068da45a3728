package core_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cran/oppr/core"
	"github.com/cran/oppr/phylo"
)

func TestCompose_Objectives(t *testing.T) {
	p := newScenario(t)

	r, err := p.WithMaxRichnessObjective(10)
	require.NoError(t, err)
	require.Equal(t, core.MaxRichness, r.Objective())
	require.Equal(t, 10.0, r.Budget())
	require.True(t, r.Objective().Budgeted())

	// The receiver is untouched.
	require.Equal(t, core.ObjectiveNone, p.Objective())
	require.True(t, math.IsNaN(p.Budget()))

	_, err = p.WithMaxRichnessObjective(-1)
	require.ErrorIs(t, err, core.ErrBudgetValue)
	_, err = p.WithMaxTargetsObjective(math.NaN())
	require.ErrorIs(t, err, core.ErrBudgetValue)

	m, err := p.WithMinSetObjective()
	require.NoError(t, err)
	require.Equal(t, core.MinSet, m.Objective())
	require.False(t, m.Objective().Budgeted())
	require.True(t, m.Objective().TargetDriven())
}

func TestCompose_PhyloObjective(t *testing.T) {
	p := newScenario(t)

	tree, err := phylo.NewTree([]phylo.Branch{
		{Length: 1, Leaves: []string{"f1"}},
		{Length: 1, Leaves: []string{"f2"}},
		{Length: 1, Leaves: []string{"f3"}},
		{Length: 2, Leaves: []string{"f2", "f3"}},
	})
	require.NoError(t, err)

	ph, err := p.WithMaxPhyloObjective(25, tree)
	require.NoError(t, err)
	require.Equal(t, core.MaxPhylo, ph.Objective())
	require.Same(t, tree, ph.Tree())

	// nil tree is allowed; EvaluationTree falls back to the weighted star.
	ph, err = p.WithMaxPhyloObjective(25, nil)
	require.NoError(t, err)
	et, err := ph.EvaluationTree()
	require.NoError(t, err)
	require.Equal(t, 3, et.NumBranches())
	require.Equal(t, []string{"f1", "f2", "f3"}, et.Leaves())

	// A tree with an unknown leaf, or missing a feature, is rejected.
	bad, err := phylo.Star([]string{"f1", "ghost"}, nil)
	require.NoError(t, err)
	_, err = p.WithMaxPhyloObjective(25, bad)
	require.ErrorIs(t, err, core.ErrTreeMismatch)

	partial, err := phylo.Star([]string{"f1", "f2"}, nil)
	require.NoError(t, err)
	_, err = p.WithMaxPhyloObjective(25, partial)
	require.ErrorIs(t, err, core.ErrTreeMismatch)
}

func TestCompose_BranchThresholdAndTimeLimit(t *testing.T) {
	p := newScenario(t)

	ph, err := p.WithBranchThreshold(0.5)
	require.NoError(t, err)
	require.Equal(t, 0.5, ph.BranchThreshold())

	for _, tau := range []float64{-0.1, 1, 1.5, math.NaN()} {
		_, err = p.WithBranchThreshold(tau)
		require.ErrorIs(t, err, core.ErrBranchThreshold)
	}

	tl, err := p.WithTimeLimit(2 * time.Second)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, tl.TimeLimit())

	_, err = p.WithTimeLimit(-time.Second)
	require.ErrorIs(t, err, core.ErrTimeLimit)
}

func TestCompose_AbsoluteTargets(t *testing.T) {
	p := newScenario(t)

	// Broadcast.
	tp, err := p.WithAbsoluteTargets(0.7)
	require.NoError(t, err)
	require.Equal(t, core.TargetAbsolute, tp.TargetKind())
	require.Equal(t, []float64{0.7, 0.7, 0.7}, tp.Targets())

	// Per feature.
	tp, err = p.WithAbsoluteTargets(0.1, 0.8, 0.8)
	require.NoError(t, err)
	require.Equal(t, 0.8, tp.Target(2))

	_, err = p.WithAbsoluteTargets(0.1, 0.8)
	require.ErrorIs(t, err, core.ErrTargetCount)
	_, err = p.WithAbsoluteTargets(1.2)
	require.ErrorIs(t, err, core.ErrTargetRange)

	// Unset targets read as NaN.
	require.True(t, math.IsNaN(p.Target(0)))
}

func TestCompose_RelativeTargets(t *testing.T) {
	p := newScenario(t)

	tp, err := p.WithRelativeTargets(0.5)
	require.NoError(t, err)
	require.Equal(t, core.TargetRelative, tp.TargetKind())

	// T_f = qb + 0.5·(best − qb): f1 → 0.1+0.5·0.8, f2/f3 → 0.1+0.5·0.7.
	require.InDelta(t, 0.5, tp.Target(0), 1e-12)
	require.InDelta(t, 0.45, tp.Target(1), 1e-12)
	require.InDelta(t, 0.45, tp.Target(2), 1e-12)

	// fraction 0 pins targets at the do-nothing persistence; 1 at the best.
	tp, err = p.WithRelativeTargets(0)
	require.NoError(t, err)
	require.InDelta(t, 0.1, tp.Target(0), 1e-12)
	tp, err = p.WithRelativeTargets(1)
	require.NoError(t, err)
	require.InDelta(t, 0.9, tp.Target(0), 1e-12)

	_, err = p.WithRelativeTargets(1.5)
	require.ErrorIs(t, err, core.ErrTargetRange)
}

func TestCompose_FeatureWeights(t *testing.T) {
	p := newScenario(t)

	wp, err := p.WithFeatureWeights(map[string]float64{"f1": 3, "f3": 0})
	require.NoError(t, err)
	require.Equal(t, 3.0, wp.FeatureWeight(0))
	require.Equal(t, 1.0, wp.FeatureWeight(1))
	// Explicit zero is honored, unlike the construction-time default.
	require.Equal(t, 0.0, wp.FeatureWeight(2))

	_, err = p.WithFeatureWeights(map[string]float64{"ghost": 1})
	require.ErrorIs(t, err, core.ErrUnknownFeature)
	_, err = p.WithFeatureWeights(map[string]float64{"f1": -1})
	require.ErrorIs(t, err, core.ErrWeightValue)

	// Weights and the minimum-set objective are mutually exclusive in
	// either order.
	ms, err := p.WithMinSetObjective()
	require.NoError(t, err)
	_, err = ms.WithFeatureWeights(map[string]float64{"f1": 2})
	require.ErrorIs(t, err, core.ErrWeightsNotApplicable)
	_, err = wp.WithMinSetObjective()
	require.ErrorIs(t, err, core.ErrWeightsNotApplicable)
}

func TestCompose_Locks(t *testing.T) {
	p := newScenario(t)

	lp, err := p.WithLockedIn("a1")
	require.NoError(t, err)
	i, _ := lp.ActionIndex("a1")
	require.True(t, lp.LockedIn(i))
	require.False(t, p.LockedIn(i))

	// Locks accumulate across calls.
	lp, err = lp.WithLockedOut("a2")
	require.NoError(t, err)
	j, _ := lp.ActionIndex("a2")
	require.True(t, lp.LockedIn(i))
	require.True(t, lp.LockedOut(j))

	// Conflicts in either order.
	_, err = lp.WithLockedOut("a1")
	require.ErrorIs(t, err, core.ErrConflictingLocks)
	_, err = lp.WithLockedIn("a2")
	require.ErrorIs(t, err, core.ErrConflictingLocks)

	// The baseline action is always fundable.
	_, err = p.WithLockedOut("base")
	require.ErrorIs(t, err, core.ErrConflictingLocks)

	_, err = p.WithLockedIn("ghost")
	require.ErrorIs(t, err, core.ErrUnknownAction)
}

func TestCompose_Ready(t *testing.T) {
	p := newScenario(t)
	require.ErrorIs(t, p.Ready(), core.ErrNoObjective)

	r, err := p.WithMaxRichnessObjective(10)
	require.NoError(t, err)
	require.ErrorIs(t, r.Ready(), core.ErrNoDecisions)

	r, err = r.WithBinaryDecisions()
	require.NoError(t, err)
	require.NoError(t, r.Ready())

	// Target-driven objectives additionally need targets.
	ms, err := p.WithMinSetObjective()
	require.NoError(t, err)
	ms, err = ms.WithBinaryDecisions()
	require.NoError(t, err)
	require.ErrorIs(t, ms.Ready(), core.ErrNoTargets)

	ms, err = ms.WithAbsoluteTargets(0.5)
	require.NoError(t, err)
	require.NoError(t, ms.Ready())
}

func TestAccessors_Columns(t *testing.T) {
	p := newScenario(t)

	// Baseline columns carry the raw IDs; everything else is prefixed.
	require.Equal(t, "base", p.ActionColumn(0))
	require.Equal(t, "action_a1", p.ActionColumn(1))
	require.Equal(t, "noop", p.ProjectColumn(0))
	require.Equal(t, "project_p2", p.ProjectColumn(2))
}
