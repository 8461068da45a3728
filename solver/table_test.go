package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cran/oppr/solver"
)

func TestTable_Columns(t *testing.T) {
	p, err := newScenario(t).WithMaxRichnessObjective(30)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	tab, err := solver.NewTable(p, []solver.Candidate{
		{Actions: []float64{1, 1, 0}, Status: solver.StatusOptimal},
	})
	require.NoError(t, err)

	// Fixed convention: solution, actions (baseline raw), projects
	// (baseline raw), features, then obj/cost/status.
	require.Equal(t, []string{
		"solution",
		"base", "action_a1", "action_a2",
		"noop", "project_p1", "project_p2",
		"f1", "f2", "f3",
		"obj", "cost", "status",
	}, tab.Columns())
}

func TestTable_Values(t *testing.T) {
	p, err := newScenario(t).WithMaxRichnessObjective(30)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	tab, err := solver.NewTable(p, []solver.Candidate{
		{Actions: []float64{1, 1, 0}, Status: solver.StatusOptimal},
		{Actions: []float64{1, 1, 1}, Status: solver.StatusSuboptimalTimeout},
	})
	require.NoError(t, err)
	require.Equal(t, 2, tab.NumSolutions())

	// Solutions are numbered from 1.
	v, err := tab.Value(0, "solution")
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
	v, err = tab.Value(1, "solution")
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	// Project funding and persistence are recomputed, not copied in.
	v, err = tab.Value(0, "project_p2")
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
	v, err = tab.Value(0, "f1")
	require.NoError(t, err)
	require.Equal(t, 0.9, v)
	v, err = tab.Value(0, "obj")
	require.NoError(t, err)
	require.InDelta(t, 1.1, v, 1e-6)
	v, err = tab.Value(1, "obj")
	require.NoError(t, err)
	require.InDelta(t, 2.5, v, 1e-6)
	v, err = tab.Value(1, "cost")
	require.NoError(t, err)
	require.Equal(t, 30.0, v)

	st, err := tab.SolutionStatus(1)
	require.NoError(t, err)
	require.Equal(t, solver.StatusSuboptimalTimeout, st)

	row, err := tab.Row(0)
	require.NoError(t, err)
	require.Len(t, row, len(tab.Columns()))
}

func TestTable_Errors(t *testing.T) {
	p, err := newScenario(t).WithMaxRichnessObjective(30)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	tab, err := solver.NewTable(p, []solver.Candidate{
		{Actions: []float64{1, 0, 0}, Status: solver.StatusOptimal},
	})
	require.NoError(t, err)

	_, err = tab.Value(5, "obj")
	require.ErrorIs(t, err, solver.ErrRowRange)
	_, err = tab.Value(0, "ghost")
	require.ErrorIs(t, err, solver.ErrUnknownColumn)
	_, err = tab.Row(-1)
	require.ErrorIs(t, err, solver.ErrRowRange)
	_, err = tab.SolutionStatus(9)
	require.ErrorIs(t, err, solver.ErrRowRange)

	// Malformed candidate vectors surface the evaluator's sentinel.
	_, err = solver.NewTable(p, []solver.Candidate{{Actions: []float64{1}}})
	require.Error(t, err)
}
