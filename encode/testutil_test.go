// Package encode_test holds the shared fixture for this package's tests.
package encode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cran/oppr/core"
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

// richness returns the fixture under the maximum-richness objective with
// binary decisions and the given budget.
func richness(t *testing.T, budget float64) *core.Problem {
	t.Helper()

	p, err := newScenario(t).WithMaxRichnessObjective(budget)
	require.NoError(t, err)
	p, err = p.WithBinaryDecisions()
	require.NoError(t, err)

	return p
}
