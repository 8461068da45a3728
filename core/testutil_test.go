// Package core_test holds lightweight fixtures shared across the
// *_test.go files in this package.
package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cran/oppr/core"
)

// newScenario builds the canonical three-feature fixture: a do-nothing
// baseline at persistence 0.1 everywhere, project p1 ($10) raising f1 to
// 0.9 and project p2 ($20) raising f2 and f3 to 0.8. Raw persistence
// (no baseline folding) keeps the matrix entries equal to the stated
// numbers.
func newScenario(t *testing.T, opts ...core.Option) *core.Problem {
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

	opts = append([]core.Option{
		core.WithBaseline("base", "noop"),
		core.WithoutBaselineAdjustment(),
	}, opts...)

	p, err := core.NewProblem(actions, projects, features, opts...)
	require.NoError(t, err)

	return p
}
