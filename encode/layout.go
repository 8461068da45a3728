// Package encode - column layout of encoded programs.
package encode

// AllocVar locates one feature-to-project allocation variable.
type AllocVar struct {
	// Project is the project index the feature may be credited to.
	Project int

	// Col is the variable's column in the encoded program.
	Col int
}

// Layout maps the encoded program's columns back to the problem: solvers
// return raw vectors over all columns, and downstream code only cares
// about the action block (plus, occasionally, the auxiliaries).
//
// Column order is fixed: actions, projects, allocations, extinctions,
// then objective-specific extras.
type Layout struct {
	// X[i], Y[j] and E[f] are the columns of the action, project and
	// extinction variables.
	X, Y, E []int

	// Alloc[f] lists the allocation variables of feature f, ordered by
	// project index.
	Alloc [][]AllocVar

	// Met[f] is the target-met indicator column (maximum-targets
	// objective only; nil otherwise).
	Met []int

	// BranchCredit[b] is the branch credit column per hierarchy branch
	// (phylogenetic objective only; nil otherwise). BranchGate holds the
	// threshold gate columns when a positive branch threshold is set.
	BranchCredit, BranchGate []int

	// BudgetRow is the budget row index, -1 when the objective has none.
	BudgetRow int

	// NumCols is the total column count of the encoded program.
	NumCols int
}

// ActionValues projects a full program-space vector onto the action block:
// out[i] is the funding level of action i. Returns nil when the vector is
// shorter than the layout requires.
func (l *Layout) ActionValues(values []float64) []float64 {
	if len(values) < len(l.X) {
		return nil
	}
	out := make([]float64, len(l.X))
	for i, col := range l.X {
		if col >= len(values) {
			return nil
		}
		out[i] = values[col]
	}

	return out
}
