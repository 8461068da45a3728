// Package solver - the bundled LP backend.
//
// Simplex dispatches continuous programs to gonum's simplex
// implementation. The canonical form (senses, bounded variables) is
// rewritten to gonum's standard form — minimize c·x subject to A·x = b,
// x ≥ 0 — by shifting variables to zero lower bounds and adding one slack
// column per inequality row and per finite upper bound.
package solver

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/cran/oppr/program"
)

// Simplex solves pure-LP canonical programs via gonum. The zero value is
// ready to use.
type Simplex struct {
	// Tol is the pivot tolerance passed through to gonum; 0 selects
	// gonum's default.
	Tol float64
}

// Name implements Backend.
func (s *Simplex) Name() string { return "simplex" }

// Solve implements Backend.
//
// Contracts:
//   - every variable must be Continuous (ErrIntegerProgram otherwise);
//     proportional-decision encodings qualify.
//
// Errors: ErrNilProgram, ErrIntegerProgram, ErrInfeasible, ErrUnbounded;
// program validation errors pass through.
//
// Note on time limits: gonum's simplex cannot be interrupted mid-pivot.
// The backend runs to completion and downgrades the status to
// SUBOPTIMAL_TIMEOUT when the elapsed time exceeded Program.TimeLimit.
func (s *Simplex) Solve(p *program.Program) ([]Result, error) {
	if p == nil {
		return nil, ErrNilProgram
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for i, vt := range p.Types {
		if vt != program.Continuous {
			return nil, fmt.Errorf("column %d (%s): %w", i, p.ColNames[i], ErrIntegerProgram)
		}
	}

	c, A, b := standardForm(p)

	start := time.Now()
	_, xs, err := lp.Simplex(c, A, b, s.Tol, nil)
	elapsed := time.Since(start).Seconds()

	switch err {
	case nil:
		// Recover original-variable values: x = lower + shifted part.
		x := make([]float64, p.NumVars())
		for i := range x {
			x[i] = p.Lower[i] + xs[i]
		}
		obj, oerr := p.ObjectiveValue(x)
		if oerr != nil {
			return nil, oerr
		}

		status := StatusOptimal
		if p.TimeLimit > 0 && time.Duration(elapsed*float64(time.Second)) > p.TimeLimit {
			status = StatusSuboptimalTimeout
		}

		return []Result{{Status: status, Values: x, Objective: obj, Runtime: elapsed}}, nil

	case lp.ErrInfeasible:
		return nil, fmt.Errorf("simplex: %w", ErrInfeasible)

	case lp.ErrUnbounded:
		return nil, fmt.Errorf("simplex: %w", ErrUnbounded)

	default:
		return nil, fmt.Errorf("simplex: %w", err)
	}
}

// standardForm rewrites the canonical program as minimize c·x', A·x' = b,
// x' ≥ 0.
//
// Construction:
//   - original variables are shifted by their lower bounds;
//   - each LE row gains a slack (+1), each GE row a surplus (−1);
//   - each variable with a finite upper bound gains a bound row
//     x'_i + s = upper − lower;
//   - maximization negates the objective (the caller recomputes the true
//     objective from the recovered solution, so no un-negation needed).
//
// Complexity: O((rows+vars)·(vars+slacks)) space for the dense matrix.
func standardForm(p *program.Program) ([]float64, *mat.Dense, []float64) {
	n := p.NumVars()
	m := p.NumRows()

	// Count slack columns and bound rows.
	slacks := 0
	for _, sense := range p.Senses {
		if sense != program.EQ {
			slacks++
		}
	}
	boundRows := 0
	for i := 0; i < n; i++ {
		if !math.IsInf(p.Upper[i], 1) {
			boundRows++
		}
	}

	rows := m + boundRows
	cols := n + slacks + boundRows
	A := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)

	neg := 1.0
	if p.Dir == program.Maximize {
		neg = -1
	}
	for i := 0; i < n; i++ {
		c[i] = neg * p.Obj[i]
	}

	// Constraint rows, shifted: Σ a·(lower+x') ⇒ rhs' = rhs − Σ a·lower.
	for _, e := range p.Entries {
		A.Set(e.Row, e.Col, A.At(e.Row, e.Col)+e.Val)
		b[e.Row] -= e.Val * p.Lower[e.Col]
	}
	for r := 0; r < m; r++ {
		b[r] += p.RHS[r]
	}

	// Slack columns for inequality rows.
	sc := n
	for r, sense := range p.Senses {
		switch sense {
		case program.LE:
			A.Set(r, sc, 1)
			sc++
		case program.GE:
			A.Set(r, sc, -1)
			sc++
		}
	}

	// Bound rows: x'_i + s = upper − lower.
	br := m
	for i := 0; i < n; i++ {
		if math.IsInf(p.Upper[i], 1) {
			continue
		}
		A.Set(br, i, 1)
		A.Set(br, sc, 1)
		b[br] = p.Upper[i] - p.Lower[i]
		sc++
		br++
	}

	return c, A, b
}
