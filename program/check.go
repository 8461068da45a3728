// Package program - checking an arbitrary precomputed vector against the
// canonical form.
//
// These routines are the secondary representation from the solver seam:
// given any value vector (external solver output, heuristic fill, random
// fill), they answer objective value, per-row slack and overall
// satisfaction without consulting whoever produced the vector.
package program

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// ObjectiveValue returns Obj·x + Offset.
//
// Errors: ErrDimensionMismatch.
// Complexity: O(vars).
func (p *Program) ObjectiveValue(x []float64) (float64, error) {
	if len(x) != len(p.Obj) {
		return 0, fmt.Errorf("ObjectiveValue: %w", ErrDimensionMismatch)
	}
	sum := p.Offset
	for i, c := range p.Obj {
		sum += c * x[i]
	}

	return sum, nil
}

// Activity returns the row activities A·x.
//
// Errors: ErrDimensionMismatch.
// Complexity: O(nonzeros).
func (p *Program) Activity(x []float64) ([]float64, error) {
	if len(x) != len(p.Obj) {
		return nil, fmt.Errorf("Activity: %w", ErrDimensionMismatch)
	}
	act := make([]float64, len(p.RHS))
	for _, e := range p.Entries {
		act[e.Row] += e.Val * x[e.Col]
	}

	return act, nil
}

// Slack returns the per-row slack towards the RHS, signed so that a
// non-negative slack means the row is satisfied:
//
//	LE: rhs − activity;  GE: activity − rhs;  EQ: −|activity − rhs|.
//
// Errors: ErrDimensionMismatch.
// Complexity: O(nonzeros + rows).
func (p *Program) Slack(x []float64) ([]float64, error) {
	act, err := p.Activity(x)
	if err != nil {
		return nil, err
	}
	slack := make([]float64, len(act))
	for r, a := range act {
		switch p.Senses[r] {
		case LE:
			slack[r] = p.RHS[r] - a
		case GE:
			slack[r] = a - p.RHS[r]
		default: // EQ
			slack[r] = -math.Abs(a - p.RHS[r])
		}
	}

	return slack, nil
}

// Satisfied reports whether x respects every row, every bound and every
// integrality tag within tol.
//
// Errors: ErrDimensionMismatch.
// Complexity: O(nonzeros + rows + vars).
func (p *Program) Satisfied(x []float64, tol float64) (bool, error) {
	slack, err := p.Slack(x)
	if err != nil {
		return false, err
	}
	for _, s := range slack {
		if s < -tol {
			return false, nil
		}
	}
	for i, v := range x {
		if v > p.Upper[i]+tol {
			return false, nil
		}
		switch p.Types[i] {
		case Binary:
			if v < p.Lower[i]-tol || !scalar.EqualWithinAbs(v, math.Round(v), tol) {
				return false, nil
			}
		case SemiContinuous:
			// 0 is admissible even when the lower bound is positive.
			if !scalar.EqualWithinAbs(v, 0, tol) && v < p.Lower[i]-tol {
				return false, nil
			}
		default:
			if v < p.Lower[i]-tol {
				return false, nil
			}
		}
	}

	return true, nil
}
