// Package solver - the solution table surface read by presentation
// layers.
//
// Column convention (fixed): "solution" first, then one column per action
// ("action_<id>", the baseline action under its raw ID), one per project
// ("project_<id>", the baseline project under its raw ID), one per
// feature (its ID, holding credited persistence), then "obj", "cost" and
// "status".
package solver

import (
	"errors"
	"fmt"

	"github.com/cran/oppr/core"
	"github.com/cran/oppr/evaluate"
)

// Sentinel errors for table access.
var (
	// ErrUnknownColumn indicates a column name outside the convention.
	ErrUnknownColumn = errors.New("solver: unknown table column")

	// ErrRowRange indicates a solution index outside [0, NumSolutions).
	ErrRowRange = errors.New("solver: solution index out of range")
)

// Candidate is one solution to tabulate: an action-space funding vector
// and the status its solver reported.
type Candidate struct {
	// Actions is the funding vector, one entry per action.
	Actions []float64

	// Status is the producing solver's terminal status.
	Status Status
}

// Table is an immutable solution table with the fixed column convention.
// Project funding, persistence, objective and cost columns are recomputed
// through the evaluator, so tabulated numbers never depend on which
// solver produced the vector.
type Table struct {
	columns  []string
	colIdx   map[string]int
	rows     [][]float64
	statuses []Status
}

// NewTable evaluates each candidate against p and assembles the table.
// Solutions are numbered from 1 in the "solution" column.
//
// Errors: evaluator errors for malformed vectors.
func NewTable(p *core.Problem, candidates []Candidate) (*Table, error) {
	nA, nP, nF := p.NumActions(), p.NumProjects(), p.NumFeatures()

	columns := make([]string, 0, 1+nA+nP+nF+3)
	columns = append(columns, "solution")
	for i := 0; i < nA; i++ {
		columns = append(columns, p.ActionColumn(i))
	}
	for j := 0; j < nP; j++ {
		columns = append(columns, p.ProjectColumn(j))
	}
	for f := 0; f < nF; f++ {
		columns = append(columns, p.FeatureID(f))
	}
	columns = append(columns, "obj", "cost", "status")

	t := &Table{
		columns:  columns,
		colIdx:   make(map[string]int, len(columns)),
		rows:     make([][]float64, 0, len(candidates)),
		statuses: make([]Status, 0, len(candidates)),
	}
	for i, name := range columns {
		t.colIdx[name] = i
	}

	for s, cand := range candidates {
		out, err := evaluate.Evaluate(p, cand.Actions)
		if err != nil {
			return nil, fmt.Errorf("solution %d: %w", s+1, err)
		}

		row := make([]float64, 0, len(columns))
		row = append(row, float64(s+1))
		row = append(row, cand.Actions...)
		for j := 0; j < nP; j++ {
			if out.FundedProjects[j] {
				row = append(row, 1)
			} else {
				row = append(row, 0)
			}
		}
		row = append(row, out.Persistence...)
		row = append(row, out.Objective, out.Cost, float64(cand.Status))

		t.rows = append(t.rows, row)
		t.statuses = append(t.statuses, cand.Status)
	}

	return t, nil
}

// Columns returns the column names in order (copy).
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// NumSolutions returns the number of tabulated solutions.
func (t *Table) NumSolutions() int { return len(t.rows) }

// Value returns one cell by solution index and column name.
//
// Errors: ErrRowRange, ErrUnknownColumn.
func (t *Table) Value(solution int, column string) (float64, error) {
	if solution < 0 || solution >= len(t.rows) {
		return 0, fmt.Errorf("solution %d: %w", solution, ErrRowRange)
	}
	c, ok := t.colIdx[column]
	if !ok {
		return 0, fmt.Errorf("column %q: %w", column, ErrUnknownColumn)
	}

	return t.rows[solution][c], nil
}

// Row returns a copy of one solution row in column order.
//
// Errors: ErrRowRange.
func (t *Table) Row(solution int) ([]float64, error) {
	if solution < 0 || solution >= len(t.rows) {
		return nil, fmt.Errorf("solution %d: %w", solution, ErrRowRange)
	}

	return append([]float64(nil), t.rows[solution]...), nil
}

// SolutionStatus returns the status reported for one solution.
//
// Errors: ErrRowRange.
func (t *Table) SolutionStatus(solution int) (Status, error) {
	if solution < 0 || solution >= len(t.rows) {
		return StatusNoSolution, fmt.Errorf("solution %d: %w", solution, ErrRowRange)
	}

	return t.statuses[solution], nil
}
