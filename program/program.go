// Package program - canonical sparse LP/MIP structure and its builder
// methods.
//
// Design contract (strict):
//   - Plain data: every field exported so backends can read the program
//     without adapters; builder methods exist for convenience and safety,
//     not as the only door in.
//   - Strict sentinels: builder and checking methods return only errors
//     declared in this file; no panics on user input.
//   - Deterministic: triplets are stored in insertion order; nothing here
//     depends on map iteration.
package program

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for program construction and vector checking.
var (
	// ErrColumnRange indicates a variable index outside [0, NumVars).
	ErrColumnRange = errors.New("program: column index out of range")

	// ErrRowShape indicates mismatched cols/vals slices in AddRow.
	ErrRowShape = errors.New("program: row cols/vals length mismatch")

	// ErrBadSense indicates an unknown row sense tag.
	ErrBadSense = errors.New("program: invalid row sense")

	// ErrBadVarType indicates an unknown variable type tag.
	ErrBadVarType = errors.New("program: invalid variable type")

	// ErrBadBounds indicates lower > upper, or a fix value outside the
	// variable's current bounds.
	ErrBadBounds = errors.New("program: inconsistent variable bounds")

	// ErrNaNInf indicates a NaN or ±Inf coefficient where a finite value
	// is required (objective, matrix entries, RHS).
	ErrNaNInf = errors.New("program: NaN or Inf coefficient")

	// ErrDimensionMismatch indicates a solution vector whose length does
	// not equal NumVars.
	ErrDimensionMismatch = errors.New("program: vector length mismatch")

	// ErrEmptyProgram indicates validation of a program with no variables.
	ErrEmptyProgram = errors.New("program: no variables")
)

// Direction is the optimization direction.
type Direction int8

const (
	// Minimize the objective.
	Minimize Direction = iota

	// Maximize the objective.
	Maximize
)

// Sense is a constraint-row relation.
type Sense int8

const (
	// LE: row activity ≤ RHS.
	LE Sense = iota

	// EQ: row activity = RHS.
	EQ

	// GE: row activity ≥ RHS.
	GE
)

// String implements fmt.Stringer for diagnostics.
func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case EQ:
		return "="
	case GE:
		return ">="
	default:
		return "?"
	}
}

// VarType tags a variable's domain.
type VarType int8

const (
	// Continuous: any value within [Lower, Upper].
	Continuous VarType = iota

	// Binary: {0,1} (bounds are forced to [0,1] at creation).
	Binary

	// SemiContinuous: 0 or a value within [Lower, Upper].
	SemiContinuous
)

// Nonzero is one sparse constraint-matrix entry.
type Nonzero struct {
	// Row and Col locate the entry; Val is its coefficient.
	Row, Col int
	Val      float64
}

// Program is the canonical representation handed to solver backends.
type Program struct {
	// Dir is the optimization direction.
	Dir Direction

	// Obj holds one objective coefficient per variable; Offset is a
	// constant added to the objective value.
	Obj    []float64
	Offset float64

	// Entries is the sparse constraint matrix in insertion order.
	Entries []Nonzero

	// Senses and RHS hold one relation and right-hand side per row.
	Senses []Sense
	RHS    []float64

	// Lower, Upper and Types hold per-variable bounds and domain tags.
	Lower, Upper []float64
	Types        []VarType

	// ColNames and RowNames carry the fixed naming convention used by
	// solution tables; parallel to the variable/row slices.
	ColNames []string
	RowNames []string

	// TimeLimit bounds a backend's solve; zero means no limit. A backend
	// that runs out of time reports a timeout status, never hangs.
	TimeLimit time.Duration
}

// New returns an empty program with the given direction.
func New(dir Direction) *Program {
	return &Program{Dir: dir}
}

// NumVars returns the number of variables. Complexity: O(1).
func (p *Program) NumVars() int { return len(p.Obj) }

// NumRows returns the number of constraint rows. Complexity: O(1).
func (p *Program) NumRows() int { return len(p.RHS) }

// AddVariable appends a variable and returns its column index.
// Binary variables get [0,1] bounds regardless of lb/ub.
//
// Errors: ErrNaNInf (objective coefficient), ErrBadBounds, ErrBadVarType.
func (p *Program) AddVariable(name string, obj, lb, ub float64, vt VarType) (int, error) {
	if math.IsNaN(obj) || math.IsInf(obj, 0) {
		return 0, fmt.Errorf("variable %q objective: %w", name, ErrNaNInf)
	}
	switch vt {
	case Binary:
		lb, ub = 0, 1
	case Continuous, SemiContinuous:
		if math.IsNaN(lb) || math.IsNaN(ub) || lb > ub {
			return 0, fmt.Errorf("variable %q bounds [%v,%v]: %w", name, lb, ub, ErrBadBounds)
		}
	default:
		return 0, fmt.Errorf("variable %q: %w", name, ErrBadVarType)
	}

	col := len(p.Obj)
	p.Obj = append(p.Obj, obj)
	p.Lower = append(p.Lower, lb)
	p.Upper = append(p.Upper, ub)
	p.Types = append(p.Types, vt)
	p.ColNames = append(p.ColNames, name)

	return col, nil
}

// AddRow appends a sparse constraint row Σ vals[k]·x[cols[k]] <sense> rhs
// and returns its row index. Zero coefficients are dropped.
//
// Errors: ErrRowShape, ErrColumnRange, ErrBadSense, ErrNaNInf.
func (p *Program) AddRow(name string, cols []int, vals []float64, sense Sense, rhs float64) (int, error) {
	if len(cols) != len(vals) {
		return 0, fmt.Errorf("row %q: %w", name, ErrRowShape)
	}
	if sense != LE && sense != EQ && sense != GE {
		return 0, fmt.Errorf("row %q: %w", name, ErrBadSense)
	}
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return 0, fmt.Errorf("row %q rhs: %w", name, ErrNaNInf)
	}

	row := len(p.RHS)
	for k, c := range cols {
		if c < 0 || c >= len(p.Obj) {
			return 0, fmt.Errorf("row %q col %d: %w", name, c, ErrColumnRange)
		}
		v := vals[k]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("row %q col %d: %w", name, c, ErrNaNInf)
		}
		if v == 0 {
			continue
		}
		p.Entries = append(p.Entries, Nonzero{Row: row, Col: c, Val: v})
	}
	p.Senses = append(p.Senses, sense)
	p.RHS = append(p.RHS, rhs)
	p.RowNames = append(p.RowNames, name)

	return row, nil
}

// SetBounds replaces a variable's bounds.
//
// Errors: ErrColumnRange, ErrBadBounds.
func (p *Program) SetBounds(col int, lb, ub float64) error {
	if col < 0 || col >= len(p.Obj) {
		return ErrColumnRange
	}
	if math.IsNaN(lb) || math.IsNaN(ub) || lb > ub {
		return fmt.Errorf("bounds [%v,%v]: %w", lb, ub, ErrBadBounds)
	}
	p.Lower[col] = lb
	p.Upper[col] = ub

	return nil
}

// FixVariable pins a variable to a single value by bound tightening (the
// lock-in/lock-out mechanism: no extra rows).
//
// Errors: ErrColumnRange, ErrBadBounds when v lies outside the current
// bounds.
func (p *Program) FixVariable(col int, v float64) error {
	if col < 0 || col >= len(p.Obj) {
		return ErrColumnRange
	}
	if math.IsNaN(v) || v < p.Lower[col] || v > p.Upper[col] {
		return fmt.Errorf("fix %v outside [%v,%v]: %w", v, p.Lower[col], p.Upper[col], ErrBadBounds)
	}
	p.Lower[col] = v
	p.Upper[col] = v

	return nil
}

// Validate verifies structural consistency: at least one variable,
// parallel slice lengths, entry references in range, finite coefficients
// and lb ≤ ub everywhere. Intended to run once before a solve.
//
// Complexity: O(vars + rows + nonzeros).
func (p *Program) Validate() error {
	n := len(p.Obj)
	if n == 0 {
		return ErrEmptyProgram
	}
	if len(p.Lower) != n || len(p.Upper) != n || len(p.Types) != n || len(p.ColNames) != n {
		return fmt.Errorf("variable slices: %w", ErrDimensionMismatch)
	}
	m := len(p.RHS)
	if len(p.Senses) != m || len(p.RowNames) != m {
		return fmt.Errorf("row slices: %w", ErrDimensionMismatch)
	}

	for i := 0; i < n; i++ {
		if math.IsNaN(p.Obj[i]) || math.IsInf(p.Obj[i], 0) {
			return fmt.Errorf("objective col %d: %w", i, ErrNaNInf)
		}
		if math.IsNaN(p.Lower[i]) || math.IsNaN(p.Upper[i]) || p.Lower[i] > p.Upper[i] {
			return fmt.Errorf("bounds col %d: %w", i, ErrBadBounds)
		}
	}
	for _, e := range p.Entries {
		if e.Row < 0 || e.Row >= m || e.Col < 0 || e.Col >= n {
			return fmt.Errorf("entry (%d,%d): %w", e.Row, e.Col, ErrColumnRange)
		}
		if math.IsNaN(e.Val) || math.IsInf(e.Val, 0) {
			return fmt.Errorf("entry (%d,%d): %w", e.Row, e.Col, ErrNaNInf)
		}
	}

	return nil
}

// Dense exports the constraint matrix as a dense gonum matrix
// (rows × vars). Duplicate triplets accumulate.
//
// Complexity: O(rows·vars) space; O(nonzeros) fill.
func (p *Program) Dense() *mat.Dense {
	m := mat.NewDense(maxInt(len(p.RHS), 1), maxInt(len(p.Obj), 1), nil)
	for _, e := range p.Entries {
		m.Set(e.Row, e.Col, m.At(e.Row, e.Col)+e.Val)
	}

	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
