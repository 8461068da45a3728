// Package solver - result vocabulary and sentinel errors of the solving
// boundary.
package solver

import "errors"

// Sentinel errors for the solving boundary.
var (
	// ErrSolverUnavailable indicates a requested backend is not
	// registered. Recoverable: fall back to Registry.First or surface.
	ErrSolverUnavailable = errors.New("solver: backend unavailable")

	// ErrInfeasible indicates the solver proved no feasible point exists.
	// A typed failure, not a status: callers decide whether an infeasible
	// probe is fatal or an expected analytic outcome.
	ErrInfeasible = errors.New("solver: problem infeasible")

	// ErrUnbounded indicates the program has no finite optimum.
	ErrUnbounded = errors.New("solver: problem unbounded")

	// ErrIntegerProgram indicates a backend restricted to continuous
	// variables received integer-typed columns.
	ErrIntegerProgram = errors.New("solver: backend cannot handle integer variables")

	// ErrNilProgram indicates a Solve call without a program.
	ErrNilProgram = errors.New("solver: nil program")

	// ErrDuplicateBackend indicates two registrations under one name.
	ErrDuplicateBackend = errors.New("solver: backend already registered")

	// ErrEmptyName indicates a backend with an empty Name().
	ErrEmptyName = errors.New("solver: backend name is empty")

	// ErrNoResults indicates a backend returned an empty result set
	// without a typed failure.
	ErrNoResults = errors.New("solver: backend returned no results")
)

// Status classifies the terminal state of one solve.
type Status int8

const (
	// StatusNoSolution: no solution was produced (failed solve, or no
	// feasible point found before the time limit).
	StatusNoSolution Status = iota

	// StatusOptimal: proven optimal solution.
	StatusOptimal

	// StatusInfeasible: proven that no feasible point exists.
	StatusInfeasible

	// StatusSuboptimalTimeout: a feasible solution was found but
	// optimality is unproven — the solver stopped at its limit. This is a
	// first-class result state, not an error: heuristic and stochastic
	// solvers report it for every solution they produce.
	StatusSuboptimalTimeout
)

// String implements fmt.Stringer; values follow the boundary vocabulary.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusSuboptimalTimeout:
		return "SUBOPTIMAL_TIMEOUT"
	default:
		return "NO_SOLUTION"
	}
}

// HasSolution reports whether the status carries usable variable values.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusSuboptimalTimeout
}

// Result is one solution returned across the solving boundary.
type Result struct {
	// Status classifies the solve outcome.
	Status Status

	// Values holds variable values in the producing solver's variable
	// space: program columns for program backends (project through
	// encode.Layout.ActionValues), action indices for the algorithmic
	// solvers that work on a Problem directly.
	Values []float64

	// Objective is the solver-reported objective value.
	Objective float64

	// Runtime is the wall-clock solve time in seconds.
	Runtime float64
}
