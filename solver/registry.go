// Package solver - backend interface and explicit registry.
package solver

import (
	"fmt"

	"github.com/cran/oppr/program"
)

// Backend solves canonical programs. Implementations must be safe for
// concurrent Solve calls on distinct programs: replacement-cost analysis
// fans out one solve per locked-out action.
type Backend interface {
	// Name identifies the backend within a registry.
	Name() string

	// Solve runs the backend. It returns one Result per pooled solution
	// (most backends return exactly one), a typed failure (ErrInfeasible,
	// ErrUnbounded, ErrIntegerProgram, ...) or both never. A backend with
	// a time limit reports StatusSuboptimalTimeout or StatusNoSolution
	// rather than hanging.
	Solve(p *program.Program) ([]Result, error)
}

// Registry is an explicit, injected backend collection. There is no
// package-global registry: whoever orchestrates a solve decides which
// backends exist, which makes deterministic fakes trivial to install in
// tests.
//
// Registry is not safe for concurrent mutation; register everything
// up-front, then share it read-only.
type Registry struct {
	order    []string
	backends map[string]Backend
}

// NewRegistry builds a registry from the given backends, preserving
// registration order for First.
//
// Errors: ErrEmptyName, ErrDuplicateBackend.
func NewRegistry(backends ...Backend) (*Registry, error) {
	r := &Registry{backends: make(map[string]Backend, len(backends))}
	for _, b := range backends {
		if err := r.Register(b); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register adds one backend.
//
// Errors: ErrEmptyName, ErrDuplicateBackend.
func (r *Registry) Register(b Backend) error {
	name := b.Name()
	if name == "" {
		return ErrEmptyName
	}
	if _, dup := r.backends[name]; dup {
		return fmt.Errorf("%q: %w", name, ErrDuplicateBackend)
	}
	r.backends[name] = b
	r.order = append(r.order, name)

	return nil
}

// Lookup resolves a backend by name.
//
// Errors: ErrSolverUnavailable.
func (r *Registry) Lookup(name string) (Backend, error) {
	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrSolverUnavailable)
	}

	return b, nil
}

// First returns the earliest registered backend: the fallback when a
// requested backend is unavailable and the caller accepts any.
//
// Errors: ErrSolverUnavailable when the registry is empty.
func (r *Registry) First() (Backend, error) {
	if len(r.order) == 0 {
		return nil, ErrSolverUnavailable
	}

	return r.backends[r.order[0]], nil
}

// Names returns the registered backend names in registration order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }
