// Package solver defines the boundary between the engine and anything
// that can solve a canonical program: the Status/Result vocabulary, the
// Backend interface, and an explicit Registry that callers inject instead
// of relying on ambient global state (tests register deterministic fakes
// the same way production code registers real solvers).
//
// One backend ships with the engine: Simplex, which dispatches pure-LP
// programs (proportional decisions) to gonum's simplex implementation.
// Mixed-integer backends attach externally through the same interface;
// the engine never inspects solver internals beyond the returned Result.
//
// The package also provides Table, the fixed-column solution surface that
// presentation layers read.
package solver
