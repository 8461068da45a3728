// Package program holds the canonical, solver-neutral representation of a
// linear or mixed-integer program: an objective vector with a direction, a
// sparse triplet constraint matrix with row senses and right-hand sides,
// and per-variable bounds and type tags.
//
// This structure is the seam where solver backends attach. A backend needs
// nothing beyond the exported fields to reconstruct the program in its own
// call convention, and it reports back plain value vectors indexed by
// column. The reverse direction is covered by the checking methods:
// Activity, Slack, Satisfied and ObjectiveValue answer what an arbitrary
// precomputed vector achieves, independently of who produced it.
//
// Programs are built incrementally (AddVariable, AddRow, FixVariable) and
// verified once with Validate before being handed to a backend.
package program
