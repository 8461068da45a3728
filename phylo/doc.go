// Package phylo models a feature hierarchy as an opaque weighted tree:
// a flat list of branches, each carrying a positive length and the set of
// leaf features that descend from it, exposed in a fixed traversal order.
//
// Two constructors are provided:
//
//   - NewTree — build a tree from explicit branches (the parsing of
//     phylogeny file formats is an ingestion concern and stays outside
//     this package; callers hand over already-resolved branches).
//
//   - Star — the trivial single-level tree: one branch per feature with a
//     caller-chosen (or unit) length. Flat objectives are evaluated
//     through a Star instance of the same machinery, so there is no
//     special-cased "no hierarchy" path anywhere downstream.
//
// ExpectedDiversity aggregates per-feature survival probabilities into the
// expected sum of branch lengths with at least one surviving descendant.
//
// Errors follow the sentinel policy: errors.Is against the package-level
// variables; no panics on user input.
package phylo
