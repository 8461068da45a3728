// Package evaluate recomputes what an arbitrary action-funding vector
// achieves: per-feature persistence, total cost, objective value and
// feasibility.
//
// It is the single source of truth shared by every solving path. Exact
// backends, the backward-greedy heuristic, the random portfolio solver
// and the replacement-cost analyzer all report through Evaluate, which
// derives everything from the problem's persistence matrix and never
// trusts auxiliary solver variables (heuristic and random solutions do
// not have any).
//
// The crediting rule mirrors the encoder's allocation semantics: a
// project counts as funded only when every constituent action is funded,
// and each feature is credited to the single funded project with the
// highest conditional persistence, ties broken by the lowest project
// index for determinism.
package evaluate
