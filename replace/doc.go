// Package replace computes replacement costs for a funding portfolio.
//
// The replacement cost of a funded action measures how much the
// objective degrades when that action is barred from funding and the
// problem is re-solved. Large values mark irreplaceable actions; zero
// marks actions the solver can swap out for free.
//
// Sentinel values in the result rows:
//   - NaN: no replacement cost exists for the row (unfunded action,
//     or the baseline action). Missing() reports this.
//   - +Inf: barring the action makes the problem infeasible, so the
//     action is indispensable. Infeasible() reports this.
//
// The re-solve is delegated to a caller-supplied SolveFunc, so the
// analysis works identically over the exact encoder/solver path and
// over the heuristic.
//
// Design contract (strict):
//   - Entries are returned in action order; parallel workers write to
//     pre-sized slots only.
//   - Strict sentinels; no panics on user input.
package replace
