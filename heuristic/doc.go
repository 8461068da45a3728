// Package heuristic implements the backward-greedy solver: start from
// every action funded and repeatedly drop the cheapest-to-lose action
// until the budget is met (budgeted objectives) or until any further
// removal would break a target (minimum set).
//
// The trajectory is deterministic — candidate ranking is by smallest
// objective loss, then higher cost, then lower action index — and never
// backtracks. One consequence is documented, intended behavior: the
// objective value is not monotonic in the budget. A run at a larger
// budget can terminate on a worse vector than a run at a smaller one,
// because the single removal path visits different frontiers. Callers
// comparing against exact solvers should expect this; it is the point of
// having the heuristic as a quality benchmark, not a defect to fix.
//
// No optimality guarantee and no polynomial-runtime guarantee: each step
// re-evaluates every removable action.
package heuristic
