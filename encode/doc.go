// Package encode translates a composed core.Problem into the canonical
// program representation: allocation variables, the objective row for the
// selected objective family, target rows and lock bounds.
//
// Every objective family shares one allocation skeleton. For actions i,
// projects j and features f:
//
//	X_i — action funded;
//	Y_j — project fully funded, tied by Y_j ≤ X_i per constituent action;
//	Z_fj — feature f credited to project j, tied by Z_fj ≤ Y_j and
//	       Σ_j Z_fj = 1 over the projects that can plausibly benefit f
//	       (positive persistence, baseline always admissible);
//	E_f — extinction probability, E_f + Σ_j Q(f,j)·Z_fj = 1.
//
// A feature is credited to at most one funded project, so probability
// gains never double-count across overlapping projects — allocation is a
// decision the solver makes, not a greedy pick.
//
// On top of the skeleton the four families add their own term: richness
// and phylogenetic diversity maximize persistence-weighted sums under a
// budget row, targets-met maximizes the weighted count of satisfied
// targets under a budget row, and minimum set minimizes cost under
// per-feature target rows.
//
// Encoding fails only on malformed composition (missing objective or
// decision slot, missing targets). Infeasibility is a solve-time outcome:
// an unreachable target encodes fine and comes back from the solver as an
// infeasible status, never as an encode error.
package encode
