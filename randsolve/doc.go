// Package randsolve generates random feasible funding portfolios.
//
// Each sample funds the baseline and locked-in actions, then walks the
// remaining actions in a shuffled order and funds every action that
// still fits under the budget. Samples are independent and seeded
// deterministically, so a fixed seed reproduces the exact portfolio
// set regardless of how many workers run the sampling.
//
// Only budget-constrained objectives admit random sampling: without a
// budget every portfolio degenerates to the full action set. The
// minimum-set objective is rejected up front.
//
// Design contract (strict):
//   - Determinism: sample i always draws from rand.NewSource(Seed+i).
//   - No shared mutable state between workers; results land in
//     pre-sized slots.
//   - Strict sentinels; no panics on user input.
package randsolve
