package randsolve

import (
	"errors"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cran/oppr/core"
	"github.com/cran/oppr/evaluate"
	"github.com/cran/oppr/solver"
)

// Package sentinels.
var (
	// ErrUnbudgeted reports an objective without a budget constraint.
	ErrUnbudgeted = errors.New("randsolve: objective carries no budget")
	// ErrSampleCount reports a non-positive sample count.
	ErrSampleCount = errors.New("randsolve: sample count must be positive")
)

// Options configures the sampler.
type Options struct {
	// Samples is the number of portfolios to draw. Must be positive.
	Samples int
	// Seed anchors the deterministic per-sample sources.
	Seed int64
	// Parallel caps the number of concurrent sampling workers.
	// Zero or negative means GOMAXPROCS.
	Parallel int
}

// DefaultOptions returns the canonical sampler configuration:
// 100 samples, seed 0, one worker per logical CPU.
func DefaultOptions() Options {
	return Options{Samples: 100, Seed: 0, Parallel: runtime.GOMAXPROCS(0)}
}

// Solve draws opt.Samples random feasible portfolios for p and returns
// one Result per sample, in sample order. Values are action-space 0/1
// vectors; every returned portfolio respects the locks and the budget.
//
// Errors: core readiness sentinels; ErrUnbudgeted for objectives
// without a budget; ErrSampleCount; solver.ErrInfeasible when the
// baseline plus locked-in actions alone exceed the budget.
func Solve(p *core.Problem, opt Options) ([]solver.Result, error) {
	if err := p.Ready(); err != nil {
		return nil, err
	}
	if !p.Objective().Budgeted() {
		return nil, ErrUnbudgeted
	}
	if opt.Samples <= 0 {
		return nil, ErrSampleCount
	}

	// Mandatory skeleton shared by every sample.
	base := make([]float64, p.NumActions())
	var baseCost float64
	for i := range base {
		if i == p.BaselineAction() || p.LockedIn(i) {
			base[i] = 1
			baseCost += p.ActionCost(i)
		}
	}
	if baseCost > p.Budget()+evaluate.Tolerance {
		return nil, solver.ErrInfeasible
	}

	var free []int
	for i := 0; i < p.NumActions(); i++ {
		if base[i] == 0 && !p.LockedOut(i) {
			free = append(free, i)
		}
	}

	workers := opt.Parallel
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]solver.Result, opt.Samples)

	var g errgroup.Group
	g.SetLimit(workers)
	for s := 0; s < opt.Samples; s++ {
		s := s
		g.Go(func() error {
			start := time.Now()

			x := sample(p, base, baseCost, free, opt.Seed+int64(s))
			out, err := evaluate.Evaluate(p, x)
			if err != nil {
				return err
			}

			results[s] = solver.Result{
				Status:    solver.StatusSuboptimalTimeout,
				Values:    x,
				Objective: out.Objective,
				Runtime:   time.Since(start).Seconds(),
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// sample draws one portfolio: shuffle the free actions with a source
// derived from seed, then fund each in order while it fits.
func sample(p *core.Problem, base []float64, baseCost float64, free []int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))

	order := make([]int, len(free))
	copy(order, free)
	rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })

	x := make([]float64, len(base))
	copy(x, base)

	cost := baseCost
	for _, i := range order {
		c := p.ActionCost(i)
		if cost+c > p.Budget()+evaluate.Tolerance {
			continue
		}
		x[i] = 1
		cost += c
	}

	return x
}
