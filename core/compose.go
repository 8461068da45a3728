// Package core - fluent composition of Problem slots.
//
// Each With* method validates its arguments eagerly and returns a derived
// Problem with exactly one slot replaced (objective, decisions, targets,
// weights, hierarchy threshold) or extended (locks). The receiver is never
// mutated, so intermediate configurations stay valid and shareable.
package core

import (
	"fmt"
	"math"
	"time"

	"github.com/cran/oppr/phylo"
)

// clone returns a shallow copy of p. Slices are shared until a With*
// method replaces them wholesale (copy-on-write).
func (p *Problem) clone() *Problem {
	cp := *p

	return &cp
}

// WithMaxRichnessObjective selects the maximum-richness objective:
// maximize Σ_f W_f · (expected persistence of f) subject to total funded
// cost ≤ budget.
//
// Errors: ErrBudgetValue.
func (p *Problem) WithMaxRichnessObjective(budget float64) (*Problem, error) {
	if err := validBudget(budget); err != nil {
		return nil, err
	}
	cp := p.clone()
	cp.objective = MaxRichness
	cp.budget = budget

	return cp, nil
}

// WithMaxTargetsObjective selects the maximum-targets-met objective:
// maximize the weighted count of features whose persistence reaches their
// target, subject to total funded cost ≤ budget. Targets must be supplied
// via WithAbsoluteTargets or WithRelativeTargets before encoding.
//
// Errors: ErrBudgetValue.
func (p *Problem) WithMaxTargetsObjective(budget float64) (*Problem, error) {
	if err := validBudget(budget); err != nil {
		return nil, err
	}
	cp := p.clone()
	cp.objective = MaxTargets
	cp.budget = budget

	return cp, nil
}

// WithMaxPhyloObjective selects the maximum expected phylogenetic
// diversity objective under a budget cap. tree may be nil: the feature set
// is then treated as a star hierarchy (one unit-length branch per feature),
// which degenerates to the richness objective under unit weights.
//
// Contracts:
//   - when tree is non-nil, its leaves and the feature table must coincide
//     (every leaf a known feature, every feature on some branch).
//
// Errors: ErrBudgetValue, ErrTreeMismatch.
func (p *Problem) WithMaxPhyloObjective(budget float64, tree *phylo.Tree) (*Problem, error) {
	if err := validBudget(budget); err != nil {
		return nil, err
	}
	if tree != nil {
		if err := p.validateTree(tree); err != nil {
			return nil, err
		}
	}
	cp := p.clone()
	cp.objective = MaxPhylo
	cp.budget = budget
	cp.tree = tree

	return cp, nil
}

// WithMinSetObjective selects the minimum-set objective: minimize total
// funded cost subject to every feature meeting its persistence target.
// There is no budget cap; feature weights are not applicable.
//
// Errors: ErrWeightsNotApplicable when explicit weights were set earlier.
func (p *Problem) WithMinSetObjective() (*Problem, error) {
	if p.weightsSet {
		return nil, ErrWeightsNotApplicable
	}
	cp := p.clone()
	cp.objective = MinSet
	cp.budget = math.NaN()

	return cp, nil
}

// WithBranchThreshold sets the phylogenetic branch threshold τ ∈ [0,1).
// With τ > 0 a branch is only credited when the expected survival mass of
// its descendants reaches τ; with τ = 0 (default) branch credit is the
// continuous union bound.
//
// Errors: ErrBranchThreshold.
func (p *Problem) WithBranchThreshold(tau float64) (*Problem, error) {
	if tau < 0 || tau >= 1 || math.IsNaN(tau) {
		return nil, ErrBranchThreshold
	}
	cp := p.clone()
	cp.threshold = tau

	return cp, nil
}

// WithTimeLimit bounds backend solves on programs encoded from this
// problem; zero (the default) means no limit. Negative durations are
// rejected.
//
// Errors: ErrTimeLimit.
func (p *Problem) WithTimeLimit(d time.Duration) (*Problem, error) {
	if d < 0 {
		return nil, ErrTimeLimit
	}
	cp := p.clone()
	cp.timeLimit = d

	return cp, nil
}

// WithBinaryDecisions restricts action funding variables to {0,1}.
func (p *Problem) WithBinaryDecisions() (*Problem, error) {
	cp := p.clone()
	cp.decisions = BinaryDecisions

	return cp, nil
}

// WithProportionalDecisions relaxes action funding variables to [0,1].
// Every auxiliary variable relaxes with them, so the encoded program is a
// pure LP suitable for the simplex backend.
func (p *Problem) WithProportionalDecisions() (*Problem, error) {
	cp := p.clone()
	cp.decisions = ProportionalDecisions

	return cp, nil
}

// WithAbsoluteTargets sets persistence targets directly. A single value is
// broadcast to all features; otherwise one value per feature is required,
// in feature-table order.
//
// Errors: ErrTargetCount, ErrTargetRange.
func (p *Problem) WithAbsoluteTargets(values ...float64) (*Problem, error) {
	nf := len(p.features)
	var targets []float64
	switch len(values) {
	case 1:
		targets = make([]float64, nf)
		for i := range targets {
			targets[i] = values[0]
		}
	case nf:
		targets = append([]float64(nil), values...)
	default:
		return nil, fmt.Errorf("%d values for %d features: %w", len(values), nf, ErrTargetCount)
	}
	for i, t := range targets {
		if !inUnit(t) {
			return nil, fmt.Errorf("feature %q target %v: %w", p.features[i].ID, t, ErrTargetRange)
		}
	}

	cp := p.clone()
	cp.targetK = TargetAbsolute
	cp.targets = targets

	return cp, nil
}

// WithRelativeTargets interpolates each feature's target between its
// do-nothing persistence and its best achievable persistence:
//
//	T_f = Q(f,baseline) + fraction · (max_j Q(f,j) − Q(f,baseline))
//
// Errors: ErrTargetRange when fraction ∉ [0,1].
func (p *Problem) WithRelativeTargets(fraction float64) (*Problem, error) {
	if !inUnit(fraction) {
		return nil, fmt.Errorf("fraction %v: %w", fraction, ErrTargetRange)
	}

	targets := make([]float64, len(p.features))
	for f := range p.features {
		qb := p.q.At(f, p.baseProject)
		targets[f] = qb + fraction*(p.bestPersistence(f)-qb)
	}

	cp := p.clone()
	cp.targetK = TargetRelative
	cp.targets = targets

	return cp, nil
}

// WithFeatureWeights overrides feature weights by ID. Features absent from
// the map keep their current weight. An explicit 0 is honored (unlike the
// Feature.Weight zero value, which means "default to 1").
//
// Errors: ErrUnknownFeature, ErrWeightValue, ErrWeightsNotApplicable for
// the minimum-set objective.
func (p *Problem) WithFeatureWeights(byID map[string]float64) (*Problem, error) {
	if p.objective == MinSet {
		return nil, ErrWeightsNotApplicable
	}

	weights := append([]float64(nil), p.weights...)
	for id, w := range byID {
		fi, ok := p.featIdx[id]
		if !ok {
			return nil, fmt.Errorf("feature %q: %w", id, ErrUnknownFeature)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("feature %q weight %v: %w", id, w, ErrWeightValue)
		}
		weights[fi] = w
	}

	cp := p.clone()
	cp.weights = weights
	cp.weightsSet = true

	return cp, nil
}

// WithLockedIn forces the named actions to be funded. Locks accumulate
// across calls.
//
// Errors: ErrUnknownAction, ErrConflictingLocks when an action is already
// locked out.
func (p *Problem) WithLockedIn(actionIDs ...string) (*Problem, error) {
	cp := p.clone()
	cp.lockedIn = append([]bool(nil), p.lockedIn...)
	for _, id := range actionIDs {
		ai, ok := p.actIdx[id]
		if !ok {
			return nil, fmt.Errorf("action %q: %w", id, ErrUnknownAction)
		}
		if cp.lockedOut[ai] {
			return nil, fmt.Errorf("action %q: %w", id, ErrConflictingLocks)
		}
		cp.lockedIn[ai] = true
	}

	return cp, nil
}

// WithLockedOut forbids funding the named actions. Locks accumulate across
// calls. The baseline action is always fundable and cannot be locked out.
//
// Errors: ErrUnknownAction, ErrConflictingLocks.
func (p *Problem) WithLockedOut(actionIDs ...string) (*Problem, error) {
	cp := p.clone()
	cp.lockedOut = append([]bool(nil), p.lockedOut...)
	for _, id := range actionIDs {
		ai, ok := p.actIdx[id]
		if !ok {
			return nil, fmt.Errorf("action %q: %w", id, ErrUnknownAction)
		}
		if ai == p.baseAction {
			return nil, fmt.Errorf("baseline action %q cannot be locked out: %w", id, ErrConflictingLocks)
		}
		if cp.lockedIn[ai] {
			return nil, fmt.Errorf("action %q: %w", id, ErrConflictingLocks)
		}
		cp.lockedOut[ai] = true
	}

	return cp, nil
}

// Ready reports whether the problem can be encoded and solved: an
// objective and a decision kind are set, and target-driven objectives
// carry targets.
//
// Errors: ErrNoObjective, ErrNoDecisions, ErrNoTargets.
func (p *Problem) Ready() error {
	if p.objective == ObjectiveNone {
		return ErrNoObjective
	}
	if p.decisions == DecisionNone {
		return ErrNoDecisions
	}
	if p.objective.TargetDriven() && p.targetK == TargetNone {
		return ErrNoTargets
	}

	return nil
}

// validateTree checks a supplied hierarchy against the feature table.
func (p *Problem) validateTree(tree *phylo.Tree) error {
	for _, leaf := range tree.Leaves() {
		if _, ok := p.featIdx[leaf]; !ok {
			return fmt.Errorf("hierarchy leaf %q: %w", leaf, ErrTreeMismatch)
		}
	}
	for _, f := range p.features {
		if !tree.HasLeaf(f.ID) {
			return fmt.Errorf("feature %q not on any branch: %w", f.ID, ErrTreeMismatch)
		}
	}

	return nil
}

// validBudget rejects NaN/Inf/negative budgets.
func validBudget(budget float64) error {
	if budget < 0 || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return fmt.Errorf("budget %v: %w", budget, ErrBudgetValue)
	}

	return nil
}
