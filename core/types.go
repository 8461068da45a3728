// Package core - input record types, enumerations and sentinel errors.
//
// This file declares Action, Project, Feature, the objective / decision /
// target enumerations, and the sentinel errors shared across the engine.
//
// Error policy (explicit and strict):
//   - Only package-level sentinels are exposed; callers branch with
//     errors.Is.
//   - Sentinels carry a "core: ..." prefix; context is attached at API
//     boundaries with %w wrapping.
//   - No panics on user input; all domain violations fail eagerly.
package core

import "errors"

// Sentinel errors for problem construction and composition. These form the
// domain-error class of the engine: malformed input is rejected here, never
// silently repaired.
var (
	// ErrProbabilityRange indicates a success or persistence probability
	// outside the closed interval [0,1].
	ErrProbabilityRange = errors.New("core: probability out of range")

	// ErrNegativeCost indicates an action with cost < 0 (or NaN/Inf).
	ErrNegativeCost = errors.New("core: action cost must be finite and >= 0")

	// ErrEmptyID indicates an empty action/project/feature identifier.
	ErrEmptyID = errors.New("core: empty identifier")

	// ErrDuplicateID indicates two records of the same kind share an ID.
	ErrDuplicateID = errors.New("core: duplicate identifier")

	// ErrUnknownAction indicates a reference to an undeclared action.
	ErrUnknownAction = errors.New("core: unknown action")

	// ErrUnknownProject indicates a reference to an undeclared project.
	ErrUnknownProject = errors.New("core: unknown project")

	// ErrUnknownFeature indicates a reference to an undeclared feature.
	ErrUnknownFeature = errors.New("core: unknown feature")

	// ErrMissingBaseline indicates the baseline action/project pair was not
	// supplied or does not satisfy the baseline contract (zero-cost action,
	// success-1 project comprising exactly the baseline action).
	ErrMissingBaseline = errors.New("core: invalid or missing baseline")

	// ErrNoActions / ErrNoProjects / ErrNoFeatures indicate empty tables.
	ErrNoActions  = errors.New("core: no actions")
	ErrNoProjects = errors.New("core: no projects")
	ErrNoFeatures = errors.New("core: no features")

	// ErrEmptyProject indicates a project with no constituent actions.
	ErrEmptyProject = errors.New("core: project has no actions")

	// ErrConflictingLocks indicates the same action is locked in and out.
	ErrConflictingLocks = errors.New("core: action locked in and out")

	// ErrNoObjective indicates a solve-ready check on a problem without an
	// objective slot filled.
	ErrNoObjective = errors.New("core: no objective")

	// ErrNoDecisions indicates a solve-ready check on a problem without a
	// decision-variable kind.
	ErrNoDecisions = errors.New("core: no decision kind")

	// ErrNoTargets indicates a target-driven objective without targets.
	ErrNoTargets = errors.New("core: objective requires targets")

	// ErrTargetRange indicates a persistence target outside [0,1], or a
	// relative-target fraction outside [0,1].
	ErrTargetRange = errors.New("core: target out of range")

	// ErrTargetCount indicates a per-feature target vector whose length
	// does not match the feature table.
	ErrTargetCount = errors.New("core: target count mismatch")

	// ErrWeightValue indicates a feature weight that is negative or not
	// finite.
	ErrWeightValue = errors.New("core: feature weight must be finite and >= 0")

	// ErrWeightsNotApplicable indicates feature weights combined with the
	// minimum-set objective, which has no weighted term.
	ErrWeightsNotApplicable = errors.New("core: weights not applicable to minimum-set objective")

	// ErrNilTree indicates a phylogenetic objective without a hierarchy
	// where one was expected, or a nil *phylo.Tree argument.
	ErrNilTree = errors.New("core: nil feature hierarchy")

	// ErrTreeMismatch indicates a hierarchy whose leaves do not cover the
	// feature table, or that names unknown features.
	ErrTreeMismatch = errors.New("core: hierarchy does not match features")

	// ErrBudgetValue indicates a budget that is negative or not finite.
	ErrBudgetValue = errors.New("core: budget must be finite and >= 0")

	// ErrBranchThreshold indicates a phylogenetic branch threshold outside
	// the half-open interval [0,1).
	ErrBranchThreshold = errors.New("core: branch threshold out of range")

	// ErrTimeLimit indicates a negative solve time limit.
	ErrTimeLimit = errors.New("core: time limit must be >= 0")
)

// Action is an atomic fundable unit with a cost. The baseline action has
// cost 0 and is always implicitly fundable.
type Action struct {
	// ID uniquely identifies this action.
	ID string

	// Cost is the funding cost. Must be finite and >= 0; the baseline
	// action must cost exactly 0.
	Cost float64
}

// Project groups actions under a joint success probability and carries the
// persistence probabilities it grants each feature when fully funded.
type Project struct {
	// ID uniquely identifies this project.
	ID string

	// Success is the probability the project succeeds if fully funded.
	Success float64

	// Actions are the constituent action IDs; the project is funded only
	// when every one of them is funded. Order is preserved.
	Actions []string

	// Benefit maps feature ID -> persistence probability if this project
	// succeeds and is credited with the feature. Features absent from the
	// map receive 0 (unaffected).
	Benefit map[string]float64
}

// Feature is an entity whose persistence probability is being optimized.
type Feature struct {
	// ID uniquely identifies this feature.
	ID string

	// Weight scales the feature's contribution to weighted objectives.
	// Zero means "unset" and defaults to 1 at problem construction.
	Weight float64
}

// ObjectiveKind enumerates the supported objective families.
type ObjectiveKind int8

const (
	// ObjectiveNone marks the objective slot as unset.
	ObjectiveNone ObjectiveKind = iota

	// MaxRichness maximizes Σ_f W_f·(expected persistence of f) under a
	// budget cap.
	MaxRichness

	// MaxTargets maximizes the weighted number of features whose
	// persistence meets their target, under a budget cap.
	MaxTargets

	// MaxPhylo maximizes expected phylogenetic diversity over a weighted
	// feature hierarchy, under a budget cap.
	MaxPhylo

	// MinSet minimizes total funded cost subject to every feature meeting
	// its persistence target (no budget cap).
	MinSet
)

// String implements fmt.Stringer for diagnostics.
func (k ObjectiveKind) String() string {
	switch k {
	case MaxRichness:
		return "maximum richness"
	case MaxTargets:
		return "maximum targets met"
	case MaxPhylo:
		return "maximum phylogenetic diversity"
	case MinSet:
		return "minimum set"
	default:
		return "none"
	}
}

// Budgeted reports whether the kind carries a budget cap row.
func (k ObjectiveKind) Budgeted() bool {
	return k == MaxRichness || k == MaxTargets || k == MaxPhylo
}

// TargetDriven reports whether the kind requires persistence targets.
func (k ObjectiveKind) TargetDriven() bool {
	return k == MaxTargets || k == MinSet
}

// DecisionKind enumerates the decision-variable domains.
type DecisionKind int8

const (
	// DecisionNone marks the decision slot as unset.
	DecisionNone DecisionKind = iota

	// BinaryDecisions restricts action funding to {0,1}.
	BinaryDecisions

	// ProportionalDecisions relaxes action funding to [0,1]; the encoded
	// program becomes a pure LP.
	ProportionalDecisions
)

// String implements fmt.Stringer for diagnostics.
func (k DecisionKind) String() string {
	switch k {
	case BinaryDecisions:
		return "binary"
	case ProportionalDecisions:
		return "proportional"
	default:
		return "none"
	}
}

// TargetKind enumerates how persistence targets were specified.
type TargetKind int8

const (
	// TargetNone marks the target slot as unset.
	TargetNone TargetKind = iota

	// TargetAbsolute means targets were supplied directly.
	TargetAbsolute

	// TargetRelative means targets interpolate between baseline and best
	// achievable persistence.
	TargetRelative
)
