// Package core - Problem construction and the conditional persistence model.
//
// NewProblem validates the three input tables (actions, projects, features)
// plus the baseline identifiers and derives the persistence matrix Q in one
// pass. Construction is the only place domain validation happens; every
// later stage may assume a well-formed problem.
package core

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/cran/oppr/phylo"
)

// Option configures problem construction before validation runs.
type Option func(*config)

// config collects construction-time settings resolved from Options.
type config struct {
	baselineAction  string
	baselineProject string
	adjust          bool
}

// WithBaseline names the distinguished zero-cost "do nothing" action and
// the success-1 project that comprises exactly that action. Required:
// NewProblem fails with ErrMissingBaseline when either name is absent from
// the tables or the contract is violated.
func WithBaseline(actionID, projectID string) Option {
	return func(c *config) {
		c.baselineAction = actionID
		c.baselineProject = projectID
	}
}

// WithoutBaselineAdjustment disables folding the do-nothing persistence
// into non-baseline columns of Q, leaving Q(f,j) = Pj·B(f,j).
func WithoutBaselineAdjustment() Option {
	return func(c *config) { c.adjust = false }
}

// Problem is the immutable bundle consumed by the encoder, the evaluator
// and every solver. All slices and maps are private; accessors hand out
// copies or scalars, so a Problem may be shared across goroutines freely.
type Problem struct {
	actions  []Action
	projects []Project
	features []Feature

	actIdx  map[string]int
	projIdx map[string]int
	featIdx map[string]int

	// projActs[j] holds the action indices of project j, in declaration
	// order. Resolved once so hot paths never touch the ID maps.
	projActs [][]int

	baseAction  int // index into actions
	baseProject int // index into projects
	adjust      bool

	// q is features × projects: q.At(f, j) = Q(f,j).
	q *mat.Dense

	// Composition slots. Zero values mean "unset".
	objective  ObjectiveKind
	budget     float64       // valid iff objective.Budgeted()
	decisions  DecisionKind
	targetK    TargetKind
	targets    []float64     // per feature; valid iff targetK != TargetNone
	weights    []float64     // per feature; defaults to 1s
	weightsSet bool          // true once WithFeatureWeights was applied
	lockedIn   []bool        // per action
	lockedOut  []bool        // per action
	tree       *phylo.Tree
	threshold  float64       // phylo branch threshold, [0,1)
	timeLimit  time.Duration // passed through to the encoded program; 0 = none
}

// NewProblem validates the input tables and computes the persistence
// matrix.
//
// Contracts:
//   - every table non-empty; IDs non-empty and unique per kind;
//   - 0 ≤ success/persistence probabilities ≤ 1; costs finite and ≥ 0;
//   - project action lists non-empty and resolvable; benefit keys
//     resolvable;
//   - the baseline action costs 0; the baseline project has success 1 and
//     comprises exactly the baseline action.
//
// Errors: sentinels from types.go, wrapped with record context.
//
// Complexity: O(A + F·P) time, O(F·P) space for Q.
func NewProblem(actions []Action, projects []Project, features []Feature, opts ...Option) (*Problem, error) {
	cfg := config{adjust: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Problem{
		actions:  append([]Action(nil), actions...),
		projects: make([]Project, len(projects)),
		features: append([]Feature(nil), features...),
		actIdx:   make(map[string]int, len(actions)),
		projIdx:  make(map[string]int, len(projects)),
		featIdx:  make(map[string]int, len(features)),
		adjust:   cfg.adjust,
	}

	// Deep-copy projects so caller mutations cannot reach the Problem.
	for i, pr := range projects {
		cp := Project{
			ID:      pr.ID,
			Success: pr.Success,
			Actions: append([]string(nil), pr.Actions...),
			Benefit: make(map[string]float64, len(pr.Benefit)),
		}
		for f, b := range pr.Benefit {
			cp.Benefit[f] = b
		}
		p.projects[i] = cp
	}

	if err := p.validateTables(); err != nil {
		return nil, err
	}
	if err := p.resolveBaseline(cfg.baselineAction, cfg.baselineProject); err != nil {
		return nil, err
	}
	p.computePersistence()

	// Default weights: unset (zero) becomes 1.
	p.weights = make([]float64, len(p.features))
	for i, f := range p.features {
		switch {
		case f.Weight == 0:
			p.weights[i] = 1
		case f.Weight > 0 && !math.IsInf(f.Weight, 0):
			p.weights[i] = f.Weight
		default:
			return nil, fmt.Errorf("feature %q: %w", f.ID, ErrWeightValue)
		}
	}

	p.lockedIn = make([]bool, len(p.actions))
	p.lockedOut = make([]bool, len(p.actions))
	p.budget = math.NaN()

	return p, nil
}

// validateTables checks IDs, ranges and references across the three tables.
func (p *Problem) validateTables() error {
	if len(p.actions) == 0 {
		return ErrNoActions
	}
	if len(p.projects) == 0 {
		return ErrNoProjects
	}
	if len(p.features) == 0 {
		return ErrNoFeatures
	}

	// Stage 1: actions (IDs, costs).
	for i, a := range p.actions {
		if a.ID == "" {
			return fmt.Errorf("action %d: %w", i, ErrEmptyID)
		}
		if _, dup := p.actIdx[a.ID]; dup {
			return fmt.Errorf("action %q: %w", a.ID, ErrDuplicateID)
		}
		p.actIdx[a.ID] = i
		if a.Cost < 0 || math.IsNaN(a.Cost) || math.IsInf(a.Cost, 0) {
			return fmt.Errorf("action %q: %w", a.ID, ErrNegativeCost)
		}
	}

	// Stage 2: features (IDs only; weights are resolved by the caller).
	for i, f := range p.features {
		if f.ID == "" {
			return fmt.Errorf("feature %d: %w", i, ErrEmptyID)
		}
		if _, dup := p.featIdx[f.ID]; dup {
			return fmt.Errorf("feature %q: %w", f.ID, ErrDuplicateID)
		}
		p.featIdx[f.ID] = i
	}

	// Stage 3: projects (IDs, probabilities, references).
	for i, pr := range p.projects {
		if pr.ID == "" {
			return fmt.Errorf("project %d: %w", i, ErrEmptyID)
		}
		if _, dup := p.projIdx[pr.ID]; dup {
			return fmt.Errorf("project %q: %w", pr.ID, ErrDuplicateID)
		}
		p.projIdx[pr.ID] = i

		if !inUnit(pr.Success) {
			return fmt.Errorf("project %q success: %w", pr.ID, ErrProbabilityRange)
		}
		if len(pr.Actions) == 0 {
			return fmt.Errorf("project %q: %w", pr.ID, ErrEmptyProject)
		}
		acts := make([]int, len(pr.Actions))
		for k, aid := range pr.Actions {
			ai, ok := p.actIdx[aid]
			if !ok {
				return fmt.Errorf("project %q action %q: %w", pr.ID, aid, ErrUnknownAction)
			}
			acts[k] = ai
		}
		p.projActs = append(p.projActs, acts)
		for fid, b := range pr.Benefit {
			if _, ok := p.featIdx[fid]; !ok {
				return fmt.Errorf("project %q feature %q: %w", pr.ID, fid, ErrUnknownFeature)
			}
			if !inUnit(b) {
				return fmt.Errorf("project %q feature %q persistence: %w", pr.ID, fid, ErrProbabilityRange)
			}
		}
	}

	return nil
}

// resolveBaseline locates the baseline pair and enforces its contract.
func (p *Problem) resolveBaseline(actionID, projectID string) error {
	if actionID == "" || projectID == "" {
		return fmt.Errorf("baseline not named: %w", ErrMissingBaseline)
	}

	ai, ok := p.actIdx[actionID]
	if !ok {
		return fmt.Errorf("baseline action %q: %w", actionID, ErrMissingBaseline)
	}
	pi, ok := p.projIdx[projectID]
	if !ok {
		return fmt.Errorf("baseline project %q: %w", projectID, ErrMissingBaseline)
	}

	if p.actions[ai].Cost != 0 {
		return fmt.Errorf("baseline action %q cost %v: %w", actionID, p.actions[ai].Cost, ErrMissingBaseline)
	}
	pr := p.projects[pi]
	if pr.Success != 1 {
		return fmt.Errorf("baseline project %q success %v: %w", projectID, pr.Success, ErrMissingBaseline)
	}
	if len(pr.Actions) != 1 || pr.Actions[0] != actionID {
		return fmt.Errorf("baseline project %q must comprise exactly %q: %w", projectID, actionID, ErrMissingBaseline)
	}

	p.baseAction = ai
	p.baseProject = pi

	return nil
}

// computePersistence fills Q. Pure function of the validated tables; all
// inputs are in [0,1] so every entry lands in [0,1] by construction.
func (p *Problem) computePersistence() {
	nf, np := len(p.features), len(p.projects)
	p.q = mat.NewDense(nf, np, nil)

	base := p.projects[p.baseProject]
	for fi, f := range p.features {
		// Baseline column first: Pbase·Bbase, independent of the
		// adjustment mode (Pbase is 1 by contract).
		qb := base.Success * base.Benefit[f.ID]
		p.q.Set(fi, p.baseProject, qb)

		for pj, pr := range p.projects {
			if pj == p.baseProject {
				continue
			}
			raw := pr.Success * pr.Benefit[f.ID]
			if p.adjust {
				p.q.Set(fi, pj, raw+(1-raw)*qb)
			} else {
				p.q.Set(fi, pj, raw)
			}
		}
	}
}

// inUnit reports v ∈ [0,1] and finite.
func inUnit(v float64) bool {
	return v >= 0 && v <= 1 && !math.IsNaN(v)
}
