// Package core - read accessors over the immutable Problem.
//
// Scalar accessors are O(1) and allocation-free so solver hot loops can
// call them per iteration; slice accessors hand out copies.
package core

import (
	"math"
	"time"

	"github.com/cran/oppr/phylo"
)

// NumActions returns the number of actions (baseline included).
func (p *Problem) NumActions() int { return len(p.actions) }

// NumProjects returns the number of projects (baseline included).
func (p *Problem) NumProjects() int { return len(p.projects) }

// NumFeatures returns the number of features.
func (p *Problem) NumFeatures() int { return len(p.features) }

// ActionID returns the ID of action i.
func (p *Problem) ActionID(i int) string { return p.actions[i].ID }

// ActionCost returns the cost of action i.
func (p *Problem) ActionCost(i int) float64 { return p.actions[i].Cost }

// ActionIndex resolves an action ID; ok is false for unknown IDs.
func (p *Problem) ActionIndex(id string) (int, bool) {
	i, ok := p.actIdx[id]

	return i, ok
}

// ProjectID returns the ID of project j.
func (p *Problem) ProjectID(j int) string { return p.projects[j].ID }

// ProjectIndex resolves a project ID; ok is false for unknown IDs.
func (p *Problem) ProjectIndex(id string) (int, bool) {
	j, ok := p.projIdx[id]

	return j, ok
}

// ProjectActionCount returns how many actions project j comprises.
func (p *Problem) ProjectActionCount(j int) int { return len(p.projActs[j]) }

// ProjectActionAt returns the k-th constituent action index of project j.
// Scalar companion to ProjectActionIndices for allocation-free loops.
func (p *Problem) ProjectActionAt(j, k int) int { return p.projActs[j][k] }

// ProjectActionIndices returns a copy of project j's action indices.
func (p *Problem) ProjectActionIndices(j int) []int {
	return append([]int(nil), p.projActs[j]...)
}

// FeatureID returns the ID of feature f.
func (p *Problem) FeatureID(f int) string { return p.features[f].ID }

// FeatureIndex resolves a feature ID; ok is false for unknown IDs.
func (p *Problem) FeatureIndex(id string) (int, bool) {
	f, ok := p.featIdx[id]

	return f, ok
}

// FeatureWeight returns the resolved weight of feature f (default 1).
func (p *Problem) FeatureWeight(f int) float64 { return p.weights[f] }

// BaselineAction returns the index of the baseline action.
func (p *Problem) BaselineAction() int { return p.baseAction }

// BaselineProject returns the index of the baseline project.
func (p *Problem) BaselineProject() int { return p.baseProject }

// Adjusted reports whether baseline adjustment is folded into Q.
func (p *Problem) Adjusted() bool { return p.adjust }

// Persistence returns Q(f, j): the probability feature f persists when
// project j is credited with managing it.
func (p *Problem) Persistence(f, j int) float64 { return p.q.At(f, j) }

// BaselinePersistence returns Q(f, baseline): the do-nothing persistence.
func (p *Problem) BaselinePersistence(f int) float64 {
	return p.q.At(f, p.baseProject)
}

// BestPersistence returns max_j Q(f, j): the best achievable persistence
// for feature f across all projects (baseline included).
func (p *Problem) BestPersistence(f int) float64 { return p.bestPersistence(f) }

func (p *Problem) bestPersistence(f int) float64 {
	best := 0.0
	for j := 0; j < len(p.projects); j++ {
		if q := p.q.At(f, j); q > best {
			best = q
		}
	}

	return best
}

// Objective returns the selected objective kind (ObjectiveNone if unset).
func (p *Problem) Objective() ObjectiveKind { return p.objective }

// Budget returns the budget cap; NaN when the objective carries none
// (minimum set, or no objective selected yet).
func (p *Problem) Budget() float64 { return p.budget }

// Decisions returns the selected decision-variable kind.
func (p *Problem) Decisions() DecisionKind { return p.decisions }

// TargetKind reports how targets were specified (TargetNone if unset).
func (p *Problem) TargetKind() TargetKind { return p.targetK }

// Target returns feature f's persistence target; NaN when targets are
// unset.
func (p *Problem) Target(f int) float64 {
	if p.targetK == TargetNone {
		return math.NaN()
	}

	return p.targets[f]
}

// Targets returns a copy of the per-feature target vector, or nil when
// targets are unset.
func (p *Problem) Targets() []float64 {
	if p.targetK == TargetNone {
		return nil
	}

	return append([]float64(nil), p.targets...)
}

// LockedIn reports whether action i is locked in.
func (p *Problem) LockedIn(i int) bool { return p.lockedIn[i] }

// LockedOut reports whether action i is locked out.
func (p *Problem) LockedOut(i int) bool { return p.lockedOut[i] }

// Tree returns the supplied feature hierarchy, or nil when none was given.
func (p *Problem) Tree() *phylo.Tree { return p.tree }

// BranchThreshold returns the phylogenetic branch threshold τ (0 default).
func (p *Problem) BranchThreshold() float64 { return p.threshold }

// EvaluationTree returns the hierarchy every objective is evaluated
// through: the supplied tree for phylogenetic problems, otherwise a star
// tree whose branch lengths are the feature weights. The star instance is
// what makes flat objectives a trivial case of tree aggregation rather
// than a separate code path.
func (p *Problem) EvaluationTree() (*phylo.Tree, error) {
	if p.tree != nil {
		return p.tree, nil
	}

	leaves := make([]string, len(p.features))
	lengths := make([]float64, len(p.features))
	for i, f := range p.features {
		leaves[i] = f.ID
		lengths[i] = p.weights[i]
	}

	return phylo.Star(leaves, lengths)
}

// TimeLimit returns the solve time limit; zero means none.
func (p *Problem) TimeLimit() time.Duration { return p.timeLimit }

// ActionColumn returns the fixed solution-table column name for action i:
// "action_<id>" for ordinary actions, the raw ID for the baseline action.
func (p *Problem) ActionColumn(i int) string {
	if i == p.baseAction {
		return p.actions[i].ID
	}

	return "action_" + p.actions[i].ID
}

// ProjectColumn returns the fixed solution-table column name for project
// j: "project_<id>" for ordinary projects, the raw ID for the baseline.
func (p *Problem) ProjectColumn(j int) string {
	if j == p.baseProject {
		return p.projects[j].ID
	}

	return "project_" + p.projects[j].ID
}

// TotalCost returns the summed cost of all actions: the starting point of
// the backward-greedy trajectory and a natural budget upper bound.
func (p *Problem) TotalCost() float64 {
	var sum float64
	for _, a := range p.actions {
		sum += a.Cost
	}

	return sum
}
