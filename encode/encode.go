// Package encode - the allocation & objective encoder.
//
// Design contract (strict):
//   - Validate first (Problem.Ready), then build; the builder stages below
//     cannot fail on a validated problem, so any builder error is wrapped
//     and surfaced as-is rather than swallowed.
//   - Deterministic: columns and rows are emitted in fixed index order;
//     no map iteration touches the program shape.
//   - Locks are bound tightenings, never extra rows.
package encode

import (
	"fmt"
	"strconv"

	"github.com/cran/oppr/core"
	"github.com/cran/oppr/phylo"
	"github.com/cran/oppr/program"
)

// Encode builds the canonical program for p's objective family and the
// layout mapping its columns back to the problem.
//
// Contracts:
//   - p non-nil and solve-ready (objective + decision kind set, targets
//     present for target-driven objectives).
//
// Errors: core.ErrNoObjective, core.ErrNoDecisions, core.ErrNoTargets.
//
// Complexity: O(A + F·P + Σ|branch leaves|) time and space.
func Encode(p *core.Problem) (*program.Program, *Layout, error) {
	if p == nil {
		return nil, nil, core.ErrNoObjective
	}
	if err := p.Ready(); err != nil {
		return nil, nil, err
	}

	dir := program.Maximize
	if p.Objective() == core.MinSet {
		dir = program.Minimize
	}
	prog := program.New(dir)
	prog.TimeLimit = p.TimeLimit()

	auxType := program.Binary
	if p.Decisions() == core.ProportionalDecisions {
		auxType = program.Continuous
	}

	lay, err := addVariables(p, prog, auxType)
	if err != nil {
		return nil, nil, fmt.Errorf("encode variables: %w", err)
	}
	if err = addAllocationRows(p, prog, lay); err != nil {
		return nil, nil, fmt.Errorf("encode allocation: %w", err)
	}
	if err = addObjectiveRows(p, prog, lay, auxType); err != nil {
		return nil, nil, fmt.Errorf("encode objective: %w", err)
	}
	if err = applyLocks(p, prog, lay); err != nil {
		return nil, nil, fmt.Errorf("encode locks: %w", err)
	}
	lay.NumCols = prog.NumVars()

	return prog, lay, nil
}

// addVariables emits the shared variable blocks: X (actions), Y
// (projects), Z (allocations) and E (extinction probabilities).
func addVariables(p *core.Problem, prog *program.Program, auxType program.VarType) (*Layout, error) {
	nA, nP, nF := p.NumActions(), p.NumProjects(), p.NumFeatures()
	lay := &Layout{
		X:         make([]int, nA),
		Y:         make([]int, nP),
		E:         make([]int, nF),
		Alloc:     make([][]AllocVar, nF),
		BudgetRow: -1,
	}
	kind := p.Objective()

	// X block. Only the minimum-set objective prices actions directly.
	xType := program.Binary
	if p.Decisions() == core.ProportionalDecisions {
		xType = program.Continuous
	}
	for i := 0; i < nA; i++ {
		obj := 0.0
		if kind == core.MinSet {
			obj = p.ActionCost(i)
		}
		col, err := prog.AddVariable(p.ActionColumn(i), obj, 0, 1, xType)
		if err != nil {
			return nil, err
		}
		lay.X[i] = col
	}

	// Y block.
	for j := 0; j < nP; j++ {
		col, err := prog.AddVariable(p.ProjectColumn(j), 0, 0, 1, auxType)
		if err != nil {
			return nil, err
		}
		lay.Y[j] = col
	}

	// Z block: one allocation variable per (feature, admissible project).
	// Admissible means positive persistence — the indicator mask — except
	// the baseline project, which is always admissible so that every
	// feature has somewhere to go and infeasibility stays a property of
	// targets, not of the skeleton.
	base := p.BaselineProject()
	for f := 0; f < nF; f++ {
		for j := 0; j < nP; j++ {
			if j != base && p.Persistence(f, j) <= 0 {
				continue
			}
			name := "alloc_" + p.FeatureID(f) + "_" + p.ProjectID(j)
			col, err := prog.AddVariable(name, 0, 0, 1, auxType)
			if err != nil {
				return nil, err
			}
			lay.Alloc[f] = append(lay.Alloc[f], AllocVar{Project: j, Col: col})
		}
	}

	// E block: extinction probabilities are continuous in every family.
	for f := 0; f < nF; f++ {
		col, err := prog.AddVariable("ext_"+p.FeatureID(f), 0, 0, 1, program.Continuous)
		if err != nil {
			return nil, err
		}
		lay.E[f] = col
	}

	return lay, nil
}

// addAllocationRows emits the skeleton every family shares: project
// linkage, single-allocation, allocation cover and extinction definition.
func addAllocationRows(p *core.Problem, prog *program.Program, lay *Layout) error {
	// Y_j ≤ X_i for every constituent action: a project is funded only
	// when all of its actions are.
	for j := 0; j < p.NumProjects(); j++ {
		for k := 0; k < p.ProjectActionCount(j); k++ {
			i := p.ProjectActionAt(j, k)
			name := "link_" + p.ProjectID(j) + "_" + p.ActionID(i)
			if _, err := prog.AddRow(name,
				[]int{lay.Y[j], lay.X[i]}, []float64{1, -1},
				program.LE, 0); err != nil {
				return err
			}
		}
	}

	for f := 0; f < p.NumFeatures(); f++ {
		// Σ_j Z_fj = 1: exactly one credited project per feature.
		cols := make([]int, len(lay.Alloc[f]))
		ones := make([]float64, len(lay.Alloc[f]))
		for k, av := range lay.Alloc[f] {
			cols[k] = av.Col
			ones[k] = 1
		}
		if _, err := prog.AddRow("alloc_"+p.FeatureID(f), cols, ones, program.EQ, 1); err != nil {
			return err
		}

		// Z_fj ≤ Y_j: only funded projects can be credited.
		for _, av := range lay.Alloc[f] {
			name := "cover_" + p.FeatureID(f) + "_" + p.ProjectID(av.Project)
			if _, err := prog.AddRow(name,
				[]int{av.Col, lay.Y[av.Project]}, []float64{1, -1},
				program.LE, 0); err != nil {
				return err
			}
		}

		// E_f + Σ_j Q(f,j)·Z_fj = 1.
		ecols := make([]int, 0, len(lay.Alloc[f])+1)
		evals := make([]float64, 0, len(lay.Alloc[f])+1)
		ecols = append(ecols, lay.E[f])
		evals = append(evals, 1)
		for _, av := range lay.Alloc[f] {
			ecols = append(ecols, av.Col)
			evals = append(evals, p.Persistence(f, av.Project))
		}
		if _, err := prog.AddRow("ext_"+p.FeatureID(f), ecols, evals, program.EQ, 1); err != nil {
			return err
		}
	}

	return nil
}

// addObjectiveRows emits the family-specific objective terms, budget or
// target rows, and any extra variables they need.
func addObjectiveRows(p *core.Problem, prog *program.Program, lay *Layout, auxType program.VarType) error {
	nF := p.NumFeatures()

	switch p.Objective() {
	case core.MaxRichness:
		// maximize Σ_f W_f·(1−E_f) = Σ W_f − Σ W_f·E_f.
		for f := 0; f < nF; f++ {
			w := p.FeatureWeight(f)
			prog.Obj[lay.E[f]] = -w
			prog.Offset += w
		}

		return addBudgetRow(p, prog, lay)

	case core.MaxTargets:
		// G_f ∈ {0,1} may be 1 only when 1−E_f ≥ T_f, linearized as
		// E_f + T_f·G_f ≤ 1; maximize Σ W_f·G_f.
		lay.Met = make([]int, nF)
		for f := 0; f < nF; f++ {
			col, err := prog.AddVariable("met_"+p.FeatureID(f), p.FeatureWeight(f), 0, 1, auxType)
			if err != nil {
				return err
			}
			lay.Met[f] = col
			if _, err = prog.AddRow("target_"+p.FeatureID(f),
				[]int{lay.E[f], col}, []float64{1, p.Target(f)},
				program.LE, 1); err != nil {
				return err
			}
		}

		return addBudgetRow(p, prog, lay)

	case core.MaxPhylo:
		return addPhyloRows(p, prog, lay, auxType)

	case core.MinSet:
		// 1−E_f ≥ T_f per feature; the objective lives on the X block.
		for f := 0; f < nF; f++ {
			if _, err := prog.AddRow("target_"+p.FeatureID(f),
				[]int{lay.E[f]}, []float64{1},
				program.LE, 1-p.Target(f)); err != nil {
				return err
			}
		}

		return nil

	default:
		return core.ErrNoObjective
	}
}

// addPhyloRows emits branch credit variables over the evaluation tree.
//
// Credit is the union bound: R_b ≤ Σ_{f∈b}(1−E_f), written as
// R_b + Σ_{f∈b} E_f ≤ |b|. Exact for single-leaf branches, which is what
// makes the star tree reproduce the richness objective. A positive branch
// threshold τ adds a gate: R_b ≤ gate_b and τ·gate_b ≤ Σ_{f∈b}(1−E_f).
func addPhyloRows(p *core.Problem, prog *program.Program, lay *Layout, auxType program.VarType) error {
	tree, err := p.EvaluationTree()
	if err != nil {
		return err
	}
	tau := p.BranchThreshold()

	branches := tree.Branches()
	lay.BranchCredit = make([]int, len(branches))
	if tau > 0 {
		lay.BranchGate = make([]int, len(branches))
	}

	for b, br := range branches {
		leafE, err2 := branchExtinctionCols(p, lay, br)
		if err2 != nil {
			return err2
		}
		size := float64(len(leafE))

		col, err2 := prog.AddVariable("branch_"+strconv.Itoa(b), br.Length, 0, 1, program.Continuous)
		if err2 != nil {
			return err2
		}
		lay.BranchCredit[b] = col

		cols := append([]int{col}, leafE...)
		vals := make([]float64, len(cols))
		vals[0] = 1
		for k := 1; k < len(vals); k++ {
			vals[k] = 1
		}
		if _, err2 = prog.AddRow("credit_"+strconv.Itoa(b), cols, vals, program.LE, size); err2 != nil {
			return err2
		}

		if tau > 0 {
			gate, err3 := prog.AddVariable("gate_"+strconv.Itoa(b), 0, 0, 1, auxType)
			if err3 != nil {
				return err3
			}
			lay.BranchGate[b] = gate
			if _, err3 = prog.AddRow("gatecap_"+strconv.Itoa(b),
				[]int{col, gate}, []float64{1, -1},
				program.LE, 0); err3 != nil {
				return err3
			}
			gcols := append([]int{gate}, leafE...)
			gvals := make([]float64, len(gcols))
			gvals[0] = tau
			for k := 1; k < len(gvals); k++ {
				gvals[k] = 1
			}
			if _, err3 = prog.AddRow("gatemin_"+strconv.Itoa(b), gcols, gvals, program.LE, size); err3 != nil {
				return err3
			}
		}
	}

	return addBudgetRow(p, prog, lay)
}

// branchExtinctionCols resolves a branch's leaves to extinction columns.
func branchExtinctionCols(p *core.Problem, lay *Layout, br phylo.Branch) ([]int, error) {
	cols := make([]int, len(br.Leaves))
	for k, leaf := range br.Leaves {
		f, ok := p.FeatureIndex(leaf)
		if !ok {
			return nil, fmt.Errorf("branch leaf %q: %w", leaf, core.ErrUnknownFeature)
		}
		cols[k] = lay.E[f]
	}

	return cols, nil
}

// addBudgetRow caps total funded cost for the budgeted families.
func addBudgetRow(p *core.Problem, prog *program.Program, lay *Layout) error {
	cols := make([]int, 0, p.NumActions())
	vals := make([]float64, 0, p.NumActions())
	for i := 0; i < p.NumActions(); i++ {
		if c := p.ActionCost(i); c != 0 {
			cols = append(cols, lay.X[i])
			vals = append(vals, c)
		}
	}
	row, err := prog.AddRow("budget", cols, vals, program.LE, p.Budget())
	if err != nil {
		return err
	}
	lay.BudgetRow = row

	return nil
}

// applyLocks pins the baseline and locked actions by bound tightening.
func applyLocks(p *core.Problem, prog *program.Program, lay *Layout) error {
	if err := prog.FixVariable(lay.X[p.BaselineAction()], 1); err != nil {
		return err
	}
	for i := 0; i < p.NumActions(); i++ {
		switch {
		case p.LockedIn(i):
			if err := prog.FixVariable(lay.X[i], 1); err != nil {
				return err
			}
		case p.LockedOut(i):
			if err := prog.FixVariable(lay.X[i], 0); err != nil {
				return err
			}
		}
	}

	return nil
}
