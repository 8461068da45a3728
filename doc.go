// Package oppr is a project-prioritization engine for conservation
// funding: decide which management actions to fund so that the expected
// persistence of biodiversity features is maximized under a budget, or
// a set of persistence targets is met at minimum cost.
//
// 🚀 What is oppr?
//
//	A deterministic optimization library that brings together:
//		• Problem model: actions, projects, features, locks & targets
//		• Objectives: richness, targets, phylogenetic diversity, min set
//		• Canonical MIP encoding, solver-agnostic, with an LP backend
//		• Evaluation: objective, cost & feasibility of any portfolio
//		• Heuristics: backward-greedy funding & random portfolios
//		• Analysis: replacement costs for funded actions
//
// ✨ Why choose oppr?
//
//   - Deterministic – fixed tie-breaking, seedable sampling, stable output
//   - Rock-solid guarantees – strict sentinel errors, no panics on input
//   - Solver-agnostic – one canonical program, pluggable backends
//   - Extensible – bring your own backend via the solver registry
//
// Under the hood, everything is organized under focused subpackages:
//
//	core/      — problem model: actions, projects, features, objectives
//	phylo/     — phylogenetic trees & expected-diversity math
//	program/   — canonical mixed-integer program representation
//	encode/    — problem → program translation & variable layout
//	evaluate/  — portfolio evaluation: objective, cost, feasibility
//	solver/    — backend registry, LP simplex backend, solution tables
//	heuristic/ — backward-greedy portfolio construction
//	randsolve/ — random feasible portfolio sampling
//	replace/   — replacement-cost analysis of funded actions
//
// Quick start:
//
//	p, _ := core.NewProblem(actions, projects, features)
//	p, _ = p.WithMaxRichnessObjective(200)
//	p, _ = p.WithBinaryDecisions()
//	res, err := heuristic.Solve(p)
//	if err != nil { ... }
//	fmt.Println(res.Objective)
//
// Every subpackage carries its own doc.go with contracts and error
// inventories. Start at core and encode; the rest follows from the
// layout above.
//
//	go get github.com/cran/oppr
package oppr
