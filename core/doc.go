// Package core defines the central Action, Project, Feature and Problem
// types of the prioritization engine, and computes the conditional
// persistence model they imply.
//
// A Problem is an immutable bundle of already-validated input tables plus
// the derived persistence matrix Q: Q(f, j) is the probability that
// feature f persists when project j is the one credited with managing it.
// With baseline adjustment (the default)
//
//	Q(f,j) = Pj·B(f,j) + (1 − Pj·B(f,j)) · Q(f,baseline)
//
// and without it Q(f,j) = Pj·B(f,j); the baseline column is always
// Pbase·B(f,baseline).
//
// Problems are composed fluently: NewProblem builds the validated data
// core, and each With* method returns a derived Problem with one slot
// (objective, decisions, targets, weights, locks) replaced:
//
//	p, err := core.NewProblem(actions, projects, features,
//	    core.WithBaseline("a_base", "p_base"))
//	...
//	p, err = p.WithMaxRichnessObjective(200)
//	p, err = p.WithBinaryDecisions()
//
// Solving requires at minimum an objective and a decision-variable kind;
// targets, weights, a feature hierarchy and lock constraints are optional
// slots depending on the objective.
//
// All validation is eager and fails with sentinel errors (errors.Is);
// probabilities and costs are never silently clamped.
package core
