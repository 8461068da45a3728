// Package phylo - weighted feature-hierarchy type shared by the encoder
// and the evaluator.
//
// Design contract (strict):
//   - Immutable after construction: Tree hands out copies, never internals.
//   - Deterministic: Branches() and Leaves() orders are fixed at build time
//     (declaration order for branches, first-appearance order for leaves).
//   - Strict sentinels: only errors declared in this file; no panics.
package phylo

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for tree construction and aggregation.
var (
	// ErrNoBranches indicates an attempt to build a tree without branches.
	ErrNoBranches = errors.New("phylo: tree has no branches")

	// ErrBranchLength indicates a branch length that is negative, NaN or
	// infinite. Zero is allowed (the branch simply contributes nothing).
	ErrBranchLength = errors.New("phylo: branch length must be finite and >= 0")

	// ErrEmptyBranch indicates a branch with no descendant leaves.
	ErrEmptyBranch = errors.New("phylo: branch has no leaves")

	// ErrDuplicateLeaf indicates the same leaf listed twice on one branch.
	ErrDuplicateLeaf = errors.New("phylo: duplicate leaf on branch")

	// ErrEmptyLeafID indicates an empty leaf identifier.
	ErrEmptyLeafID = errors.New("phylo: leaf ID is empty")

	// ErrUnknownLeaf indicates a survival value was requested for a leaf
	// that does not occur anywhere in the tree, or a tree leaf was missing
	// from a survival map.
	ErrUnknownLeaf = errors.New("phylo: unknown leaf")

	// ErrLengthCount indicates a Star call where the lengths slice does not
	// match the leaf slice.
	ErrLengthCount = errors.New("phylo: lengths do not match leaves")
)

// Branch is one edge of the hierarchy: a positive length and the leaves
// (feature identifiers) descending from it. A terminal branch lists exactly
// one leaf; the root branch lists all of them.
type Branch struct {
	// Length is the branch weight (e.g. evolutionary time). Must be
	// finite and >= 0.
	Length float64

	// Leaves are the feature IDs below this branch, in a fixed order.
	Leaves []string
}

// Tree is an immutable weighted hierarchy over a set of leaf features.
type Tree struct {
	branches []Branch
	leafIdx  map[string]int // leaf ID -> position in leaves
	leaves   []string       // first-appearance order
}

// NewTree validates branches and builds an immutable Tree.
//
// Contracts:
//   - len(branches) ≥ 1; every Length finite and ≥ 0.
//   - every branch lists ≥ 1 leaf; no leaf repeats within one branch;
//     leaf IDs are non-empty.
//
// Complexity: O(Σ|leaves per branch|) time and space.
func NewTree(branches []Branch) (*Tree, error) {
	if len(branches) == 0 {
		return nil, ErrNoBranches
	}

	t := &Tree{
		branches: make([]Branch, len(branches)),
		leafIdx:  make(map[string]int),
	}

	for bi, b := range branches {
		if b.Length < 0 || math.IsNaN(b.Length) || math.IsInf(b.Length, 0) {
			return nil, fmt.Errorf("branch %d: %w", bi, ErrBranchLength)
		}
		if len(b.Leaves) == 0 {
			return nil, fmt.Errorf("branch %d: %w", bi, ErrEmptyBranch)
		}

		// Copy leaves defensively and reject duplicates within the branch.
		seen := make(map[string]struct{}, len(b.Leaves))
		cp := Branch{Length: b.Length, Leaves: make([]string, len(b.Leaves))}
		for li, leaf := range b.Leaves {
			if leaf == "" {
				return nil, fmt.Errorf("branch %d: %w", bi, ErrEmptyLeafID)
			}
			if _, dup := seen[leaf]; dup {
				return nil, fmt.Errorf("branch %d leaf %q: %w", bi, leaf, ErrDuplicateLeaf)
			}
			seen[leaf] = struct{}{}
			cp.Leaves[li] = leaf

			// Record global first-appearance order.
			if _, ok := t.leafIdx[leaf]; !ok {
				t.leafIdx[leaf] = len(t.leaves)
				t.leaves = append(t.leaves, leaf)
			}
		}
		t.branches[bi] = cp
	}

	return t, nil
}

// Star builds the trivial single-level tree: one branch per leaf.
// lengths may be nil (all branches get unit length) or match leaves 1:1.
//
// Star is a real Tree, not a special case: downstream code treats the
// flat feature set and a genuine phylogeny identically.
//
// Complexity: O(n).
func Star(leaves []string, lengths []float64) (*Tree, error) {
	if lengths != nil && len(lengths) != len(leaves) {
		return nil, ErrLengthCount
	}

	branches := make([]Branch, len(leaves))
	for i, leaf := range leaves {
		l := 1.0
		if lengths != nil {
			l = lengths[i]
		}
		branches[i] = Branch{Length: l, Leaves: []string{leaf}}
	}

	return NewTree(branches)
}

// NumBranches returns the branch count. Complexity: O(1).
func (t *Tree) NumBranches() int { return len(t.branches) }

// Branches returns a copy of the branch list in traversal order.
// Complexity: O(Σ|leaves|).
func (t *Tree) Branches() []Branch {
	out := make([]Branch, len(t.branches))
	for i, b := range t.branches {
		out[i] = Branch{Length: b.Length, Leaves: append([]string(nil), b.Leaves...)}
	}

	return out
}

// Branch returns the i-th branch (copy). The boolean is false when i is
// out of range. Complexity: O(|leaves of branch|).
func (t *Tree) Branch(i int) (Branch, bool) {
	if i < 0 || i >= len(t.branches) {
		return Branch{}, false
	}
	b := t.branches[i]

	return Branch{Length: b.Length, Leaves: append([]string(nil), b.Leaves...)}, true
}

// Leaves returns all leaf IDs in first-appearance order (copy).
// Complexity: O(n).
func (t *Tree) Leaves() []string { return append([]string(nil), t.leaves...) }

// HasLeaf reports whether the given feature occurs in the tree.
// Complexity: O(1).
func (t *Tree) HasLeaf(id string) bool {
	_, ok := t.leafIdx[id]

	return ok
}

// ExpectedDiversity returns Σ_b Length_b · (1 − Π_{f∈b} (1 − survival[f])):
// the expected total length of branches with at least one surviving
// descendant, given independent per-feature survival probabilities.
//
// Contracts:
//   - survival must contain every leaf of the tree; extra keys are ignored.
//   - values outside [0,1] are the caller's bug and are not clamped here;
//     upstream validation keeps persistence probabilities in range.
//
// Complexity: O(Σ|leaves per branch|).
func (t *Tree) ExpectedDiversity(survival map[string]float64) (float64, error) {
	var total float64
	for _, b := range t.branches {
		extinct := 1.0
		for _, leaf := range b.Leaves {
			s, ok := survival[leaf]
			if !ok {
				return 0, fmt.Errorf("branch leaf %q: %w", leaf, ErrUnknownLeaf)
			}
			extinct *= 1 - s
		}
		total += b.Length * (1 - extinct)
	}

	return total, nil
}
