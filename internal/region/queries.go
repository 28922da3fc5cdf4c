package region

import (
	"rill/internal/ast"
)

// Contains reports whether inner is equal to or lexically nested inside
// outer. It walks the parent chain from inner; termination follows from the
// forest being acyclic.
func (m *Map) Contains(outer, inner ast.NodeID) bool {
	for outer != inner {
		parent, ok := m.Parents[inner]
		if !ok {
			return false
		}
		inner = parent
	}
	return true
}

// ancestorsOf returns the chain scope, parent(scope), ..., root.
func (m *Map) ancestorsOf(scope ast.NodeID) []ast.NodeID {
	result := []ast.NodeID{scope}
	for {
		parent, ok := m.Parents[scope]
		if !ok {
			return result
		}
		result = append(result, parent)
		scope = parent
	}
}

// NearestCommonAncestor returns the deepest scope containing both a and b.
// The second result is false when the scopes share no ancestor, and also
// when one scope is an ancestor of the other: callers that care about the
// containment case check Contains first. Chain indices are compared with
// signed arithmetic so running past the start of a chain is an explicit
// terminal state, not a wraparound.
func (m *Map) NearestCommonAncestor(a, b ast.NodeID) (ast.NodeID, bool) {
	if a == b {
		return a, true
	}

	aAncestors := m.ancestorsOf(a)
	bAncestors := m.ancestorsOf(b)
	aIndex := len(aAncestors) - 1
	bIndex := len(bAncestors) - 1

	// Different roots: the scopes live in unrelated trees.
	if aAncestors[aIndex] != bAncestors[bIndex] {
		return ast.NoNodeID, false
	}

	// Walk inward from the roots while the chains agree.
	for aIndex >= 0 && bIndex >= 0 && aAncestors[aIndex] == bAncestors[bIndex] {
		aIndex--
		bIndex--
	}

	// One chain is a prefix of the other: no divergence point exists.
	if aIndex < 0 || bIndex < 0 {
		return ast.NoNodeID, false
	}

	return aAncestors[aIndex+1], true
}
