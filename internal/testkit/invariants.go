// Package testkit holds structural checks shared by tests across packages.
package testkit

import (
	"fmt"

	"rill/internal/ast"
	"rill/internal/region"
)

// CheckScopeInvariants validates a resolved region map against its builder:
//
//  1. the scope forest is acyclic and every parent is a block, closure, or
//     top-level item
//  2. every local and rvalue owner is a block that appears in the forest
//  3. explicit regions are keyed by region markers, inferred regions by type
//     annotations
func CheckScopeInvariants(b *ast.Builder, m *region.Map) error {
	if b == nil || m == nil {
		return fmt.Errorf("nil builder or map")
	}

	for child, parent := range m.Parents {
		switch b.Kind(child) {
		case ast.NodeBlock, ast.NodeClosure:
		default:
			return fmt.Errorf("scope #%d is a %s, not a block or closure", child, b.Kind(child))
		}
		if kind := b.Kind(parent); kind != ast.NodeBlock && kind != ast.NodeClosure && !kind.IsItem() {
			return fmt.Errorf("parent #%d of scope #%d is a %s", parent, child, kind)
		}

		steps := 0
		for cur := child; ; steps++ {
			next, ok := m.Parents[cur]
			if !ok {
				break
			}
			cur = next
			if steps > len(m.Parents) {
				return fmt.Errorf("cycle in scope forest at #%d", child)
			}
		}
	}

	checkOwner := func(what string, node, owner ast.NodeID) error {
		if b.Kind(owner) != ast.NodeBlock {
			return fmt.Errorf("%s owner #%d of #%d is a %s, not a block", what, owner, node, b.Kind(owner))
		}
		if _, ok := m.Parents[owner]; !ok {
			return fmt.Errorf("%s owner #%d of #%d is missing from the forest", what, owner, node)
		}
		return nil
	}
	for local, owner := range m.LocalBlocks {
		if b.Kind(local) != ast.NodePatIdent {
			return fmt.Errorf("local #%d is a %s, not a pattern binding", local, b.Kind(local))
		}
		if err := checkOwner("local", local, owner); err != nil {
			return err
		}
	}
	for rvalue, owner := range m.RvalueBlocks {
		if err := checkOwner("rvalue", rvalue, owner); err != nil {
			return err
		}
	}

	for marker, r := range m.TypeRegions {
		if b.Kind(marker) != ast.NodeRegion {
			return fmt.Errorf("explicit region keyed by #%d, a %s", marker, b.Kind(marker))
		}
		if r.Kind != region.KindParam && r.Kind != region.KindSelf {
			return fmt.Errorf("explicit region of #%d is %s", marker, r)
		}
	}
	for typ, r := range m.InferredRegions {
		if !b.Kind(typ).IsType() {
			return fmt.Errorf("inferred region keyed by #%d, a %s", typ, b.Kind(typ))
		}
		if r.Kind == region.KindBlock {
			if b.Kind(r.Block) != ast.NodeBlock {
				return fmt.Errorf("inferred region of #%d names non-block #%d", typ, r.Block)
			}
		}
	}
	return nil
}
