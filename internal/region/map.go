package region

import (
	"rill/internal/ast"
)

// Map is the immutable result bundle of one resolved unit. Every map is a
// partial function keyed by NodeID; entries are written at most once during
// the walk and never mutated afterwards.
type Map struct {
	// Parents maps each block and closure to its immediately enclosing
	// scope. Top-level items are forest roots and have no entry.
	Parents map[ast.NodeID]ast.NodeID

	// TypeRegions maps a region marker node to its resolved region, for
	// markers that resolved successfully. Markers that produced a
	// diagnostic have no entry; consumers fall back to InferredRegions.
	TypeRegions map[ast.NodeID]Region

	// InferredRegions maps every type annotation node to the region an
	// unmarked reference at that position defaults to.
	InferredRegions map[ast.NodeID]Region

	// LocalBlocks maps a pattern binding to the block that owns it.
	LocalBlocks map[ast.NodeID]ast.NodeID

	// RvalueBlocks maps let declarations, address-of operands and match
	// scrutinees to their enclosing block, so that a later pass can extend
	// a temporary's lifetime to that block.
	RvalueBlocks map[ast.NodeID]ast.NodeID
}

func NewMap() *Map {
	return &Map{
		Parents:         make(map[ast.NodeID]ast.NodeID),
		TypeRegions:     make(map[ast.NodeID]Region),
		InferredRegions: make(map[ast.NodeID]Region),
		LocalBlocks:     make(map[ast.NodeID]ast.NodeID),
		RvalueBlocks:    make(map[ast.NodeID]ast.NodeID),
	}
}
