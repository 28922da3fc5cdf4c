package ast

type (
	// NodeID identifies any syntax-tree node: items, blocks, statements,
	// expressions, patterns, type annotations and region markers all share
	// one ID space. IDs are assigned once per unit and never reused.
	NodeID uint32
	// PayloadID points into the per-kind payload arena for a node.
	PayloadID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoPayloadID PayloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
