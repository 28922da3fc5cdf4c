// Package region implements region resolution: one pre-order walk over a
// parsed, name-resolved unit that records the lexical scope forest, resolves
// explicit and elided lifetime markers on type annotations to concrete
// regions, and ties locals and temporaries to their owning blocks. It runs
// before borrow checking, which consumes the resulting Map read-only.
package region

import (
	"fmt"

	"rill/internal/ast"
)

// Kind discriminates the Region payload.
type Kind uint8

const (
	// KindInferred leaves the region for a later pass to infer.
	KindInferred Kind = iota
	// KindParam is the n-th region parameter of the enclosing item.
	KindParam
	// KindBlock ties the region to a specific block's lifetime.
	KindBlock
	// KindSelf is the receiver region, legal only inside an impl.
	KindSelf
)

// Region is a resolved lifetime tag. Param is meaningful for KindParam,
// Block for KindBlock.
type Region struct {
	Kind  Kind
	Param uint32
	Block ast.NodeID
}

func ParamRegion(index uint32) Region {
	return Region{Kind: KindParam, Param: index}
}

func BlockRegion(block ast.NodeID) Region {
	return Region{Kind: KindBlock, Block: block}
}

func SelfRegion() Region {
	return Region{Kind: KindSelf}
}

func InferredRegion() Region {
	return Region{Kind: KindInferred}
}

func (r Region) String() string {
	switch r.Kind {
	case KindParam:
		return fmt.Sprintf("param(%d)", r.Param)
	case KindBlock:
		return fmt.Sprintf("block(#%d)", uint32(r.Block))
	case KindSelf:
		return "self"
	default:
		return "inferred"
	}
}
