package ast

import (
	"testing"

	"rill/internal/source"
)

func span(n uint32) source.Span {
	return source.Span{Start: n, End: n + 1}
}

func TestBuilderGetters(t *testing.T) {
	b := NewBuilder(0)
	ident := b.NewIdent(span(0), b.Intern("x"))
	block := b.NewBlock(span(1), []NodeID{ident})

	if b.Kind(ident) != NodeIdent || b.Kind(block) != NodeBlock {
		t.Fatalf("kinds lost: %v %v", b.Kind(ident), b.Kind(block))
	}

	data, ok := b.Block(block)
	if !ok || len(data.Stmts) != 1 || data.Stmts[0] != ident {
		t.Errorf("block payload lost: %v", data)
	}

	// A getter for the wrong kind reports absence instead of mangling.
	if _, ok := b.Block(ident); ok {
		t.Error("ident must not decode as a block")
	}
	if _, ok := b.Ident(NoNodeID); ok {
		t.Error("the zero ID is never valid")
	}
}

func TestPatLitSharesLitPayload(t *testing.T) {
	b := NewBuilder(0)
	pat := b.NewPatLit(span(0), LitInt, b.Intern("42"))

	if b.Kind(pat) != NodePatLit {
		t.Fatalf("kind = %v", b.Kind(pat))
	}
	lit, ok := b.Lit(pat)
	if !ok || b.Name(lit.Value) != "42" {
		t.Errorf("literal payload lost: %v", lit)
	}
}

func TestPatWildHasNoPayload(t *testing.T) {
	b := NewBuilder(0)
	pat := b.NewPatWild(span(0))
	node := b.Get(pat)
	if node == nil || node.Payload != NoPayloadID {
		t.Errorf("wildcard must carry no payload: %v", node)
	}
}

func TestArenaZeroIsInvalid(t *testing.T) {
	a := NewArena[Node](0)
	if a.Get(0) != nil {
		t.Error("slot 0 must be reserved")
	}
	id := a.Allocate(Node{Kind: NodeLit})
	if id == 0 {
		t.Error("allocation must not hand out the reserved slot")
	}
	if got := a.Get(id); got == nil || got.Kind != NodeLit {
		t.Errorf("payload lost: %v", got)
	}
}

func TestArenaRestore(t *testing.T) {
	a := NewArena[Node](0)
	a.Allocate(Node{Kind: NodeFn})
	a.Allocate(Node{Kind: NodeBlock})

	restored := Restore(a.Slice())
	if restored.Len() != a.Len() {
		t.Fatalf("length changed: %d vs %d", restored.Len(), a.Len())
	}
	if got := restored.Get(2); got == nil || got.Kind != NodeBlock {
		t.Errorf("restored payload lost: %v", got)
	}
}

func TestSpanOfInvalidNode(t *testing.T) {
	b := NewBuilder(0)
	if got := b.Span(NoNodeID); got != (source.Span{}) {
		t.Errorf("invalid nodes resolve to the zero span, got %v", got)
	}
}
