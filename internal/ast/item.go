package ast

import (
	"rill/internal/source"
)

// UnitData is the root of one compilation unit.
type UnitData struct {
	Items []NodeID
}

// FnParam is a named parameter with its type annotation. Parameters are not
// nodes themselves; their type annotations are.
type FnParam struct {
	Name source.StringID
	Type NodeID
	Span source.Span
}

// FnData describes a function item or an impl method.
type FnData struct {
	Name   source.StringID
	Params []FnParam
	Ret    NodeID // NoNodeID when the return type is omitted
	Body   NodeID // block; NoNodeID for a bodyless declaration
}

// EnumVariant is one constructor of an enum item.
type EnumVariant struct {
	Name source.StringID
	Args []NodeID // type annotations of the payload, if any
	Span source.Span
}

type EnumData struct {
	Name     source.StringID
	Variants []EnumVariant
}

// ImplData describes a trait implementation. Methods are NodeFn nodes, but
// they are visited as part of the impl, not as free-standing items.
type ImplData struct {
	Contract source.StringID
	Target   NodeID // type annotation of the implementing type
	Methods  []NodeID
}

// AliasData describes a type alias item.
type AliasData struct {
	Name source.StringID
	Type NodeID
}

// ConstData describes a unit-level constant.
type ConstData struct {
	Name  source.StringID
	Type  NodeID // NoNodeID when inferred
	Value NodeID
}
