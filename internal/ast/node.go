package ast

import (
	"rill/internal/source"
)

type NodeKind uint8

const (
	NodeInvalid NodeKind = iota
	NodeUnit

	// Top-level items.
	NodeFn
	NodeEnum
	NodeImpl
	NodeAlias
	NodeConst

	// Statements.
	NodeBlock
	NodeLet

	// Expressions.
	NodeIdent
	NodeLit
	NodeUnary
	NodeBinary
	NodeCall
	NodeIf
	NodeMatch
	NodeArm
	NodeClosure

	// Patterns.
	NodePatIdent
	NodePatCtor
	NodePatLit
	NodePatWild

	// Type annotations.
	NodeTypeRef
	NodeTypePath
	NodeTypeFn
	NodeTypeTuple

	// Region marker attached to a reference type.
	NodeRegion
)

func (k NodeKind) String() string {
	switch k {
	case NodeUnit:
		return "unit"
	case NodeFn:
		return "fn"
	case NodeEnum:
		return "enum"
	case NodeImpl:
		return "impl"
	case NodeAlias:
		return "alias"
	case NodeConst:
		return "const"
	case NodeBlock:
		return "block"
	case NodeLet:
		return "let"
	case NodeIdent:
		return "ident"
	case NodeLit:
		return "lit"
	case NodeUnary:
		return "unary"
	case NodeBinary:
		return "binary"
	case NodeCall:
		return "call"
	case NodeIf:
		return "if"
	case NodeMatch:
		return "match"
	case NodeArm:
		return "arm"
	case NodeClosure:
		return "closure"
	case NodePatIdent:
		return "pat-ident"
	case NodePatCtor:
		return "pat-ctor"
	case NodePatLit:
		return "pat-lit"
	case NodePatWild:
		return "pat-wild"
	case NodeTypeRef:
		return "type-ref"
	case NodeTypePath:
		return "type-path"
	case NodeTypeFn:
		return "type-fn"
	case NodeTypeTuple:
		return "type-tuple"
	case NodeRegion:
		return "region"
	default:
		return "invalid"
	}
}

// IsType reports whether the kind is a type annotation.
func (k NodeKind) IsType() bool {
	switch k {
	case NodeTypeRef, NodeTypePath, NodeTypeFn, NodeTypeTuple:
		return true
	default:
		return false
	}
}

// IsItem reports whether the kind is a top-level item.
func (k NodeKind) IsItem() bool {
	switch k {
	case NodeFn, NodeEnum, NodeImpl, NodeAlias, NodeConst:
		return true
	default:
		return false
	}
}

// Node is the kind/span header shared by every syntax-tree node. Payload
// points into the builder's per-kind arena; kinds without data (for example
// the wildcard pattern) leave it zero.
type Node struct {
	Kind    NodeKind
	Span    source.Span
	Payload PayloadID
}
