// Package defs carries the definition map produced by name resolution.
// Region resolution consults it for exactly one question: does an identifier
// pattern bind a fresh local, or does it name an enum-variant constructor?
package defs

import (
	"rill/internal/ast"
)

// DefKind classifies what a name resolved to.
type DefKind uint8

const (
	DefInvalid DefKind = iota
	DefLocal
	DefVariant
	DefFn
	DefType
	DefConst
)

func (k DefKind) String() string {
	switch k {
	case DefLocal:
		return "local"
	case DefVariant:
		return "variant"
	case DefFn:
		return "fn"
	case DefType:
		return "type"
	case DefConst:
		return "const"
	default:
		return "invalid"
	}
}

// Def is one resolved definition. Target points at the defining node when the
// resolver knows it (the enum item for a variant, the pattern for a local).
type Def struct {
	Kind   DefKind
	Target ast.NodeID
}

// Map associates use-site nodes with their resolved definitions. Nodes
// without an entry were not resolved to anything; region resolution treats
// unresolved identifier patterns as fresh locals.
type Map map[ast.NodeID]Def

// Variant reports whether id resolved to an enum-variant constructor.
func (m Map) Variant(id ast.NodeID) bool {
	return m[id].Kind == DefVariant
}
