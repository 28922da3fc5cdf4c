package ast

import (
	"rill/internal/source"
)

// PatIdentData is a bare identifier pattern. Whether it binds a fresh local
// or names a payload-less enum variant is decided by the definition map, not
// by the tree shape.
type PatIdentData struct {
	Name source.StringID
}

// PatCtorData is a constructor pattern `Name(sub, ...)`.
type PatCtorData struct {
	Name source.StringID
	Args []NodeID
}
