package ast

import (
	"rill/internal/source"
)

// RegionMarkerKind classifies the lifetime marker written on a reference
// type: nothing (`&T`), the receiver region (`&self.T`), or a named region
// (`&r.T`).
type RegionMarkerKind uint8

const (
	RegionMarkerElided RegionMarkerKind = iota
	RegionMarkerSelf
	RegionMarkerNamed
)

// RegionData is the payload of a NodeRegion marker. Name is set only for
// RegionMarkerNamed.
type RegionData struct {
	Kind RegionMarkerKind
	Name source.StringID
}

// TypeRefData is a reference type `&T` with its region marker node.
type TypeRefData struct {
	Region NodeID // NodeRegion marker, always present (elided markers included)
	Elem   NodeID
}

// TypePathData is a (possibly generic) named type.
type TypePathData struct {
	Name source.StringID
	Args []NodeID
}

type TypeFnData struct {
	Params []NodeID
	Ret    NodeID // optional
}

type TypeTupleData struct {
	Elems []NodeID
}
