// Package bundle defines the serialized hand-off between the parser/name
// resolution front end and the region pass: a msgpack snapshot of one unit's
// arena AST, interned strings, and definition map.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"rill/internal/ast"
	"rill/internal/defs"
	"rill/internal/source"
)

// Schema is bumped whenever the payload layout changes.
const Schema uint16 = 1

// Payload is the wire form of one compilation unit. Slices mirror the
// builder's arenas in allocation order.
type Payload struct {
	Schema  uint16
	Unit    ast.NodeID
	Strings []string

	// Files lists source paths in FileID order, so a consumer can rebuild a
	// FileSet and resolve spans back to lines and columns.
	Files []string

	Nodes []ast.Node

	Units      []ast.UnitData
	Fns        []ast.FnData
	Enums      []ast.EnumData
	Impls      []ast.ImplData
	Aliases    []ast.AliasData
	Consts     []ast.ConstData
	Blocks     []ast.BlockData
	Lets       []ast.LetData
	Idents     []ast.IdentData
	Lits       []ast.LitData
	Unaries    []ast.UnaryData
	Binaries   []ast.BinaryData
	Calls      []ast.CallData
	Ifs        []ast.IfData
	Matches    []ast.MatchData
	Arms       []ast.ArmData
	Closures   []ast.ClosureData
	PatIdents  []ast.PatIdentData
	PatCtors   []ast.PatCtorData
	RefTypes   []ast.TypeRefData
	PathTypes  []ast.TypePathData
	FnTypes    []ast.TypeFnData
	TupleTypes []ast.TypeTupleData
	Regions    []ast.RegionData

	Defs map[ast.NodeID]defs.Def
}

// FromBuilder captures a builder, its unit root and the definition map into
// a payload. The payload aliases the builder's storage; it is meant to be
// written out immediately.
func FromBuilder(b *ast.Builder, unit ast.NodeID, d defs.Map, files []string) *Payload {
	return &Payload{
		Schema:  Schema,
		Unit:    unit,
		Strings: b.Strings.Strings(),
		Files:   files,

		Nodes: b.Nodes.Slice(),

		Units:      b.Units.Slice(),
		Fns:        b.Fns.Slice(),
		Enums:      b.Enums.Slice(),
		Impls:      b.Impls.Slice(),
		Aliases:    b.Aliases.Slice(),
		Consts:     b.Consts.Slice(),
		Blocks:     b.Blocks.Slice(),
		Lets:       b.Lets.Slice(),
		Idents:     b.Idents.Slice(),
		Lits:       b.Lits.Slice(),
		Unaries:    b.Unaries.Slice(),
		Binaries:   b.Binaries.Slice(),
		Calls:      b.Calls.Slice(),
		Ifs:        b.Ifs.Slice(),
		Matches:    b.Matches.Slice(),
		Arms:       b.Arms.Slice(),
		Closures:   b.Closures.Slice(),
		PatIdents:  b.PatIdents.Slice(),
		PatCtors:   b.PatCtors.Slice(),
		RefTypes:   b.RefTypes.Slice(),
		PathTypes:  b.PathTypes.Slice(),
		FnTypes:    b.FnTypes.Slice(),
		TupleTypes: b.TupleTypes.Slice(),
		Regions:    b.Regions.Slice(),

		Defs: d,
	}
}

// Restore rebuilds the builder, unit root and definition map from a decoded
// payload.
func (p *Payload) Restore() (*ast.Builder, ast.NodeID, defs.Map) {
	b := &ast.Builder{
		Strings: source.InternerFromStrings(p.Strings),

		Nodes: ast.Restore(p.Nodes),

		Units:      ast.Restore(p.Units),
		Fns:        ast.Restore(p.Fns),
		Enums:      ast.Restore(p.Enums),
		Impls:      ast.Restore(p.Impls),
		Aliases:    ast.Restore(p.Aliases),
		Consts:     ast.Restore(p.Consts),
		Blocks:     ast.Restore(p.Blocks),
		Lets:       ast.Restore(p.Lets),
		Idents:     ast.Restore(p.Idents),
		Lits:       ast.Restore(p.Lits),
		Unaries:    ast.Restore(p.Unaries),
		Binaries:   ast.Restore(p.Binaries),
		Calls:      ast.Restore(p.Calls),
		Ifs:        ast.Restore(p.Ifs),
		Matches:    ast.Restore(p.Matches),
		Arms:       ast.Restore(p.Arms),
		Closures:   ast.Restore(p.Closures),
		PatIdents:  ast.Restore(p.PatIdents),
		PatCtors:   ast.Restore(p.PatCtors),
		RefTypes:   ast.Restore(p.RefTypes),
		PathTypes:  ast.Restore(p.PathTypes),
		FnTypes:    ast.Restore(p.FnTypes),
		TupleTypes: ast.Restore(p.TupleTypes),
		Regions:    ast.Restore(p.Regions),
	}
	d := p.Defs
	if d == nil {
		d = defs.Map{}
	}
	return b, p.Unit, d
}

// Write serializes the payload atomically (temp file + rename).
func Write(path string, p *Payload) error {
	if p == nil {
		return fmt.Errorf("bundle: nil payload")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) //nolint:errcheck // best-effort cleanup after rename

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(p); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Read deserializes a payload, rejecting mismatched schema versions.
func Read(path string) (*Payload, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var p Payload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("bundle: decode %s: %w", path, err)
	}
	if p.Schema != Schema {
		return nil, fmt.Errorf("bundle: %s has schema %d, want %d", path, p.Schema, Schema)
	}
	return &p, nil
}
