package bundle

import (
	"path/filepath"
	"testing"

	"rill/internal/ast"
	"rill/internal/defs"
	"rill/internal/source"
)

// buildSample assembles `fn f(a: &T) { let x = a; }` plus its defs.
func buildSample() (*ast.Builder, ast.NodeID, defs.Map) {
	b := ast.NewBuilder(0)
	sp := func(n uint32) source.Span { return source.Span{Start: n, End: n + 1} }

	marker := b.NewRegion(sp(0), ast.RegionMarkerElided, 0)
	elem := b.NewTypePath(sp(1), b.Intern("T"), nil)
	typ := b.NewTypeRef(sp(2), marker, elem)

	pat := b.NewPatIdent(sp(3), b.Intern("x"))
	init := b.NewIdent(sp(4), b.Intern("a"))
	let := b.NewLet(sp(5), pat, ast.NoNodeID, init)
	body := b.NewBlock(sp(6), []ast.NodeID{let})
	fn := b.NewFn(sp(7), b.Intern("f"),
		[]ast.FnParam{{Name: b.Intern("a"), Type: typ, Span: sp(2)}},
		ast.NoNodeID, body)
	unit := b.NewUnit(sp(8), []ast.NodeID{fn})

	d := defs.Map{
		pat:  {Kind: defs.DefLocal, Target: pat},
		init: {Kind: defs.DefLocal, Target: pat},
	}
	return b, unit, d
}

func TestBundleRoundtrip(t *testing.T) {
	b, unit, d := buildSample()
	files := []string{"sample.rl"}

	path := filepath.Join(t.TempDir(), "sample.unit")
	if err := Write(path, FromBuilder(b, unit, d, files)); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(p.Files) != 1 || p.Files[0] != "sample.rl" {
		t.Errorf("files lost: %v", p.Files)
	}

	got, gotUnit, gotDefs := p.Restore()
	if gotUnit != unit {
		t.Errorf("unit root changed: #%d vs #%d", gotUnit, unit)
	}
	if got.Nodes.Len() != b.Nodes.Len() {
		t.Errorf("node count changed: %d vs %d", got.Nodes.Len(), b.Nodes.Len())
	}

	unitData, ok := got.Unit(gotUnit)
	if !ok || len(unitData.Items) != 1 {
		t.Fatalf("unit items lost: %v", unitData)
	}
	fn, ok := got.Fn(unitData.Items[0])
	if !ok {
		t.Fatal("fn payload lost")
	}
	if got.Name(fn.Name) != "f" {
		t.Errorf("interned name lost: %q", got.Name(fn.Name))
	}
	if len(gotDefs) != len(d) {
		t.Errorf("defs lost: %v", gotDefs)
	}
	for id, def := range d {
		if gotDefs[id] != def {
			t.Errorf("def for #%d changed: %v vs %v", id, gotDefs[id], def)
		}
	}
}

func TestReadRejectsSchemaMismatch(t *testing.T) {
	b, unit, d := buildSample()
	p := FromBuilder(b, unit, d, nil)
	p.Schema = Schema + 1

	path := filepath.Join(t.TempDir(), "stale.unit")
	if err := Write(path, p); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("expected a schema mismatch error")
	}
}

func TestRestoreEmptyDefs(t *testing.T) {
	b, unit, _ := buildSample()
	p := FromBuilder(b, unit, nil, nil)
	_, _, d := p.Restore()
	if d == nil {
		t.Fatal("restore must hand back a usable map")
	}
}
