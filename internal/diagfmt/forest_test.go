package diagfmt

import (
	"strings"
	"testing"

	"rill/internal/ast"
	"rill/internal/defs"
	"rill/internal/diag"
	"rill/internal/region"
	"rill/internal/source"
)

func TestForestDump(t *testing.T) {
	b := ast.NewBuilder(0)
	sp := func(n uint32) source.Span { return source.Span{Start: n, End: n + 1} }

	inner := b.NewBlock(sp(0), nil)
	body := b.NewBlock(sp(1), []ast.NodeID{inner})
	fn := b.NewFn(sp(2), b.Intern("main"), nil, ast.NoNodeID, body)
	unit := b.NewUnit(sp(3), []ast.NodeID{fn})

	m, err := region.Resolve(b, unit, defs.Map{}, diag.NopReporter{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	var out strings.Builder
	Forest(&out, m, b, ForestOpts{})
	got := out.String()

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 3 scopes and a footer, got:\n%s", got)
	}
	if !strings.HasPrefix(lines[0], "fn main") {
		t.Errorf("root must be the item: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  block") {
		t.Errorf("body must be indented once: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "    block") {
		t.Errorf("nested block must be indented twice: %q", lines[2])
	}
	if !strings.Contains(lines[3], "3 scopes") {
		t.Errorf("footer must count scopes: %q", lines[3])
	}
}
