package diagfmt

import (
	"strings"
	"testing"

	"rill/internal/diag"
	"rill/internal/source"
)

func TestPrettyPlain(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.rl", []byte("fn f(p: &self.T) {}\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.RegionSelfOutsideImpl,
		source.Span{File: id, Start: 9, End: 14},
		"the `self` region is not allowed here"))

	var out strings.Builder
	Pretty(&out, bag, fs, PrettyOpts{ShowPreview: true})
	got := out.String()

	if !strings.Contains(got, "main.rl:1:10: ERROR RG3101: the `self` region is not allowed here") {
		t.Errorf("missing header line:\n%s", got)
	}
	if !strings.Contains(got, "fn f(p: &self.T) {}") {
		t.Errorf("missing source preview:\n%s", got)
	}
	if !strings.Contains(got, "^~~~~") {
		t.Errorf("missing underline:\n%s", got)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.rl", []byte("let x: &r.T = y;\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.RegionUnknownName,
		source.Span{File: id, Start: 8, End: 9}, "unknown region `r`").
		WithNote(source.Span{File: id, Start: 0, End: 3}, "regions bind at the declaration"))

	var out strings.Builder
	Pretty(&out, bag, fs, PrettyOpts{ShowNotes: true})
	got := out.String()

	if !strings.Contains(got, "main.rl:1:9: ERROR RG3103: unknown region `r`") {
		t.Errorf("missing header line:\n%s", got)
	}
	if !strings.Contains(got, "main.rl:1:1: note: regions bind at the declaration") {
		t.Errorf("missing note:\n%s", got)
	}
}

func TestPrettyUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.RegionBug, source.Span{File: 7, Start: 0, End: 1}, "boom"))

	var out strings.Builder
	Pretty(&out, bag, fs, PrettyOpts{})
	if !strings.Contains(out.String(), "<unknown>:1:1:") {
		t.Errorf("unknown files must not panic:\n%s", out.String())
	}
}
