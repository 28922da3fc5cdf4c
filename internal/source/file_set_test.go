package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.rl", []byte("fn main() {\n    let x = 1;\n}\n"))

	cases := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"first byte", 0, LineCol{Line: 1, Col: 1}},
		{"mid first line", 3, LineCol{Line: 1, Col: 4}},
		{"newline itself", 11, LineCol{Line: 1, Col: 12}},
		{"start of second line", 12, LineCol{Line: 2, Col: 1}},
		{"keyword on second line", 16, LineCol{Line: 2, Col: 5}},
		{"closing brace", 27, LineCol{Line: 3, Col: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
			if start != tc.want {
				t.Errorf("offset %d resolved to %d:%d, want %d:%d",
					tc.off, start.Line, start.Col, tc.want.Line, tc.want.Col)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.rl", []byte("alpha\nbeta\ngamma"))
	f := fs.Get(id)
	if f == nil {
		t.Fatal("file not found")
	}

	cases := []struct {
		line uint32
		want string
	}{
		{1, "alpha"},
		{2, "beta"},
		{3, "gamma"},
		{0, ""},
		{4, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.rl")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("fn main() {\r\n}\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	f := fs.Get(id)
	if string(f.Content) != "fn main() {\n}\n" {
		t.Errorf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("BOM flag not set")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("CRLF flag not set")
	}
}

func TestLookupByPath(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("dir/file.rl", nil)
	got, ok := fs.Lookup("dir/file.rl")
	if !ok || got != id {
		t.Errorf("Lookup = (%d, %v), want (%d, true)", got, ok, id)
	}
	if _, ok := fs.Lookup("absent.rl"); ok {
		t.Error("unknown path must not resolve")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file Cover must be a no-op, got %v", got)
	}
}
