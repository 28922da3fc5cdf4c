package source

import "testing"

func TestInternDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("point")
	b := in.Intern("point")
	if a != b {
		t.Errorf("same spelling must share one ID: %d vs %d", a, b)
	}
	if c := in.Intern("other"); c == a {
		t.Error("distinct spellings must not collide")
	}
}

func TestInternNormalizesNFC(t *testing.T) {
	in := NewInterner()
	composed := in.Intern("café")
	decomposed := in.Intern("café")
	if composed != decomposed {
		t.Errorf("NFC-equal spellings must share one ID: %d vs %d", composed, decomposed)
	}
}

func TestInternEmptyIsZero(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Errorf("empty string must be ID 0, got %d", id)
	}
}

func TestLookupUnknown(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(StringID(42)); ok {
		t.Error("unknown ID must not resolve")
	}
}

func TestInternerRoundtrip(t *testing.T) {
	in := NewInterner()
	want := []string{"alpha", "beta", "gamma"}
	ids := make([]StringID, len(want))
	for i, s := range want {
		ids[i] = in.Intern(s)
	}

	restored := InternerFromStrings(in.Strings())
	if restored.Len() != in.Len() {
		t.Fatalf("length changed: %d vs %d", restored.Len(), in.Len())
	}
	for i, s := range want {
		if got := restored.MustLookup(ids[i]); got != s {
			t.Errorf("ID %d resolves to %q, want %q", ids[i], got, s)
		}
	}
}
