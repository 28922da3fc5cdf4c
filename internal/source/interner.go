package source

import (
	"golang.org/x/text/unicode/norm"
)

// StringID is an index into an Interner. Zero is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier spellings. Strings are normalized to NFC
// before interning, so visually identical identifiers share one ID.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern inserts s and returns its ID, reusing the ID of an equal (after NFC
// normalization) string if one was interned before.
func (i *Interner) Intern(s string) StringID {
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	if id, ok := i.index[s]; ok {
		return id
	}

	// Own copy, so the interner never aliases a caller's buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID)) // #nosec G115 -- interner sizes fit uint32
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns the given bytes as a string.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the string for id, or "" and false for an unknown ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for id and panics on an unknown ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has reports whether id was produced by this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, including the empty string.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Strings returns the interned strings in ID order. Read-only.
func (i *Interner) Strings() []string {
	return i.byID
}

// InternerFromStrings rebuilds an interner from a previously captured
// Strings() slice. Index 0 must be the empty string.
func InternerFromStrings(strs []string) *Interner {
	in := NewInterner()
	for idx, s := range strs {
		if idx == 0 {
			continue
		}
		in.Intern(s)
	}
	return in
}
