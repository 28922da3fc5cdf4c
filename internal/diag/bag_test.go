package diag

import (
	"testing"

	"rill/internal/source"
)

func at(file source.FileID, start uint32) source.Span {
	return source.Span{File: file, Start: start, End: start + 1}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(RegionUnknownName, at(0, 0), "first")) {
		t.Error("first add must succeed")
	}
	if !b.Add(NewError(RegionUnknownName, at(0, 1), "second")) {
		t.Error("second add must succeed")
	}
	if b.Add(NewError(RegionUnknownName, at(0, 2), "third")) {
		t.Error("add past the limit must be dropped")
	}
	if b.Len() != 2 {
		t.Errorf("len = %d, want 2", b.Len())
	}
}

func TestHasErrors(t *testing.T) {
	b := NewBag(8)
	b.Add(New(SevWarning, RegionInfo, at(0, 0), "warn"))
	if b.HasErrors() {
		t.Error("warnings alone are not errors")
	}
	if !b.HasWarnings() {
		t.Error("warning not seen")
	}
	b.Add(NewError(RegionSelfOutsideImpl, at(0, 1), "err"))
	if !b.HasErrors() {
		t.Error("error not seen")
	}
}

func TestSortOrdersBySpan(t *testing.T) {
	b := NewBag(8)
	b.Add(NewError(RegionUnknownName, at(1, 5), "later file"))
	b.Add(NewError(RegionUnknownName, at(0, 9), "same file, later"))
	b.Add(NewError(RegionSelfOutsideImpl, at(0, 2), "same file, earlier"))
	b.Sort()

	items := b.Items()
	if items[0].Primary != at(0, 2) || items[1].Primary != at(0, 9) || items[2].Primary != at(1, 5) {
		t.Errorf("wrong order: %v", items)
	}
}

func TestSortSeverityBreaksTies(t *testing.T) {
	b := NewBag(8)
	b.Add(New(SevWarning, RegionInfo, at(0, 3), "warn"))
	b.Add(New(SevBug, RegionBug, at(0, 3), "bug"))
	b.Sort()
	if b.Items()[0].Severity != SevBug {
		t.Errorf("highest severity must sort first, got %v", b.Items()[0].Severity)
	}
}

func TestDedup(t *testing.T) {
	b := NewBag(8)
	b.Add(NewError(RegionUnknownName, at(0, 4), "once"))
	b.Add(NewError(RegionUnknownName, at(0, 4), "again"))
	b.Add(NewError(RegionUnknownName, at(0, 7), "elsewhere"))
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("len after dedup = %d, want 2", b.Len())
	}
}

func TestMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(RegionUnknownName, at(0, 0), "a"))
	other := NewBag(2)
	other.Add(NewError(RegionUnknownName, at(0, 1), "b"))
	other.Add(NewError(RegionUnknownName, at(0, 2), "c"))

	a.Merge(other)
	if a.Len() != 3 {
		t.Errorf("len after merge = %d, want 3", a.Len())
	}
}

func TestCodeString(t *testing.T) {
	if got := RegionSelfOutsideImpl.String(); got != "RG3101" {
		t.Errorf("code string = %q", got)
	}
}
