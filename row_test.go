package vtcore

import "testing"

func TestRowIndexMutRaisesOcc(t *testing.T) {
	r := NewRow(10)
	if r.Occ() != 0 {
		t.Fatalf("expected fresh row occ 0, got %d", r.Occ())
	}
	r.IndexMut(3).Char = 'x'
	if r.Occ() != 4 {
		t.Errorf("expected occ 4 after write at col 3, got %d", r.Occ())
	}
}

func TestRowContentLen(t *testing.T) {
	r := NewRow(5)
	if r.ContentLen() != 0 {
		t.Errorf("expected 0 for blank row, got %d", r.ContentLen())
	}
	r.IndexMut(2).Char = 'a'
	if r.ContentLen() != 3 {
		t.Errorf("expected content len 3, got %d", r.ContentLen())
	}
}

func TestRowResetClampsToCols(t *testing.T) {
	r := NewRow(5)
	r.IndexMut(4).Char = 'z'
	r.Reset(3, NewCell())
	if r.Len() != 3 {
		t.Errorf("expected row shrunk to 3 cols, got %d", r.Len())
	}
	if r.Occ() != 0 {
		t.Errorf("expected occ 0 after reset, got %d", r.Occ())
	}
}

func TestRowSplitOffAndAppend(t *testing.T) {
	r := NewRow(6)
	for i := 0; i < 6; i++ {
		r.IndexMut(i).Char = rune('a' + i)
	}
	tail := r.SplitOff(4)
	if r.Len() != 4 {
		t.Errorf("expected remaining row len 4, got %d", r.Len())
	}
	if len(tail) != 2 || tail[0].Char != 'e' || tail[1].Char != 'f' {
		t.Errorf("unexpected split tail: %+v", tail)
	}
	r.Append(tail...)
	if r.Len() != 6 || r.Index(5).Char != 'f' {
		t.Error("append did not restore the row")
	}
}

func TestRowHasWrapline(t *testing.T) {
	r := NewRow(3)
	if r.HasWrapline() {
		t.Error("fresh row should not have wrapline")
	}
	r.IndexMut(2).Flags |= CellFlagWrapline
	if !r.HasWrapline() {
		t.Error("expected wrapline once last cell flagged")
	}
}

func TestRowEqualIgnoresOcc(t *testing.T) {
	a := NewRow(3)
	b := NewRow(3)
	a.IndexMut(0).Char = 'q'
	b.IndexMut(0).Char = 'q'
	b.Reset(3, NewCell())
	b.IndexMut(0).Char = 'q'
	if !a.Equal(b) {
		t.Error("rows with identical cell contents should be Equal regardless of occ")
	}
}
