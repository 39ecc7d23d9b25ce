package vtcore

import "testing"

func TestSelectionSnapshotSingleLine(t *testing.T) {
	g := NewGrid(3, 10, 10)
	for i, r := range "hello" {
		g.Row(0).IndexMut(i).Char = r
	}
	got := g.SelectionSnapshot(SelectionPoint{Row: 0, Col: 0}, SelectionPoint{Row: 0, Col: 4})
	if got != "hello" {
		t.Errorf("expected \"hello\", got %q", got)
	}
}

func TestSelectionSnapshotJoinsSoftWrappedLines(t *testing.T) {
	g := NewGrid(3, 5, 10)
	for i, r := range "hello" {
		g.Row(0).IndexMut(i).Char = r
	}
	g.Row(0).IndexMut(4).Flags |= CellFlagWrapline
	for i, r := range "world" {
		g.Row(1).IndexMut(i).Char = r
	}
	got := g.SelectionSnapshot(SelectionPoint{Row: 0, Col: 0}, SelectionPoint{Row: 1, Col: 4})
	if got != "helloworld" {
		t.Errorf("expected soft-wrapped lines joined without a newline, got %q", got)
	}
}

func TestSelectionSnapshotHardNewlineWithoutWrapline(t *testing.T) {
	g := NewGrid(3, 5, 10)
	for i, r := range "ab" {
		g.Row(0).IndexMut(i).Char = r
	}
	for i, r := range "cd" {
		g.Row(1).IndexMut(i).Char = r
	}
	got := g.SelectionSnapshot(SelectionPoint{Row: 0, Col: 0}, SelectionPoint{Row: 1, Col: 1})
	if got != "ab   \ncd" {
		t.Errorf("expected a hard newline between unwrapped rows, got %q", got)
	}
}

func TestSelectionSnapshotSkipsWideSpacer(t *testing.T) {
	g := NewGrid(3, 10, 10)
	g.PutChar('世', 2)
	g.PutChar('!', 1)
	got := g.SelectionSnapshot(SelectionPoint{Row: 0, Col: 0}, SelectionPoint{Row: 0, Col: 2})
	if got != "世!" {
		t.Errorf("expected spacer cell skipped, got %q", got)
	}
}
