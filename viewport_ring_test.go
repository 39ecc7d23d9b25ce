package vtcore

import "testing"

func TestViewportRingRotateUpIsO1Eviction(t *testing.T) {
	v := NewViewportRing(3, 4)
	top := v.Row(0)
	top.IndexMut(0).Char = 'A'

	evicted := v.RotateUp()
	if evicted != top {
		t.Error("RotateUp should return the row that left the top")
	}
	fresh := NewRow(4)
	v.Replace(v.Len()-1, fresh)
	if v.Row(v.Len()-1) != fresh {
		t.Error("fresh row should now sit at the new logical bottom")
	}
}

func TestViewportRingRotateDownInverseOfUp(t *testing.T) {
	v := NewViewportRing(3, 4)
	original := []*Row{v.Row(0), v.Row(1), v.Row(2)}

	v.RotateUp()
	v.RotateDown()

	for i, r := range original {
		if v.Row(i) != r {
			t.Errorf("expected row identity restored at %d", i)
		}
	}
}

func TestViewportRingRemoveInsertPreservesOrder(t *testing.T) {
	v := NewViewportRing(4, 2)
	tags := make([]*Row, 4)
	for i := range tags {
		tags[i] = v.Row(i)
	}

	removed := v.RemoveInsert(1, 3, 2)
	if removed != tags[1] {
		t.Error("expected row at removeAt to be returned")
	}
	if v.Row(0) != tags[0] || v.Row(1) != tags[2] || v.Row(2) != tags[3] {
		t.Error("remaining rows should keep relative order after removal")
	}
	if v.Row(3) == tags[0] || v.Row(3) == tags[2] || v.Row(3) == tags[3] {
		t.Error("expected a fresh row at insertAt")
	}
}

func TestViewportRingResizeGrowAndShrink(t *testing.T) {
	v := NewViewportRing(2, 3)
	grown := v.Resize(4, 3)
	if len(grown) != 0 {
		t.Errorf("growing should evict nothing, got %d", len(grown))
	}
	if v.Len() != 4 {
		t.Errorf("expected 4 rows after growth, got %d", v.Len())
	}

	evicted := v.Resize(1, 3)
	if len(evicted) != 3 {
		t.Errorf("expected 3 rows evicted shrinking to 1, got %d", len(evicted))
	}
	if v.Len() != 1 {
		t.Errorf("expected 1 row remaining, got %d", v.Len())
	}
}
