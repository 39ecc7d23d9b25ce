package vtcore

import "testing"

func TestDirtyTrackerMarkAndDrain(t *testing.T) {
	d := NewDirtyTracker(5)
	d.Mark(2)
	d.MarkRange(3, 5)

	if !d.IsDirty(2) || !d.IsDirty(3) || !d.IsDirty(4) {
		t.Error("expected rows 2,3,4 dirty")
	}
	if d.IsDirty(0) || d.IsDirty(1) {
		t.Error("expected rows 0,1 clean")
	}

	drained := d.Drain()
	if len(drained) != 3 {
		t.Errorf("expected 3 dirty rows drained, got %v", drained)
	}
	if d.AnyDirty() {
		t.Error("expected clean tracker after drain")
	}
}

func TestDirtyTrackerMarkAll(t *testing.T) {
	d := NewDirtyTracker(4)
	d.MarkAll()
	for i := 0; i < 4; i++ {
		if !d.IsDirty(i) {
			t.Errorf("expected row %d dirty under all-flag", i)
		}
	}
	drained := d.Drain()
	if len(drained) != 4 {
		t.Errorf("expected all 4 rows drained, got %v", drained)
	}
}

func TestDirtyTrackerResizeMarksAll(t *testing.T) {
	d := NewDirtyTracker(3)
	d.Drain()
	d.Resize(6)
	if !d.AnyDirty() {
		t.Error("expected resize to mark everything dirty")
	}
	if len(d.Drain()) != 6 {
		t.Error("expected 6 dirty rows after resize")
	}
}
