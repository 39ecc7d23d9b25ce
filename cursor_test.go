package vtcore

import "testing"

func TestNewCursorDefaults(t *testing.T) {
	c := NewCursor()
	if c.Line != 0 || c.Col != 0 {
		t.Errorf("expected origin, got (%d,%d)", c.Line, c.Col)
	}
	if !c.Template.IsEmpty() {
		t.Error("expected a blank default template")
	}
}

func TestCursorSaveRestoreRoundTrip(t *testing.T) {
	c := NewCursor()
	c.Line, c.Col = 4, 7
	c.Template.Fg = RGB(1, 2, 3)
	c.WrapPending = true

	saved := c.Save(true)

	c.Line, c.Col = 0, 0
	c.Template.Fg = DefaultFg
	c.WrapPending = false

	origin := c.Restore(saved)
	if !origin {
		t.Error("expected saved origin mode true")
	}
	if c.Line != 4 || c.Col != 7 {
		t.Errorf("expected cursor restored to (4,7), got (%d,%d)", c.Line, c.Col)
	}
	if c.Template.Fg != (RGB(1, 2, 3)) {
		t.Error("expected template restored")
	}
	if !c.WrapPending {
		t.Error("expected wrap-pending restored")
	}
}
