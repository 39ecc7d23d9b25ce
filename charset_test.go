package vtcore

import "testing"

func TestTranslateDECSpecialGraphics(t *testing.T) {
	if got := Translate(CharsetDECSpecialGraphics, 'q'); got != '─' {
		t.Errorf("expected box-drawing horizontal for 'q', got %q", got)
	}
	if got := Translate(CharsetASCII, 'q'); got != 'q' {
		t.Errorf("ASCII charset should leave 'q' untranslated, got %q", got)
	}
	if got := Translate(CharsetDECSpecialGraphics, '9'); got != '9' {
		t.Errorf("characters outside the map should pass through unchanged, got %q", got)
	}
}

func TestCharsetStateDesignateAndShift(t *testing.T) {
	cs := NewCharsetState()
	cs.Designate(G1, CharsetDECSpecialGraphics)
	cs.SetActive(G1)
	if cs.Current() != CharsetDECSpecialGraphics {
		t.Error("expected G1's charset after SO")
	}
}

func TestCharsetStateSingleShiftConsumesOnce(t *testing.T) {
	cs := NewCharsetState()
	cs.Designate(G2, CharsetDECSpecialGraphics)
	cs.SingleShift(G2)

	if cs.Current() != CharsetDECSpecialGraphics {
		t.Error("expected single-shifted charset on first read")
	}
	if cs.Current() != CharsetASCII {
		t.Error("single shift should only apply to the next char, then revert")
	}
}
