package vtcore

import (
	"testing"
	"unsafe"
)

func TestCellSizeBudget(t *testing.T) {
	if size := unsafe.Sizeof(Cell{}); size > 32 {
		t.Errorf("Cell must be <= 32 bytes on a 64-bit target, got %d", size)
	}
}

func TestNewCell(t *testing.T) {
	c := NewCell()
	if c.Char != ' ' {
		t.Errorf("expected space, got %q", c.Char)
	}
	if c.Fg != DefaultFg || c.Bg != DefaultBg {
		t.Error("expected default colors")
	}
	if c.Flags != 0 {
		t.Error("expected no flags")
	}
	if !c.IsEmpty() {
		t.Error("fresh cell should be empty")
	}
}

func TestCellWidth(t *testing.T) {
	c := NewCell()
	if c.Width() != 1 {
		t.Errorf("expected width 1, got %d", c.Width())
	}
	c.Flags |= CellFlagWideChar
	if c.Width() != 2 {
		t.Errorf("expected width 2, got %d", c.Width())
	}
	c.Flags = CellFlagWideCharSpacer
	if c.Width() != 0 {
		t.Errorf("expected width 0, got %d", c.Width())
	}
}

func TestCellResetWithTemplate(t *testing.T) {
	c := Cell{Char: 'x', Fg: RGB(1, 2, 3), Bg: RGB(4, 5, 6), Flags: CellFlagBold}
	c.pushZerowidth(0x0301)
	tmpl := Cell{Fg: DefaultFg, Bg: RGB(9, 9, 9)}
	c.Reset(&tmpl)
	if c.Char != ' ' || c.Fg != DefaultFg || c.Bg != tmpl.Bg || c.Flags != 0 {
		t.Error("reset did not apply template correctly")
	}
	if c.Extra != nil {
		t.Error("reset should clear extras")
	}
}

func TestCellExtraCOW(t *testing.T) {
	a := Cell{Char: 'a'}
	a.pushZerowidth(0x0301)
	b := a // shares Extra pointer
	b.pushZerowidth(0x0302)

	if len(a.Extra.Zerowidth) != 1 {
		t.Errorf("mutating b's extras must not affect a, got %v", a.Extra.Zerowidth)
	}
	if len(b.Extra.Zerowidth) != 2 {
		t.Errorf("expected 2 combining marks on b, got %v", b.Extra.Zerowidth)
	}
}

func TestCellSetHyperlink(t *testing.T) {
	c := NewCell()
	c.SetHyperlink(&Hyperlink{ID: "1", URI: "https://example.com"})
	if c.Extra == nil || c.Extra.Hyperlink == nil || c.Extra.Hyperlink.URI != "https://example.com" {
		t.Fatal("expected hyperlink to be attached")
	}
	c.SetHyperlink(nil)
	if c.Extra != nil {
		t.Error("expected extras cleared once hyperlink and everything else is empty")
	}
}

func TestColorConstructors(t *testing.T) {
	if Indexed(5).Kind != ColorKindIndexed || Indexed(5).Index != 5 {
		t.Error("Indexed constructor mismatch")
	}
	rgb := RGB(10, 20, 30)
	if rgb.Kind != ColorKindRGB || rgb.R != 10 || rgb.G != 20 || rgb.B != 30 {
		t.Error("RGB constructor mismatch")
	}
	if Named(NamedRed).Kind != ColorKindNamed || Named(NamedRed).Named != NamedRed {
		t.Error("Named constructor mismatch")
	}
}
