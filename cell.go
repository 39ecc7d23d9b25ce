package vtcore

// CellFlags is a bitmask of per-cell rendering attributes.
type CellFlags uint32

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagDim
	CellFlagItalic
	CellFlagUnderline
	CellFlagDoubleUnderline
	CellFlagUndercurl
	CellFlagDottedUnderline
	CellFlagDashedUnderline
	CellFlagBlink
	CellFlagInverse
	CellFlagHidden
	CellFlagStrikeout
	CellFlagWideChar
	CellFlagWideCharSpacer
	CellFlagWrapline
	CellFlagLeadingWideCharSpacer

	// CellFlagAnyUnderline is the combined mask of every underline variant.
	CellFlagAnyUnderline = CellFlagUnderline | CellFlagDoubleUnderline |
		CellFlagUndercurl | CellFlagDottedUnderline | CellFlagDashedUnderline
)

// HasAny reports whether any bit in mask is set.
func (f CellFlags) HasAny(mask CellFlags) bool { return f&mask != 0 }

// HasAll reports whether every bit in mask is set.
func (f CellFlags) HasAll(mask CellFlags) bool { return f&mask == mask }

// NamedColorSlot enumerates the closed set of semantic color slots. Typed
// uint8 (not int) so it doesn't blow Color past a handful of bytes.
type NamedColorSlot uint8

const (
	NamedForeground NamedColorSlot = iota
	NamedBackground
	NamedCursor
	NamedBlack
	NamedRed
	NamedGreen
	NamedYellow
	NamedBlue
	NamedMagenta
	NamedCyan
	NamedWhite
	NamedBrightBlack
	NamedBrightRed
	NamedBrightGreen
	NamedBrightYellow
	NamedBrightBlue
	NamedBrightMagenta
	NamedBrightCyan
	NamedBrightWhite
	NamedDimBlack
	NamedDimRed
	NamedDimGreen
	NamedDimYellow
	NamedDimBlue
	NamedDimMagenta
	NamedDimCyan
	NamedDimWhite
	NamedBrightForeground
	NamedDimForeground
)

// ColorKind discriminates the Color union.
type ColorKind uint8

const (
	ColorKindNamed ColorKind = iota
	ColorKindIndexed
	ColorKindRGB
)

// Color is a closed union over the three ways a cell can name a color:
// a semantic named slot, a 0..255 palette index, or direct 24-bit RGB.
// It is a plain value (no pointers, no interface), keeping Cell small and
// comparable with ==.
type Color struct {
	Kind    ColorKind
	Named   NamedColorSlot
	Index   uint8
	R, G, B uint8
}

// DefaultFg is the cell default foreground: the named Foreground slot.
var DefaultFg = Color{Kind: ColorKindNamed, Named: NamedForeground}

// DefaultBg is the cell default background: the named Background slot.
var DefaultBg = Color{Kind: ColorKindNamed, Named: NamedBackground}

// Indexed builds an indexed-palette color.
func Indexed(i uint8) Color { return Color{Kind: ColorKindIndexed, Index: i} }

// Named builds a named-slot color.
func Named(slot NamedColorSlot) Color { return Color{Kind: ColorKindNamed, Named: slot} }

// RGB builds a direct 24-bit color.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorKindRGB, R: r, G: g, B: b} }

// Hyperlink associates a cell with a clickable OSC 8 link.
type Hyperlink struct {
	ID  string
	URI string
}

// CellExtra is the rarely-populated sidecar for a cell: zero-width combining
// marks, a custom underline color, and/or a hyperlink. It is shared by value
// across cells via a pointer with copy-on-write semantics: Cell.Extra may
// point at the same *CellExtra as a neighboring cell's until one of them is
// mutated, at which point the mutator clones first.
type CellExtra struct {
	Zerowidth      []rune
	UnderlineColor *Color
	Hyperlink      *Hyperlink
}

func (e *CellExtra) isEmpty() bool {
	return e == nil || (len(e.Zerowidth) == 0 && e.UnderlineColor == nil && e.Hyperlink == nil)
}

// clone returns a deep copy, or nil if e is nil.
func (e *CellExtra) clone() *CellExtra {
	if e == nil {
		return nil
	}
	out := &CellExtra{Hyperlink: e.Hyperlink, UnderlineColor: e.UnderlineColor}
	if len(e.Zerowidth) > 0 {
		out.Zerowidth = append([]rune(nil), e.Zerowidth...)
	}
	return out
}

// Cell is a single grid position: a character, its colors, its attribute
// flags, and an optional extras sidecar. Kept small and copyable by value;
// on a 64-bit target it fills the 32-byte budget exactly (rune=4, two
// Color=6 each, flags=4, 4 bytes of padding, one pointer=8 -> 32 bytes).
type Cell struct {
	Char  rune
	Fg    Color
	Bg    Color
	Flags CellFlags
	Extra *CellExtra
}

// NewCell returns the default cell: a space with default colors, no flags,
// no extras.
func NewCell() Cell {
	return Cell{Char: ' ', Fg: DefaultFg, Bg: DefaultBg}
}

// IsEmpty reports whether the cell is indistinguishable from a fresh
// NewCell(): default character, default colors, no flags, no extras.
func (c *Cell) IsEmpty() bool {
	return c.Char == ' ' && c.Fg == DefaultFg && c.Bg == DefaultBg &&
		c.Flags == 0 && c.Extra.isEmpty()
}

// Width reports the column width of the cell: 2 if it carries WideChar, 0 if
// it carries any spacer flag, else 1.
func (c *Cell) Width() int {
	switch {
	case c.Flags.HasAny(CellFlagWideCharSpacer | CellFlagLeadingWideCharSpacer):
		return 0
	case c.Flags&CellFlagWideChar != 0:
		return 2
	default:
		return 1
	}
}

// Reset blanks the cell: a space with template's colors, no flags, and no
// extras (a nil template gives NewCell()). template is typically the
// cursor's current SGR template, giving BCE (background color erase)
// semantics for free.
func (c *Cell) Reset(template *Cell) {
	if template != nil {
		c.Char = ' '
		c.Fg = template.Fg
		c.Bg = template.Bg
		c.Flags = 0
		c.Extra = nil
		return
	}
	*c = NewCell()
}

// extraForWrite returns a private, mutable *CellExtra for this cell. Since
// Cell is copied by value (two rows, or a row and its BCE template, may
// share one *CellExtra after an assignment), every mutation clones first:
// copy-on-write without a refcount.
func (c *Cell) extraForWrite() *CellExtra {
	if c.Extra == nil {
		c.Extra = &CellExtra{}
		return c.Extra
	}
	c.Extra = c.Extra.clone()
	return c.Extra
}

// pushZerowidth appends r to the cell's combining-mark sequence.
func (c *Cell) pushZerowidth(r rune) {
	e := c.extraForWrite()
	e.Zerowidth = append(e.Zerowidth, r)
}

// SetHyperlink attaches (or, with nil, detaches) a hyperlink on the cell.
func (c *Cell) SetHyperlink(h *Hyperlink) {
	if h == nil {
		if c.Extra != nil {
			if c.Extra.isEmpty() {
				return
			}
			clone := c.Extra.clone()
			clone.Hyperlink = nil
			if clone.isEmpty() {
				c.Extra = nil
			} else {
				c.Extra = clone
			}
		}
		return
	}
	e := c.extraForWrite()
	e.Hyperlink = h
}
