package vtcore

// RGB8 is a resolved 24-bit color with no alpha, the output type of palette
// resolution.
type RGB8 struct {
	R, G, B uint8
}

// cubeChannel maps a 0..5 cube coordinate to its 8-bit channel value, the
// exact xterm 6x6x6 ramp (not the teacher's linear r*51 approximation):
// oriterm_core/src/color/palette.rs pins these down as a testable
// invariant (spec §3/§8), so this module follows oriterm here instead of
// the teacher.
var cubeChannel = [6]uint8{0, 95, 135, 175, 215, 255}

// ansi16 holds the 16 standard ANSI colors in index order (0 Black .. 15
// BrightWhite), matching the teacher's DefaultPalette entries 0-15.
var ansi16 = [16]RGB8{
	{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
	{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
	{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
	{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
}

// Palette resolves Color values to RGB8 through a 256-entry indexed table
// (16 ANSI + 216 cube + 24 grayscale) plus the named semantic slots. It
// holds both the live (possibly OSC-4/104-customized) table and the
// factory defaults needed to reset a single index (OSC 104).
type Palette struct {
	indexed  [256]RGB8
	defaults [256]RGB8

	foreground RGB8
	background RGB8
	cursor     RGB8
}

// NewPalette returns a palette initialized to xterm factory defaults.
func NewPalette() *Palette {
	p := &Palette{
		foreground: RGB8{229, 229, 229},
		background: RGB8{0, 0, 0},
		cursor:     RGB8{229, 229, 229},
	}

	for i := 0; i < 16; i++ {
		p.indexed[i] = ansi16[i]
	}

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p.indexed[i] = RGB8{cubeChannel[r], cubeChannel[g], cubeChannel[b]}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p.indexed[232+j] = RGB8{gray, gray, gray}
	}

	p.defaults = p.indexed
	return p
}

// SetIndexed customizes palette index i (OSC 4).
func (p *Palette) SetIndexed(i uint8, c RGB8) { p.indexed[i] = c }

// Indexed returns the live color stored at index i.
func (p *Palette) Indexed(i uint8) RGB8 { return p.indexed[i] }

// ResetIndexed restores index i to its factory default (OSC 104).
func (p *Palette) ResetIndexed(i uint8) { p.indexed[i] = p.defaults[i] }

// SetForeground/SetBackground/SetCursor customize the OSC 10/11/12 default
// colors.
func (p *Palette) SetForeground(c RGB8) { p.foreground = c }
func (p *Palette) SetBackground(c RGB8) { p.background = c }
func (p *Palette) SetCursor(c RGB8)     { p.cursor = c }

func (p *Palette) Foreground() RGB8 { return p.foreground }
func (p *Palette) Background() RGB8 { return p.background }
func (p *Palette) Cursor() RGB8     { return p.cursor }

// dimmed scales an RGB8 toward black by 0.66, matching the teacher's dim
// color derivation.
func dimmed(c RGB8) RGB8 {
	return RGB8{
		R: uint8(float64(c.R) * 0.66),
		G: uint8(float64(c.G) * 0.66),
		B: uint8(float64(c.B) * 0.66),
	}
}

// Resolve converts a Color to RGB8 using this palette.
func (p *Palette) Resolve(c Color) RGB8 {
	switch c.Kind {
	case ColorKindIndexed:
		return p.indexed[c.Index]
	case ColorKindRGB:
		return RGB8{c.R, c.G, c.B}
	default:
		return p.resolveNamed(c.Named)
	}
}

func (p *Palette) resolveNamed(slot NamedColorSlot) RGB8 {
	switch slot {
	case NamedForeground:
		return p.foreground
	case NamedBackground:
		return p.background
	case NamedCursor:
		return p.cursor
	case NamedBrightForeground:
		return p.indexed[15]
	case NamedDimForeground:
		return dimmed(p.foreground)
	case NamedBlack, NamedRed, NamedGreen, NamedYellow, NamedBlue, NamedMagenta, NamedCyan, NamedWhite,
		NamedBrightBlack, NamedBrightRed, NamedBrightGreen, NamedBrightYellow,
		NamedBrightBlue, NamedBrightMagenta, NamedBrightCyan, NamedBrightWhite:
		return p.indexed[int(slot)-int(NamedBlack)]
	case NamedDimBlack, NamedDimRed, NamedDimGreen, NamedDimYellow, NamedDimBlue, NamedDimMagenta, NamedDimCyan, NamedDimWhite:
		base := int(slot) - int(NamedDimBlack)
		return dimmed(p.indexed[base])
	default:
		return p.foreground
	}
}
