package vtcore

// CharsetIndex selects one of the four designation slots G0-G3.
type CharsetIndex uint8

const (
	G0 CharsetIndex = iota
	G1
	G2
	G3
)

// Charset identifies a designated character set, grounded on the teacher's
// cursor.go Charset enum plus the DEC special graphics set required by
// ESC ( 0 / ESC ) 0.
type Charset uint8

const (
	CharsetASCII Charset = iota
	CharsetDECSpecialGraphics
	CharsetUK
)

// decSpecialGraphics maps ASCII 0x60-0x7e to the VT100 line-drawing glyph
// set (ESC ( 0). Entries outside this range are left untranslated.
var decSpecialGraphics = map[rune]rune{
	'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌', 'd': '␍', 'e': '␊',
	'f': '°', 'g': '±', 'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺', 'p': '⎻', 'q': '─',
	'r': '⎼', 's': '⎽', 't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π', '|': '≠', '}': '£', '~': '·',
}

// Translate maps r through set, returning r unchanged for sets with no
// substitution (ASCII, UK — the pound-sign substitution for UK is outside
// the scope this translator needs, since OSC/charset handling elsewhere
// never designates it without also wanting the 0x23 override, left as
// untranslated ASCII here).
func Translate(set Charset, r rune) rune {
	if set == CharsetDECSpecialGraphics {
		if mapped, ok := decSpecialGraphics[r]; ok {
			return mapped
		}
	}
	return r
}

// CharsetState tracks the four designation slots, the active GL slot, and a
// pending single-shift override (SS2/SS3), mirroring the teacher's
// cursor.go charset fields generalized to all four slots.
type CharsetState struct {
	slots       [4]Charset
	active      CharsetIndex
	singleShift CharsetIndex
	hasSS       bool
}

// NewCharsetState returns all four slots designated ASCII, GL on G0.
func NewCharsetState() CharsetState {
	return CharsetState{}
}

// Designate sets the charset for slot idx.
func (c *CharsetState) Designate(idx CharsetIndex, set Charset) { c.slots[idx] = set }

// SetActive switches the active GL slot (SI/SO — shift in/out).
func (c *CharsetState) SetActive(idx CharsetIndex) { c.active = idx }

// SingleShift arms a one-character override of the active slot (SS2/SS3).
func (c *CharsetState) SingleShift(idx CharsetIndex) {
	c.singleShift = idx
	c.hasSS = true
}

// Current returns the charset that the next printed character should be
// translated through, consuming any pending single shift.
func (c *CharsetState) Current() Charset {
	idx := c.active
	if c.hasSS {
		idx = c.singleShift
		c.hasSS = false
	}
	return c.slots[idx]
}
