package vtcore

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// runeWidthCondition mirrors xterm's treatment of ambiguous-width East Asian
// characters as narrow, the common terminal default (the teacher leaves
// go-runewidth at its package default, which already matches this).
var runeWidthCondition = runewidth.NewCondition()

// RuneWidth returns the terminal column width of r: 0 for combining marks
// and most zero-width runes, 1 for ordinary characters, 2 for wide
// East-Asian and most emoji.
func RuneWidth(r rune) int {
	return runeWidthCondition.RuneWidth(r)
}

// IsZeroWidth reports whether r should be attached to the preceding cell as
// a combining mark rather than occupying a column of its own.
func IsZeroWidth(r rune) bool {
	return RuneWidth(r) == 0
}

// GraphemeJoins reports whether next should attach to a cluster whose last
// rune was prev rather than start a new cell (ZWJ emoji sequences,
// skin-tone modifiers, regional indicator pairs, variation selectors).
// Built on uniseg's cluster boundary detector: prev and next form a single
// cluster exactly when the boundary it finds spans both runes.
func GraphemeJoins(prev, next rune) bool {
	prefix := ""
	if prev == 0x200D {
		// A ZWJ only continues a cluster after an emoji base; supply one so
		// the pair is judged as the tail of a ZWJ sequence.
		prefix = "\U0001F468"
	}
	seq := []byte(prefix + string(prev) + string(next))
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(seq, -1)
	return len(cluster) == len(seq)
}
