package vtcore

// ViewportRing is a fixed-capacity ring of *Row, indexed logically from 0
// (top of the viewport) to len-1 (bottom). Physical index = (zero +
// logical) mod len. Full-viewport scrolling rotates zero in O(1) instead
// of shifting every row.
type ViewportRing struct {
	rows []*Row
	zero int
}

// NewViewportRing allocates lines fresh rows of cols columns each.
func NewViewportRing(lines, cols int) *ViewportRing {
	rows := make([]*Row, lines)
	for i := range rows {
		rows[i] = NewRow(cols)
	}
	return &ViewportRing{rows: rows}
}

// Len returns the number of rows in the ring.
func (v *ViewportRing) Len() int { return len(v.rows) }

func (v *ViewportRing) physical(logical int) int {
	n := len(v.rows)
	p := v.zero + logical
	p %= n
	if p < 0 {
		p += n
	}
	return p
}

// Row returns the row at logical index.
func (v *ViewportRing) Row(logical int) *Row { return v.rows[v.physical(logical)] }

// Replace overwrites the row at logical index.
func (v *ViewportRing) Replace(logical int, row *Row) { v.rows[v.physical(logical)] = row }

// RotateUp advances zero by one (logical row 0 becomes what was logical row
// 1; a fresh top is exposed at the new logical bottom) and returns the row
// that left the top, now sitting at the new logical bottom, so the caller
// may harvest it into scrollback before Replace-ing it with a blank row.
func (v *ViewportRing) RotateUp() *Row {
	evicted := v.rows[v.zero]
	v.zero = (v.zero + 1) % len(v.rows)
	return evicted
}

// RotateDown is the inverse of RotateUp: zero moves back by one and the row
// that was at the bottom (now exposed at logical 0) is returned.
func (v *ViewportRing) RotateDown() *Row {
	v.zero = (v.zero - 1 + len(v.rows)) % len(v.rows)
	return v.rows[v.zero]
}

// RemoveInsert linearizes the ring, removes the row at logical index
// removeAt, inserts a fresh cols-wide row at logical index insertAt, and
// redistributes the result back into the ring. O(len(rows)); used only
// when the scroll region does not span the full viewport, where the O(1)
// rotate primitive cannot apply. Returns the removed row.
func (v *ViewportRing) RemoveInsert(removeAt, insertAt, cols int) *Row {
	linear := v.DrainLogical()
	removed := linear[removeAt]
	linear = append(linear[:removeAt], linear[removeAt+1:]...)

	fresh := NewRow(cols)
	if insertAt > len(linear) {
		insertAt = len(linear)
	}
	tail := append([]*Row(nil), linear[insertAt:]...)
	linear = append(linear[:insertAt], fresh)
	linear = append(linear, tail...)

	v.ReplaceFromVec(linear)
	return removed
}

// Resize changes the row count to newLines, keeping cols columns per row.
// When shrinking, the rows that no longer fit are popped from the top and
// returned (callers typically push them to scrollback, newest-evicted
// first). When growing, fresh blank rows are appended at the bottom. zero
// is reset to 0 either way.
func (v *ViewportRing) Resize(newLines, cols int) []*Row {
	linear := v.DrainLogical()

	var evicted []*Row
	if newLines < len(linear) {
		excess := len(linear) - newLines
		evicted = linear[:excess]
		linear = linear[excess:]
	} else {
		for len(linear) < newLines {
			linear = append(linear, NewRow(cols))
		}
	}

	v.ReplaceFromVec(linear)
	return evicted
}

// DrainLogical returns the ring's rows in logical (top-to-bottom) order
// without mutating the ring.
func (v *ViewportRing) DrainLogical() []*Row {
	out := make([]*Row, len(v.rows))
	for i := range out {
		out[i] = v.Row(i)
	}
	return out
}

// ReplaceFromVec replaces the ring's contents with rows (logical order) and
// resets zero to 0. len(rows) becomes the new ring length.
func (v *ViewportRing) ReplaceFromVec(rows []*Row) {
	v.rows = rows
	v.zero = 0
}
