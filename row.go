package vtcore

// Row is a contiguous array of cells plus a conservative occupancy upper
// bound (occ) and a prompt-start marker used by OSC 133 shell integration.
//
// occ need not be tight: it only promises that every column at or beyond
// occ is either a default-empty cell or was deliberately painted there by a
// BCE (background color erase) operation that raised occ to cover it. This
// lets Reset skip repainting far more often than a naive full-row clear.
type Row struct {
	cells       []Cell
	occ         int
	promptStart bool
}

// NewRow returns a row of cols default cells with occ=0.
func NewRow(cols int) *Row {
	cells := make([]Cell, cols)
	for i := range cells {
		cells[i] = NewCell()
	}
	return &Row{cells: cells}
}

// Len returns the row's column count.
func (r *Row) Len() int { return len(r.cells) }

// Occ returns the current occupancy upper bound.
func (r *Row) Occ() int { return r.occ }

// PromptStart reports whether OSC 133 marked this row as a prompt start.
func (r *Row) PromptStart() bool { return r.promptStart }

// SetPromptStart sets or clears the prompt-start marker.
func (r *Row) SetPromptStart(v bool) { r.promptStart = v }

// Index returns the cell at col by value. Panics if out of range, matching
// slice semantics — callers in this package always pre-clamp.
func (r *Row) Index(col int) Cell { return r.cells[col] }

// IndexMut returns a pointer to the cell at col, raising occ to col+1 even
// if the caller goes on to write an empty cell there (lazy upper bound:
// cheaper than inspecting the write).
func (r *Row) IndexMut(col int) *Cell {
	if col+1 > r.occ {
		r.occ = col + 1
	}
	return &r.cells[col]
}

// peek returns a pointer to the cell at col without touching occ, for a
// caller that already knows its access is occ-neutral (e.g. reading).
func (r *Row) peek(col int) *Cell { return &r.cells[col] }

// Reset resizes the row to cols and clears cells from the template.
//
// If template's background differs from the row's current last cell
// background, occ is first forced to len(cells) so every affected cell is
// actually repainted (a prior BCE may have stained cells beyond the
// previous occ with a bg that this reset must now overwrite). Cells
// [0,min(occ,cols)) are then reset from template; occ is zeroed.
func (r *Row) Reset(cols int, template Cell) {
	if len(r.cells) > 0 {
		last := r.cells[len(r.cells)-1]
		if last.Bg != template.Bg {
			r.occ = len(r.cells)
		}
	}

	if cols != len(r.cells) {
		newCells := make([]Cell, cols)
		n := len(r.cells)
		if n > cols {
			n = cols
		}
		copy(newCells, r.cells[:n])
		r.cells = newCells
	}

	limit := r.occ
	if limit > cols {
		limit = cols
	}
	for i := 0; i < limit; i++ {
		r.cells[i].Reset(&template)
	}
	r.occ = 0
	r.promptStart = false
}

// ClearRange resets cells in [start,end) from template. If template is
// non-empty (BCE), occ is raised to end so a later Reset knows to repaint
// that range; otherwise occ is left as a (still valid) upper bound.
func (r *Row) ClearRange(start, end int, template Cell) {
	if start < 0 {
		start = 0
	}
	if end > len(r.cells) {
		end = len(r.cells)
	}
	for i := start; i < end; i++ {
		r.cells[i].Reset(&template)
	}
	if !template.IsEmpty() && end > r.occ {
		r.occ = end
	}
}

// Truncate resets cells [col,len) from template. If template is non-empty,
// occ is set to len(cells); otherwise occ is clamped to at most col.
func (r *Row) Truncate(col int, template Cell) {
	r.ClearRange(col, len(r.cells), template)
	if template.IsEmpty() && r.occ > col {
		r.occ = col
	}
}

// ContentLen returns the rightmost column whose cell is non-blank (char is
// neither space nor NUL) or carries a wide/spacer flag, plus one; 0 if the
// row has no such cell.
func (r *Row) ContentLen() int {
	for i := len(r.cells) - 1; i >= 0; i-- {
		c := &r.cells[i]
		if (c.Char != ' ' && c.Char != 0) || c.Flags.HasAny(CellFlagWideChar|CellFlagWideCharSpacer|CellFlagLeadingWideCharSpacer) {
			return i + 1
		}
	}
	return 0
}

// SplitOff removes and returns the cells from at to the end of the row,
// shrinking the row in place to [0,at). occ is clamped to the shrunk
// length.
func (r *Row) SplitOff(at int) []Cell {
	if at >= len(r.cells) {
		return nil
	}
	tail := append([]Cell(nil), r.cells[at:]...)
	r.cells = r.cells[:at]
	if r.occ > at {
		r.occ = at
	}
	return tail
}

// Append adds cells to the end of the row. occ is raised only for the
// trailing run of non-blank appended cells, matching SplitOff/Reflow's use
// of Append to rebuild rows cell-by-cell.
func (r *Row) Append(cells ...Cell) {
	base := len(r.cells)
	r.cells = append(r.cells, cells...)
	for i, c := range cells {
		if !c.IsEmpty() && base+i+1 > r.occ {
			r.occ = base + i + 1
		}
	}
}

// Cells returns the row's backing slice directly (no copy). Callers must
// not retain it across a Reset/SplitOff that may reallocate.
func (r *Row) Cells() []Cell { return r.cells }

// CloneCells returns an independent copy of the row's cells, suitable for
// handing to scrollback storage.
func (r *Row) CloneCells() []Cell { return append([]Cell(nil), r.cells...) }

// Equal compares two rows by cell contents only; occ is not part of row
// identity.
func (r *Row) Equal(o *Row) bool {
	if len(r.cells) != len(o.cells) {
		return false
	}
	for i := range r.cells {
		a, b := r.cells[i], o.cells[i]
		if a.Char != b.Char || a.Fg != b.Fg || a.Bg != b.Bg || a.Flags != b.Flags {
			return false
		}
		ea, eb := a.Extra, b.Extra
		if ea.isEmpty() && eb.isEmpty() {
			continue
		}
		if ea.isEmpty() != eb.isEmpty() || string(ea.Zerowidth) != string(eb.Zerowidth) ||
			(ea.UnderlineColor == nil) != (eb.UnderlineColor == nil) ||
			(ea.UnderlineColor != nil && *ea.UnderlineColor != *eb.UnderlineColor) ||
			(ea.Hyperlink == nil) != (eb.Hyperlink == nil) ||
			(ea.Hyperlink != nil && *ea.Hyperlink != *eb.Hyperlink) {
			return false
		}
	}
	return true
}

// HasWrapline reports whether the last cell of the row carries Wrapline,
// meaning the next row continues this logical line (soft-wrap).
func (r *Row) HasWrapline() bool {
	if len(r.cells) == 0 {
		return false
	}
	return r.cells[len(r.cells)-1].Flags&CellFlagWrapline != 0
}
