package vtcore

// ScrollRegion is a half-open [Top, Bottom) line range within [0, lines).
type ScrollRegion struct {
	Top, Bottom int
}

// Grid owns one screen's viewport, scrollback, cursor state, tab stops,
// scroll region, and dirty tracker. A Terminal owns two Grids (primary and
// alternate); every editing, cursor-motion, scroll, and erase primitive
// lives here, grounded on the teacher's buffer.go Buffer type but split
// across Row/ViewportRing/Scrollback/DirtyTracker per this module's layout.
type Grid struct {
	cols, lines int

	viewport   *ViewportRing
	scrollback *Scrollback

	cursor      Cursor
	savedCursor *SavedCursor

	tabStops []bool

	region ScrollRegion

	displayOffset int
	totalEvicted  int64

	dirty *DirtyTracker

	// afterZWJ tracks a zero-width-joiner continuation: the next width>=1
	// code point attaches to (zwjLine, zwjCol) instead of starting a new
	// cell.
	afterZWJ     bool
	zwjLine      int
	zwjCol       int
	zwjWideBase  bool
}

// NewGrid constructs a grid of lines x cols with the given scrollback
// capacity.
func NewGrid(lines, cols, maxScrollback int) *Grid {
	g := &Grid{
		cols:       cols,
		lines:      lines,
		viewport:   NewViewportRing(lines, cols),
		scrollback: NewScrollback(maxScrollback),
		cursor:     NewCursor(),
		tabStops:   make([]bool, cols),
		region:     ScrollRegion{Top: 0, Bottom: lines},
		dirty:      NewDirtyTracker(lines),
	}
	g.initTabStops()
	return g
}

func (g *Grid) initTabStops() {
	for i := range g.tabStops {
		g.tabStops[i] = i%8 == 0
	}
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Lines() int { return g.lines }
func (g *Grid) Cursor() Cursor { return g.cursor }
func (g *Grid) Region() ScrollRegion { return g.region }
func (g *Grid) DisplayOffset() int { return g.displayOffset }
func (g *Grid) TotalEvicted() int64 { return g.totalEvicted }
func (g *Grid) Dirty() *DirtyTracker { return g.dirty }
func (g *Grid) Scrollback() *Scrollback { return g.scrollback }

// Row returns the viewport row at logical line (0-based, top of viewport).
func (g *Grid) Row(line int) *Row { return g.viewport.Row(line) }

// clamp helpers

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- stable row index -------------------------------------------------

// StableIndex converts an absolute row (scrollback+viewport, scrollback
// negative-indexed as -(scrollback.Len())..-1, viewport 0..lines-1) into
// the monotonic index total_evicted + absolute_row.
func (g *Grid) StableIndex(absolute int) int64 {
	return g.totalEvicted + int64(absolute)
}

// FromStableIndex converts a stable index back to an absolute row, or
// (0, false) if it has since been evicted from scrollback.
func (g *Grid) FromStableIndex(stable int64) (absolute int, ok bool) {
	rel := stable - g.totalEvicted
	oldestLive := int64(-g.scrollback.Len())
	if rel < oldestLive {
		return 0, false
	}
	return int(rel), true
}

// --- scroll region ------------------------------------------------------

// SetScrollRegion applies DECSTBM. top/bottom are 1-based inclusive per the
// wire protocol; top=0 means "1". The region is ignored if it would span
// fewer than 2 lines.
func (g *Grid) SetScrollRegion(top, bottom int, originMode bool) {
	if top == 0 {
		top = 1
	}
	if bottom == 0 || bottom > g.lines {
		bottom = g.lines
	}
	t, b := top-1, bottom
	if b-t < 2 {
		return
	}
	g.region = ScrollRegion{Top: t, Bottom: b}
	if originMode {
		g.cursor.Line, g.cursor.Col = g.region.Top, 0
	} else {
		g.cursor.Line, g.cursor.Col = 0, 0
	}
	g.cursor.WrapPending = false
}

func (g *Grid) fullViewportRegion() bool {
	return g.region.Top == 0 && g.region.Bottom == g.lines
}

// --- scrolling -----------------------------------------------------------

// bceTemplate returns the empty cell new rows/erases should carry: the
// cursor template's background (and, per spec, default fg/flags).
func (g *Grid) bceTemplate() Cell {
	c := NewCell()
	c.Bg = g.cursor.Template.Bg
	return c
}

// ScrollUp scrolls the scroll region up by count lines (content moves up;
// new blank lines appear at the bottom). When the region spans the full
// viewport, evicted rows are pushed to scrollback.
func (g *Grid) ScrollUp(count int) {
	tmpl := g.bceTemplate()
	for i := 0; i < count; i++ {
		if g.fullViewportRegion() {
			evicted := g.viewport.RotateUp()
			if g.scrollback.Push(evicted) {
				g.totalEvicted++
			}
			if g.displayOffset > 0 {
				g.displayOffset--
			}
			fresh := NewRow(g.cols)
			fresh.Reset(g.cols, tmpl)
			g.viewport.Replace(g.lines-1, fresh)
		} else {
			removed := g.viewport.RemoveInsert(g.region.Top, g.region.Bottom-1, g.cols)
			if g.region.Top == 0 {
				if g.scrollback.Push(removed) {
					g.totalEvicted++
				}
				if g.displayOffset > 0 {
					g.displayOffset--
				}
			}
			fresh := g.viewport.Row(g.region.Bottom - 1)
			fresh.Reset(g.cols, tmpl)
			g.viewport.Replace(g.region.Bottom-1, fresh)
		}
	}
	g.dirty.MarkAll()
}

// ScrollDown scrolls the scroll region down by count lines (content moves
// down; new blank lines appear at the top). Never touches scrollback.
func (g *Grid) ScrollDown(count int) {
	tmpl := g.bceTemplate()
	for i := 0; i < count; i++ {
		if g.fullViewportRegion() {
			g.viewport.RotateDown()
			fresh := NewRow(g.cols)
			fresh.Reset(g.cols, tmpl)
			g.viewport.Replace(0, fresh)
		} else {
			g.viewport.RemoveInsert(g.region.Bottom-1, g.region.Top, g.cols)
			fresh := g.viewport.Row(g.region.Top)
			fresh.Reset(g.cols, tmpl)
			g.viewport.Replace(g.region.Top, fresh)
		}
	}
	g.dirty.MarkAll()
}

// --- insert/delete lines --------------------------------------------------

// InsertLines implements IL: only acts when the cursor is inside the scroll
// region.
func (g *Grid) InsertLines(count int) {
	if g.cursor.Line < g.region.Top || g.cursor.Line >= g.region.Bottom {
		return
	}
	saved := g.region
	g.region = ScrollRegion{Top: g.cursor.Line, Bottom: saved.Bottom}
	g.ScrollDown(count)
	g.region = saved
}

// DeleteLines implements DL: only acts when the cursor is inside the scroll
// region.
func (g *Grid) DeleteLines(count int) {
	if g.cursor.Line < g.region.Top || g.cursor.Line >= g.region.Bottom {
		return
	}
	saved := g.region
	g.region = ScrollRegion{Top: g.cursor.Line, Bottom: saved.Bottom}
	g.ScrollUp(count)
	g.region = saved
}

// --- cursor motion ---------------------------------------------------------

// regionBounds returns the vertical bounds the cursor is clamped to: the
// scroll region if currently inside it, else the full grid.
func (g *Grid) regionBounds() (top, bottom int) {
	if g.cursor.Line >= g.region.Top && g.cursor.Line < g.region.Bottom {
		return g.region.Top, g.region.Bottom
	}
	return 0, g.lines
}

func (g *Grid) clearWrapPending() { g.cursor.WrapPending = false }

// MoveUp implements CUU.
func (g *Grid) MoveUp(n int) {
	top, _ := g.regionBounds()
	g.cursor.Line = clampInt(g.cursor.Line-n, top, g.lines-1)
	g.clearWrapPending()
}

// MoveDown implements CUD.
func (g *Grid) MoveDown(n int) {
	_, bottom := g.regionBounds()
	g.cursor.Line = clampInt(g.cursor.Line+n, 0, bottom-1)
	g.clearWrapPending()
}

// MoveForward implements CUF.
func (g *Grid) MoveForward(n int) {
	g.cursor.Col = clampInt(g.cursor.Col+n, 0, g.cols-1)
	g.clearWrapPending()
}

// MoveBackward implements CUB.
func (g *Grid) MoveBackward(n int) {
	g.cursor.Col = clampInt(g.cursor.Col-n, 0, g.cols-1)
	g.clearWrapPending()
}

// MoveNextLine implements CNL (E): like CUD then column 0.
func (g *Grid) MoveNextLine(n int) {
	g.MoveDown(n)
	g.cursor.Col = 0
}

// MovePrevLine implements CPL (F): like CUU then column 0.
func (g *Grid) MovePrevLine(n int) {
	g.MoveUp(n)
	g.cursor.Col = 0
}

// MoveToColumn implements CHA/HPA.
func (g *Grid) MoveToColumn(col int) {
	g.cursor.Col = clampInt(col, 0, g.cols-1)
	g.clearWrapPending()
}

// MoveToLine implements VPA.
func (g *Grid) MoveToLine(line int, originMode bool) {
	top, bottom := 0, g.lines
	if originMode {
		top, bottom = g.region.Top, g.region.Bottom
	}
	g.cursor.Line = clampInt(line+top, top, bottom-1)
	g.clearWrapPending()
}

// MoveTo implements CUP/HVP.
func (g *Grid) MoveTo(line, col int, originMode bool) {
	top, bottom := 0, g.lines
	if originMode {
		top, bottom = g.region.Top, g.region.Bottom
	}
	g.cursor.Line = clampInt(line+top, top, bottom-1)
	g.cursor.Col = clampInt(col, 0, g.cols-1)
	g.clearWrapPending()
}

// CarriageReturn implements CR.
func (g *Grid) CarriageReturn() {
	g.cursor.Col = 0
	g.clearWrapPending()
}

// Backspace implements BS.
func (g *Grid) Backspace() {
	g.clearWrapPending()
	if g.cursor.Col > 0 {
		g.cursor.Col--
	}
}

// Linefeed implements LF/VT/FF: advances the cursor row, scrolling the
// region if already at its bottom.
func (g *Grid) Linefeed() {
	if g.cursor.Line == g.region.Bottom-1 {
		g.ScrollUp(1)
	} else if g.cursor.Line < g.lines-1 {
		g.cursor.Line++
	}
	g.clearWrapPending()
	g.clearAfterZWJ()
}

// NextLine implements NEL: linefeed + carriage return.
func (g *Grid) NextLine() {
	g.Linefeed()
	g.cursor.Col = 0
}

// ReverseIndex implements RI: moves the cursor up, scrolling the region
// down if already at its top.
func (g *Grid) ReverseIndex() {
	if g.cursor.Line == g.region.Top {
		g.ScrollDown(1)
	} else if g.cursor.Line > 0 {
		g.cursor.Line--
	}
	g.clearWrapPending()
}

// Index implements ESC D: identical to Linefeed without carriage return
// semantics beyond what Linefeed already does.
func (g *Grid) Index() { g.Linefeed() }

// --- tab stops -------------------------------------------------------------

// Tab implements HT: advances to the next set tab stop, else the last
// column.
func (g *Grid) Tab() {
	for col := g.cursor.Col + 1; col < g.cols; col++ {
		if g.tabStops[col] {
			g.cursor.Col = col
			g.clearWrapPending()
			return
		}
	}
	g.cursor.Col = g.cols - 1
	g.clearWrapPending()
}

// BackTab implements CBT: moves to the previous tab stop, else column 0.
func (g *Grid) BackTab() {
	for col := g.cursor.Col - 1; col > 0; col-- {
		if g.tabStops[col] {
			g.cursor.Col = col
			g.clearWrapPending()
			return
		}
	}
	g.cursor.Col = 0
	g.clearWrapPending()
}

// SetTabStop implements HTS: sets a tab stop at the current column.
func (g *Grid) SetTabStop() { g.tabStops[g.cursor.Col] = true }

// ClearTabStop implements TBC. all=true clears every stop (Ps=3), else
// only the current column (Ps=0).
func (g *Grid) ClearTabStop(all bool) {
	if all {
		for i := range g.tabStops {
			g.tabStops[i] = false
		}
		return
	}
	g.tabStops[g.cursor.Col] = false
}

// --- save/restore cursor -----------------------------------------------

// SaveCursor implements DECSC.
func (g *Grid) SaveCursor(originMode bool) {
	s := g.cursor.Save(originMode)
	g.savedCursor = &s
}

// RestoreCursor implements DECRC. If no cursor was ever saved, resets to
// origin (Open Question resolved in SPEC_FULL.md: reset-to-origin, not a
// no-op).
func (g *Grid) RestoreCursor() (originMode bool, hadSaved bool) {
	if g.savedCursor == nil {
		g.cursor.Line, g.cursor.Col = 0, 0
		g.cursor.WrapPending = false
		return false, false
	}
	om := g.cursor.Restore(*g.savedCursor)
	g.cursor.Line = clampInt(g.cursor.Line, 0, g.lines-1)
	g.cursor.Col = clampInt(g.cursor.Col, 0, g.cols-1)
	return om, true
}

// --- erase ----------------------------------------------------------------

// EraseBelow clears from the cursor to the end of the row, and every row
// below.
func (g *Grid) EraseBelow() {
	tmpl := g.cursor.Template
	g.Row(g.cursor.Line).ClearRange(g.cursor.Col, g.cols, tmpl)
	for l := g.cursor.Line + 1; l < g.lines; l++ {
		g.Row(l).Reset(g.cols, tmpl)
	}
	g.dirty.MarkRange(g.cursor.Line, g.lines)
}

// EraseAbove clears every row above the cursor, and columns [0, cursor.Col]
// on the cursor row.
func (g *Grid) EraseAbove() {
	tmpl := g.cursor.Template
	for l := 0; l < g.cursor.Line; l++ {
		g.Row(l).Reset(g.cols, tmpl)
	}
	g.Row(g.cursor.Line).ClearRange(0, g.cursor.Col+1, tmpl)
	g.dirty.MarkRange(0, g.cursor.Line+1)
}

// EraseAll clears the entire viewport.
func (g *Grid) EraseAll() {
	tmpl := g.cursor.Template
	for l := 0; l < g.lines; l++ {
		g.Row(l).Reset(g.cols, tmpl)
	}
	g.dirty.MarkAll()
}

// EraseSaved implements ED 3: clears scrollback and resets display_offset.
func (g *Grid) EraseSaved() {
	g.scrollback.Clear()
	g.displayOffset = 0
	g.dirty.MarkAll()
}

// EraseLineLeft implements EL 1: clears [0, cursor.Col] on the cursor row.
func (g *Grid) EraseLineLeft() {
	g.Row(g.cursor.Line).ClearRange(0, g.cursor.Col+1, g.cursor.Template)
	g.dirty.Mark(g.cursor.Line)
}

// EraseLineRight implements EL 0: clears [cursor.Col, cols) on the cursor
// row.
func (g *Grid) EraseLineRight() {
	g.Row(g.cursor.Line).ClearRange(g.cursor.Col, g.cols, g.cursor.Template)
	g.dirty.Mark(g.cursor.Line)
}

// EraseLineAll implements EL 2: clears the entire cursor row.
func (g *Grid) EraseLineAll() {
	g.Row(g.cursor.Line).ClearRange(0, g.cols, g.cursor.Template)
	g.dirty.Mark(g.cursor.Line)
}

// EraseChars implements ECH(n): resets n cells starting at the cursor
// column, clamped to row bounds.
func (g *Grid) EraseChars(n int) {
	end := clampInt(g.cursor.Col+n, 0, g.cols)
	g.Row(g.cursor.Line).ClearRange(g.cursor.Col, end, g.cursor.Template)
	g.dirty.Mark(g.cursor.Line)
}

// InsertChars implements ICH(n): shifts cells right within the row,
// clearing the inserted range.
func (g *Grid) InsertChars(n int) {
	row := g.Row(g.cursor.Line)
	cells := row.Cells()
	col := g.cursor.Col
	if col >= len(cells) {
		return
	}
	if n > g.cols-col {
		n = g.cols - col
	}
	copy(cells[col+n:], cells[col:len(cells)-n])
	row.ClearRange(col, col+n, g.cursor.Template)
	g.dirty.Mark(g.cursor.Line)
}

// DeleteChars implements DCH(n): shifts cells left within the row, clearing
// the trailing range.
func (g *Grid) DeleteChars(n int) {
	row := g.Row(g.cursor.Line)
	cells := row.Cells()
	col := g.cursor.Col
	if col >= len(cells) {
		return
	}
	if n > g.cols-col {
		n = g.cols - col
	}
	copy(cells[col:], cells[col+n:])
	row.ClearRange(g.cols-n, g.cols, g.cursor.Template)
	g.dirty.Mark(g.cursor.Line)
}

// --- display offset ---------------------------------------------------

// ScrollDisplay adjusts display_offset by delta lines, clamped to
// [0, scrollback.Len()].
func (g *Grid) ScrollDisplay(delta int) {
	g.displayOffset = clampInt(g.displayOffset+delta, 0, g.scrollback.Len())
	g.dirty.MarkAll()
}

// --- put-char pipeline ------------------------------------------------

func (g *Grid) clearAfterZWJ() { g.afterZWJ = false }

// previousBaseCol returns the column to the left of the cursor that is not
// a wide-char spacer, the attachment point for zero-width combining marks.
func (g *Grid) previousBaseCol(row *Row, col int) int {
	for c := col; c >= 0; c-- {
		if row.Index(c).Flags&CellFlagWideCharSpacer == 0 {
			return c
		}
	}
	return 0
}

// cleanWidePartner clears the wide-pair partner of the cell at col if it
// participates in one, so overwriting one half never leaves a dangling
// half-pair.
func (g *Grid) cleanWidePartner(row *Row, col int) {
	cell := row.IndexMut(col)
	switch {
	case cell.Flags&CellFlagWideChar != 0 && col+1 < row.Len():
		partner := row.IndexMut(col + 1)
		partner.Char = ' '
		partner.Flags &^= CellFlagWideCharSpacer
	case cell.Flags&CellFlagWideCharSpacer != 0 && col > 0:
		partner := row.IndexMut(col - 1)
		partner.Char = ' '
		partner.Flags &^= CellFlagWideChar
	case cell.Flags&CellFlagLeadingWideCharSpacer != 0:
		cell.Flags &^= CellFlagLeadingWideCharSpacer
	}
}

func (g *Grid) wrapCursor() {
	row := g.Row(g.cursor.Line)
	row.IndexMut(g.cols - 1).Flags |= CellFlagWrapline
	g.dirty.Mark(g.cursor.Line)
	g.cursor.Col = 0
	g.cursor.WrapPending = false
	if g.cursor.Line == g.region.Bottom-1 {
		g.ScrollUp(1)
	} else if g.cursor.Line < g.lines-1 {
		g.cursor.Line++
	}
}

// PutChar runs the put-char pipeline for a single code point of the given
// column width (0, 1, or 2) per the grid's wide/zero-width/ZWJ rules.
func (g *Grid) PutChar(r rune, width int) {
	if r == 0x200D { // ZWJ
		row := g.Row(g.cursor.Line)
		col := g.cursor.Col
		if g.cursor.WrapPending {
			col = g.cols - 1
		}
		base := g.previousBaseCol(row, col-1)
		row.IndexMut(base).pushZerowidth(r)
		g.afterZWJ = true
		g.zwjLine, g.zwjCol = g.cursor.Line, base
		g.zwjWideBase = row.Index(base).Flags&CellFlagWideChar != 0
		g.dirty.Mark(g.cursor.Line)
		return
	}

	if g.afterZWJ && width >= 1 {
		row := g.Row(g.zwjLine)
		row.IndexMut(g.zwjCol).pushZerowidth(r)
		g.afterZWJ = false
		g.dirty.Mark(g.zwjLine)
		return
	}

	if width == 0 {
		row := g.Row(g.cursor.Line)
		col := g.cursor.Col
		if g.cursor.WrapPending {
			col = g.cols - 1
		}
		if r >= 0x1F3FB && r <= 0x1F3FF {
			base := g.previousBaseCol(row, col-1)
			row.IndexMut(base).pushZerowidth(r)
			g.dirty.Mark(g.cursor.Line)
			return
		}
		base := g.previousBaseCol(row, col-1)
		row.IndexMut(base).pushZerowidth(r)
		g.dirty.Mark(g.cursor.Line)
		return
	}

	if width == 2 {
		if g.cursor.WrapPending {
			g.wrapCursor()
		}
		if g.cursor.Col == g.cols-1 {
			row := g.Row(g.cursor.Line)
			cell := row.IndexMut(g.cursor.Col)
			g.cleanWidePartner(row, g.cursor.Col)
			cell.Char = ' '
			cell.Fg, cell.Bg, cell.Flags = g.cursor.Template.Fg, g.cursor.Template.Bg, g.cursor.Template.Flags
			cell.Flags |= CellFlagLeadingWideCharSpacer
			cell.Extra = nil
			g.dirty.Mark(g.cursor.Line)
			g.wrapCursor()
		}

		row := g.Row(g.cursor.Line)
		col := g.cursor.Col
		g.cleanWidePartner(row, col)
		if col+1 < g.cols {
			g.cleanWidePartner(row, col+1)
		}

		cell := row.IndexMut(col)
		cell.Char = r
		cell.Fg, cell.Bg, cell.Flags = g.cursor.Template.Fg, g.cursor.Template.Bg, g.cursor.Template.Flags
		cell.Flags |= CellFlagWideChar
		cell.Extra = nil

		if col+1 < g.cols {
			spacer := row.IndexMut(col + 1)
			spacer.Char = ' '
			spacer.Fg, spacer.Bg, spacer.Flags = g.cursor.Template.Fg, g.cursor.Template.Bg, g.cursor.Template.Flags
			spacer.Flags |= CellFlagWideCharSpacer
			spacer.Extra = nil
		}

		g.dirty.Mark(g.cursor.Line)
		g.cursor.Col += 2
		if g.cursor.Col >= g.cols {
			g.cursor.Col = g.cols - 1
			g.cursor.WrapPending = true
		}
		return
	}

	// width == 1
	if g.cursor.WrapPending {
		g.wrapCursor()
	}
	row := g.Row(g.cursor.Line)
	col := g.cursor.Col
	g.cleanWidePartner(row, col)

	cell := row.IndexMut(col)
	cell.Char = r
	cell.Fg, cell.Bg, cell.Flags = g.cursor.Template.Fg, g.cursor.Template.Bg, g.cursor.Template.Flags
	cell.Extra = nil

	g.dirty.Mark(g.cursor.Line)
	g.cursor.Col++
	if g.cursor.Col >= g.cols {
		g.cursor.Col = g.cols - 1
		g.cursor.WrapPending = true
	}
}

// --- resize / reflow ----------------------------------------------------

// linearizedLogicalLines walks scrollback (oldest first) then viewport,
// joining rows connected by Wrapline into single logical lines of cells.
func (g *Grid) linearizedLogicalLines() [][]Cell {
	var rows []*Row
	for i := g.scrollback.Len() - 1; i >= 0; i-- {
		rows = append(rows, g.scrollback.Line(i))
	}
	rows = append(rows, g.viewport.DrainLogical()...)

	var logical [][]Cell
	var current []Cell
	for _, r := range rows {
		current = append(current, r.Cells()...)
		if !r.HasWrapline() {
			logical = append(logical, current)
			current = nil
		} else {
			// strip the Wrapline marker from the joined copy; it will be
			// reapplied at the new width if the join still doesn't fit.
			current[len(current)-1].Flags &^= CellFlagWrapline
		}
	}
	if len(current) > 0 {
		logical = append(logical, current)
	}
	return logical
}

// Resize reflows the grid to newLines x newCols, preserving content by
// rejoining soft-wrapped logical lines and re-splitting them at the new
// width (Open Question decision recorded in SPEC_FULL.md: joined lines
// that now fit in one row at the wider width lose their Wrapline split).
// The reflowed rows above the new viewport replace the old scrollback
// contents; rows beyond the scrollback capacity are dropped and counted in
// TotalEvicted.
func (g *Grid) Resize(newLines, newCols int) {
	if newCols < 1 {
		newCols = 1
	}
	if newLines < 1 {
		newLines = 1
	}

	oldCols := g.cols
	cursorCellOffset := g.absoluteCursorRow()*oldCols + g.cursor.Col

	logical := g.linearizedLogicalLines()

	var physical []*Row
	cellsBeforeLine := 0
	cursorNewAbs, cursorNewCol := 0, 0
	cursorLocated := false
	for _, line := range logical {
		lineStart := len(physical)
		if len(line) == 0 {
			physical = append(physical, NewRow(newCols))
		}
		for start := 0; start < len(line); start += newCols {
			end := start + newCols
			if end > len(line) {
				end = len(line)
			}
			row := NewRow(0)
			row.Append(line[start:end]...)
			for row.Len() < newCols {
				row.Append(NewCell())
			}
			if end < len(line) {
				row.IndexMut(newCols - 1).Flags |= CellFlagWrapline
			}
			physical = append(physical, row)
		}

		lineLen := len(line)
		if !cursorLocated && cursorCellOffset >= cellsBeforeLine && cursorCellOffset < cellsBeforeLine+lineLen+oldCols {
			offsetInLine := cursorCellOffset - cellsBeforeLine
			if offsetInLine >= lineLen {
				offsetInLine = lineLen
			}
			cursorNewAbs = lineStart + offsetInLine/newCols
			cursorNewCol = offsetInLine % newCols
			cursorLocated = true
		}
		cellsBeforeLine += lineLen
	}
	if len(physical) == 0 {
		physical = append(physical, NewRow(newCols))
	}
	if !cursorLocated {
		cursorNewAbs = len(physical) - 1
		cursorNewCol = 0
	}

	// Split back into scrollback (all but the last newLines rows) and
	// viewport (the last newLines rows), growing with blank rows if short.
	if len(physical) > newLines {
		overflow := len(physical) - newLines
		g.scrollback.Clear()
		for i := 0; i < overflow; i++ {
			if g.scrollback.Push(physical[i]) {
				g.totalEvicted++
			}
		}
		physical = physical[overflow:]
		cursorNewAbs -= overflow
	}
	for len(physical) < newLines {
		physical = append(physical, NewRow(newCols))
	}

	g.viewport = &ViewportRing{}
	g.viewport.ReplaceFromVec(physical)
	g.cols = newCols
	g.lines = newLines
	g.region = ScrollRegion{Top: 0, Bottom: newLines}
	g.tabStops = make([]bool, newCols)
	g.initTabStops()
	g.dirty = NewDirtyTracker(newLines)
	g.dirty.MarkAll()

	g.cursor.Line = clampInt(cursorNewAbs, 0, newLines-1)
	g.cursor.Col = clampInt(cursorNewCol, 0, newCols-1)
	g.cursor.WrapPending = false

	g.displayOffset = clampInt(g.displayOffset, 0, g.scrollback.Len())
}

// absoluteCursorRow returns the cursor's row position relative to the
// start of scrollback (scrollback length + viewport line).
func (g *Grid) absoluteCursorRow() int {
	return g.scrollback.Len() + g.cursor.Line
}

// --- alternate-screen swap / full reset helpers used by Terminal --------

// ClearAll resets the entire grid to blank cells and marks everything
// dirty; used on alt-screen entry/exit and RIS.
func (g *Grid) ClearAll() {
	tmpl := NewCell()
	for l := 0; l < g.lines; l++ {
		g.Row(l).Reset(g.cols, tmpl)
	}
	g.scrollback.Clear()
	g.totalEvicted = 0
	g.displayOffset = 0
	g.cursor = NewCursor()
	g.savedCursor = nil
	g.dirty.MarkAll()
}

// SetCursorTemplate updates the cell template new characters inherit
// attributes from (SGR mutation target).
func (g *Grid) SetCursorTemplate(c Cell) { g.cursor.Template = c }

// CursorTemplate returns the current SGR template.
func (g *Grid) CursorTemplate() Cell { return g.cursor.Template }

// SetWrapPending is exposed for Terminal's C0/ESC handlers that need to
// force-clear it (e.g. backspace, charset shifts).
func (g *Grid) SetWrapPending(v bool) { g.cursor.WrapPending = v }
